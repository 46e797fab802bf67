package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const DefaultQRSize = 200

// qrResponseLimit caps how much of the remote endpoint's response is
// read; QR images are tiny.
const qrResponseLimit = 1 << 20

// QRGenerator renders a scannable image for a URL. Rendering is a
// remote black box; callers get image bytes plus a content type.
type QRGenerator interface {
	Render(ctx context.Context, target string, size int) ([]byte, string, error)
}

// QRServerGenerator calls the qrserver.com create-qr-code endpoint.
type QRServerGenerator struct {
	httpClient *http.Client
	endpoint   string
}

func NewQRServerGenerator() *QRServerGenerator {
	return &QRServerGenerator{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   "https://api.qrserver.com/v1/create-qr-code/",
	}
}

func (g *QRServerGenerator) Render(ctx context.Context, target string, size int) ([]byte, string, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	u := fmt.Sprintf("%s?size=%dx%d&data=%s", g.endpoint, size, size, url.QueryEscape(target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("qr endpoint returned %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, qrResponseLimit))
	if err != nil {
		return nil, "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}
	return body, contentType, nil
}

// CustomerMenuURL builds the QR-encoded link that opens the customer
// menu bound to a table, e.g. https://host/dinex-menu/#/menu?table=5.
func CustomerMenuURL(baseURL, tableID string) string {
	base := strings.TrimSuffix(baseURL, "/")
	if base == "" {
		base = "https://therohitbiruli.github.io/dinex-menu"
	}
	if tableID == "" {
		return base + "/#/menu"
	}
	return base + "/#/menu?table=" + url.QueryEscape(tableID)
}

// MenuBaseURL is the configured frontend origin the QR codes point at.
func MenuBaseURL() string {
	return os.Getenv("MENU_BASE_URL")
}
