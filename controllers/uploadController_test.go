package controller

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubImageStore struct {
	url string
	err error

	gotContentType string
	gotData        []byte
}

func (s *stubImageStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	s.gotData = data
	s.gotContentType = contentType
	return s.url, s.err
}

func uploadBody(dataURL string) string {
	b, _ := json.Marshal(map[string]string{"image_base64": dataURL})
	return string(b)
}

func TestUploadImageHandler(t *testing.T) {
	store := &stubImageStore{url: "https://img.example.com/abc.jpg"}
	handler := UploadImageHandler(store)

	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg bytes"))
	req := httptest.NewRequest(http.MethodPost, "/uploads/image", strings.NewReader(uploadBody(dataURL)))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if store.gotContentType != "image/jpeg" {
		t.Errorf("content type passed to store = %q", store.gotContentType)
	}
	if string(store.gotData) != "jpeg bytes" {
		t.Errorf("bytes passed to store = %q", store.gotData)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || resp.Data.URL != store.url {
		t.Errorf("response = %+v", resp)
	}
}

func TestUploadImageHandlerRejectsBadPayloads(t *testing.T) {
	handler := UploadImageHandler(&stubImageStore{url: "u"})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"not json", "nope", http.StatusBadRequest},
		{"empty payload", `{}`, http.StatusBadRequest},
		{"not a data url", uploadBody("plainstring"), http.StatusBadRequest},
		{"not an image", uploadBody("data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte("<b>hi</b>"))), http.StatusBadRequest},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/uploads/image", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
}

func TestUploadImageHandlerStoreFailure(t *testing.T) {
	handler := UploadImageHandler(&stubImageStore{err: errors.New("s3 down")})

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))
	req := httptest.NewRequest(http.MethodPost, "/uploads/image", strings.NewReader(uploadBody(dataURL)))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestUploadImageHandlerUnconfigured(t *testing.T) {
	handler := UploadImageHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/uploads/image", strings.NewReader(uploadBody("data:image/png;base64,AAAA")))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
