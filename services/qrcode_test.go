package services

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCustomerMenuURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		tableID string
		want    string
	}{
		{"with table", "https://menu.example.com", "5", "https://menu.example.com/#/menu?table=5"},
		{"trailing slash", "https://menu.example.com/", "5", "https://menu.example.com/#/menu?table=5"},
		{"no table", "https://menu.example.com", "", "https://menu.example.com/#/menu"},
		{"table id escaped", "https://menu.example.com", "a b", "https://menu.example.com/#/menu?table=a+b"},
		{"default base", "", "2", "https://therohitbiruli.github.io/dinex-menu/#/menu?table=2"},
	}
	for _, tt := range tests {
		if got := CustomerMenuURL(tt.base, tt.tableID); got != tt.want {
			t.Errorf("%s: CustomerMenuURL = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestQRServerGeneratorRender(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("size") != "300x300" {
			t.Errorf("size = %q, want 300x300", q.Get("size"))
		}
		if q.Get("data") != "https://menu.example.com/#/menu?table=5" {
			t.Errorf("data = %q", q.Get("data"))
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}))
	defer srv.Close()

	g := &QRServerGenerator{httpClient: srv.Client(), endpoint: srv.URL}
	img, contentType, err := g.Render(context.Background(), "https://menu.example.com/#/menu?table=5", 300)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("content type = %q, want image/png", contentType)
	}
	if !bytes.Equal(img, png) {
		t.Errorf("unexpected image bytes: %v", img)
	}
}

func TestQRServerGeneratorRenderCapsResponseSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(bytes.Repeat([]byte{0xAB}, qrResponseLimit+4096))
	}))
	defer srv.Close()

	g := &QRServerGenerator{httpClient: srv.Client(), endpoint: srv.URL}
	img, _, err := g.Render(context.Background(), "x", 100)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(img) != qrResponseLimit {
		t.Errorf("read %d bytes, want the %d cap", len(img), qrResponseLimit)
	}
}

func TestQRServerGeneratorRenderNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	g := &QRServerGenerator{httpClient: srv.Client(), endpoint: srv.URL}
	if _, _, err := g.Render(context.Background(), "x", 0); err == nil {
		t.Error("expected error on non-200 response")
	}
}
