package services

import (
	"encoding/base64"
	"testing"
)

func TestDecodeImageDataURL(t *testing.T) {
	raw := []byte("fake image bytes")
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	data, contentType, err := DecodeImageDataURL(dataURL)
	if err != nil {
		t.Fatalf("DecodeImageDataURL: %v", err)
	}
	if contentType != "image/jpeg" {
		t.Errorf("content type = %q, want image/jpeg", contentType)
	}
	if string(data) != string(raw) {
		t.Errorf("decoded bytes = %q, want %q", data, raw)
	}
}

func TestDecodeImageDataURLRejectsGarbage(t *testing.T) {
	tests := []string{
		"",
		"not a data url",
		"data:image/png;base64",
		"data:;base64,AAAA",
		"data:image/png;base64,@@not-base64@@",
	}
	for _, in := range tests {
		if _, _, err := DecodeImageDataURL(in); err == nil {
			t.Errorf("DecodeImageDataURL(%q) succeeded, want error", in)
		}
	}
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", ".jpg"},
		{"image/jpg", ".jpg"},
		{"image/svg+xml", ".svg"},
		{"image/madeup", ".madeup"},
	}
	for _, tt := range tests {
		if got := extensionFor(tt.contentType); got != tt.want {
			t.Errorf("extensionFor(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}
