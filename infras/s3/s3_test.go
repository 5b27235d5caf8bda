package s3_test

import (
	"strings"
	"testing"

	"nutrisur/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	name := s3.ObjectName("Salad.PNG")

	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, name, 36+len(".png"))

	assert.Len(t, s3.ObjectName("no-extension"), 36)
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		url    string
		want   string
		wantOK bool
	}{
		{
			name:   "own url",
			domain: "https://cdn.nutrisur.cl",
			url:    "https://cdn.nutrisur.cl/product/a.png",
			want:   "product/a.png",
			wantOK: true,
		},
		{
			name:   "trailing slash on domain",
			domain: "https://cdn.nutrisur.cl/",
			url:    "https://cdn.nutrisur.cl/product/a.png",
			want:   "product/a.png",
			wantOK: true,
		},
		{
			name:   "foreign url",
			domain: "https://cdn.nutrisur.cl",
			url:    "https://example.com/product/a.png",
		},
		{
			name:   "domain only",
			domain: "https://cdn.nutrisur.cl",
			url:    "https://cdn.nutrisur.cl/",
		},
		{
			name: "no domain configured",
			url:  "https://cdn.nutrisur.cl/product/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s3.ObjectKey(tt.domain, tt.url)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
