package storage

import (
	"context"
	"encoding/base64"
	"fmt"
)

// ImageStore persists image bytes and returns a URL an <img> can load.
type ImageStore interface {
	Save(ctx context.Context, namespace string, data []byte, contentType string) (string, error)
}

// DataURIStore keeps nothing; the URL carries the bytes inline.
type DataURIStore struct{}

func NewDataURIStore() *DataURIStore {
	return &DataURIStore{}
}

func (DataURIStore) Save(_ context.Context, _ string, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image")
	}
	if contentType == "" {
		contentType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}
