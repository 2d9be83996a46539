package main

import (
	"context"
	"fmt"

	"mydocs/internal/config"
	"mydocs/internal/storage"
)

const mebibyte = 1 << 20

// openStorage builds the backend selected by STORAGE_DRIVER.
func openStorage(ctx context.Context, c *config.AppConfig) (storage.Storage, error) {
	switch c.Storage.Driver {
	case "minio":
		return storage.NewMinIO(ctx, c.MinIO)
	case "local", "":
		return storage.NewFilesystem(c.Storage.BasePath)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
}

// bodyLimit sizes the request body cap so that a maximal upload fits both as a
// multipart part and as a base64 JSON payload.
func bodyLimit(maxUpload int64) int {
	limit := maxUpload*4/3 + mebibyte
	if limit < 4*mebibyte {
		limit = 4 * mebibyte
	}
	return int(limit)
}
