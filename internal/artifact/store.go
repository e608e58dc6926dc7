// Package artifact сохраняет скачанные архивы проектов.
package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Object: сохранённый архив
type Object struct {
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	SHA256   string `json:"sha256"`
	Location string `json:"location"` // путь на диске или s3://bucket/key
}

type Store interface {
	Save(ctx context.Context, name string, data []byte) (Object, error)
}

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Settings: то, что нужно для Open. Заполняется из config.Config.
type Settings struct {
	Driver string
	Root   string // для local

	S3 S3Config
}

// Open выбирает драйвер хранилища
func Open(s Settings) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(s.Driver)) {
	case "", DriverLocal:
		root := strings.TrimSpace(s.Root)
		if root == "" {
			root = "."
		}
		return &LocalStore{Root: root}, nil
	case DriverS3:
		return NewS3Store(s.S3)
	default:
		return nil, fmt.Errorf("unknown artifact driver %q (allowed: local|s3)", s.Driver)
	}
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("artifact name is required")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}
	return name, nil
}
