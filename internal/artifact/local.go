package artifact

import (
	"context"
	"os"
	"path/filepath"
)

type LocalStore struct {
	Root string // например, "./downloads"
}

func (s *LocalStore) Save(ctx context.Context, name string, data []byte) (Object, error) {
	name, err := cleanName(name)
	if err != nil {
		return Object{}, err
	}
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return Object{}, err
	}

	// пишем во временный файл и переименовываем, чтобы не оставить обрезанный zip
	full := filepath.Join(s.Root, name)
	tmp, err := os.CreateTemp(s.Root, "."+name+".*")
	if err != nil {
		return Object{}, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Object{}, err
	}
	if err := tmp.Close(); err != nil {
		return Object{}, err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return Object{}, err
	}

	return Object{
		Key:      name,
		Size:     int64(len(data)),
		SHA256:   checksum(data),
		Location: full,
	}, nil
}
