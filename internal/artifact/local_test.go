package artifact

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	root := filepath.Join(t.TempDir(), "downloads")
	st := &LocalStore{Root: root}

	obj, err := st.Save(context.Background(), "fastapi_project.zip", []byte("PK-one"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "fastapi_project.zip"), obj.Location)
	assert.Equal(t, int64(6), obj.Size)
	assert.Len(t, obj.SHA256, 64)

	// повторное сохранение перезаписывает файл целиком
	_, err = st.Save(context.Background(), "fastapi_project.zip", []byte("PK-2"))
	require.NoError(t, err)
	data, err := os.ReadFile(obj.Location)
	require.NoError(t, err)
	assert.Equal(t, "PK-2", string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}

func TestLocalStore_RejectsBadNames(t *testing.T) {
	st := &LocalStore{Root: t.TempDir()}
	for _, name := range []string{"", "  ", "../x.zip", "a/b.zip", `a\b.zip`} {
		_, err := st.Save(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestLocalStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&LocalStore{Root: t.TempDir()}).Save(ctx, "p.zip", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen(t *testing.T) {
	st, err := Open(Settings{Driver: "", Root: "out"})
	require.NoError(t, err)
	assert.Equal(t, &LocalStore{Root: "out"}, st)

	_, err = Open(Settings{Driver: "ftp"})
	assert.Error(t, err)

	_, err = Open(Settings{Driver: "s3", S3: S3Config{Endpoint: "localhost:9000"}})
	assert.Error(t, err, "missing credentials must be rejected")
}

func TestS3Store_ObjectKey(t *testing.T) {
	st, err := NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b", Bucket: "projects", Prefix: "/crudgen/"})
	require.NoError(t, err)
	st.now = func() time.Time { return time.Date(2026, 3, 5, 0, 0, 0, 42, time.UTC) }

	assert.Equal(t, "crudgen/2026/03/"+strconv.FormatInt(st.now().UnixNano(), 10)+"-fastapi_project.zip", st.objectKey("fastapi_project.zip"))
}
