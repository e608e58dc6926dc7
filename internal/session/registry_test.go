package session

import (
	"context"
	"testing"
	"time"

	"crudgen/internal/editor"
	"crudgen/internal/schema"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopService struct{}

func (nopService) Preview(ctx context.Context, doc schema.Document) (map[string]string, error) {
	return map[string]string{}, nil
}
func (nopService) Generate(ctx context.Context, doc schema.Document) ([]byte, error) {
	return []byte("PK"), nil
}
func (nopService) ParseText(ctx context.Context, text string) (schema.Document, error) {
	return schema.Document{}, nil
}

func newRegistry(t *testing.T, size int) *Registry {
	t.Helper()
	logger := &log.Logger{Handler: discard.Default, Level: log.InfoLevel}
	r, err := NewRegistry(size, func(l log.Interface) *editor.Editor {
		return editor.New(nopService{}, editor.Options{Debounce: time.Hour, Logger: l})
	}, logger)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestRegistry_CreateGetDelete(t *testing.T) {
	r := newRegistry(t, 4)

	id, ed := r.Create()
	require.NotEmpty(t, id)
	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Same(t, ed, got)

	other, _ := r.Create()
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, r.Len())

	assert.True(t, r.Delete(id))
	assert.False(t, r.Delete(id))
	_, ok = r.Get(id)
	assert.False(t, ok)

	_, err := ed.RefreshPreview(context.Background())
	assert.ErrorIs(t, err, editor.ErrClosed, "deleted session's editor is closed")
}

func TestRegistry_EvictsLeastRecentlyUsed(t *testing.T) {
	r := newRegistry(t, 2)

	first, firstEd := r.Create()
	second, _ := r.Create()
	_, ok := r.Get(first) // first теперь «свежее» second
	require.True(t, ok)

	r.Create()
	assert.Equal(t, 2, r.Len())
	_, ok = r.Get(second)
	assert.False(t, ok, "least recently used session is evicted")
	_, ok = r.Get(first)
	assert.True(t, ok)

	_, err := firstEd.RefreshPreview(context.Background())
	assert.NoError(t, err)
}

func TestRegistry_Close(t *testing.T) {
	r := newRegistry(t, 2)
	_, ed := r.Create()
	r.Close()
	assert.Zero(t, r.Len())
	_, err := ed.RefreshPreview(context.Background())
	assert.ErrorIs(t, err, editor.ErrClosed)
}

func TestNewRegistry_InvalidSize(t *testing.T) {
	_, err := NewRegistry(0, nil, nil)
	assert.Error(t, err)
}
