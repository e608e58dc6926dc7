package editor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crudgen/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitCalls(t *testing.T, svc *fakeService, n int) []schema.Document {
	t.Helper()
	require.Eventually(t, func() bool { return len(svc.previewCalls()) >= n }, 2*time.Second, 5*time.Millisecond)
	return svc.previewCalls()
}

func TestPreview_InitialPlaceholder(t *testing.T) {
	e := newEditor(t, &fakeService{})
	p := e.Preview()
	assert.Equal(t, map[string]string{
		FileModels: "// Добавьте сущность, чтобы увидеть код",
		FileMain:   "",
		FileTests:  "// Здесь появятся автотесты для API",
	}, p.Files)
	assert.Equal(t, FileModels, p.Active)
	assert.False(t, p.Pending)
}

func TestPreview_DebounceCoalesces(t *testing.T) {
	svc := &fakeService{}
	e := newEditor(t, svc)

	ent := e.AddEntity()
	_, err := e.RenameEntity(ent.ID, "Author")
	require.NoError(t, err)
	assert.True(t, e.Preview().Pending)

	waitCalls(t, svc, 1)
	time.Sleep(3 * testDebounce)
	calls := svc.previewCalls()

	require.Len(t, calls, 1, "two quick changes produce one request")
	assert.Equal(t, "Author", calls[0].Entities[0].Name, "request carries the latest state")

	require.Eventually(t, func() bool { return e.Preview().Revision == 1 }, time.Second, 5*time.Millisecond)
	p := e.Preview()
	assert.Equal(t, "models for Author", p.Files[FileModels])
	assert.Equal(t, "main", p.Files[FileMain])
	assert.Equal(t, PlaceholderTests, p.Files[FileTests], "missing files keep their last value")
	assert.False(t, p.Pending)
}

func TestPreview_StripsAndFilters(t *testing.T) {
	svc := &fakeService{}
	e := newEditor(t, svc)

	a := e.AddEntity()
	b := e.AddEntity()
	_, err := e.RenameEntity(b.ID, "")
	require.NoError(t, err)

	calls := waitCalls(t, svc, 1)
	require.Len(t, calls[0].Entities, 1)
	assert.Equal(t, a.Name, calls[0].Entities[0].Name)
	assert.Equal(t, []schema.WireField{{Name: "id", Type: schema.TypeInt}}, calls[0].Entities[0].Fields)
}

func TestPreview_EmptySchemaUsesPlaceholderWithoutRequest(t *testing.T) {
	svc := &fakeService{}
	e := newEditor(t, svc)

	ent := e.AddEntity()
	waitCalls(t, svc, 1)
	require.Eventually(t, func() bool { return e.Preview().Files[FileModels] == "models for NewEntity1" }, time.Second, 5*time.Millisecond)

	require.True(t, e.DeleteEntity(ent.ID))
	require.Eventually(t, func() bool { return e.Preview().Files[FileModels] == PlaceholderModels }, time.Second, 5*time.Millisecond)

	p := e.Preview()
	assert.Equal(t, PlaceholderFiles(), p.Files)
	assert.Len(t, svc.previewCalls(), 1, "no request for an empty schema")
}

func TestPreview_OnlyUnnamedEntitiesUsesPlaceholder(t *testing.T) {
	svc := &fakeService{}
	e := newManualEditor(t, svc)

	ent := e.AddEntity()
	_, err := e.RenameEntity(ent.ID, "")
	require.NoError(t, err)

	p, err := e.RefreshPreview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PlaceholderFiles(), p.Files)
	assert.Empty(t, svc.previewCalls())
}

func TestPreview_FailureKeepsPreviousContent(t *testing.T) {
	svc := &fakeService{}
	svc.previewFn = func(n int, doc schema.Document) (map[string]string, error) {
		if n == 1 {
			return map[string]string{FileModels: "v1"}, nil
		}
		return nil, errors.New("connection refused")
	}
	e := newManualEditor(t, svc)

	ent := e.AddEntity()
	_, err := e.RefreshPreview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1", e.Preview().Files[FileModels])

	_, err = e.RenameEntity(ent.ID, "Other")
	require.NoError(t, err)
	p, err := e.RefreshPreview(context.Background())
	require.Error(t, err)
	assert.Equal(t, "v1", p.Files[FileModels])
	assert.Equal(t, uint64(1), p.Revision)
}

func TestPreview_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	svc := &fakeService{}
	svc.previewFn = func(n int, doc schema.Document) (map[string]string, error) {
		if n == 1 {
			<-release // первый ответ приходит позже второго
			return map[string]string{FileModels: "old"}, nil
		}
		return map[string]string{FileModels: "new"}, nil
	}
	e := newManualEditor(t, svc)
	e.AddEntity()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = e.RefreshPreview(context.Background())
	}()
	waitCalls(t, svc, 1)

	e.AddEntity()
	_, err := e.RefreshPreview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", e.Preview().Files[FileModels])

	close(release)
	wg.Wait()

	p := e.Preview()
	assert.Equal(t, "new", p.Files[FileModels])
	assert.Equal(t, uint64(2), p.Revision)
}

func TestPreview_ActiveTabReset(t *testing.T) {
	svc := &fakeService{}
	svc.previewFn = func(n int, doc schema.Document) (map[string]string, error) {
		if n == 1 {
			return map[string]string{FileModels: "m", FileTests: "t"}, nil
		}
		return map[string]string{FileModels: "m2"}, nil
	}
	e := newManualEditor(t, svc)
	e.AddEntity()

	_, err := e.RefreshPreview(context.Background())
	require.NoError(t, err)
	p, err := e.SelectTab(FileTests)
	require.NoError(t, err)
	assert.Equal(t, FileTests, p.Active)

	_, err = e.SelectTab("setup.py")
	assert.ErrorIs(t, err, ErrUnknownTab)

	e.AddEntity()
	p, err = e.RefreshPreview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FileModels, p.Active, "tab missing from the response falls back to models.py")
	assert.Equal(t, "t", p.Files[FileTests])
}

func TestPreview_RefreshCancelsPendingDebounce(t *testing.T) {
	svc := &fakeService{}
	e := newEditorWithDebounce(t, svc, 150*time.Millisecond)
	e.AddEntity()

	_, err := e.RefreshPreview(context.Background())
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)
	assert.Len(t, svc.previewCalls(), 1)
}

func TestPreview_ExtraFilesAndNames(t *testing.T) {
	svc := &fakeService{}
	svc.previewFn = func(n int, doc schema.Document) (map[string]string, error) {
		return map[string]string{"schemas.py": "s", "crud.py": "c", FileMain: "m"}, nil
	}
	e := newManualEditor(t, svc)
	e.AddEntity()

	p, err := e.RefreshPreview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{FileModels, FileMain, FileTests, "crud.py", "schemas.py"}, p.Names())
}

func TestSubscribe(t *testing.T) {
	svc := &fakeService{}
	e := newEditor(t, svc)

	ch, stop := e.Subscribe()
	defer stop()

	e.AddEntity()
	select {
	case p := <-ch:
		assert.Equal(t, "models for NewEntity1", p.Files[FileModels])
	case <-time.After(2 * time.Second):
		t.Fatal("no preview delivered")
	}

	stop()
	_, ok := <-ch
	assert.False(t, ok, "channel is closed after unsubscribe")
	stop()
}

func TestClose(t *testing.T) {
	svc := &fakeService{}
	e := newEditor(t, svc)
	ch, _ := e.Subscribe()

	e.AddEntity()
	e.Close()
	e.Close()

	_, ok := <-ch
	assert.False(t, ok)
	time.Sleep(3 * testDebounce)
	assert.Empty(t, svc.previewCalls())

	_, err := e.RefreshPreview(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = e.GenerateFromText(context.Background(), "blog")
	assert.ErrorIs(t, err, ErrClosed)

	late, _ := e.Subscribe()
	_, ok = <-late
	assert.False(t, ok)
}
