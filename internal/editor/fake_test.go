package editor

import (
	"context"
	"sync"

	"crudgen/internal/artifact"
	"crudgen/internal/schema"
)

// fakeService записывает запросы и отвечает заранее заданным образом
type fakeService struct {
	mu sync.Mutex

	previews   []schema.Document
	previewFn  func(n int, doc schema.Document) (map[string]string, error)
	generated  []schema.Document
	archive    []byte
	genErr     error
	parseText  []string
	parseDoc   schema.Document
	parseErr   error
	parseBlock chan struct{}
}

func (f *fakeService) Preview(ctx context.Context, doc schema.Document) (map[string]string, error) {
	f.mu.Lock()
	f.previews = append(f.previews, doc)
	n := len(f.previews)
	fn := f.previewFn
	f.mu.Unlock()

	if fn != nil {
		return fn(n, doc)
	}
	return map[string]string{FileModels: "models for " + doc.Entities[0].Name, FileMain: "main"}, nil
}

func (f *fakeService) Generate(ctx context.Context, doc schema.Document) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generated = append(f.generated, doc)
	if f.genErr != nil {
		return nil, f.genErr
	}
	return f.archive, nil
}

func (f *fakeService) ParseText(ctx context.Context, text string) (schema.Document, error) {
	f.mu.Lock()
	f.parseText = append(f.parseText, text)
	block := f.parseBlock
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.parseErr != nil {
		return schema.Document{}, f.parseErr
	}
	return f.parseDoc, nil
}

func (f *fakeService) previewCalls() []schema.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]schema.Document(nil), f.previews...)
}

func (f *fakeService) generateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.generated)
}

// memStore: artifact.Store в памяти
type memStore struct {
	mu    sync.Mutex
	saved map[string][]byte
	err   error
}

func (m *memStore) Save(ctx context.Context, name string, data []byte) (artifact.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return artifact.Object{}, m.err
	}
	if m.saved == nil {
		m.saved = map[string][]byte{}
	}
	m.saved[name] = data
	return artifact.Object{Key: name, Size: int64(len(data)), Location: "mem://" + name}, nil
}
