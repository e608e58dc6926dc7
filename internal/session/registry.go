// Package session держит редакторы открытых вкладок браузера.
package session

import (
	"fmt"

	"crudgen/internal/editor"
	"crudgen/internal/schema"

	"github.com/apex/log"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Factory создаёт редактор для новой сессии
type Factory func(logger log.Interface) *editor.Editor

// Registry хранит ограниченное число сессий. Самая давно не использованная вытесняется,
// и её редактор закрывается.
type Registry struct {
	cache   *lru.Cache[string, *editor.Editor]
	factory Factory
	ids     *schema.IDGen
	log     log.Interface
}

func NewRegistry(size int, factory Factory, logger log.Interface) (*Registry, error) {
	if size <= 0 {
		return nil, fmt.Errorf("session registry size must be positive, got %d", size)
	}
	if logger == nil {
		logger = log.Log
	}
	r := &Registry{factory: factory, ids: schema.NewIDGen(), log: logger}
	cache, err := lru.NewWithEvict(size, func(id string, ed *editor.Editor) {
		ed.Close()
		r.log.WithField("session", id).Debug("session closed")
	})
	if err != nil {
		return nil, err
	}
	r.cache = cache
	return r, nil
}

// Create открывает новую сессию
func (r *Registry) Create() (string, *editor.Editor) {
	id := r.ids.New()
	ed := r.factory(r.log.WithField("session", id))
	if evicted := r.cache.Add(id, ed); evicted {
		r.log.WithField("sessions", r.cache.Len()).Warn("session limit reached, oldest session evicted")
	}
	return id, ed
}

// Get отмечает сессию как использованную
func (r *Registry) Get(id string) (*editor.Editor, bool) {
	return r.cache.Get(id)
}

func (r *Registry) Delete(id string) bool {
	return r.cache.Remove(id)
}

func (r *Registry) Len() int { return r.cache.Len() }

// Close закрывает все сессии
func (r *Registry) Close() {
	r.cache.Purge()
}
