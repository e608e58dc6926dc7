// Package editor хранит схему, которую собирает пользователь, и держит предпросмотр
// сгенерированного кода в синхронизации с ней.
package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crudgen/internal/debounce"
	"crudgen/internal/schema"

	"github.com/apex/log"
)

const DefaultDebounce = 500 * time.Millisecond

// Service: внешний сервис генерации (реализуется generator.Client)
type Service interface {
	Preview(ctx context.Context, doc schema.Document) (map[string]string, error)
	Generate(ctx context.Context, doc schema.Document) ([]byte, error)
	ParseText(ctx context.Context, text string) (schema.Document, error)
}

// Атрибуты, которые можно менять через Set*Attribute
const (
	AttrName     = "name"
	AttrType     = "type"
	AttrRelation = "relation"
)

type Options struct {
	Debounce time.Duration // 0 => DefaultDebounce
	Timeout  time.Duration // таймаут одного запроса предпросмотра, 0 = без таймаута
	Logger   log.Interface
	IDs      *schema.IDGen
}

type Editor struct {
	svc     Service
	log     log.Interface
	ids     *schema.IDGen
	timeout time.Duration

	mu         sync.Mutex
	entities   []schema.Entity
	dirty      bool   // модель менялась после последней отправки
	issued     uint64 // номер последнего запроса предпросмотра
	preview    Preview
	generating bool
	closed     bool
	watchers   map[int]chan Preview
	nextWatch  int

	debounce *debounce.Debouncer
	ctx      context.Context
	cancel   context.CancelFunc
}

func New(svc Service, opts Options) *Editor {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = log.Log
	}
	if opts.IDs == nil {
		opts.IDs = schema.NewIDGen()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e := &Editor{
		svc:      svc,
		log:      opts.Logger,
		ids:      opts.IDs,
		timeout:  opts.Timeout,
		entities: []schema.Entity{},
		preview:  Preview{Files: PlaceholderFiles(), Active: FileModels},
		watchers: map[int]chan Preview{},
		ctx:      ctx,
		cancel:   cancel,
	}
	e.debounce = debounce.New(opts.Debounce, func() { _ = e.syncPreview(e.ctx, false) })
	return e
}

// Close останавливает таймер, отменяет запросы в полёте и закрывает подписки.
func (e *Editor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	for id, ch := range e.watchers {
		close(ch)
		delete(e.watchers, id)
	}
	e.mu.Unlock()

	e.debounce.Stop()
	e.cancel()
}

// changedLocked вызывается при любом изменении коллекции: модель грязная, debounce перевзводится
func (e *Editor) changedLocked() {
	e.dirty = true
	e.debounce.Trigger()
}

// Entities: глубокая копия текущей коллекции
func (e *Editor) Entities() []schema.Entity {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cloneLocked()
}

func (e *Editor) cloneLocked() []schema.Entity {
	out := make([]schema.Entity, len(e.entities))
	for i, ent := range e.entities {
		out[i] = ent.Clone()
	}
	return out
}

// Document: текущая схема в проводной форме
func (e *Editor) Document() schema.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return schema.ToWire(e.entities)
}

func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entities)
}

func (e *Editor) entityIndex(id string) int {
	for i := range e.entities {
		if e.entities[i].ID == id {
			return i
		}
	}
	return -1
}

func fieldIndex(ent *schema.Entity, id string) int {
	for i := range ent.Fields {
		if ent.Fields[i].ID == id {
			return i
		}
	}
	return -1
}

// AddEntity добавляет NewEntity<N> (N = текущее количество + 1) с полем id:int.
func (e *Editor) AddEntity() schema.Entity {
	e.mu.Lock()
	defer e.mu.Unlock()

	ent := schema.Entity{
		ID:   e.ids.New(),
		Name: fmt.Sprintf("NewEntity%d", len(e.entities)+1),
		Fields: []schema.Field{
			{ID: e.ids.New(), Name: "id", Type: schema.TypeInt},
		},
	}
	e.entities = append(e.entities, ent)
	e.changedLocked()
	return ent.Clone()
}

// DeleteEntity удаляет сущность. false, если такой не было.
// Ссылки других сущностей на неё не трогаются.
func (e *Editor) DeleteEntity(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.entityIndex(id)
	if i < 0 {
		return false
	}
	e.entities = append(e.entities[:i], e.entities[i+1:]...)
	e.changedLocked()
	return true
}

// SetEntityAttribute меняет атрибут сущности (сейчас есть только name).
func (e *Editor) SetEntityAttribute(id, attr, value string) (schema.Entity, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.entityIndex(id)
	if i < 0 {
		return schema.Entity{}, ErrEntityNotFound
	}
	switch attr {
	case AttrName:
		e.entities[i].Name = value
	default:
		return schema.Entity{}, fmt.Errorf("%w %q", ErrUnknownAttribute, attr)
	}
	e.changedLocked()
	return e.entities[i].Clone(), nil
}

// RenameEntity не каскадирует: relation.target_entity в других сущностях остаётся прежним.
func (e *Editor) RenameEntity(id, name string) (schema.Entity, error) {
	return e.SetEntityAttribute(id, AttrName, name)
}

// AddField добавляет поле new_field:str в конец сущности.
func (e *Editor) AddField(entityID string) (schema.Field, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.entityIndex(entityID)
	if i < 0 {
		return schema.Field{}, ErrEntityNotFound
	}
	f := schema.Field{ID: e.ids.New(), Name: "new_field", Type: schema.TypeStr}
	e.entities[i].Fields = append(e.entities[i].Fields, f)
	e.changedLocked()
	return f, nil
}

func (e *Editor) DeleteField(entityID, fieldID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.entityIndex(entityID)
	if i < 0 {
		return false
	}
	ent := &e.entities[i]
	j := fieldIndex(ent, fieldID)
	if j < 0 {
		return false
	}
	ent.Fields = append(ent.Fields[:j], ent.Fields[j+1:]...)
	e.changedLocked()
	return true
}

// SetFieldAttribute меняет один атрибут поля.
//
// relation с непустым значением переименовывает поле в lowerFirst(value)+"_id" и ставит тип int,
// затирая то, что пользователь ввёл раньше. Пустое значение снимает связь, имя и тип остаются.
func (e *Editor) SetFieldAttribute(entityID, fieldID, attr, value string) (schema.Field, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.entityIndex(entityID)
	if i < 0 {
		return schema.Field{}, ErrEntityNotFound
	}
	ent := &e.entities[i]
	j := fieldIndex(ent, fieldID)
	if j < 0 {
		return schema.Field{}, ErrFieldNotFound
	}
	f := &ent.Fields[j]

	switch attr {
	case AttrName:
		f.Name = value
	case AttrType:
		t := schema.FieldType(value)
		if !t.Valid() {
			return schema.Field{}, fmt.Errorf("%w %q", ErrInvalidType, value)
		}
		f.Type = t
	case AttrRelation:
		if value != "" {
			f.Name = schema.RelationFieldName(value)
			f.Type = schema.TypeInt
			f.Relation = &schema.Relation{TargetEntity: value}
		} else {
			f.Relation = nil
		}
	default:
		return schema.Field{}, fmt.Errorf("%w %q", ErrUnknownAttribute, attr)
	}
	e.changedLocked()
	return f.Clone(), nil
}

// Load заменяет всю коллекцию документом (импорт файла, DSL).
// Документ нормализуется так же, как ответ генерации по тексту.
func (e *Editor) Load(doc schema.Document) []schema.Entity {
	ents := schema.Normalize(doc, e.ids)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.entities = ents
	e.changedLocked()
	return e.cloneLocked()
}
