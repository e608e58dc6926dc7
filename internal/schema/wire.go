package schema

import "strings"

// Document: «проводная» форма схемы, без локальных идентификаторов.
// Именно её получает сервис генерации.
type Document struct {
	Entities []WireEntity `json:"entities" yaml:"entities"`
}

type WireEntity struct {
	Name   string      `json:"name" yaml:"name"`
	Fields []WireField `json:"fields" yaml:"fields"`
}

type WireField struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Relation *Relation `json:"relation,omitempty" yaml:"relation,omitempty"`
}

// IsEmpty: нечего отправлять на генерацию
func (d Document) IsEmpty() bool { return len(d.Entities) == 0 }

// ToWire снимает идентификаторы и выкидывает сущности с пустым именем.
// Единственное правило нормализации для всех исходящих запросов.
func ToWire(entities []Entity) Document {
	doc := Document{Entities: make([]WireEntity, 0, len(entities))}
	for _, e := range entities {
		if e.Name == "" {
			continue
		}
		we := WireEntity{Name: e.Name, Fields: make([]WireField, 0, len(e.Fields))}
		for _, f := range e.Fields {
			wf := WireField{Name: f.Name, Type: f.Type}
			if f.Relation != nil {
				r := *f.Relation
				wf.Relation = &r
			}
			we.Fields = append(we.Fields, wf)
		}
		doc.Entities = append(doc.Entities, we)
	}
	return doc
}

// Normalize превращает входящий документ (ответ инференса, импорт) в сущности редактора:
// каждой сущности без поля "id" (регистр не важен) добавляется {id:int} в начало,
// всем сущностям и полям выдаются свежие идентификаторы.
func Normalize(doc Document, ids *IDGen) []Entity {
	out := make([]Entity, 0, len(doc.Entities))
	for _, we := range doc.Entities {
		e := Entity{ID: ids.New(), Name: we.Name}

		hasID := false
		for _, wf := range we.Fields {
			if strings.EqualFold(wf.Name, "id") {
				hasID = true
				break
			}
		}
		e.Fields = make([]Field, 0, len(we.Fields)+1)
		if !hasID {
			e.Fields = append(e.Fields, Field{ID: ids.New(), Name: "id", Type: TypeInt})
		}
		for _, wf := range we.Fields {
			f := Field{ID: ids.New(), Name: wf.Name, Type: wf.Type}
			if wf.Relation != nil {
				r := *wf.Relation
				f.Relation = &r
			}
			e.Fields = append(e.Fields, f)
		}
		out = append(out, e)
	}
	return out
}

func equalFold(a, b string) bool { return strings.EqualFold(a, b) }
