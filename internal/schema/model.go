package schema

// FieldType: допустимые типы полей сущности
type FieldType string

const (
	TypeInt      FieldType = "int"
	TypeStr      FieldType = "str"
	TypeFloat    FieldType = "float"
	TypeBool     FieldType = "bool"
	TypeDatetime FieldType = "datetime"
	TypeText     FieldType = "text"
)

// Types возвращает типы в том порядке, в котором их показывает редактор.
func Types() []FieldType {
	return []FieldType{TypeInt, TypeStr, TypeFloat, TypeBool, TypeDatetime, TypeText}
}

func (t FieldType) Valid() bool {
	switch t {
	case TypeInt, TypeStr, TypeFloat, TypeBool, TypeDatetime, TypeText:
		return true
	}
	return false
}

// Relation: ссылка поля на другую сущность (по имени)
type Relation struct {
	TargetEntity string `json:"target_entity" yaml:"target_entity"`
}

// Entity описывает сущность в редакторе. ID живёт только локально.
type Entity struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// Field описывает поле сущности. ID уникален в пределах сущности.
type Field struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Relation *Relation `json:"relation,omitempty"`
}

// Clone: глубокая копия, чтобы снапшоты не делили слайсы с состоянием редактора
func (e Entity) Clone() Entity {
	out := Entity{ID: e.ID, Name: e.Name, Fields: make([]Field, len(e.Fields))}
	for i, f := range e.Fields {
		out.Fields[i] = f.Clone()
	}
	return out
}

func (f Field) Clone() Field {
	if f.Relation != nil {
		r := *f.Relation
		f.Relation = &r
	}
	return f
}

// FieldByName ищет поле без учёта регистра.
func (e Entity) FieldByName(name string) (Field, bool) {
	for _, f := range e.Fields {
		if equalFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}
