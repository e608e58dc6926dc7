package dsl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"crudgen/internal/schema"
)

// идентификатор: буквы и цифры любого алфавита плюс "_"
const ident = `[\p{L}\p{N}_]+`

var (
	entityRe = regexp.MustCompile(`^entity\s+(` + ident + `)\s*:$`)
	fieldRe  = regexp.MustCompile(`^(` + ident + `)\s*:\s*([^\s#]+)\s*(?:#.*)?$`)
	refRe    = regexp.MustCompile(`^ref\[(` + ident + `)\]$`)
	identRe  = regexp.MustCompile(`^` + ident + `$`)
)

// синонимы, которые люди пишут по привычке
var typeAliases = map[string]schema.FieldType{
	"string":    schema.TypeStr,
	"integer":   schema.TypeInt,
	"boolean":   schema.TypeBool,
	"double":    schema.TypeFloat,
	"timestamp": schema.TypeDatetime,
	"date":      schema.TypeDatetime,
}

// SyntaxError: ошибка разбора с номером строки
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

// Parse читает компактное описание схемы:
//
//	entity Author:
//	  name: str
//	entity Book:
//	  title: str
//	  author_id: ref[Author]   # ссылка => int + relation
func Parse(r io.Reader) (schema.Document, error) {
	doc := schema.Document{Entities: []schema.WireEntity{}}
	var current *schema.WireEntity
	seen := map[string]struct{}{}

	flush := func() {
		if current != nil {
			doc.Entities = append(doc.Entities, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// entity <Name>:
		if m := entityRe.FindStringSubmatch(line); m != nil {
			flush()
			if _, dup := seen[m[1]]; dup {
				return schema.Document{}, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("duplicate entity %q", m[1])}
			}
			seen[m[1]] = struct{}{}
			current = &schema.WireEntity{Name: m[1], Fields: []schema.WireField{}}
			continue
		}

		m := fieldRe.FindStringSubmatch(line)
		if m == nil {
			return schema.Document{}, &SyntaxError{Line: lineNo, Msg: fmt.Sprintf("cannot parse %q", line)}
		}
		if current == nil {
			return schema.Document{}, &SyntaxError{Line: lineNo, Msg: "field declared outside of an entity"}
		}

		f, err := parseField(m[1], m[2])
		if err != nil {
			return schema.Document{}, &SyntaxError{Line: lineNo, Msg: err.Error()}
		}
		current.Fields = append(current.Fields, f)
	}
	if err := scanner.Err(); err != nil {
		return schema.Document{}, err
	}
	flush()
	return doc, nil
}

func parseField(name, rawType string) (schema.WireField, error) {
	if mm := refRe.FindStringSubmatch(rawType); mm != nil {
		return schema.WireField{
			Name:     name,
			Type:     schema.TypeInt,
			Relation: &schema.Relation{TargetEntity: mm[1]},
		}, nil
	}

	t := schema.FieldType(strings.ToLower(rawType))
	if alias, ok := typeAliases[string(t)]; ok {
		t = alias
	}
	if !t.Valid() {
		return schema.WireField{}, fmt.Errorf("field %q: unknown type %q", name, rawType)
	}
	return schema.WireField{Name: name, Type: t}, nil
}

func ParseString(s string) (schema.Document, error) {
	return Parse(strings.NewReader(s))
}

// LoadFile читает .dsl файл
func LoadFile(path string) (schema.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return schema.Document{}, err
	}
	defer file.Close()

	doc, err := Parse(file)
	if err != nil {
		return schema.Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Format печатает документ обратно в DSL (ссылки как ref[...]).
// Имена, которые Parse не прочитает (пробелы, знаки препинания, пустые), дают ошибку.
func Format(doc schema.Document) (string, error) {
	var sb strings.Builder
	for i, e := range doc.Entities {
		if !identRe.MatchString(e.Name) {
			return "", fmt.Errorf("entity %q: name cannot be written as DSL", e.Name)
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "entity %s:\n", e.Name)
		for _, f := range e.Fields {
			if !identRe.MatchString(f.Name) {
				return "", fmt.Errorf("entity %s, field %q: name cannot be written as DSL", e.Name, f.Name)
			}
			t := string(f.Type)
			if f.Relation != nil {
				if !identRe.MatchString(f.Relation.TargetEntity) {
					return "", fmt.Errorf("entity %s, field %s: relation target %q cannot be written as DSL", e.Name, f.Name, f.Relation.TargetEntity)
				}
				t = "ref[" + f.Relation.TargetEntity + "]"
			} else if !f.Type.Valid() {
				return "", fmt.Errorf("entity %s, field %s: unknown type %q", e.Name, f.Name, f.Type)
			}
			fmt.Fprintf(&sb, "  %s: %s\n", f.Name, t)
		}
	}
	return sb.String(), nil
}
