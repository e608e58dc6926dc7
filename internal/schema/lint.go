package schema

import (
	"fmt"
	"strings"
)

// Коды замечаний линтера
const (
	IssueEntityNameEmpty    = "entity_name_empty"
	IssueEntityDuplicate    = "entity_duplicate"
	IssueFieldNameEmpty     = "field_name_empty"
	IssueFieldDuplicate     = "field_duplicate"
	IssueTypeUnknown        = "type_unknown"
	IssueRelationDangling   = "relation_dangling"
	IssueRelationSelf       = "relation_self"
	IssueRelationTypeNotInt = "relation_type_not_int"
	IssueNameReserved       = "name_reserved"
)

type Issue struct {
	Entity  string `json:"entity"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Lint проверяет базовые противоречия в схеме. Только сообщает: схему не меняет
// и отправку не блокирует (висячая ссылка после переименования допустима).
func Lint(entities []Entity) []Issue {
	var issues []Issue

	names := make(map[string]int, len(entities))
	for _, e := range entities {
		if e.Name != "" {
			names[e.Name]++
		}
	}

	for _, e := range entities {
		if e.Name == "" {
			issues = append(issues, Issue{
				Entity:  e.ID,
				Code:    IssueEntityNameEmpty,
				Message: "entity has no name and is excluded from generation",
			})
		} else if names[e.Name] > 1 {
			issues = append(issues, Issue{
				Entity:  e.Name,
				Code:    IssueEntityDuplicate,
				Message: fmt.Sprintf("entity name %q is used %d times", e.Name, names[e.Name]),
			})
		}
		if IsReserved(e.Name) {
			issues = append(issues, Issue{Entity: e.Name, Code: IssueNameReserved, Message: fmt.Sprintf("entity name %q is a reserved word", e.Name)})
		}
		label := e.Name
		if label == "" {
			label = e.ID
		}

		seen := map[string]struct{}{}
		for _, f := range e.Fields {
			if strings.TrimSpace(f.Name) == "" {
				issues = append(issues, Issue{Entity: label, Field: f.ID, Code: IssueFieldNameEmpty, Message: "field has no name"})
			} else {
				key := strings.ToLower(f.Name)
				if _, dup := seen[key]; dup {
					issues = append(issues, Issue{
						Entity:  label,
						Field:   f.Name,
						Code:    IssueFieldDuplicate,
						Message: fmt.Sprintf("field %q is declared more than once", f.Name),
					})
				}
				seen[key] = struct{}{}
				if IsReserved(f.Name) {
					issues = append(issues, Issue{Entity: label, Field: f.Name, Code: IssueNameReserved, Message: fmt.Sprintf("field name %q is a reserved word", f.Name)})
				}
			}

			if !f.Type.Valid() {
				issues = append(issues, Issue{
					Entity:  label,
					Field:   f.Name,
					Code:    IssueTypeUnknown,
					Message: fmt.Sprintf("unknown type %q (allowed: %s)", f.Type, typeList()),
				})
			}

			if f.Relation == nil {
				continue
			}
			target := f.Relation.TargetEntity
			switch {
			case target == e.Name && target != "":
				issues = append(issues, Issue{Entity: label, Field: f.Name, Code: IssueRelationSelf, Message: "relation points to its own entity"})
			case names[target] == 0:
				issues = append(issues, Issue{
					Entity:  label,
					Field:   f.Name,
					Code:    IssueRelationDangling,
					Message: fmt.Sprintf("relation target %q does not exist", target),
				})
			}
			if f.Type != TypeInt {
				issues = append(issues, Issue{Entity: label, Field: f.Name, Code: IssueRelationTypeNotInt, Message: "relation field should be int"})
			}
		}
	}
	return issues
}

func typeList() string {
	ts := Types()
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = string(t)
	}
	return strings.Join(parts, "|")
}
