package schema

import "strings"

// Слова, которые сгенерированный проект не может использовать как имя таблицы или колонки
// без кавычек (SQL) или вообще (Python).
var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
	// python
	"class": {}, "def": {}, "import": {}, "global": {}, "lambda": {}, "pass": {},
	"return": {}, "yield": {}, "none": {}, "true": {}, "false": {}, "async": {}, "await": {},
}

// IsReserved: имя совпадает с ключевым словом SQL или Python (без учёта регистра)
func IsReserved(name string) bool {
	_, ok := reserved[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
