package schema

import (
	"unicode"
	"unicode/utf8"
)

// LowerFirst переводит первую букву в нижний регистр ("BlogPost" -> "blogPost")
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// RelationFieldName возвращает имя поля-ссылки на target ("Author" -> "author_id")
func RelationFieldName(target string) string {
	return LowerFirst(target) + "_id"
}
