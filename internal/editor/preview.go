package editor

import (
	"sort"
)

// Файлы, которые редактор показывает всегда
const (
	FileModels = "models.py"
	FileMain   = "main.py"
	FileTests  = "tests.py"
)

// Tabs: порядок вкладок предпросмотра
var Tabs = []string{FileModels, FileMain, FileTests}

// Заглушки для пустой схемы
const (
	PlaceholderModels = "// Добавьте сущность, чтобы увидеть код"
	PlaceholderTests  = "// Здесь появятся автотесты для API"
)

func defaultFiles() map[string]string {
	return map[string]string{FileModels: "", FileMain: "", FileTests: ""}
}

// PlaceholderFiles: содержимое предпросмотра, когда отправлять нечего
func PlaceholderFiles() map[string]string {
	return map[string]string{
		FileModels: PlaceholderModels,
		FileMain:   "",
		FileTests:  PlaceholderTests,
	}
}

// Preview: снапшот предпросмотра
type Preview struct {
	Files    map[string]string `json:"files"`
	Active   string            `json:"active"`
	Revision uint64            `json:"revision"` // номер применённого ответа сервиса (0, если ещё не было)
	Pending  bool              `json:"pending"`  // изменения ещё не отправлены
}

// Names возвращает имена файлов: сначала стандартные вкладки, потом остальные по алфавиту
func (p Preview) Names() []string {
	out := make([]string, 0, len(p.Files))
	std := map[string]bool{}
	for _, t := range Tabs {
		if _, ok := p.Files[t]; ok {
			out = append(out, t)
			std[t] = true
		}
	}
	var rest []string
	for name := range p.Files {
		if !std[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func (p Preview) clone() Preview {
	files := make(map[string]string, len(p.Files))
	for k, v := range p.Files {
		files[k] = v
	}
	p.Files = files
	return p
}

// mergeFiles: стандартные файлы ⊕ прежнее содержимое ⊕ ответ сервиса.
// Файлы, которых нет в ответе, сохраняют последнее значение.
func mergeFiles(prev, resp map[string]string) map[string]string {
	out := defaultFiles()
	for k, v := range prev {
		out[k] = v
	}
	for k, v := range resp {
		out[k] = v
	}
	return out
}
