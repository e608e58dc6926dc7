package editor

import (
	"errors"
	"fmt"

	"crudgen/internal/generator"
)

var (
	ErrEntityNotFound   = errors.New("entity not found")
	ErrFieldNotFound    = errors.New("field not found")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrInvalidType      = errors.New("invalid field type")
	ErrUnknownTab       = errors.New("unknown preview file")
	ErrEmptySchema      = errors.New("schema has no entities")
	ErrEmptyDescription = errors.New("description is empty")
	ErrBusy             = errors.New("schema generation is already running")
	ErrClosed           = errors.New("editor is closed")
)

// Сообщения по умолчанию, когда сервис не прислал detail
const (
	MsgGenerateFailed = "Не удалось сгенерировать схему."
	MsgDownloadFailed = "Не удалось скачать проект."
)

// ActionError: ошибка явного действия пользователя (генерация по тексту, скачивание).
// Message пригоден для показа пользователю.
type ActionError struct {
	Action  string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Action, e.Message)
}

func (e *ActionError) Unwrap() error { return e.Err }

func actionError(action, fallback string, err error) error {
	msg := fallback
	if d, ok := generator.Detail(err); ok {
		msg = d
	}
	return &ActionError{Action: action, Message: msg, Err: err}
}

// UserMessage возвращает текст для пользователя
func UserMessage(err error) string {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
