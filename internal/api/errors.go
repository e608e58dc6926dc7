package api

import (
	"context"
	"errors"
	"net/http"

	"crudgen/internal/editor"

	"github.com/gin-gonic/gin"
)

// statusForError подбирает HTTP-статус по ошибке редактора
func statusForError(err error) int {
	var ae *editor.ActionError
	switch {
	case errors.Is(err, editor.ErrEntityNotFound), errors.Is(err, editor.ErrFieldNotFound):
		return http.StatusNotFound
	case errors.Is(err, editor.ErrUnknownAttribute),
		errors.Is(err, editor.ErrInvalidType),
		errors.Is(err, editor.ErrUnknownTab),
		errors.Is(err, editor.ErrEmptySchema),
		errors.Is(err, editor.ErrEmptyDescription):
		return http.StatusBadRequest
	case errors.Is(err, editor.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, editor.ErrClosed):
		return http.StatusGone
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &ae):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": editor.UserMessage(err)})
}
