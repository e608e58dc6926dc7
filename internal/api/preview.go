package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/sessions/:sid/preview
func PreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, editorOf(c).Preview())
	}
}

type tabReq struct {
	Tab string `json:"tab" binding:"required"`
}

// PUT /api/sessions/:sid/preview/tab
func SelectTabHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tabReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		p, err := editorOf(c).SelectTab(req.Tab)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// POST /api/sessions/:sid/preview/_refresh
// Ошибка сервиса не делает запрос неуспешным: отдаём прежний предпросмотр и текст ошибки.
func RefreshHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := editorOf(c).RefreshPreview(c.Request.Context())
		if err != nil {
			if statusForError(err) != http.StatusInternalServerError {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"preview": p, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"preview": p})
	}
}

// GET /api/sessions/:sid/preview/_stream: SSE: текущий снапшот, затем каждое обновление
func StreamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ed := editorOf(c)
		ch, unsubscribe := ed.Subscribe()
		defer unsubscribe()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.SSEvent("preview", ed.Preview())
		c.Writer.Flush()

		c.Stream(func(w io.Writer) bool {
			select {
			case p, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent("preview", p)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
