package api

import (
	"net/http"

	"crudgen/internal/editor"
	"crudgen/internal/session"

	"github.com/gin-gonic/gin"
)

const editorKey = "editor"

// withEditor достаёт редактор сессии :sid
func withEditor(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ed, ok := reg.Get(c.Param("sid"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.Set(editorKey, ed)
		c.Next()
	}
}

func editorOf(c *gin.Context) *editor.Editor {
	return c.MustGet(editorKey).(*editor.Editor)
}

type sessionResp struct {
	ID      string         `json:"id"`
	Preview editor.Preview `json:"preview"`
}

// POST /api/sessions
func CreateSessionHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ed := reg.Create()
		c.Header("Location", "/api/sessions/"+id)
		c.JSON(http.StatusCreated, sessionResp{ID: id, Preview: ed.Preview()})
	}
}

// DELETE /api/sessions/:sid
func DeleteSessionHandler(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		reg.Delete(c.Param("sid"))
		c.Status(http.StatusNoContent)
	}
}
