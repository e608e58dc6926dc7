package api

import (
	"context"
	"fmt"
	"net/http"

	"crudgen/internal/artifact"
	"crudgen/internal/editor"

	"github.com/gin-gonic/gin"
)

type generateReq struct {
	Text string `json:"text"`
}

// POST /api/sessions/:sid/generate-from-text
func GenerateFromTextHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		ents, err := editorOf(c).GenerateFromText(c.Request.Context(), req.Text)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entities": ents})
	}
}

// attachment принимает архив от редактора и, если есть, копирует его в постоянное хранилище
type attachment struct {
	archives artifact.Store
	data     []byte
	name     string
}

func (a *attachment) Save(ctx context.Context, name string, data []byte) (artifact.Object, error) {
	a.name, a.data = name, data
	if a.archives != nil {
		return a.archives.Save(ctx, name, data)
	}
	return artifact.Object{Key: name, Size: int64(len(data))}, nil
}

// POST /api/sessions/:sid/download: zip в теле ответа
func DownloadHandler(archives artifact.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sink := &attachment{archives: archives}
		obj, err := editorOf(c).Download(c.Request.Context(), sink)
		if err != nil {
			writeError(c, err)
			return
		}
		if obj.Location != "" {
			c.Header("X-Artifact-Location", obj.Location)
		}
		name := sink.name
		if name == "" {
			name = editor.ArchiveName
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
		c.Data(http.StatusOK, "application/zip", sink.data)
	}
}
