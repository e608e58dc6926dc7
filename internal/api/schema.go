package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"crudgen/internal/dsl"
	"crudgen/internal/schema"

	"github.com/gin-gonic/gin"
)

// максимальный размер импортируемой схемы
const maxSchemaBytes = 1 << 20

// readSchemaBody читает тело целиком. Слишком большое тело: 413, а не обрезанная схема.
func readSchemaBody(c *gin.Context) ([]byte, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSchemaBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "schema is too large"})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return nil, false
	}
	return data, true
}

// GET /api/sessions/:sid/schema
func SchemaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"entities": editorOf(c).Entities()})
	}
}

// PUT /api/sessions/:sid/schema: JSON или YAML (по Content-Type)
func ImportSchemaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := readSchemaBody(c)
		if !ok {
			return
		}
		f := schema.FormatJSON
		if strings.Contains(c.ContentType(), "yaml") {
			f = schema.FormatYAML
		}
		doc, err := schema.Decode(data, f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entities": editorOf(c).Load(doc)})
	}
}

// POST /api/sessions/:sid/schema/_dsl: тело как text/plain
func ImportDSLHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, ok := readSchemaBody(c)
		if !ok {
			return
		}
		doc, err := dsl.Parse(bytes.NewReader(data))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "DSL parse error", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entities": editorOf(c).Load(doc)})
	}
}

// POST /api/sessions/:sid/schema/_file: multipart, поле "file"; формат по расширению
func UploadSchemaHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		hdr, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		if hdr.Size > maxSchemaBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
			return
		}
		file, err := hdr.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot open file"})
			return
		}
		defer file.Close()

		name := filepath.Base(strings.TrimSpace(hdr.Filename))
		var doc schema.Document
		if strings.EqualFold(filepath.Ext(name), ".dsl") {
			doc, err = dsl.Parse(file)
		} else {
			var data []byte
			data, err = io.ReadAll(file)
			if err == nil {
				doc, err = schema.Decode(data, schema.FormatOf(name))
			}
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Schema load error", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entities": editorOf(c).Load(doc)})
	}
}

// GET /api/sessions/:sid/schema/_wire?format=json|yaml|dsl
func WireHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc := editorOf(c).Document()
		switch strings.ToLower(c.DefaultQuery("format", "json")) {
		case "json":
			if doc.Entities == nil {
				doc.Entities = []schema.WireEntity{}
			}
			c.JSON(http.StatusOK, doc)
		case "yaml", "yml":
			data, err := schema.Encode(doc, schema.FormatYAML)
			if err != nil {
				writeError(c, err)
				return
			}
			c.Data(http.StatusOK, "application/yaml; charset=utf-8", data)
		case "dsl":
			text, err := dsl.Format(doc)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			c.String(http.StatusOK, text)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, yaml or dsl"})
		}
	}
}

// GET /api/sessions/:sid/schema/_lint
func LintHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		issues := schema.Lint(editorOf(c).Entities())
		if issues == nil {
			issues = []schema.Issue{}
		}
		c.JSON(http.StatusOK, gin.H{"issues": issues})
	}
}
