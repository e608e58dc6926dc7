package api

import (
	"net/http"

	"crudgen/internal/editor"
	"crudgen/internal/schema"

	"github.com/gin-gonic/gin"
)

// ===== META HANDLERS =====

type metaTypes struct {
	Types      []schema.FieldType `json:"types"`
	Attributes []string           `json:"attributes"`
	Tabs       []string           `json:"tabs"`
}

// GET /api/meta/types
func MetaTypesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, metaTypes{
			Types:      schema.Types(),
			Attributes: []string{editor.AttrName, editor.AttrType, editor.AttrRelation},
			Tabs:       editor.Tabs,
		})
	}
}
