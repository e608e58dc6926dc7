package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type attrReq struct {
	Attr  string `json:"attr" binding:"required"`
	Value string `json:"value"`
}

// POST /api/sessions/:sid/entities
func AddEntityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusCreated, editorOf(c).AddEntity())
	}
}

// PATCH /api/sessions/:sid/entities/:eid
func SetEntityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req attrReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		ent, err := editorOf(c).SetEntityAttribute(c.Param("eid"), req.Attr, req.Value)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, ent)
	}
}

// DELETE /api/sessions/:sid/entities/:eid
func DeleteEntityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !editorOf(c).DeleteEntity(c.Param("eid")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entity not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// POST /api/sessions/:sid/entities/:eid/fields
func AddFieldHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := editorOf(c).AddField(c.Param("eid"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, f)
	}
}

// PATCH /api/sessions/:sid/entities/:eid/fields/:fid
func SetFieldHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req attrReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		f, err := editorOf(c).SetFieldAttribute(c.Param("eid"), c.Param("fid"), req.Attr, req.Value)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, f)
	}
}

// DELETE /api/sessions/:sid/entities/:eid/fields/:fid
func DeleteFieldHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !editorOf(c).DeleteField(c.Param("eid"), c.Param("fid")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Field not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
