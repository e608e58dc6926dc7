// api/router.go
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"crudgen/internal/artifact"
	"crudgen/internal/logging"
	"crudgen/internal/session"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Deps: всё, что нужно обработчикам
type Deps struct {
	Sessions *session.Registry
	Archives artifact.Store // куда дополнительно складывать скачанные архивы; nil = только отдать клиенту
	Log      log.Interface
}

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = log.Log
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.Gin(d.Log))

	r.GET("/api/meta/types", MetaTypesHandler())

	apiGroup := r.Group("/api/sessions")
	{
		apiGroup.POST("", CreateSessionHandler(d.Sessions))

		s := apiGroup.Group("/:sid", withEditor(d.Sessions))
		s.DELETE("", DeleteSessionHandler(d.Sessions))

		// служебные маршруты схемы: СНАЧАЛА
		s.POST("/schema/_dsl", ImportDSLHandler())
		s.POST("/schema/_file", UploadSchemaHandler())
		s.GET("/schema/_wire", WireHandler())
		s.GET("/schema/_lint", LintHandler())
		s.GET("/schema", SchemaHandler())
		s.PUT("/schema", ImportSchemaHandler())

		s.POST("/entities", AddEntityHandler())
		s.PATCH("/entities/:eid", SetEntityHandler())
		s.DELETE("/entities/:eid", DeleteEntityHandler())
		s.POST("/entities/:eid/fields", AddFieldHandler())
		s.PATCH("/entities/:eid/fields/:fid", SetFieldHandler())
		s.DELETE("/entities/:eid/fields/:fid", DeleteFieldHandler())

		s.GET("/preview", PreviewHandler())
		s.PUT("/preview/tab", SelectTabHandler())
		s.POST("/preview/_refresh", RefreshHandler())
		s.GET("/preview/_stream", StreamHandler())

		s.POST("/generate-from-text", GenerateFromTextHandler())
		s.POST("/download", DownloadHandler(d.Archives))
	}
	return r
}

// RunServer слушает addr до отмены ctx, потом закрывает все сессии.
func RunServer(ctx context.Context, addr string, d Deps) error {
	srv := &http.Server{Addr: addr, Handler: NewRouter(d)}
	defer d.Sessions.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
