// Package generator реализует клиент внешнего сервиса генерации кода (/api/v1).
package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"crudgen/internal/schema"

	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000/api/v1"

	previewPath = "/generate-preview"
	projectPath = "/generate"
	parsePath   = "/parse-text-to-schema"
)

type Client struct {
	http *resty.Client
	log  log.Interface
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Logger  log.Interface
	// HTTPClient подменяется в тестах
	HTTPClient *http.Client
}

func New(opts Options) *Client {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Log
	}
	return &Client{http: rc, log: logger.WithField("component", "generator")}
}

// Preview запрашивает исходники для предпросмотра: имя файла -> текст.
func (c *Client) Preview(ctx context.Context, doc schema.Document) (map[string]string, error) {
	files := map[string]string{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(doc).
		SetResult(&files).
		Post(previewPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", previewPath, err)
	}
	if resp.IsError() {
		return nil, toAPIError(previewPath, resp)
	}
	c.log.WithFields(log.Fields{"endpoint": previewPath, "files": len(files), "took": resp.Time()}).Debug("preview received")
	return files, nil
}

// Generate возвращает zip-архив проекта.
func (c *Client) Generate(ctx context.Context, doc schema.Document) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/zip, application/json").
		SetBody(doc).
		Post(projectPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", projectPath, err)
	}
	if resp.IsError() {
		return nil, toAPIError(projectPath, resp)
	}
	body := resp.Body()
	if len(body) == 0 {
		return nil, &APIError{Endpoint: projectPath, StatusCode: resp.StatusCode(), Detail: "empty archive"}
	}
	c.log.WithFields(log.Fields{"endpoint": projectPath, "bytes": len(body), "took": resp.Time()}).Debug("archive received")
	return body, nil
}

type parseRequest struct {
	Text string `json:"text"`
}

// ParseText просит сервис вывести схему из свободного текста.
func (c *Client) ParseText(ctx context.Context, text string) (schema.Document, error) {
	var doc schema.Document
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(parseRequest{Text: text}).
		SetResult(&doc).
		Post(parsePath)
	if err != nil {
		return schema.Document{}, fmt.Errorf("%s: %w", parsePath, err)
	}
	if resp.IsError() {
		return schema.Document{}, toAPIError(parsePath, resp)
	}
	c.log.WithFields(log.Fields{"endpoint": parsePath, "entities": len(doc.Entities), "took": resp.Time()}).Debug("schema inferred")
	return doc, nil
}
