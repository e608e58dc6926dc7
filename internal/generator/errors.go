package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var ErrService = errors.New("generator service")

// APIError: ответ сервиса со статусом >= 400. Detail берётся из FastAPI-поля "detail".
type APIError struct {
	Endpoint   string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Endpoint, http.StatusText(e.StatusCode), e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Endpoint, e.Detail, e.StatusCode)
}

func (e *APIError) Unwrap() error { return ErrService }

// errorResponse: {"detail": "..."} или, для 422, {"detail": [{"loc": [...], "msg": "..."}]}
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func toAPIError(endpoint string, resp *resty.Response) error {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode(),
		Detail:     parseDetail(resp.Body()),
	}
}

func parseDetail(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || len(er.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(er.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var items []validationItem
	if err := json.Unmarshal(er.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg == "" {
				continue
			}
			if len(it.Loc) > 0 {
				parts := make([]string, len(it.Loc))
				for i, p := range it.Loc {
					parts[i] = fmt.Sprint(p)
				}
				msgs = append(msgs, strings.Join(parts, ".")+": "+it.Msg)
				continue
			}
			msgs = append(msgs, it.Msg)
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// Detail достаёт сообщение сервиса из цепочки ошибок.
func Detail(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail, true
	}
	return "", false
}
