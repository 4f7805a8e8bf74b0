package api

import (
	"errors"
	"fmt"
	"net/http"

	"study_assistant/internal/util"
)

// APIError 后端返回的非 2xx 响应；Message 只保存服务端给出的错误文本
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, msg)
}

// Is 让调用方用 errors.Is 匹配 util.ErrNotFound / util.ErrUnauthorized
func (e *APIError) Is(target error) bool {
	switch target {
	case util.ErrNotFound:
		return e.Status == http.StatusNotFound
	case util.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

// Message 返回用于展示的错误文本：服务端错误信息优先，否则使用 fallback
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
