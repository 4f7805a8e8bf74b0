package util

import (
	"encoding/json"
	"strings"
)

// Response 统一响应结构（code/message/data 风格的后端）
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// errorBody 兼容 {"error": "..."} 与 {"message": "..."} 两种错误体
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

// ExtractErrorMessage 从错误响应体中提取服务端错误文本，提取不到时返回空串
func ExtractErrorMessage(body []byte) string {
	var b errorBody
	if err := json.Unmarshal(body, &b); err != nil {
		return ""
	}
	for _, s := range []string{b.Error, b.Message, b.Msg} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
