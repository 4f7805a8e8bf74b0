// Package export 把应试策略和学习进度导出为文档，存放到本地目录、MinIO 或 OSS。
package export

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"gitlab.com/golang-commonmark/markdown"
)

var md = markdown.New(
	markdown.HTML(false),
	markdown.Tables(true),
	markdown.Linkify(true),
	markdown.Typographer(false),
)

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 48rem; margin: 2rem auto; line-height: 1.5; }
footer { color: #666; font-size: 0.8rem; margin-top: 2rem; }
@media print { footer { display: none; } }
</style>
</head>
<body>
<h1>%s</h1>
%s
<footer>Generated %s</footer>
</body>
</html>
`

// RenderDocument 把 markdown 渲染为可打印的独立 HTML 页面；原始 HTML 不透传
func RenderDocument(title, source string, generatedAt time.Time) []byte {
	var buf bytes.Buffer
	escaped := html.EscapeString(title)
	fmt.Fprintf(&buf, documentTemplate, escaped, escaped, md.RenderToString([]byte(source)), generatedAt.Format(time.RFC1123))
	return buf.Bytes()
}
