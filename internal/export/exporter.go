package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"study_assistant/internal/model"
	"study_assistant/internal/util"
	"study_assistant/pkg/logger"

	"go.uber.org/zap"
)

// Exporter 生成文档并写入 Destination
type Exporter struct {
	Dest Destination
	Now      func() time.Time
}

func NewExporter(dest Destination) *Exporter {
	return &Exporter{Dest: dest, Now: time.Now}
}

var unsafeName = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	s = unsafeName.ReplaceAllString(strings.ToLower(s), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "document"
	}
	return s
}

// Strategies 保存应试策略文档，返回访问地址
func (e *Exporter) Strategies(ctx context.Context, testType, strategies string) (string, error) {
	if strings.TrimSpace(strategies) == "" {
		return "", fmt.Errorf("generate strategies first: %w", util.ErrNothingToExport)
	}
	now := e.Now()
	title := "Test-Taking Strategies: " + testTypeLabel(testType)
	doc := RenderDocument(title, strategies, now)
	name := fmt.Sprintf("strategies/%s-%s.html", slug(testType), now.Format("20060102-150405"))
	return e.upload(ctx, name, doc, util.MimeHTML)
}

// Progress 保存每周进度工作簿
func (e *Exporter) Progress(ctx context.Context, p *model.WeeklyProgress) (string, error) {
	if p == nil {
		return "", fmt.Errorf("load progress first: %w", util.ErrNothingToExport)
	}
	buf, err := ProgressWorkbook(p)
	if err != nil {
		return "", fmt.Errorf("build workbook: %w", err)
	}
	name := fmt.Sprintf("progress/weekly-%s.xlsx", e.Now().Format("20060102-150405"))
	return e.upload(ctx, name, buf.Bytes(), util.MimeXLSX)
}

func (e *Exporter) upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	url, err := e.Dest.Put(ctx, name, data, contentType)
	if err != nil {
		logger.Log.Error("Export upload failed", zap.String("file", name), zap.Error(err))
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	logger.Log.Info("Document exported", zap.String("file", name), zap.Int("bytes", len(data)))
	return url, nil
}

func testTypeLabel(value string) string {
	for _, t := range model.TestTypes {
		if t.Value == value {
			return t.Label
		}
	}
	return value
}
