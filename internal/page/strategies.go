package page

import (
	"context"
	"fmt"
	"strings"

	"study_assistant/internal/export"
	"study_assistant/internal/form"
	"study_assistant/internal/model"
	"study_assistant/internal/view"
)

type StrategiesPage struct {
	Form *form.StrategyGenerator

	exporter *export.Exporter
}

func NewStrategiesPage(client form.StrategiesAPI, exporter *export.Exporter) *StrategiesPage {
	return &StrategiesPage{Form: form.NewStrategyGenerator(client), exporter: exporter}
}

func (p *StrategiesPage) Generate(ctx context.Context) (string, error) {
	return p.Form.Submit(ctx)
}

// Export 把最近一次生成的策略保存为 HTML 文档
func (p *StrategiesPage) Export(ctx context.Context) (string, error) {
	if p.exporter == nil {
		return "", fmt.Errorf("export storage not configured")
	}
	return p.exporter.Strategies(ctx, p.Form.TestType, p.Form.Strategies)
}

func (p *StrategiesPage) View() string {
	var b strings.Builder
	b.WriteString(view.TitleStyle.Render("Test-Taking Strategies") + "\n\n")
	for _, t := range model.TestTypes {
		marker := "( )"
		if t.Value == p.Form.TestType {
			marker = "(*)"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, t.Label)
	}
	b.WriteString("\n")
	for _, pr := range model.CommonProblems {
		marker := "[ ]"
		for _, sel := range p.Form.Problems {
			if sel == pr.Value {
				marker = "[x]"
			}
		}
		fmt.Fprintf(&b, "%s %s\n", marker, pr.Label)
	}
	if p.Form.Generating {
		b.WriteString("\n" + view.MutedStyle.Render("Generating...") + "\n")
	}
	if p.Form.Err != "" {
		b.WriteString("\n" + view.ErrorBanner(p.Form.Err) + "\n")
	}
	if p.Form.Strategies != "" {
		b.WriteString("\n" + p.Form.Strategies + "\n")
	}
	return b.String()
}
