package page

import (
	"context"
	"fmt"
	"math"
	"strings"

	"study_assistant/internal/api"
	"study_assistant/internal/export"
	"study_assistant/internal/model"
	"study_assistant/internal/util"
	"study_assistant/internal/view"
	"study_assistant/pkg/logger"

	"go.uber.org/zap"
)

type ProgressAPI interface {
	WeeklyProgress(ctx context.Context) (*model.WeeklyProgress, error)
}

// Summary 进度页的汇总指标
type Summary struct {
	TotalHours         float64
	MostProductiveDay  string
	AveragePerformance float64
	ConfidenceLow      float64
	ConfidenceMedium   float64
	ConfidenceHigh     float64
	Streak             int
}

type ProgressPage struct {
	Data    *model.WeeklyProgress
	Loading bool
	Err     string

	api      ProgressAPI
	exporter *export.Exporter
}

// NewProgressPage exporter 为 nil 时不支持导出
func NewProgressPage(client ProgressAPI, exporter *export.Exporter) *ProgressPage {
	return &ProgressPage{api: client, exporter: exporter}
}

func (p *ProgressPage) Load(ctx context.Context) error {
	p.Loading = true
	defer func() { p.Loading = false }()

	data, err := p.api.WeeklyProgress(ctx)
	if err != nil {
		p.Err = api.Message(err, ProgressFallback)
		logger.Log.Warn("Load progress failed", zap.Error(err))
		return err
	}
	p.Data = data
	p.Err = ""
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

// Summarize 未加载数据时返回零值
func (p *ProgressPage) Summarize() Summary {
	if p.Data == nil {
		return Summary{}
	}
	d := p.Data
	s := Summary{TotalHours: d.TotalHours, Streak: d.Streak}

	best := -1.0
	for i, v := range d.WeeklyData.Values {
		if v > best && i < len(d.WeeklyData.Labels) {
			best = v
			s.MostProductiveDay = d.WeeklyData.Labels[i]
		}
	}
	if best <= 0 {
		s.MostProductiveDay = ""
	}

	if n := len(d.CoursePerformance); n > 0 {
		sum := 0.0
		for _, c := range d.CoursePerformance {
			sum += c.Performance
		}
		s.AveragePerformance = round1(sum / float64(n))
	}

	dist := d.ConfidenceDistribution
	total := dist.Total()
	s.ConfidenceLow = percent(dist.Low, total)
	s.ConfidenceMedium = percent(dist.Medium, total)
	s.ConfidenceHigh = percent(dist.High, total)
	return s
}

// Export 把当前数据导出为 xlsx，返回访问地址
func (p *ProgressPage) Export(ctx context.Context) (string, error) {
	if p.exporter == nil {
		return "", fmt.Errorf("export storage not configured")
	}
	if p.Data == nil {
		return "", fmt.Errorf("load progress first: %w", util.ErrNothingToExport)
	}
	return p.exporter.Progress(ctx, p.Data)
}

func (p *ProgressPage) View() string {
	if p.Err != "" {
		return view.ErrorBanner(p.Err)
	}
	if p.Data == nil {
		return view.MutedStyle.Render("No progress data.")
	}
	s := p.Summarize()
	var b strings.Builder
	b.WriteString(view.TitleStyle.Render("Progress Tracking") + "\n\n")
	fmt.Fprintf(&b, "Total study hours: %.1f\n", s.TotalHours)
	fmt.Fprintf(&b, "Study streak:      %d days\n", s.Streak)
	if s.MostProductiveDay != "" {
		fmt.Fprintf(&b, "Most productive:   %s\n", s.MostProductiveDay)
	}
	fmt.Fprintf(&b, "Avg performance:   %.1f%%\n\n", s.AveragePerformance)

	b.WriteString(view.TitleStyle.Render("Weekly Study Hours") + "\n")
	for i, label := range p.Data.WeeklyData.Labels {
		v := 0.0
		if i < len(p.Data.WeeklyData.Values) {
			v = p.Data.WeeklyData.Values[i]
		}
		fmt.Fprintf(&b, "%-4s %5.1f %s\n", label, v, strings.Repeat("#", int(math.Round(v*2))))
	}

	b.WriteString("\n" + view.TitleStyle.Render("Confidence") + "\n")
	fmt.Fprintf(&b, "Not at all %.1f%%  Somewhat %.1f%%  Very well %.1f%%\n",
		s.ConfidenceLow, s.ConfidenceMedium, s.ConfidenceHigh)

	if len(p.Data.CoursePerformance) > 0 {
		b.WriteString("\n" + view.TitleStyle.Render("Course Performance") + "\n")
		for _, c := range p.Data.CoursePerformance {
			fmt.Fprintf(&b, "%-30s %5.1f%%\n", c.Title, c.Performance)
		}
	}
	return b.String()
}
