package export

import (
	"bytes"
	"fmt"

	"study_assistant/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	SheetDaily      = "Daily"
	SheetConfidence = "Confidence"
	SheetCourses    = "Courses"
)

// ProgressWorkbook 每周进度导出为三张工作表：每日学习时长、掌握程度分布、课程表现
func ProgressWorkbook(p *model.WeeklyProgress) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetDaily); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetConfidence, SheetCourses} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	daily := [][]interface{}{{"Date", "Hours"}}
	for i, label := range p.WeeklyData.Labels {
		hours := 0.0
		if i < len(p.WeeklyData.Values) {
			hours = p.WeeklyData.Values[i]
		}
		daily = append(daily, []interface{}{label, hours})
	}
	daily = append(daily, []interface{}{"Total", p.TotalHours}, []interface{}{"Streak (days)", p.Streak})

	dist := p.ConfidenceDistribution
	confidence := [][]interface{}{
		{"Level", "Questions"},
		{model.ConfidenceLow.Label(), dist.Low},
		{model.ConfidenceMedium.Label(), dist.Medium},
		{model.ConfidenceHigh.Label(), dist.High},
	}

	courses := [][]interface{}{{"Course", "Performance (%)"}}
	for _, c := range p.CoursePerformance {
		courses = append(courses, []interface{}{c.Title, c.Performance})
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetDaily:      daily,
		SheetConfidence: confidence,
		SheetCourses:    courses,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, "A1", "B1", header); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
