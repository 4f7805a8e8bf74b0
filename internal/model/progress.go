package model

type StartSessionRequest struct {
	CourseID    *uint  `json:"course_id,omitempty"`
	SessionType string `json:"session_type"`
}

type StudySession struct {
	Message         string    `json:"message,omitempty"`
	SessionID       uint      `json:"session_id"`
	StartTime       Timestamp `json:"start_time"`
	EndTime         Timestamp `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

type WeeklySeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type ConfidenceDistribution struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

func (d ConfidenceDistribution) Total() int {
	return d.Low + d.Medium + d.High
}

type CoursePerformance struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Performance float64 `json:"performance"`
}

// WeeklyProgress 最近 7 天的学习统计
type WeeklyProgress struct {
	WeeklyData             WeeklySeries           `json:"weekly_data"`
	ConfidenceDistribution ConfidenceDistribution `json:"confidence_distribution"`
	CoursePerformance      []CoursePerformance    `json:"course_performance"`
	TotalHours             float64                `json:"total_hours"`
	Streak                 int                    `json:"streak"`
}
