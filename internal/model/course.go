package model

// Course 课程
type Course struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   Timestamp `json:"created_at"`
}

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// Note 笔记，由生成接口创建，客户端只读
type Note struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CourseID  uint      `json:"course_id"`
	CreatedAt Timestamp `json:"created_at"`
}

type DetailLevel string

const (
	DetailBrief    DetailLevel = "brief"
	DetailMedium   DetailLevel = "medium"
	DetailDetailed DetailLevel = "detailed"
)

var DetailLevels = []DetailLevel{DetailBrief, DetailMedium, DetailDetailed}

type GenerateNotesRequest struct {
	Topic       string      `json:"topic"`
	DetailLevel DetailLevel `json:"detail_level"`
}
