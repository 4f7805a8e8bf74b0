package model

// Todo 待办项，本地状态只是服务端列表的缓存
type Todo struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CourseID  *uint     `json:"course_id"`
	DueDate   Date      `json:"due_date"`
	CreatedAt Timestamp `json:"created_at"`
}

type CreateTodoRequest struct {
	Text     string `json:"text"`
	DueDate  Date   `json:"due_date"`
	CourseID *uint  `json:"course_id,omitempty"`
}

type UpdateTodoRequest struct {
	Completed *bool   `json:"completed,omitempty"`
	Text      *string `json:"text,omitempty"`
}
