package fakeapi

import (
	"math"
	"net/http"
	"sort"
	"time"

	"study_assistant/internal/middleware"
	"study_assistant/internal/model"
	"study_assistant/internal/util"

	"github.com/gin-gonic/gin"
)

func (s *Server) listTodos(c *gin.Context) {
	owner := middleware.UserID(c)
	s.mu.Lock()
	result := make([]model.Todo, 0)
	for _, row := range s.todos {
		if row.owner == owner {
			result = append(result, row.Todo)
		}
	}
	s.mu.Unlock()

	// 最新创建的在前
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	c.JSON(http.StatusOK, result)
}

type todoBody struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	DueDate   *string `json:"due_date"`
	CourseID  *uint   `json:"course_id"`
}

func parseDue(raw *string) (model.Date, bool) {
	if raw == nil || *raw == "" {
		return model.Date{}, true
	}
	d, err := model.ParseDate(*raw)
	return d, err == nil
}

func (s *Server) createTodo(c *gin.Context) {
	var req todoBody
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == nil || *req.Text == "" {
		fail(c, http.StatusBadRequest, "Text is required")
		return
	}
	due, ok := parseDue(req.DueDate)
	if !ok {
		fail(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	s.mu.Lock()
	row := &todoRow{owner: middleware.UserID(c), Todo: model.Todo{
		ID:        s.nextID(),
		Text:      *req.Text,
		CourseID:  req.CourseID,
		DueDate:   due,
		CreatedAt: model.Timestamp{Time: s.now()},
	}}
	s.todos[row.ID] = row
	s.mu.Unlock()

	c.JSON(http.StatusCreated, row.Todo)
}

func (s *Server) updateTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req todoBody
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.todos[id]
	if !ok || row.owner != middleware.UserID(c) {
		fail(c, http.StatusNotFound, "Todo not found or you don't have access")
		return
	}
	if req.DueDate != nil {
		due, ok := parseDue(req.DueDate)
		if !ok {
			fail(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		row.DueDate = due
	}
	if req.Completed != nil {
		row.Completed = *req.Completed
	}
	if req.Text != nil {
		row.Text = *req.Text
	}
	c.JSON(http.StatusOK, row.Todo)
}

func (s *Server) deleteTodo(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.todos[id]
	if !ok || row.owner != middleware.UserID(c) {
		fail(c, http.StatusNotFound, "Todo not found or you don't have access")
		return
	}
	delete(s.todos, id)
	c.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

func (s *Server) recordQuestionProgress(c *gin.Context) {
	var req model.QuestionProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QuestionID == 0 || req.ConfidenceLevel == 0 {
		fail(c, http.StatusBadRequest, "Question ID and confidence level are required")
		return
	}
	if !req.ConfidenceLevel.Valid() {
		fail(c, http.StatusBadRequest, "Confidence level must be 1, 2, or 3")
		return
	}

	owner := middleware.UserID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[req.QuestionID]
	if !ok {
		fail(c, http.StatusNotFound, "Question not found or you don't have access")
		return
	}
	if _, ok := s.ownedCourse(owner, q.courseID); !ok {
		fail(c, http.StatusNotFound, "Question not found or you don't have access")
		return
	}
	levels, ok := s.confidence[owner]
	if !ok {
		levels = make(map[uint]model.Confidence)
		s.confidence[owner] = levels
	}
	levels[req.QuestionID] = req.ConfidenceLevel

	c.JSON(http.StatusOK, gin.H{
		"message":          "Progress recorded successfully",
		"question_id":      req.QuestionID,
		"confidence_level": req.ConfidenceLevel,
	})
}

func (s *Server) startSession(c *gin.Context) {
	var req model.StartSessionRequest
	_ = c.ShouldBindJSON(&req)

	owner := middleware.UserID(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.CourseID != nil {
		if _, ok := s.ownedCourse(owner, *req.CourseID); !ok {
			fail(c, http.StatusNotFound, "Course not found or you don't have access")
			return
		}
	}
	row := &sessionRow{owner: owner, start: s.now()}
	id := s.nextID()
	s.sessions[id] = row

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Study session started",
		"session_id": id,
		"start_time": row.start.UTC().Format("2006-01-02T15:04:05.999999"),
	})
}

func (s *Server) endSession(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.sessions[id]
	if !ok || row.owner != middleware.UserID(c) {
		fail(c, http.StatusNotFound, "Study session not found or you don't have access")
		return
	}
	if !row.end.IsZero() {
		c.JSON(http.StatusOK, gin.H{
			"message":          "Study session already ended",
			"session_id":       id,
			"duration_minutes": row.duration,
		})
		return
	}

	row.end = s.now()
	row.duration = int(row.end.Sub(row.start).Minutes())
	s.addMinutes(row.owner, row.end, row.duration)

	c.JSON(http.StatusOK, gin.H{
		"message":          "Study session ended",
		"session_id":       id,
		"duration_minutes": row.duration,
		"end_time":         row.end.UTC().Format("2006-01-02T15:04:05.999999"),
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *Server) weeklyProgress(c *gin.Context) {
	owner := middleware.UserID(c)
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now()
	days := s.daily[owner]

	progress := model.WeeklyProgress{CoursePerformance: make([]model.CoursePerformance, 0)}
	var total float64
	for i := 6; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(util.DateFormat)
		hours := float64(days[key]) / 60
		progress.WeeklyData.Labels = append(progress.WeeklyData.Labels, key)
		progress.WeeklyData.Values = append(progress.WeeklyData.Values, hours)
		total += hours
	}
	progress.TotalHours = round1(total)

	perCourse := make(map[uint][]model.Confidence)
	for qid, level := range s.confidence[owner] {
		switch level {
		case model.ConfidenceLow:
			progress.ConfidenceDistribution.Low++
		case model.ConfidenceMedium:
			progress.ConfidenceDistribution.Medium++
		case model.ConfidenceHigh:
			progress.ConfidenceDistribution.High++
		}
		if q, ok := s.questions[qid]; ok {
			perCourse[q.courseID] = append(perCourse[q.courseID], level)
		}
	}

	ids := make([]uint, 0)
	for id, row := range s.courses {
		if row.owner == owner {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		perf := 0.0
		if levels := perCourse[id]; len(levels) > 0 {
			sum := 0
			for _, l := range levels {
				sum += int(l)
			}
			perf = round1(float64(sum) / float64(len(levels)) / 3 * 100)
		}
		progress.CoursePerformance = append(progress.CoursePerformance, model.CoursePerformance{
			ID: id, Title: s.courses[id].Title, Performance: perf,
		})
	}

	for day := today; days[day.Format(util.DateFormat)] > 0; day = day.Add(-24 * time.Hour) {
		progress.Streak++
	}

	c.JSON(http.StatusOK, progress)
}
