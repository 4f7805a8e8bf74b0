package fakeapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"study_assistant/internal/middleware"
	"study_assistant/internal/model"

	"github.com/gin-gonic/gin"
)

// ownedCourse 调用方需持有锁
func (s *Server) ownedCourse(owner, id uint) (*courseRow, bool) {
	row, ok := s.courses[id]
	if !ok || row.owner != owner {
		return nil, false
	}
	return row, true
}

func (s *Server) listCourses(c *gin.Context) {
	owner := middleware.UserID(c)
	s.mu.Lock()
	result := make([]model.Course, 0)
	for _, row := range s.courses {
		if row.owner == owner {
			result = append(result, row.Course)
		}
	}
	s.mu.Unlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	c.JSON(http.StatusOK, result)
}

func (s *Server) createCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		fail(c, http.StatusBadRequest, "Title is required")
		return
	}

	s.mu.Lock()
	row := &courseRow{owner: middleware.UserID(c), Course: model.Course{
		ID:          s.nextID(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   model.Timestamp{Time: s.now()},
	}}
	s.courses[row.ID] = row
	s.mu.Unlock()

	c.JSON(http.StatusCreated, row.Course)
}

func (s *Server) getCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	row, ok := s.ownedCourse(middleware.UserID(c), id)
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, "Course not found")
		return
	}
	c.JSON(http.StatusOK, row.Course)
}

func (s *Server) deleteCourse(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedCourse(middleware.UserID(c), id); !ok {
		fail(c, http.StatusNotFound, "Course not found")
		return
	}
	delete(s.courses, id)
	for nid, n := range s.notes {
		if n.CourseID == id {
			delete(s.notes, nid)
		}
	}
	for qid, q := range s.questions {
		if q.courseID == id {
			delete(s.questions, qid)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

func (s *Server) listNotes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	if _, ok := s.ownedCourse(middleware.UserID(c), id); !ok {
		s.mu.Unlock()
		fail(c, http.StatusNotFound, "Course not found")
		return
	}
	result := make([]model.Note, 0)
	for _, n := range s.notes {
		if n.CourseID == id {
			result = append(result, *n)
		}
	}
	s.mu.Unlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	c.JSON(http.StatusOK, result)
}

// ownedNote 调用方需持有锁
func (s *Server) ownedNote(owner, id uint) (*model.Note, bool) {
	n, ok := s.notes[id]
	if !ok {
		return nil, false
	}
	if _, ok := s.ownedCourse(owner, n.CourseID); !ok {
		return nil, false
	}
	return n, true
}

func (s *Server) getNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	n, ok := s.ownedNote(middleware.UserID(c), id)
	s.mu.Unlock()
	if !ok {
		fail(c, http.StatusNotFound, "Note not found")
		return
	}
	c.JSON(http.StatusOK, n)
}

func (s *Server) deleteNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ownedNote(middleware.UserID(c), id); !ok {
		fail(c, http.StatusNotFound, "Note not found")
		return
	}
	delete(s.notes, id)
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

func (s *Server) generateNotes(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req model.GenerateNotesRequest
	_ = c.ShouldBindJSON(&req)

	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.ownedCourse(middleware.UserID(c), id)
	if !ok {
		fail(c, http.StatusNotFound, "Course not found")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		fail(c, http.StatusBadRequest, "Topic is required")
		return
	}

	level := req.DetailLevel
	if level == "" {
		level = model.DetailMedium
	}
	note := &model.Note{
		ID:        s.nextID(),
		Title:     "Generated Notes: " + req.Topic,
		Content:   fmt.Sprintf("# %s\n\nThese are %s notes for %s in %s.\n\n- Key concepts\n- Examples\n- Summary\n", req.Topic, level, req.Topic, course.Title),
		CourseID:  id,
		CreatedAt: model.Timestamp{Time: s.now()},
	}
	s.notes[note.ID] = note
	c.JSON(http.StatusCreated, note)
}

type generateQuestionsBody struct {
	Topic      string           `json:"topic"`
	Count      int              `json:"count"`
	Difficulty model.Difficulty `json:"difficulty"`
}

func (s *Server) generateQuestions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req generateQuestionsBody
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Count must be a number")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	course, ok := s.ownedCourse(middleware.UserID(c), id)
	if !ok {
		fail(c, http.StatusNotFound, "Course not found")
		return
	}
	if strings.TrimSpace(req.Topic) == "" || req.Count == 0 {
		fail(c, http.StatusBadRequest, "Topic and count are required")
		return
	}
	if req.Count < 0 || req.Count > 20 {
		fail(c, http.StatusBadRequest, "Count must be between 1 and 20")
		return
	}

	cycle := []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	result := make([]model.Question, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		difficulty := cycle[i%len(cycle)]
		if req.Difficulty != "" && req.Difficulty != model.DifficultyMixed {
			difficulty = req.Difficulty
		}
		q := &questionRow{courseID: id, Question: model.Question{
			ID:         s.nextID(),
			Question:   fmt.Sprintf("Sample question #%d about %s in %s?", i+1, req.Topic, course.Title),
			Answer:     fmt.Sprintf("This is the answer to question #%d.", i+1),
			Difficulty: difficulty,
		}}
		s.questions[q.ID] = q
		result = append(result, q.Question)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   fmt.Sprintf("Generated %d practice questions", req.Count),
		"questions": result,
	})
}

func (s *Server) testStrategies(c *gin.Context) {
	var req model.StrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TestType == "" {
		fail(c, http.StatusBadRequest, "Test type is required")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Strategies for %s tests\n\n", req.TestType)
	b.WriteString("1. Read every question before answering.\n2. Budget your time per section.\n")
	if len(req.Problems) > 0 {
		b.WriteString("\n### Addressing your challenges\n\n")
		for _, p := range req.Problems {
			fmt.Fprintf(&b, "- **%s**: practice under timed conditions.\n", p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"test_type": req.TestType, "strategies": b.String()})
}
