// Package fakeapi 是学习助手后端的进程内替身，供客户端测试与本地演示使用。
//
// 路由、状态码与错误体 {"error": "..."} 与真实后端保持一致；
// 数据只保存在内存中。
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"study_assistant/internal/middleware"
	"study_assistant/internal/model"
	"study_assistant/internal/util"
	"study_assistant/pkg/monitoring"
	"study_assistant/pkg/security"
	"study_assistant/pkg/tracing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const defaultSecret = "fakeapi-secret"

type user struct {
	id       uint
	username string
	email    string
	hash     []byte
}

type courseRow struct {
	owner uint
	model.Course
}

type questionRow struct {
	courseID uint
	model.Question
}

type todoRow struct {
	owner uint
	model.Todo
}

type sessionRow struct {
	owner    uint
	start    time.Time
	end      time.Time
	duration int
}

type failure struct {
	status  int
	message string
}

// Server 内存后端；所有导出方法并发安全
type Server struct {
	mu     sync.Mutex
	secret string
	now    func() time.Time
	seq    uint

	users     map[string]*user
	courses   map[uint]*courseRow
	notes     map[uint]*model.Note
	questions map[uint]*questionRow
	todos     map[uint]*todoRow
	sessions  map[uint]*sessionRow
	// owner → 日期 → 分钟数
	daily map[uint]map[string]int
	// owner → 题目 → 掌握程度
	confidence map[uint]map[uint]model.Confidence

	failures map[string]failure
	last     *http.Request
	hits     map[string]int
}

func New() *Server {
	return &Server{
		secret:     defaultSecret,
		now:        time.Now,
		users:      make(map[string]*user),
		courses:    make(map[uint]*courseRow),
		notes:      make(map[uint]*model.Note),
		questions:  make(map[uint]*questionRow),
		todos:      make(map[uint]*todoRow),
		sessions:   make(map[uint]*sessionRow),
		daily:      make(map[uint]map[string]int),
		confidence: make(map[uint]map[uint]model.Confidence),
		failures:   make(map[string]failure),
		hits:       make(map[string]int),
	}
}

// NewTestServer 启动 httptest 服务，调用方负责 Close
func NewTestServer() (*httptest.Server, *Server) {
	s := New()
	return httptest.NewServer(s.Router()), s
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), tracing.GinMiddleware(), security.CORS("*"), security.Secure(),
		security.RateLimiter(1000, time.Second), s.record(), s.inject())

	r.GET("/metrics", monitoring.PrometheusHandler())

	auth := r.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
	}

	api := r.Group("/api")
	api.Use(middleware.Auth(s.secret))
	{
		api.GET("/courses", s.listCourses)
		api.POST("/courses", s.createCourse)
		api.GET("/courses/:id", s.getCourse)
		api.DELETE("/courses/:id", s.deleteCourse)

		api.GET("/course/:id/notes", s.listNotes)
		api.POST("/course/:id/generate-notes", s.generateNotes)
		api.POST("/course/:id/generate-questions", s.generateQuestions)
		api.GET("/notes/:id", s.getNote)
		api.DELETE("/notes/:id", s.deleteNote)

		api.POST("/test-strategies", s.testStrategies)

		progress := api.Group("/progress")
		progress.GET("/todos", s.listTodos)
		progress.POST("/todos", s.createTodo)
		progress.PUT("/todos/:id", s.updateTodo)
		progress.DELETE("/todos/:id", s.deleteTodo)
		progress.POST("/question-progress", s.recordQuestionProgress)
		progress.POST("/study-session/start", s.startSession)
		progress.POST("/study-session/:id/end", s.endSession)
		progress.GET("/weekly-progress", s.weeklyProgress)
	}
	return r
}

// SetClock 固定服务端时间，便于测试学习时长与连续天数
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// FailNext 让下一次匹配 method + 路由模板（如 /api/courses/:id）的请求返回给定错误；
// message 为空时响应体不带错误文本
func (s *Server) FailNext(method, route string, status int, message string) {
	s.mu.Lock()
	s.failures[method+" "+route] = failure{status: status, message: message}
	s.mu.Unlock()
}

// LastRequest 返回最近一次请求的副本（只含请求头等元信息）
func (s *Server) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Hits 按 method + 路由模板统计的请求次数
func (s *Server) Hits(method, route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[method+" "+route]
}

// CreateUser 直接创建用户并返回其访问令牌
func (s *Server) CreateUser(username, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	u := &user{id: s.nextID(), username: username, email: username + "@example.com", hash: hash}
	s.users[username] = u
	s.mu.Unlock()
	return s.issueToken(u.id)
}

// LogStudyMinutes 直接写入某天的学习分钟数
func (s *Server) LogStudyMinutes(token string, day time.Time, minutes int) error {
	subject, err := util.ParseJWT(token, s.secret)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addMinutes(uint(id), day, minutes)
	return nil
}

func (s *Server) issueToken(userID uint) (string, error) {
	return util.GenerateJWT(strconv.FormatUint(uint64(userID), 10), s.secret, time.Hour)
}

// nextID 所有实体共享一个自增序列，调用方需持有锁
func (s *Server) nextID() uint {
	s.seq++
	return s.seq
}

func (s *Server) addMinutes(owner uint, day time.Time, minutes int) {
	days, ok := s.daily[owner]
	if !ok {
		days = make(map[string]int)
		s.daily[owner] = days
	}
	days[day.Format(util.DateFormat)] += minutes
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		s.last = c.Request.Clone(c.Request.Context())
		s.hits[c.Request.Method+" "+c.FullPath()]++
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) inject() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.FullPath()
		s.mu.Lock()
		f, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()
		if !ok {
			c.Next()
			return
		}
		if f.message == "" {
			c.AbortWithStatus(f.status)
			return
		}
		c.AbortWithStatusJSON(f.status, gin.H{"error": f.message})
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := util.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}
