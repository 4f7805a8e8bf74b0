// Package form 实现笔记、题目、应试策略三个生成表单。
//
// 提交流程一致：本地校验 → 置 Generating、清空 Err → 发起一次请求 →
// 成功时更新结果，失败时保留上一次结果并设置 Err → 清除 Generating。
package form

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	NotesFallback      = "Failed to generate notes. Please try again."
	QuestionsFallback  = "Failed to generate questions. Please try again."
	StrategiesFallback = "Failed to generate strategies. Please try again."
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError 本地校验失败，未发出请求
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// State 所有表单共有的状态
type State struct {
	Generating bool
	Err        string
}

func (s *State) begin() {
	s.Generating = true
	s.Err = ""
}

func (s *State) finish() {
	s.Generating = false
}

// messages 字段名.校验标签 → 展示文本
var messages = map[string]string{
	"Topic.required":      "Please enter a topic",
	"CourseID.gt":         "Please choose a course",
	"DetailLevel.oneof":   "Detail level must be brief, medium or detailed",
	"Difficulty.oneof":    "Difficulty must be mixed, easy, medium or hard",
	"TestType.required":   "Please choose a test type",
	"TestType.oneof":      "Unknown test type",
	"Problems.dive.oneof": "Unknown test problem",
}

// validateInput 把 validator 的第一个错误转换为 *ValidationError
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i] + ".dive"
	}
	msg, ok := messages[field+"."+fe.Tag()]
	if !ok {
		msg = fe.Error()
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
