package tui

import (
	"errors"
	"strconv"
	"strings"

	"study_assistant/internal/form"
	"study_assistant/internal/model"

	"github.com/charmbracelet/huh"
)

func required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// CredentialsForm 交互式输入账号；email 为 nil 时不询问（登录）
func CredentialsForm(username, password, email *string) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().Title("Username").Value(username).Validate(required("Username is required")),
	}
	if email != nil {
		fields = append(fields, huh.NewInput().Title("Email").Value(email).Validate(required("Email is required")))
	}
	fields = append(fields,
		huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password).Validate(required("Password is required")))
	return huh.NewForm(huh.NewGroup(fields...))
}

func NotesForm(g *form.NoteGenerator) *huh.Form {
	options := make([]huh.Option[model.DetailLevel], 0, len(model.DetailLevels))
	for _, level := range model.DetailLevels {
		options = append(options, huh.NewOption(strings.ToUpper(string(level[:1]))+string(level[1:]), level))
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Topic").Placeholder("e.g. Binary search trees").Value(&g.Topic).
			Validate(required("Please enter a topic")),
		huh.NewSelect[model.DetailLevel]().Title("Detail level").Options(options...).Value(&g.DetailLevel),
	))
}

// QuestionsForm count 以字符串编辑，提交前由 ApplyCount 写回
func QuestionsForm(g *form.QuestionGenerator, count *string) *huh.Form {
	*count = strconv.Itoa(g.Count)
	difficulties := make([]huh.Option[model.Difficulty], 0, len(model.RequestDifficulties))
	for _, d := range model.RequestDifficulties {
		difficulties = append(difficulties, huh.NewOption(string(d), d))
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Topic").Value(&g.Topic).Validate(required("Please enter a topic")),
		huh.NewInput().Title("Number of questions (1-20)").Value(count).Validate(func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return errors.New("Enter a number")
			}
			return nil
		}),
		huh.NewSelect[model.Difficulty]().Title("Difficulty").Options(difficulties...).Value(&g.Difficulty),
	))
}

// ApplyCount 解析并截断题目数量
func ApplyCount(g *form.QuestionGenerator, count string) {
	if n, err := strconv.Atoi(strings.TrimSpace(count)); err == nil {
		g.SetCount(n)
	}
}

func StrategyForm(g *form.StrategyGenerator) *huh.Form {
	types := make([]huh.Option[string], 0, len(model.TestTypes))
	for _, t := range model.TestTypes {
		types = append(types, huh.NewOption(t.Label, t.Value))
	}
	problems := make([]huh.Option[string], 0, len(model.CommonProblems))
	for _, p := range model.CommonProblems {
		problems = append(problems, huh.NewOption(p.Label, p.Value))
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Test type").Options(types...).Value(&g.TestType),
		huh.NewMultiSelect[string]().Title("Common problems").Options(problems...).Value(&g.Problems),
	))
}
