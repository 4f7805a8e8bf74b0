package app

import (
	"errors"

	"study_assistant/internal/api"
	exportpkg "study_assistant/internal/export"
	"study_assistant/internal/form"
	"study_assistant/internal/model"
	"study_assistant/internal/page"
	"study_assistant/internal/practice"
	"study_assistant/internal/tui"
	"study_assistant/internal/util"
	"study_assistant/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func (c *cli) registerStudyCommands(root *cobra.Command) {
	root.AddCommand(c.notesCommand(), c.questionsCommand(), c.strategiesCommand())

	root.AddCommand(&cobra.Command{
		Use:   "study <course-id>",
		Short: "Show a course with its notes",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			p := page.NewStudyPage(c.app.Client, id, nil)
			if err := p.Load(cmd.Context()); err != nil {
				return errors.New(p.Err)
			}
			if len(p.Notes) > 0 {
				p.ActiveNote = p.Notes[0].ID
			}
			c.app.println(p.View())
			return nil
		}),
	})
}

func (c *cli) notesCommand() *cobra.Command {
	notes := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note"},
		Short:   "Generate and read AI study notes",
	}

	var topic, detail string
	generate := &cobra.Command{
		Use:   "generate <course-id>",
		Short: "Generate notes on a topic",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			g := form.NewNoteGenerator(c.app.Client, id)
			g.Topic = topic
			if detail != "" {
				g.DetailLevel = model.DetailLevel(detail)
			}
			if g.Topic == "" && interactive() {
				if err := tui.NotesForm(g).Run(); err != nil {
					return err
				}
			}
			c.app.println(view.MutedStyle.Render("Generating notes..."))
			note, err := g.Submit(cmd.Context())
			if err != nil {
				return errors.New(g.Err)
			}
			c.app.println(view.NoteCard{Note: *note, Active: true}.View())
			c.app.println(note.Content)
			return nil
		}),
	}
	generate.Flags().StringVarP(&topic, "topic", "t", "", "topic to generate notes for")
	generate.Flags().StringVarP(&detail, "detail", "d", "", "detail level: brief, medium or detailed")
	notes.AddCommand(generate)

	notes.AddCommand(&cobra.Command{
		Use:   "list <course-id>",
		Short: "List notes of a course",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			list, err := c.app.Client.ListNotes(cmd.Context(), id)
			if err != nil {
				return errors.New(api.Message(err, "Failed to load notes. Please try again."))
			}
			if len(list) == 0 {
				c.app.println("No notes yet.")
				return nil
			}
			for _, n := range list {
				c.app.println(view.NoteCard{Note: n}.View())
			}
			return nil
		}),
	})

	notes.AddCommand(&cobra.Command{
		Use:   "show <note-id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			note, err := c.app.Client.GetNote(cmd.Context(), id)
			if err != nil {
				return errors.New(api.Message(err, "Failed to load note. Please try again."))
			}
			c.app.println(view.TitleStyle.Render(note.Title))
			c.app.println(note.Content)
			return nil
		}),
	})

	notes.AddCommand(&cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Client.DeleteNote(cmd.Context(), id); err != nil {
				return errors.New(api.Message(err, "Failed to delete note. Please try again."))
			}
			c.app.printf("Deleted note %d\n", id)
			return nil
		}),
	})
	return notes
}

func (c *cli) questionsCommand() *cobra.Command {
	questions := &cobra.Command{
		Use:   "questions",
		Short: "Generate practice questions",
	}

	var (
		topic      string
		count      int
		difficulty string
		practiceIt bool
	)
	generate := &cobra.Command{
		Use:   "generate <course-id>",
		Short: "Generate practice questions on a topic",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			g := form.NewQuestionGenerator(c.app.Client, id)
			g.Topic = topic
			g.SetCount(count)
			if difficulty != "" {
				g.Difficulty = model.Difficulty(difficulty)
			}
			if g.Topic == "" && interactive() {
				var raw string
				if err := tui.QuestionsForm(g, &raw).Run(); err != nil {
					return err
				}
				tui.ApplyCount(g, raw)
			}

			session := practice.NewSession(c.app.Client)
			g.OnGenerated = func(qs []model.Question) { _ = session.Load(qs) }

			c.app.println(view.MutedStyle.Render("Generating questions..."))
			qs, err := g.Submit(cmd.Context())
			if err != nil {
				return errors.New(g.Err)
			}

			if practiceIt && interactive() {
				_, err := tea.NewProgram(tui.NewPracticeModel(cmd.Context(), session)).Run()
				return err
			}
			for i, q := range qs {
				c.app.printf("%d. [%s] %s\n", i+1, view.DifficultyBadge(q.Difficulty), q.Question)
				c.app.printf("   %s %s\n\n", view.MutedStyle.Render("Answer:"), q.Answer)
			}
			return nil
		}),
	}
	generate.Flags().StringVarP(&topic, "topic", "t", "", "topic for the questions")
	generate.Flags().IntVarP(&count, "count", "n", form.DefaultQuestions, "number of questions (1-20)")
	generate.Flags().StringVarP(&difficulty, "difficulty", "d", "", "mixed, easy, medium or hard")
	generate.Flags().BoolVar(&practiceIt, "practice", false, "practice the questions interactively")
	questions.AddCommand(generate)
	return questions
}

func (c *cli) strategiesCommand() *cobra.Command {
	var (
		testType string
		problems []string
		export   bool
	)
	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "Get personalized test-taking strategies",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			var exporter *exportpkg.Exporter
			if export {
				e, err := c.app.Exporter()
				if err != nil {
					return err
				}
				exporter = e
			}
			p := page.NewStrategiesPage(c.app.Client, exporter)

			if testType != "" {
				p.Form.TestType = testType
			}
			for _, pr := range problems {
				p.Form.ToggleProblem(pr)
			}
			if testType == "" && interactive() {
				if err := tui.StrategyForm(p.Form).Run(); err != nil {
					return err
				}
			}

			c.app.println(view.MutedStyle.Render("Generating strategies..."))
			text, err := p.Generate(cmd.Context())
			if err != nil {
				return errors.New(p.Form.Err)
			}
			c.app.println(text)

			if export {
				location, err := p.Export(cmd.Context())
				if err != nil {
					return err
				}
				c.app.printf("\nSaved to %s\n", location)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&testType, "type", "t", "", "test type: multiple-choice, essay, short-answer, programming, math, open-book")
	cmd.Flags().StringSliceVarP(&problems, "problem", "p", nil, "problem you face: time, anxiety, focus, memory, preparation, confidence (repeatable)")
	cmd.Flags().BoolVar(&export, "export", false, "save the strategies as an HTML document")
	return cmd
}
