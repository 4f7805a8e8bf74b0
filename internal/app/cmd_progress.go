package app

import (
	"errors"
	"strings"
	"time"

	"study_assistant/internal/model"
	"study_assistant/internal/page"
	"study_assistant/internal/todo"
	"study_assistant/internal/util"

	"github.com/spf13/cobra"
)

func (c *cli) registerProgressCommands(root *cobra.Command) {
	root.AddCommand(c.todosCommand())

	root.AddCommand(&cobra.Command{
		Use:   "dashboard",
		Short: "Show recent courses, next test and todo list",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			d := page.NewDashboard(c.app.Client, c.app.Config.Dashboard)
			// 单个组件失败不影响其余部分显示
			_ = d.Load(cmd.Context())
			c.app.println(d.View())
			return nil
		}),
	})

	var export bool
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Show weekly study progress",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			p := page.NewProgressPage(c.app.Client, nil)
			if export {
				e, err := c.app.Exporter()
				if err != nil {
					return err
				}
				p = page.NewProgressPage(c.app.Client, e)
			}
			if err := p.Load(cmd.Context()); err != nil {
				return errors.New(p.Err)
			}
			c.app.println(p.View())
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
	progressCmd.Flags().BoolVar(&export, "export", false, "export the weekly progress as an .xlsx workbook")
	root.AddCommand(progressCmd)
}

func (c *cli) todosCommand() *cobra.Command {
	todos := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo"},
		Short:   "Manage your to-do list",
	}

	// loaded 先拉取列表，切换状态需要当前值
	loaded := func(cmd *cobra.Command) (*todo.List, error) {
		l := todo.NewList(c.app.Client)
		if err := l.Refresh(cmd.Context()); err != nil {
			return nil, errors.New(l.Err)
		}
		return l, nil
	}

	todos.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List todos",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			l, err := loaded(cmd)
			if err != nil {
				return err
			}
			c.app.println(l.View(time.Now()))
			return nil
		}),
	})

	var (
		due      string
		courseID uint
	)
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			var date model.Date
			if due != "" {
				d, err := model.ParseDate(due)
				if err != nil {
					return err
				}
				date = d
			}
			var course *uint
			if courseID > 0 {
				course = &courseID
			}
			l := todo.NewList(c.app.Client)
			item, err := l.Add(cmd.Context(), strings.Join(args, " "), date, course)
			if err != nil {
				if errors.Is(err, util.ErrTextRequired) {
					return err
				}
				return errors.New(l.Err)
			}
			c.app.printf("Added todo %d: %s\n", item.ID, item.Text)
			return nil
		}),
	}
	add.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	add.Flags().UintVar(&courseID, "course", 0, "related course ID")
	todos.AddCommand(add)

	todos.AddCommand(&cobra.Command{
		Use:   "toggle <todo-id>",
		Short: "Flip a todo between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			l, err := loaded(cmd)
			if err != nil {
				return err
			}
			item, err := l.Toggle(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, util.ErrNotFound) {
					return err
				}
				return errors.New(l.Err)
			}
			c.app.printf("Todo %d completed: %t\n", item.ID, item.Completed)
			return nil
		}),
	})

	todos.AddCommand(&cobra.Command{
		Use:   "done <todo-id>",
		Short: "Mark a todo as done",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			l, err := loaded(cmd)
			if err != nil {
				return err
			}
			if _, err := l.SetCompleted(cmd.Context(), id, true); err != nil {
				if errors.Is(err, util.ErrNotFound) {
					return err
				}
				return errors.New(l.Err)
			}
			c.app.printf("Todo %d marked as done\n", id)
			return nil
		}),
	})

	todos.AddCommand(&cobra.Command{
		Use:   "delete <todo-id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			l := todo.NewList(c.app.Client)
			if err := l.Delete(cmd.Context(), id); err != nil {
				return errors.New(l.Err)
			}
			c.app.printf("Deleted todo %d\n", id)
			return nil
		}),
	})
	return todos
}
