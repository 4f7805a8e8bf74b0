package app

import (
	"errors"
	"strconv"

	"study_assistant/internal/api"
	"study_assistant/internal/model"
	"study_assistant/internal/page"
	"study_assistant/internal/util"
	"study_assistant/internal/view"

	"github.com/spf13/cobra"
)

func (c *cli) registerCourseCommands(root *cobra.Command) {
	courses := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course"},
		Short:   "Manage courses",
	}

	courses.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your courses",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			list, err := c.app.Client.ListCourses(cmd.Context())
			if err != nil {
				return errors.New(api.Message(err, page.CoursesFallback))
			}
			if len(list) == 0 {
				c.app.println("No courses yet. Create one with `study_assistant courses create --title ...`.")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, course := range list {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(course.ID), 10),
					course.Title,
					course.Description,
					course.CreatedAt.Format(util.DateFormat),
				})
			}
			c.app.println(renderTable([]string{"ID", "Title", "Description", "Created"}, rows))
			return nil
		}),
	})

	courses.AddCommand(&cobra.Command{
		Use:   "show <course-id>",
		Short: "Show a course",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			course, err := c.app.Client.GetCourse(cmd.Context(), id)
			if err != nil {
				return errors.New(api.Message(err, page.CourseFallback))
			}
			c.app.println(view.CourseCard{Course: *course}.View())
			return nil
		}),
	})

	var create model.CreateCourseRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		Args:  cobra.NoArgs,
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			course, err := c.app.Client.CreateCourse(cmd.Context(), create)
			if err != nil {
				return errors.New(api.Message(err, "Failed to create course. Please try again."))
			}
			c.app.printf("Created course %d: %s\n", course.ID, course.Title)
			return nil
		}),
	}
	createCmd.Flags().StringVarP(&create.Title, "title", "t", "", "course title")
	createCmd.Flags().StringVarP(&create.Description, "description", "d", "", "course description")
	_ = createCmd.MarkFlagRequired("title")
	courses.AddCommand(createCmd)

	courses.AddCommand(&cobra.Command{
		Use:   "delete <course-id>",
		Short: "Delete a course and its notes",
		Args:  cobra.ExactArgs(1),
		RunE: c.authed(func(cmd *cobra.Command, args []string) error {
			id, err := util.ParseID(args[0])
			if err != nil {
				return err
			}
			if err := c.app.Client.DeleteCourse(cmd.Context(), id); err != nil {
				return errors.New(api.Message(err, "Failed to delete course. Please try again."))
			}
			c.app.printf("Deleted course %d\n", id)
			return nil
		}),
	})

	root.AddCommand(courses)
}
