package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"study_assistant/internal/config"
	"study_assistant/internal/tokenstore"
	"study_assistant/internal/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Factory 根据配置构造 App，测试中替换为内存令牌存储
type Factory func(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error)

type cli struct {
	factory   Factory
	configDir string
	baseURL   string
	logLevel  string

	app *App
}

// Execute 运行命令行并在结束后释放资源
func Execute(ctx context.Context, args []string) error {
	c := &cli{factory: Bootstrap}
	return c.run(ctx, args, nil)
}

func (c *cli) run(ctx context.Context, args []string, out io.Writer) error {
	root := c.rootCommand()
	root.SetArgs(args)
	if out != nil {
		root.SetOut(out)
		root.SetErr(out)
	}
	err := root.ExecuteContext(ctx)
	if c.app != nil {
		if cerr := c.app.Close(context.Background()); cerr != nil && err == nil {
			err = cerr
		}
		c.app = nil
	}
	return err
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "study_assistant",
		Short:         "Terminal client for the AI study assistant",
		Long:          "Generate notes, practice questions and test strategies for your courses, track todos and progress, and stay focused with a pomodoro timer.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configDir, "config", "", "directory containing config.yaml")
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "backend base URL (overrides config)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	// 1. 账号
	c.registerAuthCommands(root)
	// 2. 课程与学习内容
	c.registerCourseCommands(root)
	c.registerStudyCommands(root)
	// 3. 进度
	c.registerProgressCommands(root)
	// 4. 番茄钟
	c.registerPomodoroCommand(root)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(c.configDir)
	if err != nil {
		return err
	}
	if c.baseURL != "" {
		cfg.API.BaseURL = strings.TrimRight(c.baseURL, "/")
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	a, err := c.factory(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) requireLogin() error {
	if !tokenstore.IsAuthenticated(c.app.Tokens) {
		return fmt.Errorf("%w: run `study_assistant login` first", util.ErrNoToken)
	}
	return nil
}

// authed 包装需要登录的命令
func (c *cli) authed(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := c.requireLogin(); err != nil {
			return err
		}
		return fn(cmd, args)
	}
}

func interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var errNotInteractive = errors.New("missing flags and stdin is not a terminal")

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		String()
}
