package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"study_assistant/internal/config"
	"study_assistant/internal/pomodoro"
	"study_assistant/internal/tui"
	"study_assistant/internal/view"
	"study_assistant/pkg/logger"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) registerPomodoroCommand(root *cobra.Command) {
	var (
		headless bool
		notify   bool
		report   bool
		cycles   int
		courseID uint
	)
	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run the pomodoro focus timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.app.Config
			timer := pomodoro.NewTimer(pomodoro.FromConfig(cfg.Pomodoro),
				pomodoro.NewTerminalNotifier(), pomodoro.BellChime{Out: os.Stderr})
			if notify || cfg.Pomodoro.Notifications {
				timer.SetNotifications(true)
			}

			var reporter *pomodoro.SessionReporter
			if report || cfg.Pomodoro.ReportSessions {
				if err := c.requireLogin(); err != nil {
					return err
				}
				var course *uint
				if courseID > 0 {
					course = &courseID
				}
				reporter = pomodoro.NewSessionReporter(c.app.Client, course)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if headless || !interactive() {
				return c.runHeadless(ctx, timer, reporter, cycles)
			}

			program := tea.NewProgram(tui.NewPomodoroModel(timer, reporter), tea.WithContext(ctx))
			c.app.RegisterConfigCallback(func(cfg *config.Config) {
				program.Send(tui.SettingsMsg{Settings: pomodoro.FromConfig(cfg.Pomodoro)})
			})
			c.app.WatchConfig(ctx)

			_, err := program.Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "run without the TUI, printing the countdown")
	cmd.Flags().BoolVar(&notify, "notify", false, "enable completion notifications")
	cmd.Flags().BoolVar(&report, "report", false, "record focus sessions as study sessions on the backend")
	cmd.Flags().IntVar(&cycles, "cycles", 1, "headless: number of phases to run before exiting")
	cmd.Flags().UintVar(&courseID, "course", 0, "course the study sessions belong to")
	root.AddCommand(cmd)
}

// runHeadless 依次运行 cycles 个阶段，每个阶段结束后自动开始下一个
func (c *cli) runHeadless(ctx context.Context, timer *pomodoro.Timer, reporter *pomodoro.SessionReporter, cycles int) error {
	if cycles <= 0 {
		cycles = 1
	}
	runner := pomodoro.NewRunner(timer, pomodoro.SystemClock, pomodoro.WithTickHandler(func(s pomodoro.State) {
		c.app.printf("\r%s %s ", s.Mode.Label(), view.FormatTime(s.Minutes, s.Seconds))
	}))
	defer runner.Close()

	start := func() {
		if reporter != nil && runner.Snapshot().Mode == pomodoro.ModeFocus {
			_ = reporter.FocusStarted(ctx)
		}
		runner.Start()
	}

	start()
	for done := 0; done < cycles; {
		select {
		case <-ctx.Done():
			if reporter != nil {
				_, _ = reporter.Close(context.Background())
			}
			c.app.println()
			return nil
		case tr, ok := <-runner.Events():
			if !ok {
				return nil
			}
			done++
			c.app.printf("\n%s finished (%d focus sessions completed), next: %s\n",
				tr.From.Label(), tr.CompletedSessions, tr.To.Label())
			if reporter != nil {
				if _, err := reporter.Completed(ctx, tr); err != nil {
					logger.Log.Warn("Report focus session failed", zap.Error(err))
				}
			}
			if done < cycles {
				start()
			}
		}
	}
	return nil
}
