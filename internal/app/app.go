package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"study_assistant/internal/api"
	"study_assistant/internal/config"
	"study_assistant/internal/export"
	"study_assistant/internal/tokenstore"
	"study_assistant/pkg/configwatcher"
	"study_assistant/pkg/logger"
	"study_assistant/pkg/monitoring"
	"study_assistant/pkg/tracing"

	"go.uber.org/zap"
)

const serviceName = "study-assistant"

// App 一次命令执行所需的全部依赖
type App struct {
	Config *config.Config
	Client *api.Client
	Tokens tokenstore.Store
	Out    io.Writer

	exporter        *export.Exporter
	closers         []func(context.Context) error
	configCallbacks []func(*config.Config)
}

// New 只做组装，不初始化日志与追踪
func New(cfg *config.Config, tokens tokenstore.Store, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{
		Config: cfg,
		Client: api.NewClient(api.OptionsFromConfig(cfg), tokens),
		Tokens: tokens,
		Out:    out,
	}
}

// Bootstrap 初始化日志、指标、追踪与令牌存储并组装 App
func Bootstrap(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	logger.InitLogger(&cfg.Log)
	logger.Log.Debug("Logger initialized", zap.String("config_file", cfg.ConfigFile))

	monitoring.Init()

	shutdown, err := tracing.InitTracer(ctx, cfg.Tracing, serviceName)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	store, err := tokenstore.OpenBadger(tokenstore.BadgerConfig{Path: cfg.Storage.TokenPath})
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("open token store: %w", err)
	}

	a := New(cfg, store, out)
	a.closers = append(a.closers,
		func(context.Context) error { return store.Close() },
		func(ctx context.Context) error { return shutdown(ctx) },
	)
	return a, nil
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// WatchConfig 配置文件变更时依次回调；未使用配置文件时直接返回
func (a *App) WatchConfig(ctx context.Context) {
	if a.Config.ConfigFile == "" || len(a.configCallbacks) == 0 {
		return
	}
	go func() {
		err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

// Exporter 按配置懒加载导出存储
func (a *App) Exporter() (*export.Exporter, error) {
	if a.exporter != nil {
		return a.exporter, nil
	}
	dest, err := export.NewDestination(&a.Config.Storage)
	if err != nil {
		return nil, fmt.Errorf("init export storage: %w", err)
	}
	a.exporter = export.NewExporter(dest)
	return a.exporter, nil
}

// Close 逆序释放资源并写出指标文件
func (a *App) Close(ctx context.Context) error {
	if err := monitoring.WriteTextfile(a.Config.Metrics.TextfilePath); err != nil {
		logger.Log.Warn("Write metrics textfile failed", zap.Error(err))
	}
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	logger.Sync()
	return firstErr
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.Out, args...)
}
