package main

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/glutils/config"
	"github.com/BaSui01/glutils/internal/metrics"
	"github.com/BaSui01/glutils/internal/telemetry"
	"github.com/BaSui01/glutils/loader"
)

var (
	shutdownTimeout = 5 * time.Second
	newLoader       = loader.New
)

// session 保存一次命令执行期间的配置、日志、遥测与加载器
type session struct {
	cfg       *config.Config
	logger    *zap.Logger
	providers *telemetry.Providers
	loader    *loader.Loader
	restore   func()
}

// newSession 加载配置并初始化日志、遥测、指标与加载器
func newSession(configPath string) (*session, error) {
	cfg, err := config.NewLoader().
		WithConfigPath(configPath).
		WithValidator((*config.Config).Validate).
		Load()
	if err != nil {
		return nil, err
	}

	logger := initLogger(cfg.Log)
	restore := zap.ReplaceGlobals(logger)

	providers, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}

	opts := []loader.Option{
		loader.WithLogger(logger),
		loader.WithTracerProvider(providers.TracerProvider()),
		loader.WithMeterProvider(providers.MeterProvider()),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, loader.WithRecorder(metrics.NewCollector(cfg.Metrics.Namespace, logger)))
	}

	l, err := newLoader(cfg.Loader, opts...)
	if err != nil {
		shutdownTelemetry(providers, logger)
		restore()
		return nil, err
	}

	return &session{
		cfg:       cfg,
		logger:    logger,
		providers: providers,
		loader:    l,
		restore:   restore,
	}, nil
}

// Close 刷新遥测数据并写出指标文件
func (s *session) Close() error {
	defer s.restore()
	defer func() { _ = s.logger.Sync() }()

	shutdownTelemetry(s.providers, s.logger)

	if s.cfg.Metrics.Enabled && s.cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(s.cfg.Metrics.TextfilePath); err != nil {
			return err
		}
		s.logger.Debug("metrics written", zap.String("path", s.cfg.Metrics.TextfilePath))
	}
	return nil
}

// shutdownTelemetry 刷新并关闭遥测导出器
func shutdownTelemetry(providers *telemetry.Providers, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := providers.Shutdown(ctx); err != nil {
		logger.Warn("telemetry shutdown failed", zap.Error(err))
	}
}

// =============================================================================
// 🔧 日志初始化
// =============================================================================

func initLogger(cfg config.LogConfig) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	// 配置编码器
	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          "json",
		EncoderConfig:     encoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     !cfg.EnableCaller,
		DisableStacktrace: !cfg.EnableStacktrace,
	}
	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	}

	logger, err := zapConfig.Build()
	if err != nil {
		// 回退到基本 logger
		logger, _ = zap.NewProduction()
	}

	return logger
}
