package app

import (
	"fmt"
	"os"
	"time"

	"github.com/devlegal/internal/config"
	"github.com/devlegal/internal/logger"

	"go.uber.org/zap"
)

// 启动模式
const (
	// ModeServe 迁移后启动 HTTP 服务
	ModeServe = "serve"
	// ModeMigrate 仅执行迁移与管理员初始化后退出
	ModeMigrate = "migrate"
)

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultStopTimeout
	}
	if o.Mode == "" {
		o.Mode = ModeServe
	}
	return o
}

func (o Options) validate() error {
	if o.Config == nil {
		return fmt.Errorf("config is nil")
	}
	switch o.Mode {
	case ModeServe, ModeMigrate:
		return nil
	default:
		return fmt.Errorf("unsupported mode: %s", o.Mode)
	}
}
