package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

const defaultStopTimeout = 10 * time.Second

// Service 可被 Runner 托管的长驻组件
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 托管一组服务：任一服务退出即整体关停
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器；停止顺序与注册顺序一致
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions 运行服务，收到系统信号时优雅退出
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = opts.withDefaults()
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部服务并阻塞，直到 ctx 结束或某个服务返回
// ctx 被取消视为正常退出
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	exited := make(chan error, len(r.services))
	for _, svc := range r.services {
		go r.start(runCtx, svc, log, exited)
	}

	var runErr error
	select {
	case <-runCtx.Done():
		runErr = runCtx.Err()
	case runErr = <-exited:
	}
	cancel()

	r.stopAll(stopTimeout, log)
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (r *Runner) start(ctx context.Context, svc Service, log *zap.SugaredLogger, exited chan<- error) {
	if svc == nil {
		exited <- errors.New("service is nil")
		return
	}
	name := svc.Name()
	logInfo(log, "service_start", "service", name)
	err := svc.Start(ctx)
	if err != nil {
		logError(log, "service_failed", "service", name, "error", err)
	} else {
		logInfo(log, "service_exit", "service", name)
	}
	exited <- err
}

// stopAll 共享同一个超时预算，HTTP 先于存储关闭
func (r *Runner) stopAll(timeout time.Duration, log *zap.SugaredLogger) {
	if timeout <= 0 {
		timeout = defaultStopTimeout
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, svc := range r.services {
		if svc == nil {
			continue
		}
		if err := svc.Stop(stopCtx); err != nil {
			logError(log, "service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}

func logInfo(log *zap.SugaredLogger, msg string, kv ...interface{}) {
	if log != nil {
		log.Infow(msg, kv...)
	}
}

func logError(log *zap.SugaredLogger, msg string, kv ...interface{}) {
	if log != nil {
		log.Errorw(msg, kv...)
	}
}
