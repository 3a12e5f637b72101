package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志输出配置；Dir 为空时只写标准输出
type Options struct {
	Level      string
	Production bool
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// L 进程级日志实例，由 Init 设置
var L *zap.Logger

var (
	bootOnce sync.Once
	bootLog  *zap.Logger
)

// Init 初始化全局日志并替换 zap 全局实例
func Init(options Options) *zap.Logger {
	L = New(options)
	zap.ReplaceGlobals(L)
	return L
}

// New 开发环境输出控制台格式，生产环境输出 JSON；文件始终为 JSON
func New(options Options) *zap.Logger {
	level := zap.NewAtomicLevelAt(parseLevel(options.Level))
	encoding := newEncoderConfig()

	stdout := zapcore.NewConsoleEncoder(encoding)
	if options.Production {
		stdout = zapcore.NewJSONEncoder(encoding)
	}
	cores := []zapcore.Core{zapcore.NewCore(stdout, zapcore.Lock(os.Stdout), level)}

	if strings.TrimSpace(options.Dir) != "" {
		sink, err := newRotatingSink(options)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file unavailable, writing to stdout only: %v\n", err)
		} else {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoding), sink, level))
		}
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

func parseLevel(raw string) zapcore.Level {
	level, err := zapcore.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func newEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "event"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	return cfg
}

// Z 返回当前日志实例；Init 之前返回启动期日志
func Z() *zap.Logger {
	if L != nil {
		return L
	}
	bootOnce.Do(func() {
		bootLog = New(Options{})
	})
	return bootLog
}

// S 返回 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 附带固定字段（如 request_id）的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

// StdLogger 适配标准库 log，供 http.Server.ErrorLog 使用
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Debugw debug 级别事件
func Debugw(event string, kv ...interface{}) {
	S().Debugw(event, kv...)
}

// Infow info 级别事件
func Infow(event string, kv ...interface{}) {
	S().Infow(event, kv...)
}

// Warnw warn 级别事件
func Warnw(event string, kv ...interface{}) {
	S().Warnw(event, kv...)
}

// Errorw error 级别事件
func Errorw(event string, kv ...interface{}) {
	S().Errorw(event, kv...)
}
