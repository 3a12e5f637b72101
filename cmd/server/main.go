package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/devlegal/internal/app"
	"github.com/devlegal/internal/config"
	"github.com/devlegal/internal/logger"

	"github.com/gin-gonic/gin"
)

type cliFlags struct {
	mode       string
	configPath string
	quiet      bool
}

func parseFlags() cliFlags {
	var f cliFlags
	flag.StringVar(&f.mode, "mode", app.ModeServe, "运行模式: serve | migrate")
	flag.StringVar(&f.configPath, "config", "", "配置文件路径，默认 ./config.yml")
	flag.BoolVar(&f.quiet, "quiet", false, "不打印启动横幅")
	flag.Parse()
	return f
}

func main() {
	flags := parseFlags()
	if !flags.quiet {
		fmt.Fprintln(os.Stdout, "\033[1;36mDevLegal\033[0m \033[2mlegal services site, blog and admin\033[0m")
	}

	cfg := config.LoadFile(flags.configPath)
	production := cfg.Server.IsProduction()
	logger.Init(cfg.Log.ToLoggerOptions(production))

	if production {
		gin.SetMode(gin.ReleaseMode)
	}

	err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    flags.mode,
	})
	if err != nil {
		logger.StdLogger().Fatalf("服务运行失败: %v", err)
	}
}
