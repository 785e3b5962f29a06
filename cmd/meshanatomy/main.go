// Package main is the entry point for the Mesh Anatomy viewer.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/meshanatomy/internal/app"
	"github.com/Faultbox/meshanatomy/internal/config"
	"github.com/Faultbox/meshanatomy/internal/logger"
)

func main() {
	// SDL and GL calls must stay on the startup thread
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Mesh Anatomy ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create application", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if path := config.ModelPath(); path != "" {
		a.LoadModel(path)
	}

	a.Run()

	logger.Info("viewer closed normally")
}
