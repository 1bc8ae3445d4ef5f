package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/sweeper/internal/app"
	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/store"
)

var configPath string

func init() {
	const (
		defaultConfigPath = "config.json"
		usage             = "path to config file"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)

	var formatter logrus.Formatter = &logrus.JSONFormatter{}
	if cfg.Development() {
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	}
	log.SetFormatter(formatter)

	if cfg.LogFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return nil, err
		}
		log.AddHook(hook)
	}

	return log, nil
}

func main() {
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.WithError(err).Fatal("unable to load config")
	}

	log, err := newLogger(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("unable to set up logging")
	}
	mines.Log = log
	log.WithFields(cfg.Fields()).Info("config loaded")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		log.WithError(err).Fatal("unable to open store")
	}
	defer db.Close()

	settings, err := store.NewSettings(ctx, db)
	if err != nil {
		log.WithError(err).Fatal("unable to create settings store")
	}

	if err := app.New(log, cfg, settings).Start(ctx); err != nil {
		log.WithError(err).Error("server stopped")
		return
	}
	log.Info("server stopped")
}
