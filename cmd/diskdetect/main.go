package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhdewitt/diskdetect/internal/config"
	"github.com/nhdewitt/diskdetect/internal/detector"
	"github.com/nhdewitt/diskdetect/internal/logger"
	"github.com/nhdewitt/diskdetect/internal/report"
	"github.com/nhdewitt/diskdetect/internal/sender"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, config.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "diskdetect: %v\n", err)
		os.Exit(2)
	}
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(cancel)

	if err := run(ctx, cfg); err != nil {
		if errors.Is(err, detector.ErrPrivilegeRequired) {
			logger.Error("rotation-rate detection needs an elevated prompt; rerun as administrator or pass -fallback")
		}
		logger.Fatalf("diskdetect: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	d := detector.New()
	opts := cfg.Options()
	elevated := d.Elevated()

	logger.WithFields(map[string]any{
		"strategy": opts.Strategy,
		"fallback": opts.UseFallbackQuery,
		"scope":    cfg.Scope,
		"elevated": elevated,
	}).Debug("starting detection")

	descs, err := detect(ctx, d, cfg, opts)
	if err != nil {
		return err
	}

	hostname, _ := os.Hostname()
	r := report.New(hostname, elevated, opts, descs)
	if err := report.Write(os.Stdout, r, cfg.Format); err != nil {
		return err
	}

	if cfg.Endpoint != "" {
		return sender.New(cfg.Endpoint).Send(ctx, r)
	}
	return nil
}

func detect(ctx context.Context, d *detector.Detector, cfg config.Config, opts detector.Options) ([]detector.DriveDescriptor, error) {
	if cfg.Drive != 0 {
		var (
			desc detector.DriveDescriptor
			err  error
		)
		if cfg.Scope == config.ScopeFixed {
			desc, err = d.DetectFixedDrive(ctx, cfg.Drive, opts)
		} else {
			desc, err = d.DetectDrive(ctx, cfg.Drive, opts)
		}
		if err != nil {
			return nil, err
		}
		if desc.Empty() {
			logger.Warnf("drive %c: nothing to report", cfg.Drive)
			return nil, nil
		}
		return []detector.DriveDescriptor{desc}, nil
	}

	if cfg.Scope == config.ScopeFixed {
		return d.DetectFixedDrives(ctx, opts)
	}
	return d.DetectDrives(ctx, opts)
}

func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("received termination signal, stopping")
		cancel()
	}()
}
