package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"BlueBatch/internal/di"
	"BlueBatch/internal/domain/repository"
	"BlueBatch/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	timeframe := flag.String("timeframe", string(repository.DefaultTimeframe()), "timeframe to process (daily|weekly)")
	date := flag.String("date", time.Now().UTC().Format("2006-01-02"), "batch date (YYYY-MM-DD)")
	inputPath := flag.String("input", "", "override input path")
	outputPath := flag.String("output", "", "override output path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if *inputPath != "" {
		cfg.Paths.Input = *inputPath
	}
	if *outputPath != "" {
		cfg.Paths.Output = *outputPath
	}
	tf := repository.NormalizeTimeframe(*timeframe)

	log.Printf("env=%s timeframe=%s date=%s input=%s", cfg.Environment, tf, *date, cfg.Paths.Input)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	summary, err := app.Run(context.Background(), string(tf), *date)
	if err != nil {
		log.Printf("run failed: %v", err)
		os.Exit(1)
	}

	os.Exit(summary.ExitCode())
}
