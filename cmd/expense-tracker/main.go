package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/expense-tracker/internal/cli"
	"github.com/idilsaglam/expense-tracker/internal/config"
	applog "github.com/idilsaglam/expense-tracker/internal/log"
	"github.com/idilsaglam/expense-tracker/internal/tracker"
	"github.com/idilsaglam/expense-tracker/internal/ui"
)

func main() {
	cfg := config.Load()

	// Root flags (apply to every subcommand)
	theme := flag.String("theme", "", "output theme: classic, neon or mono")
	dataDir := flag.String("data-dir", "", "directory holding expenses.json and budget.json")
	flag.Parse()
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logCfg := applog.DefaultConfig()
	if level, err := applog.ParseLevel(cfg.LogLevel); err == nil {
		logCfg.Level = level
	}
	logger := applog.New(logCfg)
	applog.SetDefault(logger)
	logger.WithComponent(applog.ComponentConfig).Debug("configuration loaded",
		"data_dir", cfg.DataDir, "export_dir", cfg.ExportDir, "theme", cfg.Theme)
	ui.SetTheme(cfg.Theme)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	t := tracker.New(cfg.ExpensesPath(), cfg.BudgetsPath(), tracker.WithLogger(logger))
	code := cli.Run(args, cli.Options{
		Tracker:   t,
		ExportDir: cfg.ExportDir,
		Log:       logger,
	})
	os.Exit(code)
}
