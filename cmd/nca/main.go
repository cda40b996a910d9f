// Command nca runs non-compartmental analysis over a NONMEM-style CSV
// dataset, writing a JSON report and optional per-subject concentration
// plots. With -watch it re-runs the analysis whenever the dataset file
// changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/lmittmann/tint"

	nca "github.com/openpkpd/go-nca"
	"github.com/openpkpd/go-nca/pkdataset"
)

func main() {
	configPath := flag.String("config", "", "path to yaml config file")
	dataPath := flag.String("data", "", "path to the CSV dataset")
	outDir := flag.String("out", "", "output directory, overrides config")
	watch := flag.Bool("watch", false, "re-run analysis when the dataset changes")
	flag.Parse()

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))

	if *dataPath == "" {
		slog.Error("no dataset provided, use -data")
		os.Exit(1)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		slog.Error("unable to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	if err := run(cfg, *dataPath); err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	if !*watch {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := watchDataset(ctx, cfg, *dataPath); err != nil {
		slog.Error("watch failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *Config, dataPath string) error {
	file, err := os.Open(dataPath)
	if err != nil {
		return fmt.Errorf("unable to open dataset, %w", err)
	}
	defer file.Close()

	data, err := pkdataset.ReadCSV(file, cfg.Dataset.CSVOptions())
	if err != nil {
		return fmt.Errorf("unable to read dataset, %w", err)
	}
	slog.Info("dataset loaded", "path", dataPath, "subjects", len(data))

	opt := cfg.Analysis.Options()
	report, err := nca.RunStudy(data, opt)
	if err != nil {
		return err
	}

	dir := cfg.Output.EffectiveDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create output directory, %w", err)
	}

	reportPath := filepath.Join(dir, "report.json")
	reportFile, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("unable to create report, %w", err)
	}
	defer reportFile.Close()

	if err := report.WriteJSON(reportFile); err != nil {
		return err
	}
	slog.Info("report written", "path", reportPath)

	if !cfg.Output.Plots {
		return nil
	}

	for _, sd := range data {
		subjectOpt := *opt
		if sd.Subject.Dose > 0 {
			subjectOpt.Dose = sd.Subject.Dose
		}
		a, err := nca.New(&subjectOpt)
		if err != nil {
			return err
		}
		if _, err := a.RunProfile(sd.Profile); err != nil {
			return fmt.Errorf("subject %s, %w", sd.Subject.ID, err)
		}

		plotPath := filepath.Join(dir, fmt.Sprintf("subject_%s.html", sd.Subject.ID))
		if err := a.PlotRun(plotPath); err != nil {
			return fmt.Errorf("unable to plot subject %s, %w", sd.Subject.ID, err)
		}
		slog.Info("plot written", "subject", sd.Subject.ID, "path", plotPath)
	}
	return nil
}

// watchDataset re-runs the analysis on every write to the dataset file
// until ctx is cancelled. A failed run keeps the previous outputs in
// place.
func watchDataset(ctx context.Context, cfg *Config, dataPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dataPath); err != nil {
		return err
	}
	slog.Info("watching dataset", "path", dataPath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// editors often save via rename, so catch creates as well
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if err := run(cfg, dataPath); err != nil {
				slog.Error("analysis failed, keeping previous outputs", "error", err)
			}

			// re-add in case an atomic save replaced the inode
			_ = watcher.Add(dataPath)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}
