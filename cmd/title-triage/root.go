package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ironsheep/title-triage/internal/config"
	"github.com/ironsheep/title-triage/internal/logger"
	"github.com/ironsheep/title-triage/internal/ocr"
	"github.com/ironsheep/title-triage/internal/report"
	"github.com/ironsheep/title-triage/internal/triage"
)

// rootOptions holds flags that are not part of the layered configuration.
type rootOptions struct {
	configFile string
	debug      bool
	table      bool
	reportPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "title-triage [flags] <folder>...",
		Short: "Sort screenshots into folders named after their title text",
		Long: `title-triage reads the title strip at the top of every image in the given
folders, recognizes its text and copies each image into <res-path>/<title>/.
Images whose title cannot be read or routed are copied into <res-path>/error/.

Press Ctrl+C to stop after the current image.`,
		Args:         cobra.MinimumNArgs(1),
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriage(cmd, opts, args)
		},
	}

	cmd.SetVersionTemplate(fmt.Sprintf(
		"title-triage %s\n  Build time: %s\n  Git commit: %s\n", Version, BuildTime, GitCommit))

	flags := cmd.Flags()
	flags.StringP("res-path", "o", config.DefaultOutputRoot, "destination root for category and error folders")
	flags.String("lang", config.DefaultLanguage, "Tesseract language code")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-dir", config.DefaultLogDir, `directory for the run log file ("" disables it)`)
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./title-triage.yaml or ./config/title-triage.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.table, "table", false, "print a per-category table after the summary")
	flags.StringVar(&opts.reportPath, "report", "", "write a YAML run report to this file")

	return cmd
}

func runTriage(cmd *cobra.Command, opts *rootOptions, folders []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(config.Options{
		File:  opts.configFile,
		Flags: cmd.Flags(),
		Debug: opts.debug,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, logPath, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		Dir:         cfg.Log.Dir,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if logPath != "" {
		log.Info("Logging initialized", logger.String("file", logPath))
	}
	log.Debug("title-triage starting",
		logger.String("version", Version),
		logger.String("commit", GitCommit),
	)

	tessdataDir, err := provisionModels(cfg.OCR, log)
	if err != nil {
		return err
	}

	recognizer, err := ocr.NewTesseract(ocr.Options{
		Language:    cfg.OCR.Language,
		TessdataDir: tessdataDir,
		Preprocess:  cfg.OCR.Preprocess,
	})
	if err != nil {
		log.Error("Cannot start text recognizer", logger.Error(err))
		return err
	}
	defer recognizer.Close()
	log.Debug("Text recognizer ready", logger.String("tesseract", recognizer.Version()))

	stopWatch := context.AfterFunc(ctx, func() {
		log.Warn("Termination signal received, stopping after the current image")
	})
	defer stopWatch()

	batch := triage.NewBatch(recognizer, cfg.Output.Root, triage.WithLogger(log))

	agg := triage.NewStats()
	results := make([]report.FolderResult, 0, len(folders))
	missing := 0

	for _, folder := range folders {
		stats, err := batch.Run(ctx, folder)

		result := report.FolderResult{Path: folder, Stats: stats, Err: err}
		switch {
		case err == nil:
			result.Status = report.StatusCompleted
			agg.Merge(stats)
		case errors.Is(err, triage.ErrInputFolderNotFound):
			result.Status = report.StatusNotFound
			missing++
		case errors.Is(err, triage.ErrInterrupted):
			result.Status = report.StatusInterrupted
			log.Warn("Processing interrupted", logger.String("folder", folder))
		default:
			result.Status = report.StatusFailed
			log.Error("Folder processing failed", logger.String("folder", folder), logger.Error(err))
		}
		results = append(results, result)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.FinalLine(agg))
	if opts.table {
		report.WriteTable(out, agg)
	}

	if opts.reportPath != "" {
		doc := report.Build(cfg.Output.Root, agg, results, time.Now())
		if err := report.WriteYAML(opts.reportPath, doc); err != nil {
			log.Error("Cannot write report", logger.String("path", opts.reportPath), logger.Error(err))
		} else {
			log.Info("Report written", logger.String("path", opts.reportPath))
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d input folders not found", missing, len(folders))
	}
	return nil
}

// provisionModels copies model files into the tessdata directory and returns
// the directory the recognizer should use. An empty result leaves Tesseract on
// its system data path.
func provisionModels(cfg config.OCRConfig, log logger.Logger) (string, error) {
	dir := cfg.TessdataDir
	if dir == "" {
		cacheDir, err := ocr.DefaultCacheDir()
		if err != nil {
			return "", err
		}
		dir = cacheDir
	}

	if cfg.ModelSourceDir == "" {
		if ocr.HasModel(dir, cfg.Language) {
			return dir, nil
		}
		return "", nil
	}

	copied, err := ocr.Provision(cfg.ModelSourceDir, dir)
	if err != nil {
		return "", fmt.Errorf("failed to provision models: %w", err)
	}
	if copied > 0 {
		log.Info("Models provisioned",
			logger.String("source", cfg.ModelSourceDir),
			logger.String("tessdata", dir),
			logger.Int("files", copied),
		)
	}
	return dir, nil
}
