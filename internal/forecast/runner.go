// Package forecast wires the input files, the feature pipeline and the
// snapshot writer into a single batch run.
package forecast

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/farxc/favorita_features/internal/forecast/features"
	"github.com/farxc/favorita_features/internal/forecast/files"
	"github.com/farxc/favorita_features/internal/forecast/types"
	"github.com/farxc/favorita_features/internal/logger"
)

type Config struct {
	// DataDir holds the six input tables.
	DataDir string
	// OutputPath defaults to data/processed_data.csv.
	OutputPath string
	// Encoding of the input files, utf-8 when empty.
	Encoding string
}

type Result struct {
	Rows       int
	Cols       int
	OutputPath string
	Duration   time.Duration
}

type Runner struct {
	cfg       Config
	appLogger *logger.Logger
	pipeline  *features.Pipeline
}

func NewRunner(cfg Config, appLogger *logger.Logger) *Runner {
	if cfg.OutputPath == "" {
		cfg.OutputPath = filepath.Join(types.OutputDir, types.OutputFile)
	}
	return &Runner{
		cfg:       cfg,
		appLogger: appLogger,
		pipeline:  features.NewPipeline(appLogger),
	}
}

// Run loads the inputs, builds the feature table and writes it. Nothing is
// written unless every step succeeds.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	const component = "Runner"
	start := time.Now()

	r.appLogger.Info(component, "Starting feature build: dataDir=%s output=%s", r.cfg.DataDir, r.cfg.OutputPath)

	raw, err := files.LoadTables(r.cfg.DataDir, r.cfg.Encoding, r.appLogger)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load input tables: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	df, err := r.pipeline.Build(raw)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build features: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := files.WriteSnapshot(df, r.cfg.OutputPath, r.appLogger); err != nil {
		return Result{}, err
	}

	rows, cols := df.Dims()
	res := Result{
		Rows:       rows,
		Cols:       cols,
		OutputPath: r.cfg.OutputPath,
		Duration:   time.Since(start),
	}
	r.appLogger.Info(component, "Feature build finished: rows=%d cols=%d duration=%s", res.Rows, res.Cols, res.Duration)
	return res, nil
}
