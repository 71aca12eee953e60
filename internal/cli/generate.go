package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shrynx/docullim/internal/cache"
	"github.com/shrynx/docullim/internal/config"
	"github.com/shrynx/docullim/internal/fileutil"
	"github.com/shrynx/docullim/internal/gateway"
	"github.com/shrynx/docullim/internal/logging"
	"github.com/shrynx/docullim/internal/pipeline"
)

func RunGenerate(cmd *cobra.Command, args []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to read --verbose flag: %w", err)
	}
	logging.Setup(verbose)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to read --config flag: %w", err)
	}
	cfg := config.Load(configPath)

	if model, err := cmd.Flags().GetString("model"); err != nil {
		return fmt.Errorf("failed to read --model flag: %w", err)
	} else if model != "" {
		cfg.Model = model
	}
	if concurrency, err := cmd.Flags().GetInt("concurrency"); err != nil {
		return fmt.Errorf("failed to read --concurrency flag: %w", err)
	} else if concurrency > 0 {
		cfg.MaxConcurrency = concurrency
	}

	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to read --write flag: %w", err)
	}
	resetCache, err := cmd.Flags().GetBool("reset-cache")
	if err != nil {
		return fmt.Errorf("failed to read --reset-cache flag: %w", err)
	}

	workdir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to resolve working directory: %w", err)
	}
	cacheDir := cache.Dir(workdir)

	if resetCache {
		if err := cache.Reset(cacheDir); err != nil {
			return fmt.Errorf("failed to reset cache: %w", err)
		}
		logging.Info("cache reset: previous entries removed")
	}

	ignoreRules, err := LoadIgnoreRules(workdir)
	if err != nil {
		return err
	}
	files := CollectFiles(args, ignoreRules)
	if len(files) == 0 {
		return fmt.Errorf("no files found for the given patterns")
	}

	store, err := cache.Open(cacheDir)
	if err != nil {
		logging.Warn("cache unavailable, every lookup will miss", "dir", cacheDir, "error", err)
		store = nil
	}
	defer store.Close()

	opts := pipeline.Options{
		Config: cfg,
		Cache:  store,
		Gen:    gateway.NewOpenAI(),
		Write:  write,
	}

	var mu sync.Mutex
	allDocs := make(map[string]pipeline.Result)
	failures := 0

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.MaxConcurrency)
	for _, file := range files {
		g.Go(func() error {
			docs, err := pipeline.ProcessFile(ctx, file, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// One bad file never aborts the rest of the run.
				logging.Error("failed to process file", "file", file, "error", err)
				failures++
			}
			if len(docs) > 0 {
				allDocs[file] = docs
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := fileutil.PrintJSON(allDocs); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}
	if failures > 0 {
		logging.Warn("some files were skipped", "count", failures)
	}
	return nil
}
