// Package pipeline processes one file end to end: discover marked units,
// resolve annotations through the cache or the generation gateway, and
// optionally rewrite the file in place.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/shrynx/docullim/internal/cache"
	"github.com/shrynx/docullim/internal/config"
	"github.com/shrynx/docullim/internal/fileutil"
	"github.com/shrynx/docullim/internal/gateway"
	"github.com/shrynx/docullim/internal/logging"
	"github.com/shrynx/docullim/internal/rewrite"
	"github.com/shrynx/docullim/internal/source"
)

// Result maps unit names to their final annotation text for one file.
type Result map[string]string

// Options carries the collaborators a file run needs.
type Options struct {
	Config *config.Config
	Cache  *cache.Store // nil degrades every lookup to a miss
	Gen    gateway.Generator
	Write  bool
}

// ProcessFile resolves annotations for every marked unit in the file and, in
// write mode, persists the rewritten source atomically. The result is
// returned in either mode so callers can report without mutating files.
//
// Generation failures never fail the file: they become inline error text,
// cached like any other annotation so a later reset retries them.
func ProcessFile(ctx context.Context, path string, opts Options) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	tree, err := source.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()

	// A tree with syntax errors cannot be resolved or rewritten reliably;
	// abandon the file before any generation spend.
	if tree.HasError() {
		return nil, fmt.Errorf("failed to parse %s: source contains syntax errors", path)
	}

	units := tree.Units()
	if len(units) == 0 {
		return Result{}, nil
	}

	result := make(Result, len(units))
	for _, unit := range units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result[unit.Name] = annotate(ctx, unit, opts)
	}

	if opts.Write && len(result) > 0 {
		if err := rewriteFile(path, tree, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// annotate produces the annotation for one unit: cache hit, or generation
// followed by a cache store.
func annotate(ctx context.Context, unit source.Unit, opts Options) string {
	prompt := opts.Config.PromptFor(unit.Tag)
	canonical := source.Canonicalize(unit.RawSource)
	key := cache.Key(canonical, prompt)

	if doc, ok := opts.Cache.Get(key); ok {
		logging.Debug("cache hit", "unit", unit.Name)
		return doc
	}

	doc, err := opts.Gen.Generate(ctx, gateway.Request{
		Source: canonical,
		Model:  opts.Config.Model,
		Prompt: prompt,
	})
	if err != nil {
		logging.Warn("generation failed", "unit", unit.Name, "error", err)
		doc = fmt.Sprintf("Error generating documentation: %v", err)
	}

	opts.Cache.Put(key, doc)
	return doc
}

func rewriteFile(path string, tree *source.Tree, mods Result) error {
	updated, warnings, err := rewrite.Apply(tree, mods)
	for _, w := range warnings {
		logging.Warn("rewrite warning", "file", path, "detail", w.String())
	}
	if err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	if updated == string(tree.Source()) {
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, []byte(updated)); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	return nil
}
