// Package batch analyzes several call files concurrently.
package batch

import (
	"call-analysis/analyzer"
	"call-analysis/models"
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
)

// FileResult is the analysis of one input file.
type FileResult struct {
	Path   string
	Result *models.Analysis
}

// AnalyzeFiles analyzes every path with at most limit analyses in flight
// (limit <= 0 means no bound). Results keep the order of paths. The first
// failure cancels the remaining work and no results are returned.
func AnalyzeFiles(ctx context.Context, paths []string, limit int) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := analyzeFile(path)
			if err != nil {
				return err
			}
			results[i] = FileResult{Path: path, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func analyzeFile(path string) (*models.Analysis, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	result, err := analyzer.AnalyzeReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
