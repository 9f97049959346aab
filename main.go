package main

import (
	"call-analysis/batch"
	"call-analysis/config"
	"call-analysis/formatter"
	"call-analysis/logging"
	"call-analysis/metrics"
	"call-analysis/models"
	"call-analysis/server"
	"call-analysis/store"
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sirupsen/logrus"
)

func main() {
	// Define flags
	input := flag.String("input", "", "Comma-separated input CSV files")
	format := flag.String("format", "text", "Output format: text|json|csv|xlsx")
	output := flag.String("output", "", "Output file (required for xlsx; stdout otherwise)")
	concurrency := flag.Int("concurrency", 4, "Maximum files analyzed at once (0 = unlimited)")
	serve := flag.Bool("serve", false, "Run the HTTP upload API instead of analyzing files")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")

	// Parse command-line flags
	flag.Parse()

	if *serve {
		os.Exit(runServer())
	}

	logger := logging.New(logging.Config{Level: *logLevel, Format: "text", Output: os.Stderr})

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.WithField("addr", *metricsAddr).Info("metrics server listening")
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				logger.WithError(err).Error("metrics server error")
			}
		}()
	}

	// Validate required input flag
	paths := splitPaths(*input)
	if len(paths) == 0 {
		fmt.Println("Error: -input flag is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true, "xlsx": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv, xlsx (got: %s)\n", *format)
		os.Exit(1)
	}
	if *format == "xlsx" && *output == "" {
		fmt.Println("Error: -output is required for xlsx format")
		os.Exit(1)
	}

	results, err := batch.AnalyzeFiles(context.Background(), paths, *concurrency)
	if err != nil {
		logger.WithError(err).Error("analysis failed")
		os.Exit(1)
	}

	if err := writeResults(results, *format, *output); err != nil {
		logger.WithError(err).Error("writing results failed")
		os.Exit(1)
	}

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "call_analysis"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			logger.WithError(err).Error("pushing to Pushgateway failed")
		} else {
			logger.Info("metrics pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		logger.Info("process kept alive for metric scraping, press Ctrl+C to exit")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Give a scraper a moment before a batch run exits.
		time.Sleep(100 * time.Millisecond)
	}
}

func runServer() int {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Error("failed to load configuration")
		return 1
	}

	logger := logging.New(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  os.Stdout,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, logger, store.NewResults()).Run(ctx); err != nil {
		logger.WithError(err).Error("server error")
		return 1
	}
	return 0
}

func writeResults(results []batch.FileResult, format, output string) error {
	if format == "xlsx" {
		inputs := make([]string, len(results))
		for i, fr := range results {
			inputs[i] = fr.Path
		}
		for i, path := range xlsxPaths(output, inputs) {
			if err := writeXLSXFile(results[i], path); err != nil {
				return err
			}
		}
		return nil
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}
	return writeReport(w, results, format)
}

// writeReport renders text, json or csv output. Several inputs in json form
// a single object keyed by input path so the output stays one document.
func writeReport(w io.Writer, results []batch.FileResult, format string) error {
	if format == "json" && len(results) > 1 {
		byPath := make(map[string]*models.Analysis, len(results))
		for _, fr := range results {
			byPath[fr.Path] = fr.Result
		}
		_, err := fmt.Fprintln(w, formatter.FormatJSONFiles(byPath))
		return err
	}

	for _, fr := range results {
		if len(results) > 1 {
			fmt.Fprintf(w, "== %s\n", fr.Path)
		}
		var err error
		switch format {
		case "json":
			_, err = fmt.Fprintln(w, formatter.FormatJSON(fr.Result))
		case "csv":
			_, err = fmt.Fprint(w, formatter.FormatCSV(fr.Result))
		default: // "text"
			_, err = fmt.Fprint(w, formatter.FormatText(fr.Result))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeXLSXFile(fr batch.FileResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return formatter.WriteXLSX(fr.Result, f)
}

// xlsxPaths derives one workbook name per input when several files are
// analyzed. Inputs sharing a base name also get their position appended.
func xlsxPaths(output string, inputs []string) []string {
	if len(inputs) == 1 {
		return []string{output}
	}

	stem := func(p string) string {
		return strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	seen := make(map[string]int, len(inputs))
	for _, in := range inputs {
		seen[stem(in)]++
	}

	ext := filepath.Ext(output)
	base := strings.TrimSuffix(output, ext)
	paths := make([]string, len(inputs))
	for i, in := range inputs {
		name := stem(in)
		if seen[name] > 1 {
			name = fmt.Sprintf("%s-%d", name, i+1)
		}
		paths[i] = base + "-" + name + ext
	}
	return paths
}

func splitPaths(s string) []string {
	var paths []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
