// Command ecgeval scores R-peak detections and wave delineations stored in a
// JSON records file and writes a JSON report.
//
//	ecgeval -config eval.json -input records.json [-workers N] [-out report.json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/ecgkit/internal/config"
	"github.com/katalvlaran/ecgkit/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "ecgeval:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("ecgeval", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "evaluation config (.json); built-in defaults when empty")
	inputPath := flags.String("input", "", "records file (.json)")
	workers := flags.Int("workers", -1, "scoring goroutines; -1 keeps the config value, 0 means GOMAXPROCS")
	outPath := flags.String("out", "", "report file; stdout when empty")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *inputPath == "" {
		return errors.New("-input is required")
	}

	cfg := &config.EvalConfig{}
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *workers >= 0 {
		cfg.Workers = workers
	}

	log, err := logging.New(stderr, cfg.GetLogLevel())
	if err != nil {
		return err
	}
	log.Info("config loaded", "path", *configPath, "strategy", *cfg.WithDefaults().Strategy, "workers", cfg.GetWorkers())

	records, err := readRecords(*inputPath)
	if err != nil {
		return err
	}
	log.Info("records loaded", "path", *inputPath, "records", len(records))

	rep, err := evaluate(ctx, records, cfg, log)
	if err != nil {
		return err
	}
	log.Info("evaluation done",
		"tp", rep.Detection.Count.TP, "fp", rep.Detection.Count.FP, "fn", rep.Detection.Count.FN,
		"sensitivity", rep.Detection.Sensitivity, "precision", rep.Detection.Precision)

	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}
