// Package main provides the CLI entry point for schemaforge, a tool that
// infers JSON Schema from example data and generates synthetic data from
// JSON Schema.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/schemaforge/diag"
	"go.jacobcolvin.com/schemaforge/generate"
	"go.jacobcolvin.com/schemaforge/infer"
	"go.jacobcolvin.com/schemaforge/log"
	"go.jacobcolvin.com/schemaforge/parse"
	"go.jacobcolvin.com/schemaforge/profile"
	"go.jacobcolvin.com/schemaforge/render"
	"go.jacobcolvin.com/schemaforge/schema"
	"go.jacobcolvin.com/schemaforge/version"
)

func main() {
	cfg := NewConfig()
	logCfg := log.NewConfig()
	profileCfg := profile.NewConfig()
	profiler := profileCfg.NewProfiler()

	rootCmd := &cobra.Command{
		Use:           "schemaforge",
		Short:         "Infer JSON Schema from example data, and generate data from JSON Schema",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Stop()
		},
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe the schema of JSON or JSON-Lines data read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDescribe(cfg, logCfg)
		},
	}
	cfg.RegisterDescribeFlags(describeCmd.Flags())

	produceCmd := &cobra.Command{
		Use:   "produce",
		Short: "Generate synthetic JSON data from a schema inferred or parsed from stdin",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runProduce(cfg, logCfg)
		},
	}
	cfg.RegisterProduceFlags(produceCmd.Flags())

	rootCmd.AddCommand(describeCmd, produceCmd)

	completionErr := cfg.RegisterCompletions(describeCmd)
	if completionErr == nil {
		completionErr = cfg.RegisterCompletions(produceCmd)
	}

	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newSink builds the diagnostic [diag.Sink] used by both subcommands:
// stderr with a "Warning: " prefix, forwarding each warning into the
// structured log handler too.
func newSink(logCfg *log.Config) (diag.Sink, error) {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("building log handler: %w", err)
	}

	return &diag.WriterSink{W: os.Stderr, Logger: slog.New(handler)}, nil
}

func runDescribe(cfg *Config, logCfg *log.Config) error {
	sink, err := newSink(logCfg)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	s, err := schemaFromInput(data, cfg.FromSchema, sink)
	if err != nil {
		return err
	}

	if cfg.JSONSchema {
		out, err := render.Marshal(s, "  ")
		if err != nil {
			return err
		}

		_, err = os.Stdout.Write(out)

		return err
	}

	_, err = fmt.Fprintln(os.Stdout, render.Pretty(s))

	return err
}

func runProduce(cfg *Config, logCfg *log.Config) error {
	sink, err := newSink(logCfg)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	s, err := schemaFromInput(data, cfg.FromSchema, sink)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic data generation, not cryptographic.

	values, err := generate.Produce(s, cfg.Count, rng)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling generated values: %w", err)
	}

	_, err = os.Stdout.Write(append(out, '\n'))

	return err
}

// schemaFromInput builds a [schema.Schema] from raw stdin bytes, either by
// parsing data as a JSON Schema document (fromSchema) or by decoding it as
// JSON/JSON-Lines data and folding it through the inference algebra.
func schemaFromInput(data []byte, fromSchema bool, sink diag.Sink) (schema.Schema, error) {
	if fromSchema {
		return parse.Parse(data, sink)
	}

	values, err := infer.DecodeJSONLines(bytes.NewReader(data))
	if err != nil {
		return schema.Schema{}, fmt.Errorf("decoding input: %w", err)
	}

	s, warnings := infer.InferStream(values)
	for _, w := range warnings {
		sink.Warn(w)
	}

	return s, nil
}
