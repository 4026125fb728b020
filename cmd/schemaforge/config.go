package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names shared by the describe and produce subcommands,
// allowing callers to customize flag names while keeping sensible defaults
// via [NewConfig].
type Flags struct {
	FromSchema string
	JSONSchema string
	Count      string
	Seed       string
}

// Config holds CLI flag values shared by the describe and produce
// subcommands.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags].
type Config struct {
	Flags Flags

	FromSchema bool
	JSONSchema bool
	Count      int
	Seed       int64
}

// NewConfig returns a new [Config] with default flag names and values.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			FromSchema: "from-schema",
			JSONSchema: "json-schema",
			Count:      "n",
			Seed:       "seed",
		},
		Count: 1,
	}
}

// RegisterDescribeFlags adds the flags relevant to the describe subcommand.
func (c *Config) RegisterDescribeFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.FromSchema, c.Flags.FromSchema, false,
		"treat input as a JSON Schema document instead of data")
	flags.BoolVar(&c.JSONSchema, c.Flags.JSONSchema, false,
		"emit a JSON Schema document instead of pretty text")
}

// RegisterProduceFlags adds the flags relevant to the produce subcommand.
func (c *Config) RegisterProduceFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.FromSchema, c.Flags.FromSchema, false,
		"treat input as a JSON Schema document instead of data")
	flags.IntVarP(&c.Count, c.Flags.Count, "n", c.Count,
		"number of values to generate")
	flags.Int64Var(&c.Seed, c.Flags.Seed, 0,
		"random seed (0 picks a time-derived seed)")
}

// RegisterCompletions registers shell completions for the shared flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.FromSchema, c.Flags.JSONSchema, c.Flags.Count, c.Flags.Seed} {
		if cmd.Flags().Lookup(flag) == nil {
			continue
		}

		err := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}
