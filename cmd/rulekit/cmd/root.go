package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rulekit/pkg/config"
)

// ErrInvalidInput is returned by validate when the data fails the schema.
var ErrInvalidInput = errors.New("input does not match the schema")

type globalOptions struct {
	envFile  string
	logLevel string
}

// NewRootCmd builds the rulekit command tree.
func NewRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "rulekit",
		Short: "Schema-driven validation of structured input",
		Long: `rulekit validates JSON and YAML data against rule schemas written in a
compact DSL such as "required|string|min(2)".

Examples:
  rulekit validate --schema signup.yaml --data payload.json
  rulekit rules --kind rule
  rulekit serve`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if g.envFile == "" {
				return nil
			}
			return config.LoadEnv(g.envFile)
		},
	}

	root.PersistentFlags().StringVar(&g.envFile, "env-file", "", "load variables from this .env file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level, overrides RULEKIT_LOG_LEVEL")

	root.AddCommand(newValidateCmd(g), newRulesCmd(g), newServeCmd(g))
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context) int {
	err := NewRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInvalidInput):
		return 1
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
}
