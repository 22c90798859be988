package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rulekit/pkg/loader"
)

func newValidateCmd(g *globalOptions) *cobra.Command {
	var (
		schemaPath string
		dataPath   string
		onlyErrors bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a data document against a schema file",
		Long: `Validates a JSON or YAML data document and prints the per-field results
as JSON. The exit code is 1 when any field is invalid.

Use "--data -" to read JSON from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			obj, err := loader.LoadFile(schemaPath)
			if err != nil {
				return err
			}
			s, err := a.validator.Parse(obj)
			if err != nil {
				return fmt.Errorf("%s: %w", schemaPath, err)
			}

			var values map[string]any
			if dataPath == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				values, err = loader.DecodeValues(data, loader.FormatJSON)
				if err != nil {
					return err
				}
			} else if values, err = loader.LoadValuesFile(dataPath); err != nil {
				return err
			}

			results, err := a.validator.Validate(cmd.Context(), s, values)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			var out any = results
			if onlyErrors {
				out = results.Errors()
			}
			if err := enc.Encode(out); err != nil {
				return err
			}

			if !results.Valid() {
				return ErrInvalidInput
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "schema file (.json, .yaml, .yml)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", `data file (.json, .yaml, .yml) or "-" for stdin`)
	cmd.Flags().BoolVar(&onlyErrors, "errors", false, "print only the error messages of failed fields")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}
