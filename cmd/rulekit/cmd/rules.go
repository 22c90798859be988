package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rulekit/pkg/registry"
)

type ruleInfo struct {
	Key     string   `json:"key"`
	Kind    string   `json:"kind"`
	Param   string   `json:"param"`
	Aliases []string `json:"aliases,omitempty"`
}

func describe(entries []*registry.Entry, kind string) []ruleInfo {
	out := make([]ruleInfo, 0, len(entries))
	for _, e := range entries {
		if kind != "" && e.Kind.String() != kind {
			continue
		}
		out = append(out, ruleInfo{
			Key:     e.Key,
			Kind:    e.Kind.String(),
			Param:   string(e.ParamType),
			Aliases: e.Aliases,
		})
	}
	return out
}

func newRulesCmd(g *globalOptions) *cobra.Command {
	var (
		kind   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the registered rules and processors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			switch kind {
			case "", "rule", "preprocessor", "postprocessor":
			default:
				return fmt.Errorf("unknown kind %q", kind)
			}
			infos := describe(a.validator.Registry().Entries(), kind)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tKIND\tPARAM\tALIASES")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Key, info.Kind, info.Param, strings.Join(info.Aliases, ", "))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "only list one kind: rule, preprocessor or postprocessor")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
