package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List registered nodes and their inputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()
		for _, kind := range a.registry.Kinds() {
			n, _ := a.registry.Lookup(kind)
			spec := n.Spec()
			inputs := make([]string, 0, len(spec.Inputs))
			for _, p := range spec.Inputs {
				inputs = append(inputs, fmt.Sprintf("%s:%s", p.Name, p.Type))
			}
			fmt.Fprintf(out, "%-26s %-32s [%s] %s\n", kind, spec.DisplayName, spec.Category, strings.Join(inputs, " "))
		}
		return nil
	},
}
