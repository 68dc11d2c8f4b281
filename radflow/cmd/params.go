package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/radflow/params"
)

func newParamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params [namespace]",
		Short: "List every recognised parameter with its default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			namespaces := params.Namespaces
			if len(args) == 1 {
				ns := params.Namespace(args[0])
				if !isNamespace(ns) {
					return fmt.Errorf("unknown namespace %q", args[0])
				}
				namespaces = []params.Namespace{ns}
			}

			return printSchema(cmd.OutOrStdout(), params.NewSchema("<root>"), namespaces)
		},
	}
}

func isNamespace(ns params.Namespace) bool {
	for _, n := range params.Namespaces {
		if n == ns {
			return true
		}
	}
	return false
}

func printSchema(out io.Writer, s *params.Schema, namespaces []params.Namespace) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, ns := range namespaces {
		fmt.Fprintf(w, "%s:\n", ns)

		for _, f := range s.Catalog(ns).Fields() {
			def := params.FormatValue(f.Default)
			if l, ok := f.Default.([]any); ok {
				items := make([]string, len(l))
				for i, v := range l {
					items[i] = params.FormatValue(v)
				}
				def = "[" + strings.Join(items, " ") + "]"
			}
			if f.Derived {
				def = "(derived)"
			}

			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", f.Name, f.Kind, f.Shape, def)
		}
	}

	return w.Flush()
}
