package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/radflow/datarecording"
)

func newManifestCmd() *cobra.Command {
	var runsOnly bool

	cmd := &cobra.Command{
		Use:   "manifest <file>",
		Short: "List the runs and parameters recorded with configure --record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return err
			}

			reader, err := datarecording.NewReader(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			manifests, err := datarecording.ReadManifests(cmd.Context(), reader)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, m := range manifests {
				fmt.Fprintf(w, "run %s\t%s\t%s\tdesigns=%s\tinstances=%d\n",
					m.Run.RunID, m.Run.Started, m.Run.Root, m.Run.Designs, m.Run.Instances)

				if runsOnly {
					continue
				}

				for _, a := range m.Artifacts {
					fmt.Fprintf(w, "  %s\t%s\t%d bytes\n", a.Kind, a.Path, a.Bytes)
				}

				for _, p := range m.Parameters {
					inst := "-"
					if p.Instance != datarecording.SharedInstance {
						inst = fmt.Sprint(p.Instance)
					}
					fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", p.Namespace, inst, p.Name, p.Value)
				}
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&runsOnly, "runs-only", false, "list the runs without their artifacts and parameters")

	return cmd
}
