package stripcli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grafana/strip-comments/internal/stripper"
)

func dialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the supported comment dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DIALECT\tMARKERS")
			for _, d := range stripper.Dialects {
				fmt.Fprintf(w, "%s\t%s\n", d, d.Markers())
			}
			return w.Flush()
		},
	}
}
