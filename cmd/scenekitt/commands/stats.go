package commands

import (
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats <script.json> [meta.json]",
		Short: "Print corpus statistics",
		Long: `Print the number of events, lines and distinct characters of a script,
and the characters with the most lines. Aliases are resolved when a meta
file is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCorpus(args)
			if err != nil {
				return err
			}
			st := c.Stats(top)

			done, err := writeDoc(cmd.OutOrStdout(), a.format, st)
			if err != nil || done {
				return err
			}
			printf(cmd.OutOrStdout(), "%s", st.String())
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 10, "number of top speakers to list")
	return cmd
}
