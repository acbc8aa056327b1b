package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kittclouds/scenekitt/pkg/act"
	"github.com/kittclouds/scenekitt/pkg/sweep"
)

// sweepRow is the per-rule line of a sweep report.
type sweepRow struct {
	Name   string `json:"name" yaml:"name"`
	Rule   string `json:"rule" yaml:"rule"`
	Scenes int    `json:"scenes" yaml:"scenes"`
	Acts   int    `json:"acts" yaml:"acts"`
}

func newSweepCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "sweep <script.json> [meta.json]",
		Short: "Run every configured rule concurrently",
		Long: `Run the location rule, the constellation rule at every configured
inactivity threshold and the combined rule over one script, concurrently.

Each run is grouped into acts with the configured budget. Scene counts are
printed; with -o one document per run is written as <corpus>_<run>.json.

Examples:
  scenekitt sweep data-ff6.json meta-ff6.json
  SCENEKITT_INACTIVITY_THRESHOLDS=10,20,40 scenekitt sweep data-ff6.json -o results`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCorpus(args)
			if err != nil {
				return err
			}

			jobs := sweep.Standard(a.cfg.InactivityThresholds, a.cfg.CharThreshold, a.cfg.LocationThreshold)
			results := sweep.Run(cmd.Context(), c.Events, c.Aliases, jobs)
			if err := sweep.Err(results); err != nil {
				return err
			}

			rows := make([]sweepRow, 0, len(results))
			for _, r := range results {
				acts, err := act.Divide(r.Scenes, a.cfg.ActBudget)
				if err != nil {
					return err
				}
				if err := a.saveRun(c.Name, r.Rule, r.Scenes, act.Index(acts), a.cfg.ActBudget); err != nil {
					return err
				}
				if err := a.writeResults(outDir, c.Name+"_"+r.Name, r.Scenes, nil); err != nil {
					return err
				}
				a.logger.Debug("sweep run", "name", r.Name, "rule", r.Rule.Name(), "scenes", len(r.Scenes))
				rows = append(rows, sweepRow{Name: r.Name, Rule: r.Rule.Name(), Scenes: len(r.Scenes), Acts: len(acts)})
			}

			done, err := writeDoc(cmd.OutOrStdout(), a.format, rows)
			if err != nil || done {
				return err
			}
			t := newTable("Run", "Rule", "Scenes", "Acts")
			for _, row := range rows {
				t.Row(row.Name, row.Rule, strconv.Itoa(row.Scenes), strconv.Itoa(row.Acts))
			}
			printf(cmd.OutOrStdout(), "%s\n%s\n", titleStyle.Render(c.Name+": "+strconv.Itoa(len(c.Events))+" events"), t.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "directory for result documents")
	return cmd
}
