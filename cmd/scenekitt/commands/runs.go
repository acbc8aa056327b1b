package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/scenekitt/internal/store"
	"github.com/kittclouds/scenekitt/pkg/scene"
)

func newRunsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage stored segmentation runs",
		Long: `Manage segmentation runs stored in the SQLite database.

Runs are saved by segment and sweep whenever a database is configured
(--db or SCENEKITT_DATABASE).`,
	}
	cmd.AddCommand(newRunsListCmd(a), newRunsShowCmd(a), newRunsDeleteCmd(a))
	return cmd
}

func newRunsListCmd(a *app) *cobra.Command {
	var corpusName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(true)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(corpusName)
			if err != nil {
				return err
			}
			if runs == nil {
				runs = []*store.Run{}
			}

			done, err := writeDoc(cmd.OutOrStdout(), a.format, runs)
			if err != nil || done {
				return err
			}
			if len(runs) == 0 {
				printf(cmd.OutOrStdout(), "No runs stored.\n")
				return nil
			}
			printf(cmd.OutOrStdout(), "%s", runTable(runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusName, "corpus", "", "only runs of this corpus")
	return cmd
}

// runDoc is a run together with its scenes.
type runDoc struct {
	Run    *store.Run           `json:"run" yaml:"run"`
	Scenes []*store.SceneRecord `json:"scenes" yaml:"scenes"`
}

func newRunsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the scenes of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(true)
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.GetRun(args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}
			records, err := s.ListScenes(run.ID)
			if err != nil {
				return err
			}

			done, err := writeDoc(cmd.OutOrStdout(), a.format, runDoc{Run: run, Scenes: records})
			if err != nil || done {
				return err
			}

			scenes := make([]scene.Scene, len(records))
			var acts []int
			if run.ActBudget > 0 {
				acts = make([]int, len(records))
			}
			for i, rec := range records {
				scenes[i] = rec.Scene()
				if acts != nil {
					acts[i] = rec.Act
				}
			}
			title := fmt.Sprintf("%s: %d scenes (%s)", run.Corpus, run.SceneCount, run.Rule)
			printf(cmd.OutOrStdout(), "%s", sceneTable(title, scenes, acts))
			return nil
		},
	}
}

func newRunsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run-id>",
		Short: "Delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(true)
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.GetRun(args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}
			if err := s.DeleteRun(run.ID); err != nil {
				return err
			}
			a.logger.Info("deleted run", "id", run.ID)
			printf(cmd.OutOrStdout(), "Deleted run %s\n", run.ID)
			return nil
		},
	}
}
