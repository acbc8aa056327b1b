package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/scenekitt/internal/store"
	"github.com/kittclouds/scenekitt/pkg/act"
	"github.com/kittclouds/scenekitt/pkg/corpus"
	"github.com/kittclouds/scenekitt/pkg/scene"
	"github.com/kittclouds/scenekitt/pkg/script"
)

type segmentOptions struct {
	rule       string
	inactivity int
	char       int
	location   int
	acts       bool
	budget     int
	outDir     string
}

func newSegmentCmd(a *app) *cobra.Command {
	var opts segmentOptions

	cmd := &cobra.Command{
		Use:   "segment <script.json> [meta.json]",
		Short: "Split a script into scenes with one rule",
		Long: `Split a script into scenes with one rule.

Rules:
  location       a new scene at every location change
  constellation  a new scene on significant cast turnover (--inactivity)
  combined       cast turnover, weighted by recent location changes
                 (--char, --location)

Thresholds default to the configuration. With --acts the scenes are also
grouped into acts of about --budget events.

Examples:
  scenekitt segment data-ff6.json meta-ff6.json
  scenekitt segment data-ff6.json meta-ff6.json --rule constellation --inactivity 50
  scenekitt segment data-ff6.json meta-ff6.json --rule combined --acts --format json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.segment(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.rule, "rule", "r", "location", "segmentation rule: location, constellation or combined")
	cmd.Flags().IntVar(&opts.inactivity, "inactivity", 0, "constellation inactivity window (default: first configured threshold)")
	cmd.Flags().IntVar(&opts.char, "char", 0, "combined char threshold (default from config)")
	cmd.Flags().IntVar(&opts.location, "location", 0, "combined location threshold (default from config)")
	cmd.Flags().BoolVar(&opts.acts, "acts", false, "group scenes into acts")
	cmd.Flags().IntVar(&opts.budget, "budget", 0, "events per act (default from config)")
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "", "directory for result documents")
	return cmd
}

func (a *app) segment(cmd *cobra.Command, args []string, opts segmentOptions) error {
	c, err := a.loadCorpus(args)
	if err != nil {
		return err
	}

	rule, err := a.buildRule(opts)
	if err != nil {
		return err
	}

	scenes, err := scene.Segment(c.Events, c.Aliases, rule)
	if err != nil {
		return err
	}
	a.logger.Info("segmented", "corpus", c.Name, "rule", rule.Name(), "events", len(c.Events), "scenes", len(scenes))

	var acts []act.Act
	var actIndex []int
	budget := opts.budget
	if budget == 0 {
		budget = a.cfg.ActBudget
	}
	if opts.acts {
		if acts, err = act.Divide(scenes, budget); err != nil {
			return err
		}
		actIndex = act.Index(acts)
		a.logger.Debug("divided acts", "budget", budget, "acts", len(acts))
	}

	if err := a.saveRun(c.Name, rule, scenes, actIndex, budget); err != nil {
		return err
	}

	name := c.Name + "_" + rule.Name()
	if err := a.writeResults(opts.outDir, name, scenes, acts); err != nil {
		return err
	}

	var doc any = scenes
	if opts.acts {
		doc = acts
	}
	done, err := writeDoc(cmd.OutOrStdout(), a.format, doc)
	if err != nil || done {
		return err
	}
	title := fmt.Sprintf("%s: %d scenes (%s)", c.Name, len(scenes), rule.Name())
	if opts.acts {
		title += fmt.Sprintf(", %d acts", len(acts))
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), sceneTable(title, scenes, actIndex))
	return err
}

func (a *app) loadCorpus(args []string) (*corpus.Corpus, error) {
	dataPath, err := a.path(args[0])
	if err != nil {
		return nil, err
	}
	metaPath := ""
	if len(args) > 1 {
		if metaPath, err = a.path(args[1]); err != nil {
			return nil, err
		}
	}

	c, err := corpus.Load(a.fsys, dataPath, metaPath, script.DecodeOptions{
		Strict: a.cfg.Strict,
		Logger: a.logger,
	})
	if err != nil {
		return nil, err
	}
	if len(c.Malformed) > 0 {
		a.logger.Warn("malformed records", "corpus", c.Name, "count", len(c.Malformed))
	}
	a.logger.Debug("loaded corpus", "corpus", c.Name, "events", len(c.Events), "aliases", c.Aliases.Size())
	return c, nil
}

func (a *app) buildRule(opts segmentOptions) (scene.Rule, error) {
	var rule scene.Rule
	switch opts.rule {
	case "location":
		rule = scene.ByLocation()
	case "constellation":
		window := opts.inactivity
		if window == 0 {
			window = a.cfg.InactivityThresholds[0]
		}
		rule = scene.ByConstellation(window)
	case "combined":
		char, location := opts.char, opts.location
		if char == 0 {
			char = a.cfg.CharThreshold
		}
		if location == 0 {
			location = a.cfg.LocationThreshold
		}
		rule = scene.Combined(char, location)
	default:
		return nil, fmt.Errorf("unknown rule %q", opts.rule)
	}
	return rule, rule.Validate()
}

// saveRun stores the run when a database is configured. actIndex may be nil.
func (a *app) saveRun(corpusName string, rule scene.Rule, scenes []scene.Scene, actIndex []int, budget int) error {
	s, err := a.openStore(false)
	if err != nil || s == nil {
		return err
	}
	defer s.Close()

	run, records := store.NewRun(corpusName, rule, scenes)
	if err := s.CreateRun(run, records); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	if actIndex != nil {
		if err := s.AssignActs(run.ID, budget, actIndex); err != nil {
			return fmt.Errorf("save acts: %w", err)
		}
	}
	a.logger.Info("saved run", "id", run.ID, "rule", run.Rule)
	return nil
}

// writeResults writes name.<ext> (and name_acts.<ext> when acts is not nil)
// into dir. It does nothing when dir is empty.
func (a *app) writeResults(dir, name string, scenes []scene.Scene, acts []act.Act) error {
	if dir == "" {
		return nil
	}
	dir, err := a.path(dir)
	if err != nil {
		return err
	}
	f := corpus.FormatJSON
	if a.format == "yaml" || a.format == "yml" {
		f = corpus.FormatYAML
	}

	p, err := corpus.WriteResult(a.fsys, dir, name, scenes, f)
	if err != nil {
		return err
	}
	a.logger.Info("wrote scenes", "path", p)

	if acts != nil {
		p, err := corpus.WriteResult(a.fsys, dir, name+"_acts", acts, f)
		if err != nil {
			return err
		}
		a.logger.Info("wrote acts", "path", p)
	}
	return nil
}
