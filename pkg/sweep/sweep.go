// Package sweep runs several segmentation rules concurrently over one
// immutable event stream.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kittclouds/scenekitt/pkg/scene"
	"github.com/kittclouds/scenekitt/pkg/script"
)

// ErrNoRule is reported for a job without a rule.
var ErrNoRule = errors.New("sweep: job has no rule")

// Job is one rule to run.
type Job struct {
	// Name labels the run; defaults to the rule name.
	Name string
	Rule scene.Rule
}

// Result holds the outcome of one job.
type Result struct {
	Name   string
	Rule   scene.Rule
	Scenes []scene.Scene
	Err    error
}

// Standard returns the usual sweep: location, constellation at each window,
// then combined.
func Standard(windows []int, charThreshold, locationThreshold int) []Job {
	jobs := []Job{{Name: "location", Rule: scene.ByLocation()}}
	for _, w := range windows {
		jobs = append(jobs, Job{Rule: scene.ByConstellation(w)})
	}
	jobs = append(jobs, Job{Name: "combined", Rule: scene.Combined(charThreshold, locationThreshold)})
	return jobs
}

// Run executes every job in its own goroutine and returns results in job
// order. Each job segments with its own accumulator; events and names are
// only read. Jobs that have not started when ctx is done report ctx.Err().
func Run(ctx context.Context, events []script.Event, names scene.Normalizer, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		name := job.Name
		if job.Rule == nil {
			if name == "" {
				name = fmt.Sprintf("job-%d", i)
			}
			results[i] = Result{Name: name, Err: fmt.Errorf("%s: %w", name, ErrNoRule)}
			continue
		}
		if name == "" {
			name = job.Rule.Name()
		}
		results[i] = Result{Name: name, Rule: job.Rule}

		wg.Add(1)
		go func(r *Result) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				r.Err = err
				return
			}
			scenes, err := scene.Segment(events, names, r.Rule)
			if err != nil {
				r.Err = fmt.Errorf("%s: %w", r.Name, err)
				return
			}
			r.Scenes = scenes
		}(&results[i])
	}
	wg.Wait()
	return results
}

// Err joins the errors of all failed results.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
