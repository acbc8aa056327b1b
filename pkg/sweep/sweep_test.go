package sweep

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/scenekitt/pkg/alias"
	"github.com/kittclouds/scenekitt/pkg/scene"
	"github.com/kittclouds/scenekitt/pkg/script"
)

func testStream() []script.Event {
	var events []script.Event
	speakers := []string{"Terra", "Locke", "Edgar", "Sabin", "Celes", "Imperial", "Kefka"}
	places := []string{"Narshe", "Figaro", "Zozo"}
	for i := 0; i < 400; i++ {
		if i%37 == 0 {
			events = append(events, script.LocationChange(places[(i/37)%len(places)]))
		}
		s := speakers[(i*i+3*i)%len(speakers)]
		events = append(events, script.Line(s, s))
	}
	return events
}

func TestStandardJobs(t *testing.T) {
	jobs := Standard([]int{25, 50, 100}, 3, 50)
	require.Len(t, jobs, 5)
	assert.Equal(t, "location", jobs[0].Name)
	assert.Equal(t, "constellation-50", jobs[2].Rule.Name())
	assert.Equal(t, "combined", jobs[4].Name)
}

func TestRunMatchesSequential(t *testing.T) {
	events := testStream()
	table := alias.NewTable([]alias.Entry{{Name: "Celes", Aliases: []string{"Imperial"}}})
	jobs := Standard([]int{5, 10, 25}, 3, 20)

	results := Run(context.Background(), events, table, jobs)
	require.NoError(t, Err(results))
	require.Len(t, results, len(jobs))

	for i, r := range results {
		want, err := scene.Segment(events, table, jobs[i].Rule)
		require.NoError(t, err)
		assert.Equal(t, want, r.Scenes, r.Name)
	}
	assert.Equal(t, "constellation-5", results[1].Name)
}

func TestRunReportsInvalidRule(t *testing.T) {
	jobs := []Job{{Rule: scene.ByLocation()}, {Rule: scene.ByConstellation(0)}}

	results := Run(context.Background(), testStream(), nil, jobs)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, scene.ErrInvalidThreshold)
	assert.ErrorIs(t, Err(results), scene.ErrInvalidThreshold)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, testStream(), nil, Standard([]int{25}, 3, 50))
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRunReportsMissingRule(t *testing.T) {
	jobs := []Job{{Rule: scene.ByLocation()}, {}, {Name: "broken"}}

	results := Run(context.Background(), testStream(), nil, jobs)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, ErrNoRule)
	assert.Equal(t, "job-1", results[1].Name)
	assert.ErrorIs(t, results[2].Err, ErrNoRule)
	assert.Equal(t, "broken", results[2].Name)
	assert.ErrorIs(t, Err(results), ErrNoRule)
}
