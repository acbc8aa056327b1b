// Package act groups consecutive scenes into acts by dialogue volume.
package act

import (
	"errors"
	"fmt"

	"github.com/kittclouds/scenekitt/pkg/scene"
)

// DefaultBudget is the usual number of events per act.
const DefaultBudget = 5000

// ErrInvalidBudget is returned for a non-positive act budget.
var ErrInvalidBudget = errors.New("act: budget must be positive")

// Act is an ordered run of whole scenes. It serializes as a list of scenes.
type Act []scene.Scene

// Len sums the content length of the act's scenes.
func (a Act) Len() int {
	n := 0
	for _, s := range a {
		n += s.Len()
	}
	return n
}

// Divide groups scenes into acts in one forward pass. An act closes as soon
// as its summed content length reaches budget; the trailing act may fall
// short. Scenes are never split.
func Divide(scenes []scene.Scene, budget int) ([]Act, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, budget)
	}

	var acts []Act
	var current Act
	total := 0
	for _, s := range scenes {
		current = append(current, s)
		total += s.Len()
		if total >= budget {
			acts = append(acts, current)
			current = nil
			total = 0
		}
	}
	if len(current) > 0 {
		acts = append(acts, current)
	}
	return acts, nil
}

// Index maps each scene position to the act holding it.
func Index(acts []Act) []int {
	var out []int
	for i, a := range acts {
		for range a {
			out = append(out, i)
		}
	}
	return out
}
