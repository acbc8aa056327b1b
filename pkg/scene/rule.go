package scene

import (
	"errors"
	"fmt"
)

// ErrInvalidThreshold is returned for non-positive rule parameters.
var ErrInvalidThreshold = errors.New("scene: threshold must be positive")

// ConstellationCast is the cast size a constellation scene must exceed
// before turnover can end it.
const ConstellationCast = 3

// Settings configure the accumulator a rule runs on.
type Settings struct {
	// Window is the inactivity window; 0 disables pruning.
	Window int
	// Locations selects how setting is tracked.
	Locations LocationMode
}

// Rule decides where one scene ends and the next begins.
type Rule interface {
	// Name labels the rule in logs and stored runs.
	Name() string
	// Validate rejects unusable parameters before any event is read.
	Validate() error
	// Settings returns the accumulator configuration the rule needs.
	Settings() Settings
	// SplitAtLocation reports whether a location change arriving while the
	// open scene is non-empty closes it.
	SplitAtLocation() bool
	// SplitAtLine reports whether the line just absorbed opens a new scene.
	SplitAtLine(st Step) bool
}

// LocationRule starts a new scene at every location change.
// The cast is never pruned.
type LocationRule struct{}

// ByLocation returns the location-driven rule.
func ByLocation() LocationRule { return LocationRule{} }

func (LocationRule) Name() string          { return "location" }
func (LocationRule) Validate() error       { return nil }
func (LocationRule) SplitAtLocation() bool { return true }
func (LocationRule) SplitAtLine(Step) bool { return false }

func (LocationRule) Settings() Settings {
	return Settings{Locations: LocationSingle}
}

// ConstellationRule ends a scene on significant cast turnover: after
// pruning, more than ConstellationCast characters remain active and more
// than one character is inactive.
type ConstellationRule struct {
	Inactivity int
}

// ByConstellation returns the cast-turnover rule with the given window.
func ByConstellation(inactivity int) ConstellationRule {
	return ConstellationRule{Inactivity: inactivity}
}

func (r ConstellationRule) Name() string {
	return fmt.Sprintf("constellation-%d", r.Inactivity)
}

func (r ConstellationRule) Validate() error {
	if r.Inactivity <= 0 {
		return fmt.Errorf("%w: inactivity threshold %d", ErrInvalidThreshold, r.Inactivity)
	}
	return nil
}

func (r ConstellationRule) Settings() Settings {
	return Settings{Window: r.Inactivity, Locations: LocationNone}
}

func (ConstellationRule) SplitAtLocation() bool { return false }

func (ConstellationRule) SplitAtLine(st Step) bool {
	return st.Active > ConstellationCast && st.Pruned > 1
}

// CombinedRule ends a scene on large cast turnover, or on moderate turnover
// shortly after a location change. LocationThreshold doubles as the
// inactivity window. Places accumulate per scene and carry over into the
// next one.
type CombinedRule struct {
	CharThreshold     int
	LocationThreshold int
}

// Combined returns the combined rule.
func Combined(charThreshold, locationThreshold int) CombinedRule {
	return CombinedRule{CharThreshold: charThreshold, LocationThreshold: locationThreshold}
}

func (r CombinedRule) Name() string {
	return fmt.Sprintf("combined-%d-%d", r.CharThreshold, r.LocationThreshold)
}

func (r CombinedRule) Validate() error {
	if r.CharThreshold <= 0 {
		return fmt.Errorf("%w: char threshold %d", ErrInvalidThreshold, r.CharThreshold)
	}
	if r.LocationThreshold <= 0 {
		return fmt.Errorf("%w: location threshold %d", ErrInvalidThreshold, r.LocationThreshold)
	}
	return nil
}

func (r CombinedRule) Settings() Settings {
	return Settings{Window: r.LocationThreshold, Locations: LocationSet}
}

func (CombinedRule) SplitAtLocation() bool { return false }

func (r CombinedRule) SplitAtLine(st Step) bool {
	large := st.Active > r.CharThreshold && st.Pruned > r.CharThreshold-1
	moderate := st.Active > r.CharThreshold-1 && st.Pruned > 0 && st.SinceLocation < r.LocationThreshold
	return large || moderate
}
