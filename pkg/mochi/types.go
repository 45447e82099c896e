// Package mochi implements the avatar state and animation engine.
//
// The engine is driven by two closed enumerations: a State (the avatar's
// primary emotion, which selects a baseline face) and an Activity (the
// animation layered on top). A Theme selects the color palette used by
// renderers. The Avatar type is the single source of truth for what is
// currently displayed; the Animator synthesizes per-frame face parameters
// at 40 FPS from the state baseline plus activity waveforms.
package mochi

import "strings"

// State is the avatar's primary emotion.
type State int

const (
	StateHappy State = iota // Default positive state
	StateExcited
	StateWorried
	StateCool
	StateDizzy
	StatePanic
	StateSleepy
	StateShocked

	stateCount
)

var stateNames = [...]string{
	"Happy",
	"Excited",
	"Worried",
	"Cool",
	"Dizzy",
	"Panic",
	"Sleepy",
	"Shocked",
}

// Valid reports whether s is within the defined range.
func (s State) Valid() bool {
	return s >= 0 && s < stateCount
}

// String returns the state name, or "Unknown" if out of range.
func (s State) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return stateNames[s]
}

// LookupState maps a name to a State, case-insensitively.
func LookupState(name string) (State, bool) {
	for i, n := range stateNames {
		if strings.EqualFold(name, n) {
			return State(i), true
		}
	}
	return StateHappy, false
}

// ParseState maps a name to a State, case-insensitively.
// Unrecognized names fall back to StateHappy.
func ParseState(name string) State {
	s, _ := LookupState(name)
	return s
}

// Activity is the animation behavior layered on top of a State.
type Activity int

const (
	ActivityIdle Activity = iota // Gentle breathing
	ActivityShake
	ActivityBounce
	ActivitySpin
	ActivityWiggle
	ActivityNod
	ActivityBlink
	ActivitySnore
	ActivityVibrate

	activityCount
)

var activityNames = [...]string{
	"Idle",
	"Shake",
	"Bounce",
	"Spin",
	"Wiggle",
	"Nod",
	"Blink",
	"Snore",
	"Vibrate",
}

// Valid reports whether a is within the defined range.
func (a Activity) Valid() bool {
	return a >= 0 && a < activityCount
}

// String returns the activity name, or "Unknown" if out of range.
func (a Activity) String() string {
	if !a.Valid() {
		return "Unknown"
	}
	return activityNames[a]
}

// LookupActivity maps a name to an Activity, case-insensitively.
func LookupActivity(name string) (Activity, bool) {
	for i, n := range activityNames {
		if strings.EqualFold(name, n) {
			return Activity(i), true
		}
	}
	return ActivityIdle, false
}

// ParseActivity maps a name to an Activity, case-insensitively.
// Unrecognized names fall back to ActivityIdle.
func ParseActivity(name string) Activity {
	a, _ := LookupActivity(name)
	return a
}

// Theme selects a color palette. Global, persists across state changes.
type Theme int

const (
	ThemeSakura Theme = iota // Pink/Rose
	ThemeMint                // Teal/Aqua
	ThemeLavender            // Purple
	ThemePeach               // Orange/Coral
	ThemeCloud               // Blue/Sky

	themeCount
)

var themeNames = [...]string{
	"Sakura",
	"Mint",
	"Lavender",
	"Peach",
	"Cloud",
}

// Valid reports whether t is within the defined range.
func (t Theme) Valid() bool {
	return t >= 0 && t < themeCount
}

// String returns the theme name, or "Unknown" if out of range.
func (t Theme) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return themeNames[t]
}

// LookupTheme maps a name to a Theme, case-insensitively.
func LookupTheme(name string) (Theme, bool) {
	for i, n := range themeNames {
		if strings.EqualFold(name, n) {
			return Theme(i), true
		}
	}
	return ThemeSakura, false
}

// ParseTheme maps a name to a Theme, case-insensitively.
// Unrecognized names fall back to ThemeSakura.
func ParseTheme(name string) Theme {
	t, _ := LookupTheme(name)
	return t
}

// Next returns the following theme, wrapping around after the last one.
func (t Theme) Next() Theme {
	return (t + 1) % themeCount
}

// MouthType is the mouth shape drawn by renderers.
type MouthType int

const (
	MouthSmile MouthType = iota // Curved smile line
	MouthOpenSmile              // Open mouth with teeth/tongue
	MouthSmallO
	MouthSmirk
	MouthFlat
	MouthWavy
	MouthScream
)

// ParticleType is the particle effect associated with a state.
type ParticleType int

const (
	ParticleNone ParticleType = iota
	ParticleFloat   // Gentle floating circles
	ParticleBurst   // Expanding ring of circles
	ParticleSweat   // Falling drops
	ParticleSparkle // Rotating stars
	ParticleSpiral  // Rotating spiral symbols
	ParticleZzz     // Floating Z letters
)
