package input

import (
	"github.com/teslashibe/go-mochi/pkg/mochi"
)

// Decider is an optional remote decision source the default mapper can
// consult when no local rule fires. Request must be non-blocking; Poll
// returns a previously delivered decision at most once.
type Decider interface {
	Request(snap Snapshot)
	Poll() (mochi.State, mochi.Activity, bool)
}

// DefaultMapper returns the built-in mapping policy. Rules are checked in
// priority order; the first match wins. When nothing matches and a decider
// is supplied, the mapper polls for an earlier remote decision and queues a
// new request; a remote decision stays in effect until a local rule fires
// or a newer decision arrives. Without any decision the mapper settles on
// Happy/Idle.
func DefaultMapper(decider Decider) Mapper {
	remoteState := mochi.StateHappy
	remoteActivity := mochi.ActivityIdle

	return func(snap Snapshot) (mochi.State, mochi.Activity) {
		switch {
		case snap.Shaking:
			return mochi.StatePanic, mochi.ActivityVibrate
		case snap.Spinning:
			return mochi.StateDizzy, mochi.ActivitySpin
		case snap.CriticalBattery:
			return mochi.StateWorried, mochi.ActivityIdle
		case snap.FaceDown:
			return mochi.StateSleepy, mochi.ActivitySnore
		case snap.PortraitInv:
			return mochi.StateShocked, mochi.ActivityWiggle
		case snap.Night:
			return mochi.StateSleepy, mochi.ActivitySnore
		case snap.Rotating:
			return mochi.StateCool, mochi.ActivityNod
		case snap.Moving:
			return mochi.StateExcited, mochi.ActivityBounce
		case snap.LandscapeLeft || snap.LandscapeRight:
			return mochi.StateCool, mochi.ActivityIdle
		case snap.LowBattery:
			return mochi.StateWorried, mochi.ActivityIdle
		}

		if decider != nil {
			if state, activity, ok := decider.Poll(); ok {
				remoteState = state
				remoteActivity = activity
			} else {
				decider.Request(snap)
			}
		}
		return remoteState, remoteActivity
	}
}
