package mochi

import (
	"sync"
	"time"

	"github.com/teslashibe/go-mochi/internal/log"
)

// TickPeriod is the animation timer period: 25 ms, i.e. 40 FPS.
const TickPeriod = 25 * time.Millisecond

const tickMillis = 25

// FrameSink receives the synthesized parameters after every animation tick.
// It runs on the animator's tick goroutine and must not block.
type FrameSink func(FaceParams)

// Animator synthesizes a fresh FaceParams every tick: it copies the active
// state's immutable baseline into its current buffer, layers the state
// overlay (Dizzy, Panic, Sleepy have bespoke waveforms), then layers the
// activity waveform. Waveforms are stateless functions of elapsed time, not
// deltas, except for the blink sub-state machine.
type Animator struct {
	mu sync.Mutex

	state     State
	activity  Activity
	intensity float64

	base    FaceParams
	current FaceParams

	// frame is monotonic for the animator's lifetime. It is deliberately
	// not reset on Resume so waveform phase stays continuous across a
	// pause, and not reset on Start so a redundant restart is invisible.
	frame uint64

	running bool
	paused  bool
	stop    chan struct{}

	blinking      bool
	blinkProgress float64
	lastBlinkMS   uint64

	sink FrameSink
}

// NewAnimator creates an animator in the idle (not running) state.
func NewAnimator(sink FrameSink) *Animator {
	return &Animator{
		intensity: DefaultIntensity,
		sink:      sink,
	}
}

// Start begins (or retargets) animation for the given state and activity.
// The first call spawns the tick goroutine; later calls only swap the
// baseline and waveform selection, leaving the frame counter running.
func (an *Animator) Start(state State, activity Activity) {
	an.mu.Lock()
	an.state = state
	an.activity = activity
	an.base = BaseParams(state)
	an.paused = false

	if !an.running {
		an.running = true
		an.stop = make(chan struct{})
		go an.loop(an.stop)
	}
	an.mu.Unlock()

	log.Debug("animation started", "state", state.String(), "activity", activity.String())
}

// Stop halts the tick goroutine. The frame counter is retained.
func (an *Animator) Stop() {
	an.mu.Lock()
	if !an.running {
		an.mu.Unlock()
		return
	}
	an.running = false
	close(an.stop)
	an.mu.Unlock()
}

// Pause suspends ticking without destroying the timer.
func (an *Animator) Pause() {
	an.mu.Lock()
	if an.running {
		an.paused = true
	}
	an.mu.Unlock()
}

// Resume continues ticking. The frame counter is not reset, so waveform
// phase continues where it left off.
func (an *Animator) Resume() {
	an.mu.Lock()
	if an.running {
		an.paused = false
	}
	an.mu.Unlock()
}

// SetIntensity sets the waveform amplitude multiplier, clamped to [0.2, 1.0].
func (an *Animator) SetIntensity(intensity float64) {
	an.mu.Lock()
	an.intensity = clampIntensity(intensity)
	an.mu.Unlock()
}

// Params returns a copy of the most recently synthesized frame.
func (an *Animator) Params() FaceParams {
	an.mu.Lock()
	defer an.mu.Unlock()
	return an.current
}

// Frame returns the monotonic frame counter.
func (an *Animator) Frame() uint64 {
	an.mu.Lock()
	defer an.mu.Unlock()
	return an.frame
}

// Running reports whether the tick goroutine is active.
func (an *Animator) Running() bool {
	an.mu.Lock()
	defer an.mu.Unlock()
	return an.running
}

func (an *Animator) loop(stop chan struct{}) {
	ticker := time.NewTicker(TickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			an.step()
		}
	}
}

// step runs one animation tick. The sink is invoked outside the lock.
func (an *Animator) step() {
	an.mu.Lock()
	if an.paused {
		an.mu.Unlock()
		return
	}

	an.frame++
	t := float64(an.frame) * tickMillis / 1000.0
	nowMS := an.frame * tickMillis

	params := an.base
	an.applyStateWave(&params, t)
	an.applyActivityWave(&params, t, nowMS)
	an.current = params

	sink := an.sink
	an.mu.Unlock()

	if sink != nil {
		sink(params)
	}
}

// applyActivityWave layers the waveform selected by the current activity.
// Caller holds the lock.
func (an *Animator) applyActivityWave(p *FaceParams, t float64, nowMS uint64) {
	i := an.intensity

	switch an.activity {
	case ActivityShake:
		applyShake(p, t, i)
	case ActivityBounce:
		applyBounce(p, t, i)
	case ActivitySpin:
		applySpin(p, t, i)
	case ActivityWiggle:
		applyWiggle(p, t, i)
	case ActivityNod:
		applyNod(p, t, i)
	case ActivityBlink:
		applyIdle(p, t, i)
		an.applyBlink(p, nowMS)
	case ActivitySnore:
		applySnore(p, t, i)
	case ActivityVibrate:
		applyVibrate(p, t, i)
	default:
		applyIdle(p, t, i)
	}
}

// applyStateWave layers the bespoke waveform for states that animate beyond
// their activity. Caller holds the lock.
func (an *Animator) applyStateWave(p *FaceParams, t float64) {
	switch an.state {
	case StateDizzy:
		applyDizzy(p, t, an.intensity)
	case StatePanic:
		applyPanicSpin(p, an.frame, an.intensity)
	case StateSleepy:
		applySleepyDrift(p, t)
	}
}

// applyBlink drives the blink sub-state machine: after at least
// blinkIntervalMS of open-eye time, the eyes close over the first half of
// the progress ramp and reopen over the second. Caller holds the lock.
func (an *Animator) applyBlink(p *FaceParams, nowMS uint64) {
	if !an.blinking && nowMS-an.lastBlinkMS >= blinkIntervalMS {
		an.blinking = true
		an.blinkProgress = 0
		an.lastBlinkMS = nowMS
	}

	if !an.blinking {
		return
	}

	an.blinkProgress += blinkStep

	var squish float64
	switch {
	case an.blinkProgress < 0.5:
		squish = an.blinkProgress * 2 * blinkSquish
	case an.blinkProgress < 1.0:
		squish = (1 - an.blinkProgress) * 2 * blinkSquish
	default:
		squish = 0
		an.blinking = false
	}

	p.EyeSquish = squish
}
