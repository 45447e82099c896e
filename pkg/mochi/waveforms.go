package mochi

import "math"

// Waveform frequencies in Hz.
const (
	idleBreathFreq = 0.4
	shakeFreq      = 10.0
	bounceFreq     = 3.0
	spinFreq       = 0.5 // Revolutions per second
	wiggleFreq     = 4.0
	nodFreq        = 2.0
	snoreFreq      = 0.3
	vibrateFreq    = 30.0
)

// Waveform amplitudes.
const (
	idleSquishAmp = 0.02
	idleSwayAmp   = 2.0
	shakeAmp      = 8.0
	bounceAmpUp   = 5.0
	bounceAmpDown = 10.0
	wiggleAmp     = 5.0
	nodAmp        = 5.0
	vibrateAmp    = 2.0
)

// Blink sub-state machine constants.
const (
	blinkIntervalMS = 3000
	blinkStep       = 0.15 // Progress per tick
	blinkSquish     = 0.9  // Peak eye squish at mid-blink
)

// applyIdle: low-frequency breathing plus a slow correlated eye/face wander
// at three incommensurate frequencies.
func applyIdle(p *FaceParams, t, i float64) {
	p.FaceSquish = math.Sin(t*2*math.Pi*idleBreathFreq) * idleSquishAmp * i

	p.EyeOffsetX = math.Sin(t*0.5) * idleSwayAmp * i
	p.EyeOffsetY = math.Sin(t*0.3) * (idleSwayAmp * 0.5) * i

	p.FaceOffsetY = math.Sin(t*0.4) * idleSwayAmp * i
}

// applyShake: rapid oscillation with the eyes counter-moving at 30%
// amplitude and opposite phase.
func applyShake(p *FaceParams, t, i float64) {
	phase := t * 2 * math.Pi * shakeFreq
	p.FaceOffsetY = math.Sin(phase) * shakeAmp * i
	p.EyeOffsetX = -math.Sin(phase) * (shakeAmp * 0.3) * i
}

// applyBounce is asymmetric: the sine's positive half drives a small upward
// excursion, the negative half a larger downward one, with a squish
// proportional to |sine|.
func applyBounce(p *FaceParams, t, i float64) {
	bounce := math.Sin(t * 2 * math.Pi * bounceFreq)
	if bounce > 0 {
		p.FaceOffsetY = -bounce * bounceAmpUp * i
	} else {
		p.FaceOffsetY = -bounce * bounceAmpDown * i
	}
	p.FaceSquish = math.Abs(bounce) * 0.05 * i
}

// applySpin: rotation increasing linearly at spinFreq rev/s, wrapped to
// [0, 360) and scaled by intensity.
func applySpin(p *FaceParams, t, i float64) {
	p.FaceRotation = math.Mod(t*360.0*spinFreq, 360.0) * i
}

func applyWiggle(p *FaceParams, t, i float64) {
	p.FaceRotation = math.Sin(t*2*math.Pi*wiggleFreq) * wiggleAmp * i
}

func applyNod(p *FaceParams, t, i float64) {
	p.FaceOffsetY = math.Sin(t*2*math.Pi*nodFreq) * nodAmp * i
}

// applySnore: slower and deeper breathing, a fixed vertical offset with a
// slow bob, slight rotational sway, and a mouth-openness oscillation.
func applySnore(p *FaceParams, t, i float64) {
	p.FaceSquish = math.Sin(t*2*math.Pi*snoreFreq) * 0.03 * i
	p.FaceOffsetY = 3.0 + math.Sin(t*2*math.Pi*0.25)*2.0*i
	p.FaceRotation = -3.0 + math.Sin(t*2*math.Pi*0.2)*2.0*i

	p.MouthOpen = 0.2 + math.Sin(t*2*math.Pi*0.4)*0.1*i
}

// applyVibrate: high-frequency micro-jitter with the eye X jitter running
// at 1.3x the frequency and phase-shifted.
func applyVibrate(p *FaceParams, t, i float64) {
	p.FaceOffsetY = math.Sin(t*2*math.Pi*vibrateFreq) * vibrateAmp * i
	p.EyeOffsetX = math.Cos(t*2*math.Pi*vibrateFreq*1.3) * vibrateAmp * i
}

// applyDizzy oscillates eye scale, eye offsets, rotation, and vertical bob
// at several incommensurate frequencies to suggest disorientation.
func applyDizzy(p *FaceParams, t, i float64) {
	p.EyeScale = 1.0 + math.Sin(t*6.0)*0.15*i
	p.EyeOffsetX = math.Sin(t*10.0) * 6.0 * i
	p.EyeOffsetY = math.Cos(t*8.0) * 4.0 * i
	p.FaceRotation = math.Sin(t*5.0) * 5.0 * i
	p.FaceOffsetY = math.Abs(math.Sin(t*6.0)) * 8.0 * i
}

// applyPanicSpin spins the face linearly with the frame count.
func applyPanicSpin(p *FaceParams, frame uint64, i float64) {
	p.FaceRotation = math.Mod(float64(frame)*8.0*i, 360.0)
}

// applySleepyDrift gently oscillates eye scale around a near-closed
// baseline, independent of intensity.
func applySleepyDrift(p *FaceParams, t float64) {
	p.EyeScale = 0.15 + math.Sin(t)*0.05
}
