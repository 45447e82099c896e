package mochi

import (
	"math"
	"testing"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func allStates() []State {
	states := make([]State, 0, int(stateCount))
	for s := StateHappy; s < stateCount; s++ {
		states = append(states, s)
	}
	return states
}

func TestBaseParams_FallsBackToHappy(t *testing.T) {
	if got := BaseParams(State(-3)); got != baseParams[StateHappy] {
		t.Errorf("got %+v, want Happy baseline", got)
	}
	if got := BaseParams(State(50)); got != baseParams[StateHappy] {
		t.Errorf("got %+v, want Happy baseline", got)
	}
}

func TestStateParams_ScalesOffsetsWithIntensity(t *testing.T) {
	intensities := []float64{0.2, 0.5, 0.7, 1.0}

	for _, state := range allStates() {
		base := BaseParams(state)
		for _, i := range intensities {
			got := StateParams(state, i)

			if !floatEquals(got.EyeOffsetX, base.EyeOffsetX*i) {
				t.Errorf("%v i=%v: EyeOffsetX = %v, want %v", state, i, got.EyeOffsetX, base.EyeOffsetX*i)
			}
			if !floatEquals(got.EyeOffsetY, base.EyeOffsetY*i) {
				t.Errorf("%v i=%v: EyeOffsetY = %v, want %v", state, i, got.EyeOffsetY, base.EyeOffsetY*i)
			}
			if !floatEquals(got.FaceSquish, base.FaceSquish*i) {
				t.Errorf("%v i=%v: FaceSquish = %v, want %v", state, i, got.FaceSquish, base.FaceSquish*i)
			}
			if !floatEquals(got.FaceOffsetY, base.FaceOffsetY*i) {
				t.Errorf("%v i=%v: FaceOffsetY = %v, want %v", state, i, got.FaceOffsetY, base.FaceOffsetY*i)
			}
			if !floatEquals(got.FaceRotation, base.FaceRotation*i) {
				t.Errorf("%v i=%v: FaceRotation = %v, want %v", state, i, got.FaceRotation, base.FaceRotation*i)
			}
		}
	}
}

func TestStateParams_EyeSquishScalesOnlyForExcitedAndCool(t *testing.T) {
	const i = 0.5
	for _, state := range allStates() {
		base := BaseParams(state)
		got := StateParams(state, i)

		want := base.EyeSquish
		if state == StateExcited || state == StateCool {
			want *= i
		}
		if !floatEquals(got.EyeSquish, want) {
			t.Errorf("%v: EyeSquish = %v, want %v", state, got.EyeSquish, want)
		}
	}
}

func TestStateParams_LeavesStaticFieldsUnscaled(t *testing.T) {
	for _, state := range allStates() {
		base := BaseParams(state)
		got := StateParams(state, 0.2)

		if !floatEquals(got.EyeScale, base.EyeScale) {
			t.Errorf("%v: EyeScale changed", state)
		}
		if !floatEquals(got.PupilSize, base.PupilSize) {
			t.Errorf("%v: PupilSize changed", state)
		}
		if !floatEquals(got.MouthOpen, base.MouthOpen) {
			t.Errorf("%v: MouthOpen changed", state)
		}
		if got.MouthType != base.MouthType {
			t.Errorf("%v: MouthType changed", state)
		}
		if got.ParticleType != base.ParticleType {
			t.Errorf("%v: ParticleType changed", state)
		}
		if got.ShowBlush != base.ShowBlush || got.ShowSparkles != base.ShowSparkles {
			t.Errorf("%v: effect flags changed", state)
		}
	}
}

func TestStateParams_Pure(t *testing.T) {
	for _, state := range allStates() {
		a := StateParams(state, 0.7)
		b := StateParams(state, 0.7)
		if a != b {
			t.Errorf("%v: repeated calls differ: %+v vs %+v", state, a, b)
		}
	}
	// Scaling must not leak into the shared baselines.
	before := BaseParams(StateExcited)
	StateParams(StateExcited, 0.2)
	if BaseParams(StateExcited) != before {
		t.Error("baseline mutated by StateParams")
	}
}

func TestStateParams_FullIntensityMatchesBaseline(t *testing.T) {
	for _, state := range allStates() {
		if got, want := StateParams(state, 1.0), BaseParams(state); got != want {
			t.Errorf("%v: intensity 1.0 = %+v, want baseline %+v", state, got, want)
		}
	}
}
