package mochi

// FaceParams is the complete description of one rendered frame's facial
// geometry and effect flags. One immutable instance exists per State (the
// baseline); the Animator maintains a mutable copy that it overwrites every
// tick. Numeric fields carry documented ranges but the struct itself does
// not clamp; construct values through StateParams or the baselines.
type FaceParams struct {
	// Eyes
	EyeScale   float64 `json:"eye_scale"`    // Eye size multiplier (0.1 to 1.4)
	EyeOffsetX float64 `json:"eye_offset_x"` // Horizontal eye offset in pixels
	EyeOffsetY float64 `json:"eye_offset_y"` // Vertical eye offset in pixels
	PupilSize  float64 `json:"pupil_size"`   // Pupil size multiplier (0.3 to 1.3)
	EyeSquish  float64 `json:"eye_squish"`   // Vertical squish (0 = open, 0.8 = nearly closed)

	// Mouth
	MouthType MouthType `json:"mouth_type"`
	MouthOpen float64   `json:"mouth_open"` // Openness (0.2 to 1.0)

	// Face
	FaceSquish   float64 `json:"face_squish"`   // Breathing effect (-0.05 to 0.05)
	FaceOffsetY  float64 `json:"face_offset_y"` // Vertical bounce offset
	FaceRotation float64 `json:"face_rotation"` // Rotation angle in degrees

	// Effects
	ShowBlush    bool         `json:"show_blush"`
	ShowSparkles bool         `json:"show_sparkles"`
	ParticleType ParticleType `json:"particle_type"`
}

// baseParams holds the immutable per-state face baselines.
var baseParams = [stateCount]FaceParams{
	StateHappy: {
		EyeScale: 1.0, PupilSize: 1.0,
		MouthType: MouthSmile, MouthOpen: 0.3,
		ShowBlush: true, ShowSparkles: true,
		ParticleType: ParticleFloat,
	},
	StateExcited: {
		EyeScale: 0.8, EyeOffsetY: 3.0, PupilSize: 0.7, EyeSquish: 0.3,
		MouthType: MouthOpenSmile, MouthOpen: 0.7,
		FaceSquish: 0.05, FaceOffsetY: 5.0,
		ShowBlush: true, ShowSparkles: true,
		ParticleType: ParticleBurst,
	},
	StateWorried: {
		EyeScale: 1.2, EyeOffsetY: -5.0, PupilSize: 1.3, EyeSquish: -0.1,
		MouthType: MouthSmallO, MouthOpen: 0.5,
		FaceSquish: -0.03, FaceOffsetY: -5.0,
		ParticleType: ParticleSweat,
	},
	StateCool: {
		EyeScale: 0.9, PupilSize: 0.9, EyeSquish: 0.15,
		MouthType: MouthSmirk, MouthOpen: 0.2,
		ShowSparkles: true,
		ParticleType: ParticleSparkle,
	},
	StateDizzy: {
		EyeScale: 1.0, PupilSize: 0.8,
		MouthType: MouthWavy, MouthOpen: 0.4,
		ParticleType: ParticleSpiral,
	},
	StatePanic: {
		EyeScale: 1.4, PupilSize: 0.4, EyeSquish: -0.2,
		MouthType: MouthScream, MouthOpen: 1.0,
		ParticleType: ParticleSweat,
	},
	StateSleepy: {
		EyeScale: 0.15, EyeOffsetY: 8.0, PupilSize: 0.5, EyeSquish: 0.8,
		MouthType: MouthSmile, MouthOpen: 0.2,
		FaceOffsetY: 3.0, FaceRotation: -3.0,
		ShowBlush:    true,
		ParticleType: ParticleZzz,
	},
	StateShocked: {
		EyeScale: 1.3, PupilSize: 0.3, EyeSquish: -0.2,
		MouthType: MouthSmallO, MouthOpen: 0.8,
		ParticleType: ParticleNone,
	},
}

// BaseParams returns the immutable baseline for a state.
// Out-of-range states fall back to the Happy baseline.
func BaseParams(state State) FaceParams {
	if !state.Valid() {
		state = StateHappy
	}
	return baseParams[state]
}

// StateParams returns the intensity-scaled baseline for a state. The offset
// and rotation fields scale with intensity; eye squish additionally scales
// for Excited and Cool, which animate it rather than treating it as a static
// trait. Pure function of (state, intensity).
func StateParams(state State, intensity float64) FaceParams {
	p := BaseParams(state)

	p.EyeOffsetX *= intensity
	p.EyeOffsetY *= intensity
	p.FaceSquish *= intensity
	p.FaceOffsetY *= intensity
	p.FaceRotation *= intensity

	if state == StateExcited || state == StateCool {
		p.EyeSquish *= intensity
	}

	return p
}
