package input

import (
	"math"
	"testing"

	"github.com/teslashibe/go-mochi/pkg/motion"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func deriveRaw(ax, ay, az, gx, gy, gz float64) Snapshot {
	s := Snapshot{
		AccelX: ax, AccelY: ay, AccelZ: az,
		GyroX: gx, GyroY: gy, GyroZ: gz,
		Battery: 100,
	}
	s.derive(motion.Defaults())
	return s
}

func TestSnapshot_Magnitudes(t *testing.T) {
	s := deriveRaw(3, 4, 0, 0, 30, 40)

	if !floatEquals(s.AccelMagnitude, 5.0) {
		t.Errorf("AccelMagnitude = %v, want 5", s.AccelMagnitude)
	}
	if !floatEquals(s.GyroMagnitude, 50.0) {
		t.Errorf("GyroMagnitude = %v, want 50", s.GyroMagnitude)
	}
}

func TestSnapshot_MotionFlags(t *testing.T) {
	tests := []struct {
		name     string
		ax, az   float64
		gz       float64
		moving   bool
		shaking  bool
		rotating bool
		spinning bool
	}{
		{"resting flat", 0, 1.0, 0, false, false, false, false},
		{"slight tilt within deadband", 0, 1.2, 0, false, false, false, false},
		{"falling", 0, 0.3, 0, true, false, false, false},
		{"brisk movement", 0, 1.5, 0, true, false, false, false},
		{"shaking hard", 0, 2.5, 0, true, true, false, false},
		{"slow turn", 0, 1.0, 50, false, false, true, false},
		{"fast spin", 0, 1.0, 150, false, false, true, true},
	}

	for _, tt := range tests {
		s := deriveRaw(tt.ax, 0, tt.az, 0, 0, tt.gz)
		if s.Moving != tt.moving {
			t.Errorf("%s: Moving = %v, want %v", tt.name, s.Moving, tt.moving)
		}
		if s.Shaking != tt.shaking {
			t.Errorf("%s: Shaking = %v, want %v", tt.name, s.Shaking, tt.shaking)
		}
		if s.Rotating != tt.rotating {
			t.Errorf("%s: Rotating = %v, want %v", tt.name, s.Rotating, tt.rotating)
		}
		if s.Spinning != tt.spinning {
			t.Errorf("%s: Spinning = %v, want %v", tt.name, s.Spinning, tt.spinning)
		}
	}
}

func TestSnapshot_LiveThresholds(t *testing.T) {
	s := Snapshot{AccelZ: 1.5, Battery: 100}

	s.derive(motion.Defaults())
	if !s.Moving {
		t.Fatal("1.5 g should exceed the 0.3 g default deadband")
	}

	// Widen the deadband and re-derive: same readings, new verdict.
	cfg := motion.Defaults()
	cfg.MovingG = 0.8
	s.derive(cfg)
	if s.Moving {
		t.Error("1.5 g should be inside the widened 0.8 g deadband")
	}
}

func orientationFlags(s Snapshot) []bool {
	return []bool{s.FaceUp, s.FaceDown, s.Portrait, s.PortraitInv, s.LandscapeLeft, s.LandscapeRight}
}

func TestSnapshot_OrientationExclusive(t *testing.T) {
	tests := []struct {
		name       string
		ax, ay, az float64
		wantIndex  int // index into orientationFlags, -1 for none
	}{
		{"face up", 0, 0, 1.0, 0},
		{"face down", 0, 0, -1.0, 1},
		{"portrait", 0, -0.95, 0.2, 2},
		{"portrait inverted", 0, 0.95, 0.2, 3},
		{"landscape left", 0.95, 0, 0.2, 4},
		{"landscape right", -0.95, 0, 0.2, 5},
		{"ambiguous tilt", 0.5, 0.5, 0.5, -1},
		{"dominant axis below gate", 0.3, 0.2, 0.6, -1},
	}

	for _, tt := range tests {
		s := deriveRaw(tt.ax, tt.ay, tt.az, 0, 0, 0)
		flags := orientationFlags(s)

		set := -1
		count := 0
		for i, f := range flags {
			if f {
				set = i
				count++
			}
		}
		if count > 1 {
			t.Errorf("%s: %d orientation flags set", tt.name, count)
		}
		if set != tt.wantIndex {
			t.Errorf("%s: flag index %d, want %d", tt.name, set, tt.wantIndex)
		}
	}
}

func TestSnapshot_PitchRollAlwaysDefined(t *testing.T) {
	// Flat on the table: straight-up pitch, roll zero.
	s := deriveRaw(0, 0, 1.0, 0, 0, 0)
	if !floatEquals(s.Pitch, 90.0) {
		t.Errorf("flat pitch = %v, want 90", s.Pitch)
	}

	// Ambiguous tilt still yields geometric angles.
	s = deriveRaw(0.5, 0.5, 0.5, 0, 0, 0)
	wantPitch := math.Atan2(0.5, math.Sqrt(0.5)) * 180 / math.Pi
	if !floatEquals(s.Pitch, wantPitch) {
		t.Errorf("tilt pitch = %v, want %v", s.Pitch, wantPitch)
	}
	if !floatEquals(s.Roll, 45.0) {
		t.Errorf("tilt roll = %v, want 45", s.Roll)
	}
}

func TestSnapshot_NightAndWeekend(t *testing.T) {
	tests := []struct {
		hour  int
		night bool
	}{
		{0, true}, {5, true}, {6, false}, {12, false},
		{21, false}, {22, true}, {23, true},
	}
	for _, tt := range tests {
		s := Snapshot{Hour: tt.hour, AccelZ: 1, Battery: 100}
		s.derive(motion.Defaults())
		if s.Night != tt.night {
			t.Errorf("hour %d: Night = %v, want %v", tt.hour, s.Night, tt.night)
		}
	}

	days := []struct {
		day     int
		weekend bool
	}{
		{0, true}, {1, false}, {3, false}, {5, false}, {6, true},
	}
	for _, tt := range days {
		s := Snapshot{DayOfWeek: tt.day, AccelZ: 1, Battery: 100}
		s.derive(motion.Defaults())
		if s.Weekend != tt.weekend {
			t.Errorf("day %d: Weekend = %v, want %v", tt.day, s.Weekend, tt.weekend)
		}
	}
}

func TestSnapshot_BatteryFlags(t *testing.T) {
	tests := []struct {
		pct      int
		low      bool
		critical bool
	}{
		{100, false, false},
		{20, false, false},
		{19, true, false},
		{5, true, false},
		{4, true, true},
		{0, true, true},
	}
	for _, tt := range tests {
		s := Snapshot{Battery: tt.pct, AccelZ: 1}
		s.derive(motion.Defaults())
		if s.LowBattery != tt.low || s.CriticalBattery != tt.critical {
			t.Errorf("battery %d: low=%v critical=%v, want low=%v critical=%v",
				tt.pct, s.LowBattery, s.CriticalBattery, tt.low, tt.critical)
		}
	}
}

func TestSnapshot_IdleFlag(t *testing.T) {
	resting := deriveRaw(0, 0, 1.0, 0, 0, 0)
	if !resting.Idle {
		t.Error("resting device should be idle")
	}

	moving := deriveRaw(0, 0, 1.5, 0, 0, 0)
	if moving.Idle {
		t.Error("moving device should not be idle")
	}

	turning := deriveRaw(0, 0, 1.0, 0, 0, 40)
	if turning.Idle {
		t.Error("rotating device should not be idle")
	}
}
