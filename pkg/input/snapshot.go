package input

import (
	"math"

	"github.com/teslashibe/go-mochi/pkg/motion"
)

// Battery level cutoffs in percent.
const (
	lowBatteryPct      = 20
	criticalBatteryPct = 5
)

// Orientation classification requires the dominant axis to exceed this
// magnitude; below it the device is considered tilted/ambiguous and all
// orientation flags stay false.
const orientationGateG = 0.7

// Snapshot is one tick's worth of raw readings plus everything derived from
// them. It is a plain value; consumers must treat it as read-only.
type Snapshot struct {
	// Raw readings
	Battery     int     `json:"battery"`
	Charging    bool    `json:"charging"`
	Temperature float64 `json:"temperature"`
	Hour        int     `json:"hour"`
	Minute      int     `json:"minute"`
	DayOfWeek   int     `json:"day_of_week"` // 0 = Sunday
	AccelX      float64 `json:"accel_x"`
	AccelY      float64 `json:"accel_y"`
	AccelZ      float64 `json:"accel_z"`
	GyroX       float64 `json:"gyro_x"`
	GyroY       float64 `json:"gyro_y"`
	GyroZ       float64 `json:"gyro_z"`
	WiFi        bool    `json:"wifi"`
	Touch       bool    `json:"touch"`

	// Derived motion
	AccelMagnitude float64 `json:"accel_magnitude"`
	GyroMagnitude  float64 `json:"gyro_magnitude"`
	Moving         bool    `json:"moving"`
	Shaking        bool    `json:"shaking"`
	Rotating       bool    `json:"rotating"`
	Spinning       bool    `json:"spinning"`

	// Derived orientation
	FaceUp         bool    `json:"face_up"`
	FaceDown       bool    `json:"face_down"`
	Portrait       bool    `json:"portrait"`
	PortraitInv    bool    `json:"portrait_inv"`
	LandscapeLeft  bool    `json:"landscape_left"`
	LandscapeRight bool    `json:"landscape_right"`
	Pitch          float64 `json:"pitch"`
	Roll           float64 `json:"roll"`

	// Derived context
	Night           bool `json:"night"`
	Weekend         bool `json:"weekend"`
	Idle            bool `json:"idle"`
	LowBattery      bool `json:"low_battery"`
	CriticalBattery bool `json:"critical_battery"`

	// Milliseconds since the last accepted state/activity change.
	StateDurationMS int64 `json:"state_duration_ms"`
}

// derive fills in every computed field from the raw readings and the live
// thresholds. Deterministic: same raw values and thresholds always produce
// the same output.
func (s *Snapshot) derive(cfg motion.Config) {
	s.AccelMagnitude = math.Sqrt(s.AccelX*s.AccelX + s.AccelY*s.AccelY + s.AccelZ*s.AccelZ)
	s.GyroMagnitude = math.Sqrt(s.GyroX*s.GyroX + s.GyroY*s.GyroY + s.GyroZ*s.GyroZ)

	s.Moving = math.Abs(s.AccelMagnitude-1.0) > cfg.MovingG
	s.Shaking = s.AccelMagnitude > cfg.ShakingG
	s.Rotating = s.GyroMagnitude > cfg.RotatingDPS
	s.Spinning = s.GyroMagnitude > cfg.SpinningDPS

	s.deriveOrientation()

	// Pitch/roll are always defined, even when the orientation flags are
	// all false (tilted/ambiguous).
	s.Pitch = math.Atan2(s.AccelZ, math.Sqrt(s.AccelX*s.AccelX+s.AccelY*s.AccelY)) * 180.0 / math.Pi
	s.Roll = math.Atan2(s.AccelX, s.AccelY) * 180.0 / math.Pi

	s.Night = s.Hour >= 22 || s.Hour < 6
	s.Weekend = s.DayOfWeek == 0 || s.DayOfWeek == 6
	s.Idle = !s.Moving && !s.Rotating
	s.LowBattery = s.Battery < lowBatteryPct
	s.CriticalBattery = s.Battery < criticalBatteryPct
}

// deriveOrientation classifies by the dominant accelerometer axis. Exactly
// one flag is set when the dominant axis exceeds the gate; none otherwise.
func (s *Snapshot) deriveOrientation() {
	s.FaceUp = false
	s.FaceDown = false
	s.Portrait = false
	s.PortraitInv = false
	s.LandscapeLeft = false
	s.LandscapeRight = false

	ax, ay, az := math.Abs(s.AccelX), math.Abs(s.AccelY), math.Abs(s.AccelZ)

	switch {
	case az >= ax && az >= ay:
		if az > orientationGateG {
			if s.AccelZ > 0 {
				s.FaceUp = true
			} else {
				s.FaceDown = true
			}
		}
	case ay >= ax:
		if ay > orientationGateG {
			if s.AccelY < 0 {
				s.Portrait = true
			} else {
				s.PortraitInv = true
			}
		}
	default:
		if ax > orientationGateG {
			if s.AccelX > 0 {
				s.LandscapeLeft = true
			} else {
				s.LandscapeRight = true
			}
		}
	}
}
