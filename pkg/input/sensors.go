// Package input fuses raw sensor readings into derived motion and context
// flags and drives the avatar through a pluggable mapping policy.
package input

import (
	"sync"
	"time"
)

// Accel is a 3-axis accelerometer reading in g.
type Accel struct {
	X, Y, Z float64
}

// Gyro is a 3-axis gyroscope reading in deg/s.
type Gyro struct {
	X, Y, Z float64
}

// Sensors is the source of raw readings for the classifier. Implementations
// should return their most recent values; the classifier polls on its own
// schedule.
type Sensors interface {
	Accel() Accel
	Gyro() Gyro
	BatteryPercent() int
	Charging() bool
	Temperature() float64
	WiFiConnected() bool
	TouchActive() bool
	Now() time.Time
}

// SimSensors is a settable Sensors implementation for development and tests.
// The zero value reads as a device resting flat, screen up, with a full
// battery; Now defaults to the wall clock unless a fixed time is set.
type SimSensors struct {
	mu       sync.RWMutex
	accel    Accel
	gyro     Gyro
	battery  int
	charging bool
	temp     float64
	wifi     bool
	touch    bool
	now      time.Time
	hasTime  bool
	hasBatt  bool
}

// NewSimSensors returns a simulator resting flat with a full battery.
func NewSimSensors() *SimSensors {
	return &SimSensors{
		accel:   Accel{Z: 1.0},
		battery: 100,
		temp:    25.0,
		hasBatt: true,
	}
}

func (s *SimSensors) Accel() Accel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accel
}

func (s *SimSensors) Gyro() Gyro {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gyro
}

func (s *SimSensors) BatteryPercent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasBatt {
		return 100
	}
	return s.battery
}

func (s *SimSensors) Charging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.charging
}

func (s *SimSensors) Temperature() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.temp
}

func (s *SimSensors) WiFiConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wifi
}

func (s *SimSensors) TouchActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.touch
}

func (s *SimSensors) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hasTime {
		return s.now
	}
	return time.Now()
}

// SetAccel replaces the accelerometer reading.
func (s *SimSensors) SetAccel(x, y, z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accel = Accel{X: x, Y: y, Z: z}
}

// SetGyro replaces the gyroscope reading.
func (s *SimSensors) SetGyro(x, y, z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gyro = Gyro{X: x, Y: y, Z: z}
}

// SetBattery sets the battery level and charging flag.
func (s *SimSensors) SetBattery(percent int, charging bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battery = percent
	s.charging = charging
	s.hasBatt = true
}

// SetTemperature sets the ambient temperature in Celsius.
func (s *SimSensors) SetTemperature(c float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temp = c
}

// SetWiFi sets the network-connected flag.
func (s *SimSensors) SetWiFi(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wifi = connected
}

// SetTouch sets the touch-active flag.
func (s *SimSensors) SetTouch(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch = active
}

// SetNow pins the clock to a fixed time.
func (s *SimSensors) SetNow(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = t
	s.hasTime = true
}
