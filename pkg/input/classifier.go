package input

import (
	"sync"
	"time"

	"github.com/teslashibe/go-mochi/internal/log"
	"github.com/teslashibe/go-mochi/pkg/mochi"
	"github.com/teslashibe/go-mochi/pkg/motion"
)

// DefaultUpdateInterval is how often the background loop runs the classifier
// when started with Run.
const DefaultUpdateInterval = 500 * time.Millisecond

// StateSetter is the part of the avatar the classifier drives.
type StateSetter interface {
	Set(state mochi.State, activity mochi.Activity) error
}

// Mapper turns a fused snapshot into a candidate state/activity pair. It
// runs synchronously inside Update and must not block.
type Mapper func(snap Snapshot) (mochi.State, mochi.Activity)

// Classifier polls the sensors, derives a snapshot, and pushes mapper
// decisions to the avatar only when they change.
type Classifier struct {
	mu sync.Mutex

	sensors    Sensors
	thresholds *motion.Store
	avatar     StateSetter
	mapper     Mapper

	lastState    mochi.State
	lastActivity mochi.Activity
	hasApplied   bool
	lastChange   time.Time
	lastSnap     Snapshot
}

// NewClassifier wires a classifier to its collaborators. mapper may be nil,
// in which case Update only produces snapshots.
func NewClassifier(sensors Sensors, thresholds *motion.Store, avatar StateSetter, mapper Mapper) *Classifier {
	return &Classifier{
		sensors:    sensors,
		thresholds: thresholds,
		avatar:     avatar,
		mapper:     mapper,
	}
}

// Update performs one full cycle: collect raw readings, derive, invoke the
// mapper, and apply the result to the avatar only if it differs from the
// previously applied pair. Returns the snapshot it produced.
func (c *Classifier) Update() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.sensors.Now()
	accel := c.sensors.Accel()
	gyro := c.sensors.Gyro()

	snap := Snapshot{
		Battery:     c.sensors.BatteryPercent(),
		Charging:    c.sensors.Charging(),
		Temperature: c.sensors.Temperature(),
		Hour:        now.Hour(),
		Minute:      now.Minute(),
		DayOfWeek:   int(now.Weekday()),
		AccelX:      accel.X,
		AccelY:      accel.Y,
		AccelZ:      accel.Z,
		GyroX:       gyro.X,
		GyroY:       gyro.Y,
		GyroZ:       gyro.Z,
		WiFi:        c.sensors.WiFiConnected(),
		Touch:       c.sensors.TouchActive(),
	}
	snap.derive(c.thresholds.Get())

	if c.hasApplied {
		snap.StateDurationMS = now.Sub(c.lastChange).Milliseconds()
	}

	if c.mapper != nil {
		state, activity := c.mapper(snap)
		if !c.hasApplied || state != c.lastState || activity != c.lastActivity {
			if err := c.avatar.Set(state, activity); err != nil {
				log.Warn("classifier decision rejected",
					"state", state, "activity", activity, "error", err)
			} else {
				c.lastState = state
				c.lastActivity = activity
				c.hasApplied = true
				c.lastChange = now
				snap.StateDurationMS = 0
			}
		}
	}

	c.lastSnap = snap
	return snap
}

// Snapshot returns the most recent snapshot produced by Update.
func (c *Classifier) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSnap
}

// Run executes Update at the given interval until stop is closed. Pass zero
// to use DefaultUpdateInterval. Blocks; run in a goroutine.
func (c *Classifier) Run(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = DefaultUpdateInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("input classifier started", "interval", interval)
	for {
		select {
		case <-stop:
			log.Info("input classifier stopped")
			return
		case <-ticker.C:
			c.Update()
		}
	}
}
