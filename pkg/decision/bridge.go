// Package decision implements the asynchronous remote-decision bridge: it
// ships input snapshots to an HTTP endpoint that replies with a state and
// activity, without ever blocking the caller. At most one request is in
// flight; extra requests are dropped, and failures are logged but never
// surfaced.
package decision

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-mochi/internal/httpc"
	"github.com/teslashibe/go-mochi/internal/log"
	"github.com/teslashibe/go-mochi/pkg/input"
	"github.com/teslashibe/go-mochi/pkg/mochi"
)

// RequestTimeout bounds each remote call.
const RequestTimeout = 5 * time.Second

// payload is the flat wire body sent to the decision endpoint.
type payload struct {
	Battery         int     `json:"battery"`
	Charging        bool    `json:"charging"`
	Hour            int     `json:"hour"`
	Minute          int     `json:"minute"`
	WiFi            bool    `json:"wifi"`
	Touch           bool    `json:"touch"`
	Moving          bool    `json:"moving"`
	Shaking         bool    `json:"shaking"`
	Rotating        bool    `json:"rotating"`
	Spinning        bool    `json:"spinning"`
	FaceUp          bool    `json:"face_up"`
	FaceDown        bool    `json:"face_down"`
	Portrait        bool    `json:"portrait"`
	PortraitInv     bool    `json:"portrait_inv"`
	LandscapeLeft   bool    `json:"landscape_left"`
	LandscapeRight  bool    `json:"landscape_right"`
	Pitch           float64 `json:"pitch"`
	Roll            float64 `json:"roll"`
	Night           bool    `json:"night"`
	Weekend         bool    `json:"weekend"`
	LowBattery      bool    `json:"low_battery"`
	CriticalBattery bool    `json:"critical_battery"`
}

// response is the expected decision endpoint reply. Pointers so a missing
// field is distinguishable from an empty string.
type response struct {
	State    *string `json:"state"`
	Activity *string `json:"activity"`
}

// Bridge runs one background worker that performs the blocking HTTP calls.
// The caller side (Request and Poll) never blocks.
type Bridge struct {
	mu sync.Mutex

	url     string
	client  *http.Client
	pending bool

	resultReady    bool
	resultState    mochi.State
	resultActivity mochi.Activity

	requests chan input.Snapshot
	stop     chan struct{}
	done     chan struct{}
	started  bool
	stopped  bool
}

// New creates a bridge targeting url. An empty url is allowed; every
// request then fails silently, matching the unconfigured-endpoint case.
func New(url string) *Bridge {
	return &Bridge{
		url:      url,
		client:   httpc.NewClient(RequestTimeout),
		requests: make(chan input.Snapshot, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the background worker. Safe to call once.
func (b *Bridge) Start() {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.mu.Unlock()

	go b.worker()
	log.Info("decision bridge started", "url", b.url)
}

// Stop signals the worker and waits for it to exit. Safe to call more than
// once.
func (b *Bridge) Stop() {
	b.mu.Lock()
	if !b.started || b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	b.mu.Unlock()

	close(b.stop)
	<-b.done
	log.Info("decision bridge stopped")
}

// Request queues a snapshot for remote evaluation. Non-blocking: if a
// request is already in flight the new one is dropped. Queuing a request
// clears any unread result.
func (b *Bridge) Request(snap input.Snapshot) {
	b.mu.Lock()
	if b.pending {
		b.mu.Unlock()
		return
	}
	b.pending = true
	b.resultReady = false
	b.mu.Unlock()

	b.requests <- snap
}

// Poll returns a completed remote decision at most once. The third return
// is false when no unread result is available.
func (b *Bridge) Poll() (mochi.State, mochi.Activity, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.resultReady {
		return 0, 0, false
	}
	b.resultReady = false
	return b.resultState, b.resultActivity, true
}

// Pending reports whether a request is currently in flight.
func (b *Bridge) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

func (b *Bridge) worker() {
	defer close(b.done)
	for {
		select {
		case <-b.stop:
			return
		case snap := <-b.requests:
			state, activity, err := b.decide(snap)

			b.mu.Lock()
			b.pending = false
			if err == nil {
				b.resultState = state
				b.resultActivity = activity
				b.resultReady = true
			}
			b.mu.Unlock()
		}
	}
}

// decide performs one blocking remote call. All failures collapse to an
// error that the worker only logs.
func (b *Bridge) decide(snap input.Snapshot) (mochi.State, mochi.Activity, error) {
	id := uuid.NewString()

	if b.url == "" {
		log.Debug("decision request skipped, no url configured", "request_id", id)
		return 0, 0, fmt.Errorf("no decision url configured")
	}

	body, err := json.Marshal(payloadFrom(snap))
	if err != nil {
		log.Warn("decision request encode failed", "request_id", id, "error", err)
		return 0, 0, err
	}

	resp, err := b.client.Post(b.url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Warn("decision request failed", "request_id", id, "error", err)
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("decision request rejected", "request_id", id, "status", resp.StatusCode)
		return 0, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("decision response read failed", "request_id", id, "error", err)
		return 0, 0, err
	}

	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		log.Warn("decision response malformed", "request_id", id, "error", err)
		return 0, 0, err
	}
	if r.State == nil || r.Activity == nil {
		log.Warn("decision response missing fields", "request_id", id)
		return 0, 0, fmt.Errorf("missing state or activity field")
	}

	state := mochi.ParseState(*r.State)
	activity := mochi.ParseActivity(*r.Activity)
	log.Debug("decision received",
		"request_id", id, "state", state, "activity", activity)
	return state, activity, nil
}

func payloadFrom(snap input.Snapshot) payload {
	return payload{
		Battery:         snap.Battery,
		Charging:        snap.Charging,
		Hour:            snap.Hour,
		Minute:          snap.Minute,
		WiFi:            snap.WiFi,
		Touch:           snap.Touch,
		Moving:          snap.Moving,
		Shaking:         snap.Shaking,
		Rotating:        snap.Rotating,
		Spinning:        snap.Spinning,
		FaceUp:          snap.FaceUp,
		FaceDown:        snap.FaceDown,
		Portrait:        snap.Portrait,
		PortraitInv:     snap.PortraitInv,
		LandscapeLeft:   snap.LandscapeLeft,
		LandscapeRight:  snap.LandscapeRight,
		Pitch:           round1(snap.Pitch),
		Roll:            round1(snap.Roll),
		Night:           snap.Night,
		Weekend:         snap.Weekend,
		LowBattery:      snap.LowBattery,
		CriticalBattery: snap.CriticalBattery,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
