package mochi

import (
	"sync"

	"github.com/teslashibe/go-mochi/internal/log"
)

// DefaultIntensity is the intensity an Avatar starts with.
const DefaultIntensity = 0.7

// Option configures an Avatar.
type Option func(*Avatar)

// WithRenderer attaches the renderer that consumes dirty frames.
func WithRenderer(r Renderer) Option {
	return func(a *Avatar) { a.renderer = r }
}

// WithParticles attaches the particle effect sink.
func WithParticles(p ParticleSink) Option {
	return func(a *Avatar) { a.particles = p }
}

// WithAudio attaches the audio player used for state sounds.
func WithAudio(p AudioPlayer) Option {
	return func(a *Avatar) { a.audio = p }
}

// WithCompositor attaches the background/sprite compositor.
func WithCompositor(c ImageCompositor) Option {
	return func(a *Avatar) { a.compositor = c }
}

// WithAssetSetup registers a callback that configures state assets.
// It runs once during New, before Create.
func WithAssetSetup(fn func(*Avatar)) Option {
	return func(a *Avatar) { a.assetSetup = fn }
}

// Avatar is the single source of truth for what is currently displayed:
// the current (State, Activity) pair, the theme, and the animation
// intensity. All mutation goes through its methods; on change it recomputes
// the intensity-scaled baseline, pushes it to the attached collaborators,
// and (re)starts the Animator.
type Avatar struct {
	mu sync.RWMutex

	state     State
	activity  Activity
	theme     Theme
	intensity float64
	paused    bool
	created   bool

	assets [stateCount]StateConfig

	anim *Animator

	// Collaborators, fixed at construction.
	renderer   Renderer
	particles  ParticleSink
	audio      AudioPlayer
	compositor ImageCompositor
	assetSetup func(*Avatar)
}

// New builds an Avatar with defaults (Happy, Idle, Sakura, intensity 0.7).
// If an asset setup callback was supplied it runs before New returns.
func New(opts ...Option) *Avatar {
	a := &Avatar{
		state:     StateHappy,
		activity:  ActivityIdle,
		theme:     ThemeSakura,
		intensity: DefaultIntensity,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.anim = NewAnimator(a.frameReady)
	a.anim.SetIntensity(a.intensity)

	if a.assetSetup != nil {
		log.Debug("running asset setup callback")
		a.assetSetup(a)
	}
	return a
}

// Create makes the avatar live and applies the initial state. Calling it a
// second time is a no-op.
func (a *Avatar) Create() error {
	a.mu.Lock()
	if a.created {
		a.mu.Unlock()
		log.Warn("avatar already created")
		return nil
	}
	a.created = true
	a.mu.Unlock()

	log.Info("creating avatar")
	a.applyState()
	return nil
}

// Close stops the animator and any playing sound.
func (a *Avatar) Close() {
	a.anim.Stop()
	if a.audio != nil {
		a.audio.Stop()
	}
	a.mu.Lock()
	a.created = false
	a.mu.Unlock()
}

// Set changes both state and activity. This is the primary control API.
// Both values are validated before any mutation: an out-of-range value
// leaves the avatar untouched.
func (a *Avatar) Set(state State, activity Activity) error {
	if !state.Valid() {
		log.Error("invalid state", "state", int(state))
		return ErrInvalidState
	}
	if !activity.Valid() {
		log.Error("invalid activity", "activity", int(activity))
		return ErrInvalidActivity
	}

	a.mu.Lock()
	a.state = state
	a.activity = activity
	push := a.created && !a.paused
	a.mu.Unlock()

	if push {
		a.applyState()
	}
	return nil
}

// SetState changes the state, keeping the current activity.
func (a *Avatar) SetState(state State) error {
	return a.Set(state, a.Activity())
}

// SetActivity changes the activity, keeping the current state.
func (a *Avatar) SetActivity(activity Activity) error {
	return a.Set(a.State(), activity)
}

// SetTheme changes the color theme. Theme affects colors only, not
// geometry; it persists across state changes.
func (a *Avatar) SetTheme(theme Theme) error {
	if !theme.Valid() {
		log.Error("invalid theme", "theme", int(theme))
		return ErrInvalidTheme
	}

	a.mu.Lock()
	a.theme = theme
	push := a.created && !a.paused
	a.mu.Unlock()

	log.Info("theme set", "theme", theme.String())
	if push {
		a.applyState()
	}
	return nil
}

// NextTheme cycles to the following theme, wrapping around.
func (a *Avatar) NextTheme() {
	a.SetTheme(a.Theme().Next())
}

// SetIntensity sets the animation intensity, clamped to [0.2, 1.0].
func (a *Avatar) SetIntensity(intensity float64) {
	intensity = clampIntensity(intensity)

	a.mu.Lock()
	a.intensity = intensity
	push := a.created && !a.paused
	a.mu.Unlock()

	a.anim.SetIntensity(intensity)
	if push {
		a.applyState()
	}
}

// Pause freezes the animator and hides the visual.
func (a *Avatar) Pause() {
	a.mu.Lock()
	if a.paused {
		a.mu.Unlock()
		return
	}
	a.paused = true
	a.mu.Unlock()

	log.Info("pausing avatar")
	a.anim.Pause()
	if a.renderer != nil {
		a.renderer.SetVisible(false)
	}
}

// Resume unhides the visual, resumes the animator, and forces one
// recompute-and-push so the displayed frame reflects current state
// immediately.
func (a *Avatar) Resume() {
	a.mu.Lock()
	if !a.paused {
		a.mu.Unlock()
		return
	}
	a.paused = false
	created := a.created
	a.mu.Unlock()

	log.Info("resuming avatar")
	if a.renderer != nil {
		a.renderer.SetVisible(true)
	}
	a.anim.Resume()
	if created {
		a.applyState()
	}
}

// State returns the current emotional state.
func (a *Avatar) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Activity returns the current animation activity.
func (a *Avatar) Activity() Activity {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.activity
}

// Theme returns the current theme.
func (a *Avatar) Theme() Theme {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.theme
}

// Intensity returns the current animation intensity.
func (a *Avatar) Intensity() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.intensity
}

// Paused reports whether the avatar is paused.
func (a *Avatar) Paused() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.paused
}

// Params returns the animator's most recent frame.
func (a *Avatar) Params() FaceParams {
	return a.anim.Params()
}

// Animator exposes the avatar's animator.
func (a *Avatar) Animator() *Animator {
	return a.anim
}

// ConfigureState associates assets with a state. A nil config clears the
// state's assets.
func (a *Avatar) ConfigureState(state State, cfg *StateConfig) error {
	if !state.Valid() {
		return ErrInvalidState
	}

	a.mu.Lock()
	if cfg == nil {
		a.assets[state] = StateConfig{}
	} else {
		a.assets[state] = *cfg
	}
	a.mu.Unlock()

	log.Info("state assets configured", "state", state.String(), "cleared", cfg == nil)
	return nil
}

// StateConfigFor returns the asset configuration for a state.
func (a *Avatar) StateConfigFor(state State) (StateConfig, error) {
	if !state.Valid() {
		return StateConfig{}, ErrInvalidState
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.assets[state], nil
}

// PlaySound plays a sound asset through the attached audio player.
func (a *Avatar) PlaySound(asset SoundAsset, loop bool) {
	if a.audio == nil || asset.Source == AssetNone {
		return
	}
	if err := a.audio.Play(asset, loop); err != nil {
		log.Warn("failed to play sound", "error", err)
	}
}

// StopSound stops the current sound.
func (a *Avatar) StopSound() {
	if a.audio != nil {
		a.audio.Stop()
	}
}

// applyState pushes the current state to all collaborators and (re)starts
// the animator. Collaborator calls happen outside the avatar lock.
func (a *Avatar) applyState() {
	a.mu.RLock()
	state := a.state
	activity := a.activity
	theme := a.theme
	intensity := a.intensity
	cfg := a.assets[state]
	a.mu.RUnlock()

	params := StateParams(state, intensity)
	palette := PaletteFor(theme)

	if a.renderer != nil {
		a.renderer.Render(params, palette)
	}
	if a.particles != nil {
		a.particles.SetParticleType(params.ParticleType, palette)
	}

	a.anim.Start(state, activity)
	a.applyAssets(cfg)

	log.Info("state applied",
		"state", state.String(),
		"activity", activity.String(),
		"theme", theme.String())
}

// applyAssets pushes a state's asset configuration to the audio player and
// compositor. The enter sound takes precedence for the transition; the loop
// sound plays only when no enter sound is configured.
func (a *Avatar) applyAssets(cfg StateConfig) {
	if a.audio != nil {
		switch {
		case cfg.EnterSound.Source != AssetNone:
			if err := a.audio.Play(cfg.EnterSound, false); err != nil {
				log.Warn("failed to play enter sound", "error", err)
			}
		case cfg.LoopSound.Source != AssetNone:
			if err := a.audio.Play(cfg.LoopSound, true); err != nil {
				log.Warn("failed to play loop sound", "error", err)
			}
		}
	}

	if a.compositor != nil {
		a.compositor.SetBackground(cfg.Background)
		a.compositor.SetSprite(cfg.Sprite)
	}
}

// frameReady is the animator's frame sink: forward the freshly synthesized
// parameters to the renderer unless paused or not yet created.
func (a *Avatar) frameReady(params FaceParams) {
	a.mu.RLock()
	ok := a.created && !a.paused
	theme := a.theme
	a.mu.RUnlock()

	if !ok || a.renderer == nil {
		return
	}
	a.renderer.Render(params, PaletteFor(theme))
}

func clampIntensity(v float64) float64 {
	if v < 0.2 {
		return 0.2
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
