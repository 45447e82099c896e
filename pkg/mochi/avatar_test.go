package mochi

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// mockRenderer records every frame pushed to it
type mockRenderer struct {
	mu       sync.Mutex
	frames   []FaceParams
	palettes []Palette
	visible  []bool
}

func (m *mockRenderer) Render(params FaceParams, palette Palette) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, params)
	m.palettes = append(m.palettes, palette)
}

func (m *mockRenderer) SetVisible(visible bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = append(m.visible, visible)
}

func (m *mockRenderer) frameCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

func (m *mockRenderer) lastFrame() (FaceParams, Palette) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) == 0 {
		return FaceParams{}, Palette{}
	}
	return m.frames[len(m.frames)-1], m.palettes[len(m.palettes)-1]
}

func (m *mockRenderer) lastVisible() (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.visible) == 0 {
		return false, false
	}
	return m.visible[len(m.visible)-1], true
}

type mockParticles struct {
	mu    sync.Mutex
	types []ParticleType
}

func (m *mockParticles) SetParticleType(pt ParticleType, palette Palette) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types = append(m.types, pt)
}

func (m *mockParticles) last() (ParticleType, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.types) == 0 {
		return ParticleNone, false
	}
	return m.types[len(m.types)-1], true
}

type soundCall struct {
	asset SoundAsset
	loop  bool
}

type mockAudio struct {
	mu      sync.Mutex
	plays   []soundCall
	stops   int
	playErr error
}

func (m *mockAudio) Play(asset SoundAsset, loop bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays = append(m.plays, soundCall{asset, loop})
	return m.playErr
}

func (m *mockAudio) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
}

func (m *mockAudio) lastPlay() (soundCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.plays) == 0 {
		return soundCall{}, false
	}
	return m.plays[len(m.plays)-1], true
}

func TestAvatar_Defaults(t *testing.T) {
	a := New()
	defer a.Close()

	if a.State() != StateHappy {
		t.Errorf("State = %v, want Happy", a.State())
	}
	if a.Activity() != ActivityIdle {
		t.Errorf("Activity = %v, want Idle", a.Activity())
	}
	if a.Theme() != ThemeSakura {
		t.Errorf("Theme = %v, want Sakura", a.Theme())
	}
	if !floatEquals(a.Intensity(), DefaultIntensity) {
		t.Errorf("Intensity = %v, want %v", a.Intensity(), DefaultIntensity)
	}
	if a.Paused() {
		t.Error("new avatar is paused")
	}
}

func TestAvatar_CreateAppliesInitialState(t *testing.T) {
	renderer := &mockRenderer{}
	particles := &mockParticles{}
	a := New(WithRenderer(renderer), WithParticles(particles))
	defer a.Close()

	if err := a.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if renderer.frameCount() == 0 {
		t.Fatal("no frame pushed on Create")
	}
	frame, palette := renderer.lastFrame()
	if frame.ParticleType != ParticleFloat {
		t.Errorf("initial frame particle = %v, want Float", frame.ParticleType)
	}
	if palette.Name != "Sakura" {
		t.Errorf("palette = %q, want Sakura", palette.Name)
	}
	if pt, ok := particles.last(); !ok || pt != ParticleFloat {
		t.Errorf("particle type = %v (%v), want Float", pt, ok)
	}
	if !a.Animator().Running() {
		t.Error("animator not running after Create")
	}

	// Second Create is a no-op.
	if err := a.Create(); err != nil {
		t.Errorf("second Create: %v", err)
	}
}

func TestAvatar_SetRejectsInvalidAtomically(t *testing.T) {
	renderer := &mockRenderer{}
	a := New(WithRenderer(renderer))
	defer a.Close()
	a.Create()
	a.Pause() // stop background frames so counts are stable

	before := renderer.frameCount()

	if err := a.Set(State(99), ActivityBounce); !errors.Is(err, ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState", err)
	}
	if err := a.Set(StateExcited, Activity(-2)); !errors.Is(err, ErrInvalidActivity) {
		t.Errorf("got %v, want ErrInvalidActivity", err)
	}

	if a.State() != StateHappy || a.Activity() != ActivityIdle {
		t.Errorf("state mutated on rejection: %v/%v", a.State(), a.Activity())
	}
	if renderer.frameCount() != before {
		t.Error("rejected Set pushed a frame")
	}
}

func TestAvatar_SetBeforeCreateStoresWithoutPush(t *testing.T) {
	renderer := &mockRenderer{}
	a := New(WithRenderer(renderer))
	defer a.Close()

	if err := a.Set(StateCool, ActivityNod); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if a.State() != StateCool || a.Activity() != ActivityNod {
		t.Error("Set before Create did not store values")
	}
	if renderer.frameCount() != 0 {
		t.Error("Set before Create pushed a frame")
	}
}

func TestAvatar_SetIntensityClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1.0, 0.2},
		{0.0, 0.2},
		{0.19, 0.2},
		{0.2, 0.2},
		{0.55, 0.55},
		{1.0, 1.0},
		{1.01, 1.0},
		{8.0, 1.0},
	}

	a := New()
	defer a.Close()
	for _, tt := range tests {
		a.SetIntensity(tt.in)
		if !floatEquals(a.Intensity(), tt.want) {
			t.Errorf("SetIntensity(%v): got %v, want %v", tt.in, a.Intensity(), tt.want)
		}
	}
}

func TestAvatar_SetThemeInvalid(t *testing.T) {
	a := New()
	defer a.Close()

	if err := a.SetTheme(Theme(9)); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("got %v, want ErrInvalidTheme", err)
	}
	if a.Theme() != ThemeSakura {
		t.Error("theme mutated on rejection")
	}
}

func TestAvatar_NextThemeCycles(t *testing.T) {
	a := New()
	defer a.Close()

	for i := 0; i < int(themeCount); i++ {
		a.NextTheme()
	}
	if a.Theme() != ThemeSakura {
		t.Errorf("after full cycle theme = %v, want Sakura", a.Theme())
	}
}

func TestAvatar_PauseHidesAndResumeRepushes(t *testing.T) {
	renderer := &mockRenderer{}
	a := New(WithRenderer(renderer))
	defer a.Close()
	a.Create()

	a.Pause()
	if !a.Paused() {
		t.Fatal("Paused() = false after Pause")
	}
	if v, ok := renderer.lastVisible(); !ok || v {
		t.Error("Pause did not hide the visual")
	}

	// No frames while paused.
	count := renderer.frameCount()
	time.Sleep(80 * time.Millisecond)
	if renderer.frameCount() != count {
		t.Error("frames pushed while paused")
	}

	a.Resume()
	if a.Paused() {
		t.Fatal("Paused() = true after Resume")
	}
	if v, ok := renderer.lastVisible(); !ok || !v {
		t.Error("Resume did not unhide the visual")
	}
	if renderer.frameCount() <= count {
		t.Error("Resume did not push a fresh frame")
	}
}

func TestAvatar_SetWhilePausedDefersPush(t *testing.T) {
	renderer := &mockRenderer{}
	a := New(WithRenderer(renderer))
	defer a.Close()
	a.Create()
	a.Pause()

	count := renderer.frameCount()
	if err := a.Set(StateShocked, ActivityWiggle); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if renderer.frameCount() != count {
		t.Error("Set while paused pushed a frame")
	}

	a.Resume()
	if a.State() != StateShocked || a.Activity() != ActivityWiggle {
		t.Error("state lost across pause")
	}
	if renderer.frameCount() == count {
		t.Error("Resume did not apply deferred state")
	}
}

func TestAvatar_RedundantSetKeepsFrameCounter(t *testing.T) {
	a := New()
	defer a.Close()
	a.Create()

	time.Sleep(80 * time.Millisecond)
	before := a.Animator().Frame()
	if before == 0 {
		t.Fatal("animator produced no frames")
	}

	if err := a.Set(StateHappy, ActivityIdle); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := a.Animator().Frame(); got < before {
		t.Errorf("frame counter reset by redundant Set: %d -> %d", before, got)
	}

	time.Sleep(60 * time.Millisecond)
	if got := a.Animator().Frame(); got <= before {
		t.Errorf("animation stalled after redundant Set: still %d", got)
	}
}

func TestAvatar_ConfigureState(t *testing.T) {
	a := New()
	defer a.Close()

	cfg := &StateConfig{
		EnterSound: StorageSoundAsset("/sd/sounds/gasp.wav"),
		LoopSound:  StorageSoundAsset("/sd/sounds/hum.wav"),
	}
	if err := a.ConfigureState(StateShocked, cfg); err != nil {
		t.Fatalf("ConfigureState: %v", err)
	}

	got, err := a.StateConfigFor(StateShocked)
	if err != nil {
		t.Fatalf("StateConfigFor: %v", err)
	}
	if got.EnterSound.Path != "/sd/sounds/gasp.wav" {
		t.Errorf("enter sound path = %q", got.EnterSound.Path)
	}

	// nil clears.
	if err := a.ConfigureState(StateShocked, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = a.StateConfigFor(StateShocked)
	if got.EnterSound.Source != AssetNone {
		t.Error("clear did not reset assets")
	}

	if err := a.ConfigureState(State(77), cfg); !errors.Is(err, ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState", err)
	}
	if _, err := a.StateConfigFor(State(-1)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState", err)
	}
}

func TestAvatar_EnterSoundTakesPrecedence(t *testing.T) {
	audio := &mockAudio{}
	a := New(WithAudio(audio))
	defer a.Close()

	both := &StateConfig{
		EnterSound: StorageSoundAsset("/sd/enter.wav"),
		LoopSound:  StorageSoundAsset("/sd/loop.wav"),
	}
	a.ConfigureState(StateExcited, both)
	loopOnly := &StateConfig{
		LoopSound: StorageSoundAsset("/sd/snore.wav"),
	}
	a.ConfigureState(StateSleepy, loopOnly)

	a.Create()

	if err := a.Set(StateExcited, ActivityBounce); err != nil {
		t.Fatalf("Set: %v", err)
	}
	call, ok := audio.lastPlay()
	if !ok || call.asset.Path != "/sd/enter.wav" || call.loop {
		t.Errorf("got %+v, want one-shot enter sound", call)
	}

	if err := a.Set(StateSleepy, ActivitySnore); err != nil {
		t.Fatalf("Set: %v", err)
	}
	call, ok = audio.lastPlay()
	if !ok || call.asset.Path != "/sd/snore.wav" || !call.loop {
		t.Errorf("got %+v, want looping sound", call)
	}
}

func TestAvatar_AssetSetupRunsBeforeCreate(t *testing.T) {
	var ran bool
	a := New(WithAssetSetup(func(av *Avatar) {
		ran = true
		av.ConfigureState(StateHappy, &StateConfig{
			LoopSound: StorageSoundAsset("/sd/ambient.wav"),
		})
	}))
	defer a.Close()

	if !ran {
		t.Fatal("asset setup callback did not run in New")
	}
	cfg, err := a.StateConfigFor(StateHappy)
	if err != nil || cfg.LoopSound.Path != "/sd/ambient.wav" {
		t.Errorf("setup config not stored: %+v, %v", cfg, err)
	}
}

func TestAvatar_CloseStopsAnimatorAndAudio(t *testing.T) {
	audio := &mockAudio{}
	a := New(WithAudio(audio))
	a.Create()

	a.Close()
	if a.Animator().Running() {
		t.Error("animator still running after Close")
	}
	audio.mu.Lock()
	stops := audio.stops
	audio.mu.Unlock()
	if stops == 0 {
		t.Error("audio not stopped on Close")
	}
}
