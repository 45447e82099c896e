package mochi

import "time"

// AssetSource tags where an asset lives.
type AssetSource int

const (
	AssetNone AssetSource = iota
	AssetEmbedded
	AssetStorage
)

// EmbeddedSound is PCM audio compiled into the binary.
type EmbeddedSound struct {
	PCM        []int16
	SampleRate int
	Channels   int
}

// SoundAsset references a sound: absent, embedded PCM, or a storage path.
// Exactly the variant selected by Source is meaningful.
type SoundAsset struct {
	Source   AssetSource
	Embedded EmbeddedSound
	Path     string
}

// EmbeddedSoundAsset builds an embedded mono PCM sound reference.
func EmbeddedSoundAsset(pcm []int16, sampleRate int) SoundAsset {
	return SoundAsset{
		Source:   AssetEmbedded,
		Embedded: EmbeddedSound{PCM: pcm, SampleRate: sampleRate, Channels: 1},
	}
}

// StorageSoundAsset builds a storage-path sound reference.
func StorageSoundAsset(path string) SoundAsset {
	return SoundAsset{Source: AssetStorage, Path: path}
}

// ImageAsset references an image: absent, an embedded resource handle, or a
// storage path.
type ImageAsset struct {
	Source   AssetSource
	Embedded []byte // Encoded image data compiled into the binary
	Path     string
}

// EmbeddedImageAsset builds an embedded image reference.
func EmbeddedImageAsset(data []byte) ImageAsset {
	return ImageAsset{Source: AssetEmbedded, Embedded: data}
}

// StorageImageAsset builds a storage-path image reference.
func StorageImageAsset(path string) ImageAsset {
	return ImageAsset{Source: AssetStorage, Path: path}
}

// Sprite is an optional overlay image drawn on top of the face.
type Sprite struct {
	Image         ImageAsset
	OffsetX       int           // X offset from center
	OffsetY       int           // Y offset from center
	Frames        int           // Animation frames (1 = static)
	FrameDuration time.Duration // Per-frame duration for animated sprites
}

// StateConfig associates assets with one State: an optional background
// image, an optional sprite overlay, and enter/loop sounds. Applied when the
// state becomes active.
type StateConfig struct {
	Background ImageAsset
	Sprite     Sprite
	EnterSound SoundAsset
	LoopSound  SoundAsset
}

// Renderer consumes face parameters whenever the avatar has a dirty frame.
// Implementations must not block; they run on the animation tick.
type Renderer interface {
	Render(params FaceParams, palette Palette)

	// SetVisible hides or unhides the avatar (used by Pause/Resume).
	SetVisible(visible bool)
}

// ParticleSink is told which particle effect and palette to use when the
// active state changes.
type ParticleSink interface {
	SetParticleType(t ParticleType, palette Palette)
}

// AudioPlayer plays state sounds. Play replaces whatever is currently
// playing; failures are the player's to report.
type AudioPlayer interface {
	Play(asset SoundAsset, loop bool) error
	Stop()
}

// ImageCompositor displays background and sprite layers for the active state.
type ImageCompositor interface {
	SetBackground(asset ImageAsset)
	SetSprite(sprite Sprite)
}
