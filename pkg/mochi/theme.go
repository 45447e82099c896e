package mochi

// Color is an 8-bit RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Palette is the set of named colors a renderer needs for one theme.
type Palette struct {
	Name          string `json:"name"`
	Bg            Color  `json:"bg"`             // Background
	BgLight       Color  `json:"bg_light"`       // Background gradient/highlight
	Face          Color  `json:"face"`           // Main face color
	FaceHighlight Color  `json:"face_highlight"` // Face shine
	FaceShadow    Color  `json:"face_shadow"`
	Eye           Color  `json:"eye"`
	Pupil         Color  `json:"pupil"`
	Mouth         Color  `json:"mouth"`
	Blush         Color  `json:"blush"`
	Accent        Color  `json:"accent"`   // Sparkles
	Particle      Color  `json:"particle"` // Particle color
}

var palettes = [themeCount]Palette{
	ThemeSakura: {
		Name:          "Sakura",
		Bg:            Color{26, 22, 37},
		BgLight:       Color{45, 38, 64},
		Face:          Color{255, 245, 245},
		FaceHighlight: Color{255, 255, 255},
		FaceShadow:    Color{255, 228, 232},
		Eye:           Color{45, 38, 64},
		Pupil:         Color{255, 107, 157},
		Mouth:         Color{255, 107, 157},
		Blush:         Color{255, 179, 198},
		Accent:        Color{255, 155, 193},
		Particle:      Color{255, 209, 220},
	},
	ThemeMint: {
		Name:          "Mint",
		Bg:            Color{15, 26, 26},
		BgLight:       Color{26, 47, 47},
		Face:          Color{240, 255, 255},
		FaceHighlight: Color{255, 255, 255},
		FaceShadow:    Color{212, 245, 245},
		Eye:           Color{26, 47, 47},
		Pupil:         Color{64, 201, 198},
		Mouth:         Color{64, 201, 198},
		Blush:         Color{168, 230, 207},
		Accent:        Color{127, 219, 218},
		Particle:      Color{200, 247, 247},
	},
	ThemeLavender: {
		Name:          "Lavender",
		Bg:            Color{26, 22, 37},
		BgLight:       Color{42, 32, 64},
		Face:          Color{248, 245, 255},
		FaceHighlight: Color{255, 255, 255},
		FaceShadow:    Color{232, 224, 240},
		Eye:           Color{42, 32, 64},
		Pupil:         Color{157, 124, 216},
		Mouth:         Color{157, 124, 216},
		Blush:         Color{219, 184, 255},
		Accent:        Color{196, 167, 231},
		Particle:      Color{232, 213, 255},
	},
	ThemePeach: {
		Name:          "Peach",
		Bg:            Color{31, 23, 20},
		BgLight:       Color{45, 36, 32},
		Face:          Color{255, 248, 240},
		FaceHighlight: Color{255, 255, 255},
		FaceShadow:    Color{255, 232, 214},
		Eye:           Color{45, 36, 32},
		Pupil:         Color{255, 140, 90},
		Mouth:         Color{255, 140, 90},
		Blush:         Color{255, 196, 168},
		Accent:        Color{255, 176, 136},
		Particle:      Color{255, 216, 200},
	},
	ThemeCloud: {
		Name:          "Cloud",
		Bg:            Color{21, 24, 32},
		BgLight:       Color{32, 37, 53},
		Face:          Color{245, 248, 255},
		FaceHighlight: Color{255, 255, 255},
		FaceShadow:    Color{221, 229, 245},
		Eye:           Color{32, 37, 53},
		Pupil:         Color{85, 136, 204},
		Mouth:         Color{85, 136, 204},
		Blush:         Color{184, 208, 240},
		Accent:        Color{136, 168, 216},
		Particle:      Color{208, 224, 255},
	},
}

// PaletteFor returns the palette for a theme.
// Out-of-range themes fall back to Sakura.
func PaletteFor(theme Theme) Palette {
	if !theme.Valid() {
		theme = ThemeSakura
	}
	return palettes[theme]
}
