package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/go-mochi/pkg/mochi"
	"github.com/teslashibe/go-mochi/pkg/motion"
)

// SetStateRequest sets state and/or activity by name. Omitted fields keep
// their current value.
type SetStateRequest struct {
	State    string `json:"state"`
	Activity string `json:"activity"`
}

// SetThemeRequest switches theme by name, or cycles when Next is true.
type SetThemeRequest struct {
	Theme string `json:"theme"`
	Next  bool   `json:"next"`
}

// SetIntensityRequest sets animation intensity; out-of-range values clamp.
type SetIntensityRequest struct {
	Intensity float64 `json:"intensity"`
}

func (s *Server) handleGetState(c *fiber.Ctx) error {
	if s.avatar == nil {
		return fiber.ErrServiceUnavailable
	}
	return c.JSON(s.currentState())
}

func (s *Server) handleSetState(c *fiber.Ctx) error {
	if s.avatar == nil {
		return fiber.ErrServiceUnavailable
	}

	var req SetStateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}

	state := s.avatar.State()
	activity := s.avatar.Activity()
	if req.State != "" {
		v, ok := mochi.LookupState(req.State)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown state: " + req.State})
		}
		state = v
	}
	if req.Activity != "" {
		v, ok := mochi.LookupActivity(req.Activity)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown activity: " + req.Activity})
		}
		activity = v
	}

	if err := s.avatar.Set(state, activity); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(s.currentState())
}

func (s *Server) handleGetTheme(c *fiber.Ctx) error {
	if s.avatar == nil {
		return fiber.ErrServiceUnavailable
	}
	theme := s.avatar.Theme()
	return c.JSON(fiber.Map{
		"theme":   theme.String(),
		"palette": mochi.PaletteFor(theme),
	})
}

func (s *Server) handleSetTheme(c *fiber.Ctx) error {
	if s.avatar == nil {
		return fiber.ErrServiceUnavailable
	}

	var req SetThemeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}

	switch {
	case req.Next:
		s.avatar.NextTheme()
	case req.Theme != "":
		theme, ok := mochi.LookupTheme(req.Theme)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown theme: " + req.Theme})
		}
		if err := s.avatar.SetTheme(theme); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "theme or next required"})
	}

	theme := s.avatar.Theme()
	return c.JSON(fiber.Map{
		"theme":   theme.String(),
		"palette": mochi.PaletteFor(theme),
	})
}

func (s *Server) handleGetIntensity(c *fiber.Ctx) error {
	if s.avatar == nil {
		return fiber.ErrServiceUnavailable
	}
	return c.JSON(fiber.Map{"intensity": s.avatar.Intensity()})
}

func (s *Server) handleSetIntensity(c *fiber.Ctx) error {
	if s.avatar == nil {
		return fiber.ErrServiceUnavailable
	}

	var req SetIntensityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}

	s.avatar.SetIntensity(req.Intensity)
	return c.JSON(fiber.Map{"intensity": s.avatar.Intensity()})
}

func (s *Server) handlePause(c *fiber.Ctx) error {
	if s.avatar == nil {
		return fiber.ErrServiceUnavailable
	}
	s.avatar.Pause()
	return c.JSON(s.currentState())
}

func (s *Server) handleResume(c *fiber.Ctx) error {
	if s.avatar == nil {
		return fiber.ErrServiceUnavailable
	}
	s.avatar.Resume()
	return c.JSON(s.currentState())
}

// handleSnapshot returns the classifier's most recent fused snapshot.
func (s *Server) handleSnapshot(c *fiber.Ctx) error {
	if s.classifier == nil {
		return fiber.ErrServiceUnavailable
	}
	return c.JSON(s.classifier.Snapshot())
}

func (s *Server) handleGetThresholds(c *fiber.Ctx) error {
	if s.thresholds == nil {
		return fiber.ErrServiceUnavailable
	}
	return c.JSON(s.thresholds.Get())
}

// handleSetThresholds replaces the full threshold set. Fields omitted from
// the body keep their current value.
func (s *Server) handleSetThresholds(c *fiber.Ctx) error {
	if s.thresholds == nil {
		return fiber.ErrServiceUnavailable
	}

	cfg := s.thresholds.Get()
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
	}
	if cfg.MovingG <= 0 || cfg.ShakingG <= 0 || cfg.RotatingDPS <= 0 || cfg.SpinningDPS <= 0 || cfg.BrakingGPS <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "thresholds must be positive"})
	}

	if err := s.thresholds.Set(cfg); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(s.thresholds.Get())
}

func (s *Server) handleResetThresholds(c *fiber.Ctx) error {
	if s.thresholds == nil {
		return fiber.ErrServiceUnavailable
	}
	if err := s.thresholds.Reset(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(motion.Defaults())
}
