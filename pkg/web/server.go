// Package web exposes the engine over HTTP: a REST API for control and two
// websocket streams, one carrying face frames at the animation rate and one
// carrying state transitions.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-mochi/internal/log"
	"github.com/teslashibe/go-mochi/pkg/hub"
	"github.com/teslashibe/go-mochi/pkg/input"
	"github.com/teslashibe/go-mochi/pkg/mochi"
	"github.com/teslashibe/go-mochi/pkg/motion"
)

// FrameMessage is one rendered face frame as sent to frame-stream clients.
type FrameMessage struct {
	Params  mochi.FaceParams `json:"params"`
	Palette mochi.Palette    `json:"palette"`
	Visible bool             `json:"visible"`
}

// StateMessage describes the avatar's committed state, sent on transitions.
type StateMessage struct {
	State     string  `json:"state"`
	Activity  string  `json:"activity"`
	Theme     string  `json:"theme"`
	Intensity float64 `json:"intensity"`
	Paused    bool    `json:"paused"`
}

// Server serves the control API and websocket streams. It also implements
// mochi.Renderer so it can be handed to the avatar directly: every animator
// tick becomes a frame broadcast.
type Server struct {
	app  *fiber.App
	port string

	avatar     *mochi.Avatar
	thresholds *motion.Store
	classifier *input.Classifier

	frameHub *hub.Hub
	stateHub *hub.Hub

	mu      sync.Mutex
	visible bool
	last    StateMessage
	hasLast bool
}

// NewServer creates the server. Call Attach before Start.
func NewServer(port string) *Server {
	s := &Server{
		port:     port,
		visible:  true,
		frameHub: hub.New("frames"),
		stateHub: hub.New("state"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Mochi Engine",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleGetState)
	api.Post("/state", s.handleSetState)
	api.Get("/theme", s.handleGetTheme)
	api.Post("/theme", s.handleSetTheme)
	api.Get("/intensity", s.handleGetIntensity)
	api.Post("/intensity", s.handleSetIntensity)
	api.Post("/pause", s.handlePause)
	api.Post("/resume", s.handleResume)
	api.Get("/snapshot", s.handleSnapshot)
	api.Get("/thresholds", s.handleGetThresholds)
	api.Put("/thresholds", s.handleSetThresholds)
	api.Post("/thresholds/reset", s.handleResetThresholds)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// Attach wires the server to the engine components it controls. thresholds
// and classifier may be nil; the corresponding endpoints then return 503.
func (s *Server) Attach(avatar *mochi.Avatar, thresholds *motion.Store, classifier *input.Classifier) {
	s.avatar = avatar
	s.thresholds = thresholds
	s.classifier = classifier
}

// Start runs the hubs and blocks serving HTTP.
func (s *Server) Start() error {
	log.Info("web server listening", "port", s.port)
	go s.frameHub.Run()
	go s.stateHub.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server failed", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Render broadcasts a face frame. Implements mochi.Renderer; called once
// per animator tick and on every committed state change.
func (s *Server) Render(params mochi.FaceParams, palette mochi.Palette) {
	s.mu.Lock()
	visible := s.visible
	s.mu.Unlock()

	s.frameHub.BroadcastJSON(FrameMessage{
		Params:  params,
		Palette: palette,
		Visible: visible,
	})
	s.broadcastStateIfChanged()
}

// SetVisible implements mochi.Renderer.
func (s *Server) SetVisible(visible bool) {
	s.mu.Lock()
	s.visible = visible
	s.mu.Unlock()
	s.broadcastStateIfChanged()
}

// FrameHub exposes the frame hub for external broadcasters.
func (s *Server) FrameHub() *hub.Hub {
	return s.frameHub
}

// StateHub exposes the state hub for external broadcasters.
func (s *Server) StateHub() *hub.Hub {
	return s.stateHub
}

func (s *Server) currentState() StateMessage {
	return StateMessage{
		State:     s.avatar.State().String(),
		Activity:  s.avatar.Activity().String(),
		Theme:     s.avatar.Theme().String(),
		Intensity: s.avatar.Intensity(),
		Paused:    s.avatar.Paused(),
	}
}

// broadcastStateIfChanged pushes a state message whenever the committed
// state differs from the last one broadcast.
func (s *Server) broadcastStateIfChanged() {
	if s.avatar == nil {
		return
	}
	msg := s.currentState()

	s.mu.Lock()
	changed := !s.hasLast || msg != s.last
	s.last = msg
	s.hasLast = true
	s.mu.Unlock()

	if changed {
		s.stateHub.BroadcastJSON(msg)
	}
}

// handleFramesWS streams face frames to one client.
func (s *Server) handleFramesWS(c *websocket.Conn) {
	client := hub.NewClient(s.frameHub, c)
	client.Run()
}

// handleStateWS streams state transitions to one client, starting with the
// current state.
func (s *Server) handleStateWS(c *websocket.Conn) {
	if s.avatar != nil {
		c.WriteJSON(s.currentState())
	}
	client := hub.NewClient(s.stateHub, c)
	client.Run()
}
