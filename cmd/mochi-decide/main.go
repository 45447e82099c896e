// The mochi-decide command is a reference remote decision server. It
// accepts the engine's snapshot payload and answers with a state and
// activity, so the bridge can be exercised end to end without a real
// backend.
package main

import (
	"flag"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/teslashibe/go-mochi/internal/log"
	"github.com/teslashibe/go-mochi/pkg/mochi"
)

// snapshot is the subset of the engine payload the sample rules look at.
type snapshot struct {
	Battery    int  `json:"battery"`
	Charging   bool `json:"charging"`
	Hour       int  `json:"hour"`
	Touch      bool `json:"touch"`
	Night      bool `json:"night"`
	Weekend    bool `json:"weekend"`
	LowBattery bool `json:"low_battery"`
}

func decide(s snapshot) (mochi.State, mochi.Activity) {
	switch {
	case s.Night:
		return mochi.StateSleepy, mochi.ActivitySnore
	case s.LowBattery && !s.Charging:
		return mochi.StateWorried, mochi.ActivityIdle
	case s.Touch:
		return mochi.StateExcited, mochi.ActivityWiggle
	case s.Weekend:
		return mochi.StateHappy, mochi.ActivityBounce
	default:
		return mochi.StateHappy, mochi.ActivityIdle
	}
}

func main() {
	port := flag.String("port", "8091", "HTTP listen port")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	app := fiber.New(fiber.Config{
		AppName:               "Mochi Decision Server",
		DisableStartupMessage: true,
	})

	app.Post("/", func(c *fiber.Ctx) error {
		var s snapshot
		if err := c.BodyParser(&s); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid json body"})
		}

		state, activity := decide(s)
		log.Info("decision served",
			"battery", s.Battery, "hour", s.Hour,
			"state", state, "activity", activity)
		return c.JSON(fiber.Map{
			"state":    state.String(),
			"activity": activity.String(),
		})
	})

	log.Info("decision server listening", "port", *port)
	if err := app.Listen(":" + *port); err != nil {
		log.Error("decision server failed", "error", err)
		os.Exit(1)
	}
}
