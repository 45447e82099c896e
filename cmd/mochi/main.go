// The mochi command runs the avatar engine: a simulated sensor source, the
// input classifier with the built-in mapping policy, the optional remote
// decision bridge, and the HTTP/websocket control surface.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/teslashibe/go-mochi/internal/config"
	"github.com/teslashibe/go-mochi/internal/log"
	"github.com/teslashibe/go-mochi/pkg/decision"
	"github.com/teslashibe/go-mochi/pkg/input"
	"github.com/teslashibe/go-mochi/pkg/mochi"
	"github.com/teslashibe/go-mochi/pkg/motion"
	"github.com/teslashibe/go-mochi/pkg/web"
)

func main() {
	port := flag.String("port", config.WebPort(), "HTTP listen port")
	apiURL := flag.String("api-url", config.APIURL(), "Remote decision endpoint (empty disables)")
	configDir := flag.String("config-dir", config.Dir(), "Directory for persisted settings")
	interval := flag.Duration("interval", input.DefaultUpdateInterval, "Classifier update interval")
	theme := flag.String("theme", "Sakura", "Initial theme")
	intensity := flag.Float64("intensity", 0.7, "Animation intensity (clamped to 0.2..1.0)")
	logLevel := flag.String("log-level", config.LogLevel(), "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)
	log.Info("mochi engine starting", "port", *port, "api_url", *apiURL)

	thresholds, err := motion.Load(*configDir)
	if err != nil {
		log.Error("failed to load motion thresholds", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(*port)

	avatar := mochi.New(mochi.WithRenderer(server))
	if t, ok := mochi.LookupTheme(*theme); ok {
		avatar.SetTheme(t)
	} else {
		log.Warn("unknown theme, keeping default", "theme", *theme)
	}
	avatar.SetIntensity(*intensity)

	if err := avatar.Create(); err != nil {
		log.Error("failed to create avatar", "error", err)
		os.Exit(1)
	}
	defer avatar.Close()

	var decider input.Decider
	var bridge *decision.Bridge
	if *apiURL != "" {
		bridge = decision.New(*apiURL)
		bridge.Start()
		defer bridge.Stop()
		decider = bridge
	}

	sensors := input.NewSimSensors()
	classifier := input.NewClassifier(sensors, thresholds, avatar, input.DefaultMapper(decider))
	server.Attach(avatar, thresholds, classifier)

	stop := make(chan struct{})
	go classifier.Run(*interval, stop)

	server.StartAsync()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")
	close(stop)
	if err := server.Shutdown(); err != nil {
		log.Warn("web server shutdown failed", "error", err)
	}

	// Give in-flight broadcasts a moment to drain.
	time.Sleep(100 * time.Millisecond)
}
