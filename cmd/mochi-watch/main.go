// The mochi-watch command tails one of the engine's websocket streams and
// prints each message, one JSON object per line. Useful for eyeballing the
// 40 FPS frame output or following state transitions from a shell.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-mochi/internal/log"
)

func main() {
	host := flag.String("host", "localhost:8090", "Engine host:port")
	stream := flag.String("stream", "state", "Stream to follow (state or frames)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	if *stream != "state" && *stream != "frames" {
		log.Error("unknown stream", "stream", *stream)
		os.Exit(1)
	}
	url := fmt.Sprintf("ws://%s/ws/%s", *host, *stream)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		log.Error("failed to connect", "url", url, "error", err)
		os.Exit(1)
	}
	defer conn.Close()
	log.Info("connected", "url", url)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Info("stream closed", "error", err)
				return
			}
			fmt.Println(string(data))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
	case <-sigChan:
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
