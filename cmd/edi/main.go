package main

import (
	"context"
	"fmt"
	log "log/slog"
	"os"
	"os/signal"
	"syscall"

	"edi/internal/app"
	"edi/internal/config"
	"edi/internal/logging"
	"edi/internal/speech"
)

// edi runs the assistant on the terminal: each typed line is one utterance
// and replies are printed. An empty line is silence and ends the session;
// the next line opens a new one.
func main() {
	cfg, err := config.Load("edi", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The console is for the conversation; logs go to stderr.
	logFile := logging.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogPath)
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener := speech.NewTextListener(os.Stdin, os.Stdout)
	assistant, err := app.New(ctx, cfg, listener, speech.ConsoleSpeaker{Out: os.Stdout, Prefix: "edi> "})
	if err != nil {
		log.Error("Failed to assemble assistant", "err", err)
		os.Exit(1)
	}
	defer assistant.Close()

	if cfg.HubURL != "" {
		if err := assistant.ConnectHub(ctx, cfg.HubURL); err != nil {
			log.Error("Failed to connect to hub, continuing without it", "url", cfg.HubURL, "err", err)
		}
	}

	assistant.Greet()
	for ctx.Err() == nil && !listener.Exhausted() {
		assistant.Session.Run(ctx)
	}
}
