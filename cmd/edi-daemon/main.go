package main

import (
	"context"
	"fmt"
	log "log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"edi/internal/app"
	"edi/internal/audio"
	"edi/internal/config"
	"edi/internal/ipc"
	"edi/internal/logging"
	"edi/internal/mixer"
	"edi/internal/notify"
	"edi/internal/session"
	"edi/internal/tts"
	"edi/pkg/stt"
)

func main() {
	cfg, err := config.Load("edi-daemon", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logFile := logging.Setup(cfg.LogLevel, cfg.LogPath)
	defer logFile.Close()

	log.Info("Booting up")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src audio.Source
	if cfg.Replay != "" {
		src = audio.NewReplay(strings.Split(cfg.Replay, ",")...)
		log.Info("Replaying recorded audio", "files", cfg.Replay)
	} else {
		rec := audio.NewRecorder()
		if err := rec.Init(); err != nil {
			log.Error("Failed to init audio", "err", err)
			os.Exit(1)
		}
		defer rec.Close()
		src = rec
		log.Debug("Loaded recorder")
	}

	whisper, err := stt.NewTranscriber(cfg.WhisperModel)
	if err != nil {
		log.Error("Failed to init whisper", "model", cfg.WhisperModel, "err", err)
		os.Exit(1)
	}
	defer whisper.Close()

	log.Debug("Loaded whisper")

	listener := audio.NewListener(src, whisper, cfg.ListenTimeout, cfg.PhraseLimit)
	assistant, err := app.New(ctx, cfg, listener, tts.New(cfg.Voice))
	if err != nil {
		log.Error("Failed to assemble assistant", "err", err)
		os.Exit(1)
	}
	defer assistant.Close()

	assistant.Session.Observe(cue(ctx, cfg.BeepFile, mixer.NewDucker(nil, "edi-daemon")))

	if cfg.HubURL != "" {
		if err := assistant.ConnectHub(ctx, cfg.HubURL); err != nil {
			log.Error("Failed to connect to hub, continuing without it", "url", cfg.HubURL, "err", err)
		}
	}

	if _, err := ipc.Listen(ctx, cfg.Socket, assistant.Control(ctx)); err != nil {
		log.Error("Failed ipc server", "err", err)
		os.Exit(1)
	}

	log.Info("Boot up - successful")
	assistant.Greet()

	<-ctx.Done()
	log.Info("Shutting down")
}

// cue lowers other audio and beeps when a session opens, and restores the
// volume when it closes.
func cue(ctx context.Context, beepFile string, ducker *mixer.Ducker) func(session.Snapshot) {
	prev := session.Idle
	return func(s session.Snapshot) {
		defer func() { prev = s.State }()
		switch {
		case s.State == session.Listening && prev == session.Idle:
			if err := ducker.Duck(ctx); err != nil {
				log.Warn("Failed to duck audio", "err", err)
			}
			if err := notify.Beep(beepFile); err != nil {
				log.Warn("Failed to play cue", "path", beepFile, "err", err)
			}
		case s.State == session.Idle:
			if err := ducker.Restore(context.WithoutCancel(ctx)); err != nil {
				log.Warn("Failed to restore audio", "err", err)
			}
		}
	}
}
