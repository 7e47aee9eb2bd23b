package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"shoptalk/internal/barista"
	"shoptalk/internal/daemon"
	"shoptalk/internal/ledger"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env.local", "Env file path")
	orderLogPath := cli.StringP("orderlog", "o", "orders.json", "Order log file (one JSON object per line)")
	modelPath := cli.StringP("model", "m", "third_party/whisper.cpp/models/ggml-base.en.bin", "Whisper model path")
	busURL := cli.StringP("bus", "b", "", "Room hub websocket URL; replaces the microphone")
	earcon := cli.String("earcon", "", "mp3 chime played when listening starts")
	replay := cli.StringSlice("replay", nil, "Audio files to feed instead of the microphone")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up barista agent")

	// the env file only matters for deployments that add an LLM voice
	// layer; slot filling itself runs fully local
	godotenv.Load(*envFile)

	assistant := barista.NewAssistant(ledger.NewOrderLog(*orderLogPath))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := daemon.Config{
		Agent:     "barista",
		ModelPath: *modelPath,
		Earcon:    *earcon,
		STTPrompt: "latte, cappuccino, mocha, flat white, oat milk, whipped cream, caramel",
		Greeting:  assistant.Greeting(),
		Respond:   assistant,
	}

	if err := daemon.Run(ctx, cfg, *busURL, *replay); err != nil && ctx.Err() == nil {
		log.Error("Daemon failed", "err", err)
		os.Exit(1)
	}

	log.Info("Final order state", "order", assistant.Order())
}
