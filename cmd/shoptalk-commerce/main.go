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

	"shoptalk/internal/catalog"
	"shoptalk/internal/commerce"
	"shoptalk/internal/daemon"
	"shoptalk/internal/ledger"
	"shoptalk/internal/llm"
	"shoptalk/internal/session"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	envFile := cli.StringP("env", "e", ".env.local", "Env file path")
	ordersPath := cli.StringP("orders", "o", "orders/orders.json", "Orders JSON file")
	modelPath := cli.StringP("model", "m", "third_party/whisper.cpp/models/ggml-base.en.bin", "Whisper model path")
	proxyAddr := cli.StringP("proxy", "p", "", "SOCKS5 proxy address (optional)")
	busURL := cli.StringP("bus", "b", "", "Room hub websocket URL; replaces the microphone")
	earcon := cli.String("earcon", "", "mp3 chime played when listening starts")
	replay := cli.StringSlice("replay", nil, "Audio files to feed instead of the microphone")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	cli.Parse()

	log.SetDefault(log.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: logLevelMap[*logLevel],
	})))

	log.Info("Booting up commerce agent")

	godotenv.Load(*envFile)
	client, err := llm.NewClient(os.Getenv("OPENAI_API_KEY"), *proxyAddr)
	if err != nil {
		log.Error("Failed to build OpenAI client", "err", err)
		os.Exit(1)
	}

	agent := commerce.NewAgent(catalog.Default(), ledger.Load(*ordersPath))
	chat := llm.NewChat(client, llm.ChatConfig{
		Instructions: commerce.Instructions,
		Tools:        commerce.ToolSpecs(),
		Dispatch:     agent.Dispatch,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := daemon.Config{
		Agent:     "commerce",
		ModelPath: *modelPath,
		Earcon:    *earcon,
		// a vocabulary hint helps whisper with catalog words
		STTPrompt: "hoodie, t-shirt, mug, tote bag, baseball cap, rupees",
		Greeting:  "Welcome to the store! Ask me about mugs, t-shirts, hoodies and accessories.",
		Respond: session.ResponderFunc(func(ctx context.Context, text string) (string, error) {
			return chat.Respond(ctx, text)
		}),
	}

	if err := daemon.Run(ctx, cfg, *busURL, *replay); err != nil && ctx.Err() == nil {
		log.Error("Daemon failed", "err", err)
		os.Exit(1)
	}

	u := chat.Usage()
	log.Info("LLM usage",
		"turns", u.Turns, "tool_calls", u.ToolCalls,
		"prompt_tokens", u.PromptTokens, "completion_tokens", u.CompletionTokens)
}
