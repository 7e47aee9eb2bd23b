package llm

import (
	"context"
	"fmt"
	log "log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
)

// DispatchFunc executes one tool call and returns the JSON payload for the
// tool message.
type DispatchFunc func(name, argsJSON string) (string, error)

// Usage is a running count of what the chat consumed.
type Usage struct {
	Turns            int
	ToolCalls        int
	PromptTokens     int64
	CompletionTokens int64
}

// Chat drives a tool-calling conversation with the model, keeping the
// message history for the session.
type Chat struct {
	client   openai.Client
	model    shared.ChatModel
	tools    []openai.ChatCompletionToolUnionParam
	dispatch DispatchFunc

	messages []openai.ChatCompletionMessageParamUnion
	usage    Usage
}

type ChatConfig struct {
	Model        shared.ChatModel // defaults to GPT-5 nano
	Instructions string
	Tools        []openai.ChatCompletionToolUnionParam
	Dispatch     DispatchFunc
}

func NewChat(client openai.Client, cfg ChatConfig) *Chat {
	if cfg.Model == "" {
		cfg.Model = openai.ChatModelGPT5Nano
	}
	c := &Chat{
		client:   client,
		model:    cfg.Model,
		tools:    cfg.Tools,
		dispatch: cfg.Dispatch,
	}
	if cfg.Instructions != "" {
		c.messages = append(c.messages, openai.SystemMessage(cfg.Instructions))
	}
	return c
}

// maxToolRounds bounds one user turn; the model calling tools in a loop
// forever would otherwise hang the session.
const maxToolRounds = 8

// Respond sends one user utterance and runs the tool-call loop until the
// model produces a final text reply.
func (c *Chat) Respond(ctx context.Context, userText string) (string, error) {
	c.messages = append(c.messages, openai.UserMessage(userText))
	c.usage.Turns++

	for round := 0; round < maxToolRounds; round++ {
		resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: c.messages,
			Model:    c.model,
			Tools:    c.tools,
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices in response")
		}

		c.usage.PromptTokens += resp.Usage.PromptTokens
		c.usage.CompletionTokens += resp.Usage.CompletionTokens

		msg := resp.Choices[0].Message
		c.messages = append(c.messages, msg.ToParam())

		if len(msg.ToolCalls) == 0 {
			if msg.Content == "" {
				return "", fmt.Errorf("empty message content")
			}
			return msg.Content, nil
		}

		for _, tc := range msg.ToolCalls {
			c.usage.ToolCalls++
			log.Debug("tool call", "name", tc.Function.Name, "args", tc.Function.Arguments)

			payload, err := c.dispatch(tc.Function.Name, tc.Function.Arguments)
			if err != nil {
				return "", fmt.Errorf("tool %s: %w", tc.Function.Name, err)
			}
			c.messages = append(c.messages, openai.ToolMessage(payload, tc.ID))
		}
	}

	return "", fmt.Errorf("model did not settle after %d tool rounds", maxToolRounds)
}

// Usage returns a snapshot of consumption counters for the session summary.
func (c *Chat) Usage() Usage { return c.usage }
