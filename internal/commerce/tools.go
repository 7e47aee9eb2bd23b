package commerce

import (
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"shoptalk/internal/catalog"
)

// Tool names as exposed to the LLM. Shapes here are a compatibility
// contract; renaming a field breaks the model-facing interface.
const (
	ToolListProducts = "list_products"
	ToolCreateOrder  = "create_order"
	ToolGetLastOrder = "get_last_order"
)

// ToolSpecs returns the function-tool declarations for the chat session.
func ToolSpecs() []openai.ChatCompletionToolUnionParam {
	return []openai.ChatCompletionToolUnionParam{
		openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        ToolListProducts,
			Description: openai.String("Browse the product catalog using lenient filters."),
			Parameters: shared.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"category": map[string]any{
						"type":        "string",
						"description": `words like "mug", "tshirt", "hoodie", "accessory" or related`,
					},
					"max_price": map[string]any{
						"type":        "integer",
						"description": "max price in INR",
					},
					"color": map[string]any{
						"type":        "string",
						"description": `e.g. "black", "blue"`,
					},
					"text_query": map[string]any{
						"type":        "string",
						"description": `keyword filter over name/description, e.g. "coffee", "logo"`,
					},
				},
			},
		}),
		openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        ToolCreateOrder,
			Description: openai.String("Create an order for a single product."),
			Parameters: shared.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"product_id": map[string]any{
						"type":        "string",
						"description": "id of the product to buy",
					},
					"quantity": map[string]any{
						"type":        "integer",
						"description": "how many units (min 1)",
					},
					"size": map[string]any{
						"type":        "string",
						"description": `optional size for wearables, e.g. "S", "M", "L", "XL"`,
					},
				},
				"required": []string{"product_id"},
			},
		}),
		openai.ChatCompletionFunctionTool(shared.FunctionDefinitionParam{
			Name:        ToolGetLastOrder,
			Description: openai.String("Return the most recent order placed in this system."),
			Parameters: shared.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		}),
	}
}

type listArgs struct {
	Category  string `json:"category"`
	MaxPrice  *int   `json:"max_price"`
	Color     string `json:"color"`
	TextQuery string `json:"text_query"`
}

type createArgs struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

// Dispatch decodes a tool call's arguments and runs the matching operation,
// returning the JSON payload to hand back as the tool message. Malformed
// arguments come back as a failure payload, never as a crashed turn; only a
// ledger write failure surfaces as a Go error.
func (a *Agent) Dispatch(name, argsJSON string) (string, error) {
	switch name {
	case ToolListProducts:
		var args listArgs
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return failPayload(fmt.Sprintf("invalid arguments for %s: %v", name, err)), nil
		}
		return marshalPayload(a.ListProducts(catalog.Query{
			Category: args.Category,
			MaxPrice: args.MaxPrice,
			Color:    args.Color,
			Text:     args.TextQuery,
		}))

	case ToolCreateOrder:
		var args createArgs
		if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
			return failPayload(fmt.Sprintf("invalid arguments for %s: %v", name, err)), nil
		}
		res, err := a.CreateOrder(args.ProductID, args.Quantity, args.Size)
		if err != nil {
			return "", err
		}
		return marshalPayload(res)

	case ToolGetLastOrder:
		return marshalPayload(a.LastOrder())

	default:
		return failPayload(fmt.Sprintf("unknown tool %q", name)), nil
	}
}

func marshalPayload(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal tool payload: %w", err)
	}
	return string(data), nil
}

func failPayload(msg string) string {
	data, _ := json.Marshal(CreateResult{Ok: false, Error: msg})
	return string(data)
}
