package commerce

import (
	"fmt"
	log "log/slog"
	"time"

	"shoptalk/internal/catalog"
	"shoptalk/internal/ledger"
)

// Instructions is the system prompt handed to the LLM session. Conversation
// lives in the model; catalog and orders live behind the tools below.
const Instructions = `You are a calm, reliable voice shopping assistant for a fictional online store.

You handle conversation in natural language and use tools to browse the
catalog and create orders. You NEVER invent products, ids, or prices —
only use tool results.

CATALOG:
- Products include mugs, t-shirts, hoodies, and accessories.
- Each product has id, name, price, currency, category, color, and sometimes sizes.

WHEN THE USER WANTS TO BROWSE OR CHECK AVAILABILITY:
- For requests like "Any hoodies available?", "Show me mugs", "Do you have a
  blue mug?", "T-shirts under 1000 rupees" call list_products with simple
  filters: category ("hoodie", "mug", "tshirt", "accessory"), max_price,
  color, text_query.
- After calling list_products, read out a few items with numbering, e.g.
  "I found 2 hoodies. (1) Classic Black Hoodie for 1599 rupees. (2) Olive
  Green Hoodie for 1399 rupees."
- Never claim the store is completely empty; the catalog is always available.

WHEN THE USER WANTS TO BUY:
- Pick the product id from recent tool results, then call create_order with
  product_id, quantity (default 1), and size if the product has sizes and
  the user mentioned one.
- After the tool returns, confirm product name, size, quantity, total price
  in rupees, and order id.

LAST ORDER:
- For "What did I just buy?" call get_last_order and summarize it.

STYLE:
- Short, clear, friendly. Mention prices in rupees or INR.
- This is a demo: never talk about real payment, delivery, or refunds.`

// Agent owns the commerce tool surface: a read-only catalog and the order
// ledger. It holds no conversation state of its own.
type Agent struct {
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
}

func NewAgent(cat *catalog.Catalog, led *ledger.Ledger) *Agent {
	return &Agent{catalog: cat, ledger: led}
}

// ListResult is the list_products payload shape.
type ListResult struct {
	Count    int               `json:"count"`
	Products []catalog.Product `json:"products"`
}

// CreateResult is the create_order payload shape.
type CreateResult struct {
	Ok    bool          `json:"ok"`
	Order *ledger.Order `json:"order,omitempty"`
	Error string        `json:"error,omitempty"`
}

// LastResult is the get_last_order payload shape.
type LastResult struct {
	Ok      bool          `json:"ok"`
	Order   *ledger.Order `json:"order,omitempty"`
	Message string        `json:"message,omitempty"`
}

// ListProducts browses the catalog with the lenient filter semantics of
// catalog.Filter.
func (a *Agent) ListProducts(q catalog.Query) ListResult {
	products := a.catalog.Filter(q)
	log.Info("list_products",
		"category", q.Category, "max_price", q.MaxPriceValue(),
		"color", q.Color, "text", q.Text, "results", len(products))
	return ListResult{Count: len(products), Products: products}
}

// CreateOrder places a single-product order. An unknown product id is an
// input error reported in the result, not a Go error; a persist failure is
// returned as an error since a confirmed order must not be lost.
func (a *Agent) CreateOrder(productID string, quantity int, size string) (CreateResult, error) {
	product, ok := a.catalog.FindByID(productID)
	if !ok {
		log.Warn("create_order with unknown product id", "product_id", productID)
		return CreateResult{Ok: false, Error: fmt.Sprintf("Unknown product id %q", productID)}, nil
	}

	if quantity < 1 {
		quantity = 1
	}

	now := time.Now().UTC()
	order := ledger.Order{
		ID: fmt.Sprintf("ORD-%d", now.Unix()),
		Items: []ledger.LineItem{{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
			UnitPrice: product.Price,
			Size:      size,
		}},
		Total:     product.Price * quantity,
		Currency:  product.Currency,
		CreatedAt: now,
	}

	if err := a.ledger.Append(order); err != nil {
		return CreateResult{}, fmt.Errorf("persist order %s: %w", order.ID, err)
	}

	log.Info("created order",
		"order_id", order.ID, "product_id", product.ID,
		"quantity", quantity, "size", size, "total", order.Total)
	return CreateResult{Ok: true, Order: &order}, nil
}

// LastOrder returns the most recent order placed in this process.
func (a *Agent) LastOrder() LastResult {
	order, ok := a.ledger.Latest()
	if !ok {
		return LastResult{Ok: false, Message: "No orders have been placed yet."}
	}
	return LastResult{Ok: true, Order: &order}
}
