package catalog

import (
	log "log/slog"
	"strings"
)

// Product is one purchasable item. Products are defined once at startup and
// never mutated.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"` // minor currency units
	Currency    string   `json:"currency"`
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Sizes       []string `json:"sizes,omitempty"`
}

// Catalog is the fixed product list. Construct one per process (or per test)
// and pass it to whoever needs it.
type Catalog struct {
	products []Product
}

func New(products []Product) *Catalog {
	return &Catalog{products: products}
}

// All returns a copy of the full product list, in catalog order.
func (c *Catalog) All() []Product {
	return append([]Product(nil), c.products...)
}

func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) FindByID(id string) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// categorySynonyms maps normalized user words to canonical category tags.
var categorySynonyms = map[string]string{
	"mug":        "mug",
	"coffee":     "mug",
	"coffeemug":  "mug",
	"cup":        "mug",
	"tshirt":     "tshirt",
	"tee":        "tshirt",
	"shirt":      "tshirt",
	"hoodie":     "hoodie",
	"hood":       "hoodie",
	"sweatshirt": "hoodie",
	"jumper":     "hoodie",
	"accessory":  "accessory",
	"cap":        "accessory",
	"hat":        "accessory",
	"bag":        "accessory",
	"tote":       "accessory",
}

// NormalizeCategory maps "Hoodies", "t-shirts", "tees" and similar onto
// stable category keys. Unknown words pass through in their normalized form.
func NormalizeCategory(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, "s")
	if canon, ok := categorySynonyms[s]; ok {
		return canon
	}
	return s
}

// Query holds the optional filters for Filter. Zero values mean "not set";
// MaxPrice uses a pointer since 0 is a meaningful ceiling.
type Query struct {
	Category string
	MaxPrice *int
	Color    string
	Text     string
}

func (q Query) empty() bool {
	return q.Category == "" && q.MaxPrice == nil && q.Color == "" && q.Text == ""
}

// MaxPriceValue is the ceiling as a loggable value, or nil when unset.
func (q Query) MaxPriceValue() any {
	if q.MaxPrice == nil {
		return nil
	}
	return *q.MaxPrice
}

// Filter returns the products matching every supplied constraint. Category
// and color are soft filters applied after normalization; max price is a
// hard ceiling (price above it excluded); text matches a case-insensitive
// substring of name+description. If at least one filter was set and nothing
// matched, the full catalog is returned instead of an empty list so the
// conversation never dead-ends.
func (c *Catalog) Filter(q Query) []Product {
	var catNorm string
	if q.Category != "" {
		catNorm = NormalizeCategory(q.Category)
	}
	colorNorm := strings.ToLower(strings.TrimSpace(q.Color))
	textNorm := strings.ToLower(strings.TrimSpace(q.Text))

	var results []Product
	for _, p := range c.products {
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if catNorm != "" && NormalizeCategory(p.Category) != catNorm {
			continue
		}
		if colorNorm != "" && !strings.Contains(strings.ToLower(p.Color), colorNorm) {
			continue
		}
		if textNorm != "" {
			blob := strings.ToLower(p.Name + " " + p.Description)
			if !strings.Contains(blob, textNorm) {
				continue
			}
		}
		results = append(results, p)
	}

	if len(results) == 0 {
		if !q.empty() {
			// Filters matched nothing: fall back to the whole catalog
			// rather than report an empty store.
			log.Info("filters matched no products, falling back to full catalog",
				"category", catNorm, "max_price", q.MaxPriceValue(), "color", colorNorm, "text", textNorm)
		}
		return c.All()
	}
	return results
}
