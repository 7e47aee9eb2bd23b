package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hoodies", "hoodie"},
		{"Hoodie", "hoodie"},
		{"t-shirts", "tshirt"},
		{"tees", "tshirt"},
		{"shirt", "tshirt"},
		{"Coffee Mugs", "mug"},
		{"cup", "mug"},
		{"caps", "accessory"},
		{"tote", "accessory"},
		{"sweatshirts", "hoodie"},
		{"whatever", "whatever"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeCategory(c.in), "input %q", c.in)
	}
}

func TestFilterNoFiltersReturnsAll(t *testing.T) {
	c := Default()
	got := c.Filter(Query{})
	require.Len(t, got, c.Len())
	// order preserving
	all := c.All()
	for i := range all {
		assert.Equal(t, all[i].ID, got[i].ID)
	}
}

func TestFilterCategory(t *testing.T) {
	c := Default()
	got := c.Filter(Query{Category: "hoodies"})
	require.Len(t, got, 2)
	assert.Equal(t, "hood-001", got[0].ID)
	assert.Equal(t, "hood-002", got[1].ID)
}

func TestFilterMaxPriceIsHardCeiling(t *testing.T) {
	c := Default()
	got := c.Filter(Query{MaxPrice: intPtr(699)})
	for _, p := range got {
		assert.LessOrEqual(t, p.Price, 699)
	}
	require.Len(t, got, 3) // mug-002, acc-001, acc-002

	// boundary is inclusive: a product priced exactly at the ceiling stays
	got = c.Filter(Query{MaxPrice: intPtr(799)})
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "mug-001")
}

func TestFilterColorAndText(t *testing.T) {
	c := Default()

	got := c.Filter(Query{Color: "blue"})
	require.Len(t, got, 1)
	assert.Equal(t, "mug-002", got[0].ID)

	got = c.Filter(Query{Text: "kangaroo"})
	require.Len(t, got, 1)
	assert.Equal(t, "hood-001", got[0].ID)

	got = c.Filter(Query{Category: "tshirt", Color: "white"})
	require.Len(t, got, 1)
	assert.Equal(t, "tee-002", got[0].ID)
}

func TestFilterFallbackOnZeroMatches(t *testing.T) {
	c := Default()
	cases := []Query{
		{Category: "spaceship"},
		{MaxPrice: intPtr(1)},
		{Color: "chartreuse"},
		{Text: "no such words anywhere"},
		{Category: "mug", Color: "black"},
	}
	for _, q := range cases {
		got := c.Filter(q)
		assert.Len(t, got, c.Len(), "query %+v should fall back to full catalog", q)
	}
}

func TestFindByID(t *testing.T) {
	c := Default()
	p, ok := c.FindByID("mug-001")
	require.True(t, ok)
	assert.Equal(t, 799, p.Price)
	assert.Equal(t, "INR", p.Currency)

	_, ok = c.FindByID("nope-999")
	assert.False(t, ok)
}

func TestAllReturnsCopy(t *testing.T) {
	c := Default()
	got := c.All()
	got[0].ID = "mutated"
	p, ok := c.FindByID("mug-001")
	require.True(t, ok)
	assert.Equal(t, "mug-001", p.ID)
}
