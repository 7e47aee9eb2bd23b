package catalog

// Default returns the demo store catalog: mugs, t-shirts, hoodies and
// accessories, priced in INR minor units.
func Default() *Catalog {
	return New([]Product{
		{
			ID:          "mug-001",
			Name:        "Stoneware Coffee Mug",
			Description: "Sturdy stoneware coffee mug with a matte finish.",
			Price:       799,
			Currency:    "INR",
			Category:    "mug",
			Color:       "white",
		},
		{
			ID:          "mug-002",
			Name:        "Blue Ceramic Mug",
			Description: "Glossy blue ceramic mug, 350ml.",
			Price:       599,
			Currency:    "INR",
			Category:    "mug",
			Color:       "blue",
		},
		{
			ID:          "tee-001",
			Name:        "Minimal Logo T-Shirt",
			Description: "Black cotton tee with a small chest logo.",
			Price:       899,
			Currency:    "INR",
			Category:    "tshirt",
			Color:       "black",
			Sizes:       []string{"S", "M", "L", "XL"},
		},
		{
			ID:          "tee-002",
			Name:        "Graphic T-Shirt",
			Description: "White t-shirt with a subtle abstract graphic.",
			Price:       1099,
			Currency:    "INR",
			Category:    "tshirt",
			Color:       "white",
			Sizes:       []string{"M", "L"},
		},
		{
			ID:          "hood-001",
			Name:        "Classic Black Hoodie",
			Description: "Soft fleece hoodie with kangaroo pocket.",
			Price:       1599,
			Currency:    "INR",
			Category:    "hoodie",
			Color:       "black",
			Sizes:       []string{"S", "M", "L", "XL"},
		},
		{
			ID:          "hood-002",
			Name:        "Olive Green Hoodie",
			Description: "Lightweight hoodie, perfect for layering.",
			Price:       1399,
			Currency:    "INR",
			Category:    "hoodie",
			Color:       "green",
			Sizes:       []string{"S", "M", "L"},
		},
		{
			ID:          "acc-001",
			Name:        "Canvas Tote Bag",
			Description: "Reusable off-white canvas tote bag.",
			Price:       499,
			Currency:    "INR",
			Category:    "accessory",
			Color:       "beige",
		},
		{
			ID:          "acc-002",
			Name:        "Black Baseball Cap",
			Description: "Adjustable cap with curved visor.",
			Price:       699,
			Currency:    "INR",
			Category:    "accessory",
			Color:       "black",
		},
	})
}
