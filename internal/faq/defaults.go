package faq

import "github.com/meridiantrade/catalog-services/internal/catalog"

// DefaultFAQs is the seed set inserted into an empty faq collection.
func DefaultFAQs() []*catalog.FAQ {
	return []*catalog.FAQ{
		{
			Question: "What products do you offer?",
			Answer:   "We trade a wide range of commodities including rice, seeds, edible oils, minerals, bromine, sugar and special products. Ask me about any category to see what is available.",
			Keywords: []string{"products", "product", "offer", "sell", "catalog", "items"},
			Category: "products",
			Priority: 10,
		},
		{
			Question: "How can I contact your team?",
			Answer:   "You can reach our trading team through the contact form on this website, by email or by phone during business hours. We usually reply within one business day.",
			Keywords: []string{"contact", "phone", "email", "reach", "call", "speak"},
			Category: "contact",
			Priority: 9,
		},
		{
			Question: "Do you ship internationally?",
			Answer:   "Yes. We export worldwide by sea and land freight. Shipping terms (FOB, CIF, CFR) and lead times depend on the product and destination port.",
			Keywords: []string{"shipping", "ship", "delivery", "export", "international", "freight"},
			Category: "shipping",
			Priority: 8,
		},
		{
			Question: "What is your minimum order quantity?",
			Answer:   "Minimum order quantities depend on the commodity. Most bulk products start at one full container load (FCL). Contact us for smaller trial orders.",
			Keywords: []string{"minimum", "moq", "quantity", "bulk", "container"},
			Category: "orders",
			Priority: 7,
		},
		{
			Question: "How do I place an order?",
			Answer:   "Send us an inquiry with the product, quantity, packaging and destination. We will share a proforma invoice; the order is confirmed once payment terms (LC or TT) are agreed.",
			Keywords: []string{"place an order", "ordering", "purchase", "buy", "proforma", "invoice"},
			Category: "orders",
			Priority: 6,
		},
	}
}
