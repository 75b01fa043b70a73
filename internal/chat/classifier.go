package chat

import (
	"context"
	"strings"

	"github.com/meridiantrade/catalog-services/internal/catalog"
	"github.com/meridiantrade/catalog-services/pkg/logger"
	"github.com/meridiantrade/catalog-services/pkg/metrics"
)

// Catalog is the read side of the catalog service the classifier needs.
type Catalog interface {
	Categories(ctx context.Context) ([]*catalog.Category, error)
	ByCategory(ctx context.Context, name string, max int) ([]*catalog.Product, error)
	Search(ctx context.Context, term string, max int) ([]*catalog.Product, error)
}

// MaxProducts caps product lists in chat replies.
const MaxProducts = 5

var (
	categoryListTriggers = []string{"categories", "category", "what do you sell", "what do you offer"}
	// CategoryKeywords are scanned in order; the first contained one filters by category.
	CategoryKeywords = []string{"rice", "seeds", "oil", "minerals", "bromine", "sugar", "special"}
	productTriggers  = []string{"product", "item", "goods", "merchandise"}

	// longer phrases first so that e.g. "products" is removed before "product".
	fillerPhrases = []string{
		"i want to know about", "tell me about", "do you have", "do you sell",
		"what about", "show me",
		"merchandise", "products", "product", "items", "item", "goods",
	}
	fillerWords = map[string]bool{"any": true, "some": true, "your": true, "the": true, "a": true, "an": true, "all": true, "of": true}
)

// Classifier decides whether a chat message asks about categories or products
// and answers it from the catalog.
type Classifier struct {
	catalog Catalog
	// LiveTriggers appends live category names to CategoryKeywords.
	LiveTriggers bool
}

func NewClassifier(c Catalog) *Classifier {
	return &Classifier{catalog: c, LiveTriggers: true}
}

// ProcessProductQuery returns a formatted answer and true, or "" and false
// when the message is not a catalog question. Store failures produce
// StoreApology.
func (c *Classifier) ProcessProductQuery(ctx context.Context, query string) (string, bool) {
	reply, ok, err := c.classify(ctx, query)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("product_query").Inc()
		logger.Errorf("product query %q failed: %v", query, err)
		return StoreApology, true
	}
	return reply, ok
}

func (c *Classifier) classify(ctx context.Context, query string) (string, bool, error) {
	q := strings.ToLower(query)

	if containsAny(q, categoryListTriggers) {
		return c.listCategories(ctx)
	}

	for _, kw := range c.categoryKeywords(ctx) {
		if !strings.Contains(q, kw) {
			continue
		}
		products, err := c.catalog.ByCategory(ctx, kw, MaxProducts)
		if err != nil {
			return "", false, err
		}
		if len(products) > 0 {
			return FormatProductsForChatResponse(products), true, nil
		}
		// nothing stocked under this keyword: fall through to the generic product check
		break
	}

	if containsAny(q, productTriggers) {
		term := SearchTerm(q)
		if term == "" {
			return c.listCategories(ctx)
		}
		products, err := c.catalog.Search(ctx, term, MaxProducts)
		if err != nil {
			return "", false, err
		}
		return FormatProductsForChatResponse(products), true, nil
	}

	return "", false, nil
}

func (c *Classifier) listCategories(ctx context.Context) (string, bool, error) {
	cats, err := c.catalog.Categories(ctx)
	if err != nil {
		return "", false, err
	}
	return FormatCategoriesForChatResponse(cats), true, nil
}

// categoryKeywords returns the fixed keyword list followed, when enabled, by
// lowercase live category names the list does not already contain. A failed
// category read leaves just the fixed list.
func (c *Classifier) categoryKeywords(ctx context.Context) []string {
	if !c.LiveTriggers {
		return CategoryKeywords
	}
	cats, err := c.catalog.Categories(ctx)
	if err != nil {
		logger.Debugf("live category triggers unavailable: %v", err)
		return CategoryKeywords
	}
	out := append([]string(nil), CategoryKeywords...)
	seen := map[string]bool{}
	for _, k := range CategoryKeywords {
		seen[k] = true
	}
	for _, cat := range cats {
		name := strings.ToLower(strings.TrimSpace(cat.Name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// SearchTerm strips filler phrases, product trigger words and punctuation
// from a lowercase message, leaving the words worth searching for.
func SearchTerm(q string) string {
	for _, p := range fillerPhrases {
		q = strings.ReplaceAll(q, p, " ")
	}
	q = strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', '.', ',', ';', ':':
			return ' '
		}
		return r
	}, q)
	words := make([]string, 0, 4)
	for _, w := range strings.Fields(q) {
		if !fillerWords[w] {
			words = append(words, w)
		}
	}
	return strings.Join(words, " ")
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
