package catalog

import "time"

// FAQ is a canned question/answer pair used by the chat helper.
// Keywords are lowercase trigger terms matched by substring containment.
type FAQ struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Question  string    `json:"question" bson:"question"`
	Answer    string    `json:"answer" bson:"answer"`
	Keywords  []string  `json:"keywords" bson:"keywords"`
	Category  string    `json:"category" bson:"category"`
	Priority  int       `json:"priority" bson:"priority"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Product is a catalog entry. Price and InStock are optional; a nil price is
// rendered as "no price shown".
type Product struct {
	ID             string            `json:"id" bson:"_id,omitempty"`
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description,omitempty" bson:"description,omitempty"`
	Price          *float64          `json:"price,omitempty" bson:"price,omitempty"`
	Category       string            `json:"category" bson:"category"`
	ImageURL       string            `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	KeyFeatures    []string          `json:"keyFeatures,omitempty" bson:"keyFeatures,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Unit           string            `json:"unit,omitempty" bson:"unit,omitempty"`
	InStock        *bool             `json:"inStock,omitempty" bson:"inStock,omitempty"`
	Featured       bool              `json:"featured" bson:"featured"`
	CreatedAt      time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Category groups products by free-text name. ProductCount is informational
// and maintained by whoever edits the catalog.
type Category struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	Name         string `json:"name" bson:"name"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ProductCount int    `json:"productCount" bson:"productCount"`
}

// ProductPatch carries the fields of a partial product update; nil means unchanged.
type ProductPatch struct {
	Name           *string            `json:"name,omitempty"`
	Description    *string            `json:"description,omitempty"`
	Price          *float64           `json:"price,omitempty"`
	Category       *string            `json:"category,omitempty"`
	ImageURL       *string            `json:"imageUrl,omitempty"`
	KeyFeatures    *[]string          `json:"keyFeatures,omitempty"`
	Specifications *map[string]string `json:"specifications,omitempty"`
	Unit           *string            `json:"unit,omitempty"`
	InStock        *bool              `json:"inStock,omitempty"`
	Featured       *bool              `json:"featured,omitempty"`
}

// Apply copies the set fields of the patch onto p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		v := *pp.Price
		p.Price = &v
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.ImageURL != nil {
		p.ImageURL = *pp.ImageURL
	}
	if pp.KeyFeatures != nil {
		p.KeyFeatures = append([]string(nil), (*pp.KeyFeatures)...)
	}
	if pp.Specifications != nil {
		p.Specifications = copySpecs(*pp.Specifications)
	}
	if pp.Unit != nil {
		p.Unit = *pp.Unit
	}
	if pp.InStock != nil {
		v := *pp.InStock
		p.InStock = &v
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
}

// CategoryPatch carries the fields of a partial category update.
type CategoryPatch struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	ProductCount *int    `json:"productCount,omitempty"`
}

func (cp CategoryPatch) Apply(c *Category) {
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.Description != nil {
		c.Description = *cp.Description
	}
	if cp.ImageURL != nil {
		c.ImageURL = *cp.ImageURL
	}
	if cp.ProductCount != nil {
		c.ProductCount = *cp.ProductCount
	}
}

// Clone returns a deep copy so repositories never hand out shared state.
func (p *Product) Clone() *Product {
	c := *p
	if p.Price != nil {
		v := *p.Price
		c.Price = &v
	}
	if p.InStock != nil {
		v := *p.InStock
		c.InStock = &v
	}
	c.KeyFeatures = append([]string(nil), p.KeyFeatures...)
	c.Specifications = copySpecs(p.Specifications)
	return &c
}

func (f *FAQ) Clone() *FAQ {
	c := *f
	c.Keywords = append([]string{}, f.Keywords...)
	return &c
}

func copySpecs(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
