package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Recipe represents a saved recipe in the user's collection.
// JSON tags are camelCase because recipes are persisted and shared in the
// same wire format the mobile app uses.
type Recipe struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Ingredients  IngredientSections `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	PrepTime     string             `json:"prepTime,omitempty"`
	CookTime     string             `json:"cookTime,omitempty"`
	TotalTime    string             `json:"totalTime,omitempty"`
	Servings     string             `json:"servings,omitempty"`
	SourceURL    string             `json:"sourceUrl,omitempty"`
	Folder       string             `json:"folder"`
	IsFavorite   bool               `json:"isFavorite"`
	DeletedAt    *time.Time         `json:"deletedAt,omitempty"`
	ExtractedAt  time.Time          `json:"extractedAt"`
}

// IsDeleted reports whether the recipe carries a trash tombstone.
func (r Recipe) IsDeleted() bool {
	return r.DeletedAt != nil
}

// Clone returns a deep copy of the recipe.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = r.Ingredients.Clone()
	if r.Instructions != nil {
		out.Instructions = append([]string(nil), r.Instructions...)
	}
	if r.DeletedAt != nil {
		t := *r.DeletedAt
		out.DeletedAt = &t
	}
	return out
}

// IngredientSection is one named group of ingredient lines.
type IngredientSection struct {
	Name  string
	Items []string
}

// IngredientSections is the ordered list of a recipe's ingredient groups.
// On the wire it is a JSON object whose key order is section order, so it
// carries custom marshalling that preserves that order in both directions.
type IngredientSections []IngredientSection

// DefaultSection is the section name used when a recipe has no named groups.
const DefaultSection = "main"

// Clone returns a deep copy of the sections.
func (s IngredientSections) Clone() IngredientSections {
	if s == nil {
		return nil
	}
	out := make(IngredientSections, len(s))
	for i, sec := range s {
		out[i] = IngredientSection{Name: sec.Name}
		if sec.Items != nil {
			out[i].Items = append([]string(nil), sec.Items...)
		}
	}
	return out
}

// Flatten returns every ingredient line in section order.
func (s IngredientSections) Flatten() []string {
	var out []string
	for _, sec := range s {
		out = append(out, sec.Items...)
	}
	return out
}

// MarshalJSON renders the sections as a JSON object, one key per section,
// keys emitted in section order.
func (s IngredientSections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(sec.Name)
		if err != nil {
			return nil, err
		}
		items := sec.Items
		if items == nil {
			items = []string{}
		}
		lines, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(lines)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object token by token so that the original
// key order is preserved.
func (s *IngredientSections) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("ingredients: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ingredients: expected object, got %v", tok)
	}

	out := IngredientSections{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("ingredients: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("ingredients: expected section name, got %v", keyTok)
		}
		var items []string
		if err := dec.Decode(&items); err != nil {
			return fmt.Errorf("ingredients: section %q: %w", name, err)
		}
		out = append(out, IngredientSection{Name: name, Items: items})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("ingredients: %w", err)
	}

	*s = out
	return nil
}
