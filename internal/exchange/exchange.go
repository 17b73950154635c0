// Package exchange turns recipes and whole folders into opaque share codes
// and back. A code is a tagged prefix followed by the envelope JSON run
// through a rearranged base64 alphabet; only this package reads or writes
// that form.
package exchange

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bunchesapp/bunches-go/internal/domain"
)

// Envelope is the wire shape shared between app installations.
type Envelope struct {
	Version string          `json:"version"`
	Type    string          `json:"type"`
	Name    string          `json:"name,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// Decoded is the result of a successful Decode.
type Decoded struct {
	Type    string
	Name    string
	Recipe  domain.Recipe
	Recipes []domain.Recipe
}

var shareEncoding = base64.NewEncoding(shareAlphabet)

// EncodeRecipe produces a BUNCHES_RECIPE share code. Trash tombstones are
// stripped; a shared recipe always arrives live.
func EncodeRecipe(r domain.Recipe) (string, error) {
	data, err := json.Marshal(sanitize(r))
	if err != nil {
		return "", fmt.Errorf("encode recipe: %w", err)
	}
	return seal(PrefixRecipe, Envelope{
		Version: Version,
		Type:    TypeRecipe,
		Data:    data,
	})
}

// EncodeCookbook produces a BUNCHES_COOKBOOK share code carrying every given
// recipe under the originating folder name.
func EncodeCookbook(name string, recipes []domain.Recipe) (string, error) {
	clean := make([]domain.Recipe, len(recipes))
	for i, r := range recipes {
		clean[i] = sanitize(r)
	}
	data, err := json.Marshal(clean)
	if err != nil {
		return "", fmt.Errorf("encode cookbook: %w", err)
	}
	return seal(PrefixCookbook, Envelope{
		Version: Version,
		Type:    TypeCookbook,
		Name:    name,
		Data:    data,
	})
}

// Decode parses a share code or a raw pasted envelope. Imported recipes get
// fresh ids and never keep a reserved folder assignment. Failures come back
// as ErrMalformedPayload, ErrUnsupportedVersion or ErrUnknownPayloadType.
func Decode(text string) (Decoded, error) {
	text = strings.TrimSpace(text)

	var env Envelope
	var err error
	switch {
	case strings.HasPrefix(text, PrefixRecipe):
		env, err = open(strings.TrimPrefix(text, PrefixRecipe))
	case strings.HasPrefix(text, PrefixCookbook):
		env, err = open(strings.TrimPrefix(text, PrefixCookbook))
	default:
		// Raw-paste fallback: the envelope JSON itself
		if jsonErr := json.Unmarshal([]byte(text), &env); jsonErr != nil {
			return Decoded{}, fmt.Errorf("%w: not a share code", domain.ErrMalformedPayload)
		}
	}
	if err != nil {
		return Decoded{}, err
	}

	if env.Version != Version {
		return Decoded{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedVersion, env.Version)
	}

	switch env.Type {
	case TypeRecipe:
		var r domain.Recipe
		if err := json.Unmarshal(env.Data, &r); err != nil {
			return Decoded{}, fmt.Errorf("%w: recipe data: %v", domain.ErrMalformedPayload, err)
		}
		return Decoded{Type: TypeRecipe, Recipe: adopt(r)}, nil

	case TypeCookbook:
		var recipes []domain.Recipe
		if err := json.Unmarshal(env.Data, &recipes); err != nil {
			return Decoded{}, fmt.Errorf("%w: cookbook data: %v", domain.ErrMalformedPayload, err)
		}
		adopted := make([]domain.Recipe, len(recipes))
		for i, r := range recipes {
			adopted[i] = adopt(r)
		}
		return Decoded{Type: TypeCookbook, Name: env.Name, Recipes: adopted}, nil

	default:
		return Decoded{}, fmt.Errorf("%w: %q", domain.ErrUnknownPayloadType, env.Type)
	}
}

func seal(prefix string, env Envelope) (string, error) {
	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}
	return prefix + shareEncoding.EncodeToString(raw), nil
}

func open(encoded string) (Envelope, error) {
	raw, err := shareEncoding.DecodeString(encoded)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err)
	}
	return env, nil
}

// sanitize strips fields that must not travel.
func sanitize(r domain.Recipe) domain.Recipe {
	out := r.Clone()
	out.DeletedAt = nil
	return out
}

// adopt makes an imported recipe safe to save locally. Imported ids are never
// trusted, reserved folder names never survive the trip.
func adopt(r domain.Recipe) domain.Recipe {
	r.ID = uuid.NewString()
	r.DeletedAt = nil
	if r.Folder == "" || domain.IsReservedFolder(r.Folder) {
		r.Folder = domain.FolderAllRecipes
	}
	return r
}
