package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bunchesapp/bunches-go/internal/domain"
	"github.com/bunchesapp/bunches-go/internal/logger"
)

// Extraction is the parsed recipe the extractor returns for a URL.
type Extraction struct {
	Title        string                    `json:"title"`
	Ingredients  domain.IngredientSections `json:"ingredients"`
	Instructions []string                  `json:"instructions"`
	PrepTime     string                    `json:"prepTime,omitempty"`
	CookTime     string                    `json:"cookTime,omitempty"`
	TotalTime    string                    `json:"totalTime,omitempty"`
	Servings     string                    `json:"servings,omitempty"`
	Source       string                    `json:"source,omitempty"`
}

// Service extracts a recipe from a URL.
type Service interface {
	Extract(ctx context.Context, url string) (Extraction, error)
}

type extractRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	Success bool        `json:"success"`
	Data    *Extraction `json:"data,omitempty"`
	Source  string      `json:"source,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HTTPService calls the external extraction service.
type HTTPService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPService builds a client for the extractor at baseURL.
func NewHTTPService(baseURL string, timeout time.Duration) *HTTPService {
	return &HTTPService{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPService) Extract(ctx context.Context, rawURL string) (Extraction, error) {
	log := logger.FromContext(ctx)

	if s.baseURL == "" {
		return Extraction{}, fmt.Errorf("%w: no extractor configured", domain.ErrExtractionFailed)
	}

	body, err := json.Marshal(extractRequest{URL: rawURL})
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to create extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Extraction{}, fmt.Errorf("failed to reach extractor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Extraction{}, fmt.Errorf("%w: extractor returned status %d", domain.ErrExtractionFailed, resp.StatusCode)
	}

	var out extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Extraction{}, fmt.Errorf("failed to decode extractor response: %w", err)
	}

	if !out.Success || out.Data == nil {
		message := out.Error
		if message == "" {
			message = "extractor returned no data"
		}
		log.Warn(LogMsgExtractionFailed, "url", rawURL, "error", message)
		return Extraction{}, fmt.Errorf("%w: %s", domain.ErrExtractionFailed, message)
	}

	extraction := *out.Data
	extraction.Source = out.Source

	log.Info(LogMsgExtractionSucceeded,
		"url", rawURL,
		"source", out.Source,
		"title", extraction.Title)
	return extraction, nil
}

// ToRecipe maps an extraction onto a recipe ready for Save. Section names are
// title-cased for display; the default "main" section stays lowercase.
func ToRecipe(ext Extraction, sourceURL string) domain.Recipe {
	caser := cases.Title(language.English)

	sections := make(domain.IngredientSections, len(ext.Ingredients))
	for i, sec := range ext.Ingredients {
		name := sec.Name
		if name != domain.DefaultSection {
			name = caser.String(name)
		}
		sections[i] = domain.IngredientSection{
			Name:  name,
			Items: append([]string(nil), sec.Items...),
		}
	}

	return domain.Recipe{
		Title:        ext.Title,
		Ingredients:  sections,
		Instructions: append([]string(nil), ext.Instructions...),
		PrepTime:     ext.PrepTime,
		CookTime:     ext.CookTime,
		TotalTime:    ext.TotalTime,
		Servings:     ext.Servings,
		SourceURL:    sourceURL,
		Folder:       domain.FolderAllRecipes,
	}
}
