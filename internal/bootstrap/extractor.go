package bootstrap

import (
	"github.com/bunchesapp/bunches-go/internal/config"
	"github.com/bunchesapp/bunches-go/internal/extract"
)

// InitializeExtractor builds the recipe extraction client with its LRU cache.
// With no EXTRACTOR_URL configured the client still constructs; extraction
// requests then fail with a clear error instead of a nil service panic.
func InitializeExtractor(cfg *config.Config) extract.Service {
	svc := extract.NewHTTPService(cfg.ExtractorURL, cfg.ExtractorTimeout)
	return extract.Cached(svc, extract.DefaultCacheSize, extract.DefaultCacheTTL)
}
