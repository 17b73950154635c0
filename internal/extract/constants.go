package extract

import "time"

// Cache defaults used by bootstrap when wiring the extractor.
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 15 * time.Minute
)

// Log message constants
const (
	LogMsgExtractionSucceeded = "Recipe extraction succeeded"
	LogMsgExtractionFailed    = "Recipe extraction failed"
	LogMsgExtractionCacheHit  = "Extraction cache hit"
)
