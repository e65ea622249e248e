package reconcile

import (
	"strings"
	"time"
)

// Config holds the default reconciliation settings.
type Config struct {
	// Mode is the default match mode (exact, positional).
	Mode string `mapstructure:"mode" default:"exact"`
	// CompareBy is a comma-separated list of default key columns.
	CompareBy string `mapstructure:"compare_by" default:"id"`
	// Workers is the number of goroutines used for matching.
	Workers int `mapstructure:"workers" default:"1"`
	// RowLimit caps rows loaded per dataset. Zero means no limit.
	RowLimit int `mapstructure:"row_limit" default:"0"`
	// CacheTTLSeconds is how long loaded datasets are cached. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// Options converts the configuration into matching options.
func (c Config) Options() (Options, error) {
	mode, err := ParseMatchMode(c.Mode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		CompareBy: SplitColumns(c.CompareBy),
		Mode:      mode,
		Workers:   c.Workers,
	}, nil
}

// CacheTTL returns the dataset cache time-to-live.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SplitColumns parses a comma-separated column list, dropping blanks.
func SplitColumns(s string) []string {
	var cols []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}
