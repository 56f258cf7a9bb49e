package gocalc

import (
	"log/slog"

	"github.com/sandrolain/gocalc/pkg/cache"
	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/types"
)

// EvalOption configures evaluation. It is an alias so options from
// package evaluator can be passed directly.
type EvalOption = evaluator.EvalOption

// WithMaxLength sets the maximum number of operators in an expression.
func WithMaxLength(n int) EvalOption {
	return evaluator.WithMaxLength(n)
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) EvalOption {
	return evaluator.WithLogger(logger)
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return evaluator.WithDebug(enabled)
}

// WithCaching enables or disables the compiled expression cache.
func WithCaching(enabled bool) EvalOption {
	return evaluator.WithCaching(enabled)
}

// WithCacheSize sets the cache capacity used by WithCaching.
func WithCacheSize(size int) EvalOption {
	return evaluator.WithCacheSize(size)
}

// WithCache attaches an external expression cache.
func WithCache(c *cache.Cache[*types.Expression]) EvalOption {
	return evaluator.WithCache(c)
}
