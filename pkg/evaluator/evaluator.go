package evaluator

// Package evaluator implements the gocalc precedence evaluator.
//
// The evaluator receives a tokenized expression from the parser and
// reduces it to a single integer in two passes:
//   - multiplication and division, left to right
//   - addition and subtraction, left to right
//
// There are no parentheses and exactly two precedence tiers, so the
// reduction works directly over the operand and operator sequences
// without building a tree.
//
// # Example
//
//	ev := evaluator.New()
//	result, err := ev.EvalString(ctx, "2+3*4") // 14
//	if err != nil {
//	    log.Fatal(err)
//	}

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sandrolain/gocalc/pkg/cache"
	"github.com/sandrolain/gocalc/pkg/parser"
	"github.com/sandrolain/gocalc/pkg/types"
)

// DefaultCacheSize is the cache capacity used by WithCaching when no
// WithCacheSize option is given.
const DefaultCacheSize = 256

// Evaluator evaluates tokenized arithmetic expressions.
// It is safe for concurrent use; every call works on its own buffers.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
	cache  *cache.Cache[*types.Expression] // non-nil when Caching is enabled
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// MaxLength is the maximum number of operators EvalString accepts.
	// Defaults to parser.DefaultMaxLength.
	MaxLength int
	// Caching enables expression compilation caching in EvalString.
	// The default cache holds up to 256 entries with LRU eviction.
	Caching bool
	// CacheSize sets the maximum number of cached expressions.
	// Only used when Caching is true and no explicit Cache is provided.
	CacheSize int
	// Cache is a custom expression cache. If non-nil, Caching is implicitly enabled.
	Cache *cache.Cache[*types.Expression]
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		MaxLength: parser.DefaultMaxLength,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	var c *cache.Cache[*types.Expression]
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		size := options.CacheSize
		if size <= 0 {
			size = DefaultCacheSize
		}
		c = cache.New[*types.Expression](size)
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
		cache:  c,
	}
}

// Cache returns the expression cache, or nil if caching is disabled.
func (e *Evaluator) Cache() *cache.Cache[*types.Expression] {
	return e.cache
}

// Compile tokenizes query with the evaluator's MaxLength, going through
// the cache when one is configured.
func (e *Evaluator) Compile(query string) (*types.Expression, error) {
	compile := func() (*types.Expression, error) {
		expr, err := parser.Compile(query, parser.WithMaxLength(e.opts.MaxLength))
		if err != nil {
			return nil, err
		}
		if e.opts.Debug {
			e.logger.Debug("tokenized expression",
				"source", query,
				"operands", expr.Operands(),
				"operators", fmt.Sprint(expr.Operators()))
		}
		return expr, nil
	}
	if e.cache == nil {
		return compile()
	}
	return e.cache.GetOrCompute(query, compile)
}

// EvalString compiles and evaluates query.
func (e *Evaluator) EvalString(ctx context.Context, query string) (int64, error) {
	expr, err := e.Compile(query)
	if err != nil {
		if e.opts.Debug {
			e.logger.Debug("expression rejected", "source", query, "error", err)
		}
		return 0, err
	}
	return e.Eval(ctx, expr)
}

// Eval evaluates a compiled expression. The expression is not modified.
func (e *Evaluator) Eval(ctx context.Context, expr *types.Expression) (int64, error) {
	if expr == nil {
		return 0, fmt.Errorf("invalid expression")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	result, err := reduce(expr.Operands(), expr.Operators())
	if err != nil {
		if e.opts.Debug {
			e.logger.Debug("evaluation failed", "source", expr.Source(), "error", err)
		}
		return 0, err
	}

	if e.opts.Debug {
		e.logger.Debug("evaluated expression", "source", expr.Source(), "result", result)
	}
	return result, nil
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithMaxLength sets the maximum number of operators accepted by EvalString.
func WithMaxLength(n int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxLength = n
	}
}

// WithCaching enables or disables expression compilation caching.
// When enabled, a default LRU cache of 256 entries is created.
// To control the cache size use WithCacheSize; to supply your own cache use WithCache.
func WithCaching(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Caching = enabled
	}
}

// WithCacheSize sets the maximum number of cached expressions.
// Only effective when combined with WithCaching(true).
func WithCacheSize(size int) EvalOption {
	return func(opts *EvalOptions) {
		opts.CacheSize = size
	}
}

// WithCache attaches an external expression cache.
// The evaluator will use this cache regardless of the Caching flag.
// A cache shared between evaluators must only be shared by evaluators
// with the same MaxLength.
func WithCache(c *cache.Cache[*types.Expression]) EvalOption {
	return func(opts *EvalOptions) {
		opts.Cache = c
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}
