package evaluator_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/sandrolain/gocalc/pkg/cache"
	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/parser"
	"github.com/sandrolain/gocalc/pkg/types"
)

func evalString(t *testing.T, query string, opts ...evaluator.EvalOption) (int64, error) {
	t.Helper()
	return evaluator.New(opts...).EvalString(context.Background(), query)
}

func TestEvalArithmetic(t *testing.T) {
	tests := []struct {
		query string
		want  int64
	}{
		{"42", 42},
		{"2+3", 5},
		{"2+3*4", 14},
		{"2*3+4", 10},
		{"10-2-3", 5},
		{"100/10/5", 2},
		{"7/2", 3},
		{"-7/2", -3},
		{"2*3*4", 24},
		{"2*3+4*5-6/2", 23},
		{"1+2*3*4-5", 20},
		{"8/2*3", 12},
		{"8*2/3", 5},
		{"0*999", 0},
		{"-5+2", -3},
		{"2*-3", -6},
		{"2--3", 5},
		{"2 3", 5},
		{"2x3*4", 14},
		{"2*/3", 6},
		{"9223372036854775807", math.MaxInt64},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := evalString(t, tt.query)
			if err != nil {
				t.Fatalf("EvalString(%q) error: %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("EvalString(%q) = %d, want %d", tt.query, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		query string
		code  types.ErrorCode
	}{
		{"5/0", types.ErrDivisionByZero},
		{"1+5/0*3", types.ErrDivisionByZero},
		{"5/0-0", types.ErrDivisionByZero},
		{"9223372036854775807+1", types.ErrArithmeticOverflow},
		{"-9223372036854775807-2", types.ErrArithmeticOverflow},
		{"4611686018427387904*2", types.ErrArithmeticOverflow},
		{"", types.ErrMalformedExpression},
		{"*2", types.ErrMalformedExpression},
		{"2+", types.ErrMalformedExpression},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, err := evalString(t, tt.query)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := types.CodeOf(err); got != tt.code {
				t.Errorf("expected code %s, got %s (%v)", tt.code, got, err)
			}
		})
	}
}

func TestEvalErrorsIs(t *testing.T) {
	_, err := evalString(t, "1/0")
	if !errors.Is(err, types.NewError(types.ErrDivisionByZero, "", -1)) {
		t.Fatalf("expected errors.Is to match division by zero, got %v", err)
	}
	if errors.Is(err, types.NewError(types.ErrArithmeticOverflow, "", -1)) {
		t.Fatal("unexpected match on a different code")
	}
}

func TestEvalMaxLength(t *testing.T) {
	if _, err := evalString(t, "1+1+1", evaluator.WithMaxLength(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := evalString(t, "1+1+1+1", evaluator.WithMaxLength(2))
	if got := types.CodeOf(err); got != types.ErrCapacityExceeded {
		t.Fatalf("expected %s, got %v", types.ErrCapacityExceeded, err)
	}
}

func TestEvalDoesNotMutateExpression(t *testing.T) {
	expr, err := parser.Parse("2+3*4-6/2")
	if err != nil {
		t.Fatal(err)
	}
	ev := evaluator.New()
	for i := 0; i < 3; i++ {
		got, err := ev.Eval(context.Background(), expr)
		if err != nil {
			t.Fatal(err)
		}
		if got != 11 {
			t.Fatalf("run %d: got %d, want 11", i, got)
		}
	}
	if expr.Canonical() != "2+3*4-6/2" {
		t.Errorf("expression changed: %s", expr.Canonical())
	}
}

func TestEvalMalformedExpression(t *testing.T) {
	expr := types.NewExpression([]int64{1, 2}, nil, "hand built")
	_, err := evaluator.New().Eval(context.Background(), expr)
	if got := types.CodeOf(err); got != types.ErrMalformedExpression {
		t.Fatalf("expected %s, got %v", types.ErrMalformedExpression, err)
	}
}

func TestEvalNilExpression(t *testing.T) {
	if _, err := evaluator.New().Eval(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil expression")
	}
}

func TestEvalCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := evaluator.New().EvalString(ctx, "1+1")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEvalCaching(t *testing.T) {
	ev := evaluator.New(evaluator.WithCaching(true), evaluator.WithCacheSize(2))
	if ev.Cache() == nil {
		t.Fatal("expected cache to be enabled")
	}
	for i := 0; i < 3; i++ {
		if _, err := ev.EvalString(context.Background(), "6*7"); err != nil {
			t.Fatal(err)
		}
	}
	if s := ev.Cache().Stats(); s.Hits != 2 || s.Misses != 1 {
		t.Fatalf("expected 2 hits and 1 miss, got %+v", s)
	}
	if _, err := ev.EvalString(context.Background(), "6/0"); err == nil {
		t.Fatal("expected division by zero")
	}
	if got := ev.Cache().Capacity(); got != 2 {
		t.Fatalf("expected capacity 2, got %d", got)
	}
}

func TestEvalSharedCache(t *testing.T) {
	c := cache.New[*types.Expression](16)
	a := evaluator.New(evaluator.WithCache(c))
	b := evaluator.New(evaluator.WithCache(c))
	if _, err := a.EvalString(context.Background(), "1+2"); err != nil {
		t.Fatal(err)
	}
	if _, err := b.EvalString(context.Background(), "1+2"); err != nil {
		t.Fatal(err)
	}
	if s := c.Stats(); s.Hits != 1 {
		t.Fatalf("expected the second evaluator to hit, got %+v", s)
	}
}

func TestEvalCachingDisabledByDefault(t *testing.T) {
	if evaluator.New().Cache() != nil {
		t.Fatal("expected no cache by default")
	}
}

func TestEvalDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := evalString(t, "2+3*4", evaluator.WithLogger(logger), evaluator.WithDebug(true)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"tokenized expression", "evaluated expression", "result=14"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log to contain %q, got:\n%s", want, out)
		}
	}

	buf.Reset()
	if _, err := evalString(t, "2+3", evaluator.WithLogger(logger)); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output without debug, got:\n%s", buf.String())
	}
}

func TestEvalConcurrent(t *testing.T) {
	ev := evaluator.New(evaluator.WithCaching(true))
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				got, err := ev.EvalString(context.Background(), "10-2-3*1")
				if err != nil {
					errs <- err
					return
				}
				if got != 5 {
					errs <- errors.New("wrong result under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func FuzzEvalString(f *testing.F) {
	for _, s := range []string{"2+3*4", "10-2-3", "7/2", "5/0", "-1", "", "1 2 3", "9223372036854775807*2"} {
		f.Add(s)
	}
	ev := evaluator.New()
	f.Fuzz(func(t *testing.T, input string) {
		_, err := ev.EvalString(context.Background(), input)
		if err != nil && types.CodeOf(err) == "" {
			t.Fatalf("%q: error without code: %v", input, err)
		}
	})
}

func BenchmarkEvalString(b *testing.B) {
	ctx := context.Background()
	for _, tc := range []struct {
		name string
		opts []evaluator.EvalOption
	}{
		{name: "NoCache"},
		{name: "Cached", opts: []evaluator.EvalOption{evaluator.WithCaching(true)}},
	} {
		b.Run(tc.name, func(b *testing.B) {
			ev := evaluator.New(tc.opts...)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := ev.EvalString(ctx, "12+34*56-78/9+1*2*3"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
