package wasmhost_test

// The end-to-end tests need a wasip1 build of the calculator:
//
//	GOOS=wasip1 GOARCH=wasm go build -o cmd/wasm/wasi/gocalc.wasm ./cmd/wasm/wasi/
//
// They are skipped when the binary is not present. GOCALC_WASM overrides
// the path.

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/sandrolain/gocalc/pkg/types"
	"github.com/sandrolain/gocalc/pkg/wasmhost"
)

func wasmBinaryPath(t testing.TB) string {
	t.Helper()
	if p := os.Getenv("GOCALC_WASM"); p != "" {
		return p
	}
	_, thisFile, _, ok := runtime.Caller(0)
	if ok {
		return filepath.Join(filepath.Dir(thisFile), "..", "..", "cmd", "wasm", "wasi", "gocalc.wasm")
	}
	return filepath.Join("cmd", "wasm", "wasi", "gocalc.wasm")
}

func newHost(t *testing.T) *wasmhost.Host {
	t.Helper()
	bin, err := os.ReadFile(wasmBinaryPath(t))
	if err != nil {
		t.Skipf("gocalc.wasm not found (%v), build it with GOOS=wasip1 GOARCH=wasm", err)
	}
	ctx := context.Background()
	host, err := wasmhost.New(ctx, bin)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { host.Close(ctx) })
	return host
}

func TestNewRejectsInvalidModule(t *testing.T) {
	if _, err := wasmhost.New(context.Background(), []byte("not a wasm module")); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestWASMEvaluate(t *testing.T) {
	host := newHost(t)
	ctx := context.Background()

	for query, want := range map[string]int64{"2+3*4": 14, "10-2-3": 5, "7/2": 3} {
		got, err := host.Evaluate(ctx, query)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", query, err)
		}
		if got != want {
			t.Errorf("Evaluate(%q) = %d, want %d", query, got, want)
		}
	}

	_, err := host.Evaluate(ctx, "5/0")
	if got := types.CodeOf(err); got != types.ErrDivisionByZero {
		t.Fatalf("expected %s, got %v", types.ErrDivisionByZero, err)
	}
}

func TestWASMConvert(t *testing.T) {
	host := newHost(t)
	got, err := host.Convert(context.Background(), 25, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if got != "9" {
		t.Errorf("Convert(25, 2, 10) = %q, want 9", got)
	}
}

func TestWASMConcurrentCalls(t *testing.T) {
	host := newHost(t)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, err := host.Evaluate(context.Background(), "6*7"); err != nil || v != 42 {
				t.Errorf("Evaluate: %d, %v", v, err)
			}
		}()
	}
	wg.Wait()
}
