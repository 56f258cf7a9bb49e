// Package wasmhost runs the WASI build of gocalc (cmd/wasm/wasi) inside a
// wazero runtime, so the calculator can be embedded as a sandboxed module
// or compared against the native build.
//
// Each call instantiates a fresh module instance: the request is written
// to its stdin and the response read back from its stdout, following the
// envelope in package protocol.
//
// # Example
//
//	bin, _ := os.ReadFile("gocalc.wasm")
//	host, err := wasmhost.New(ctx, bin)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer host.Close(ctx)
//	v, err := host.Evaluate(ctx, "2+3*4") // 14
package wasmhost

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	"github.com/sandrolain/gocalc/pkg/protocol"
)

// Host owns a wazero runtime and the compiled calculator module.
// It is safe for concurrent use.
type Host struct {
	runtime  wazero.Runtime
	compiled wazero.CompiledModule
}

// New compiles wasm, which must be a wasip1 build of cmd/wasm/wasi.
func New(ctx context.Context, wasm []byte) (*Host, error) {
	r := wazero.NewRuntime(ctx)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("instantiate WASI: %w", err)
	}
	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		r.Close(ctx)
		return nil, fmt.Errorf("compile module: %w", err)
	}
	return &Host{runtime: r, compiled: compiled}, nil
}

// Evaluate evaluates expression inside the module.
func (h *Host) Evaluate(ctx context.Context, expression string) (int64, error) {
	resp, err := h.Do(ctx, protocol.Request{Op: protocol.OpEvaluate, Expression: expression})
	if err != nil {
		return 0, err
	}
	if err := resp.Err(); err != nil {
		return 0, err
	}
	if resp.Value == nil {
		return 0, errors.New("wasmhost: response has no value")
	}
	return *resp.Value, nil
}

// Convert runs a base conversion inside the module.
func (h *Host) Convert(ctx context.Context, number, sourceBase, targetBase int64) (string, error) {
	resp, err := h.Do(ctx, protocol.Request{
		Op:         protocol.OpConvert,
		Number:     number,
		SourceBase: sourceBase,
		TargetBase: targetBase,
	})
	if err != nil {
		return "", err
	}
	if err := resp.Err(); err != nil {
		return "", err
	}
	return resp.Digits, nil
}

// Do sends a raw request to a fresh module instance. The returned error
// covers transport failures only; calculator errors are in the Response.
func (h *Host) Do(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("marshal request: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs("gocalc").
		WithStdin(bytes.NewReader(payload)).
		WithStdout(&stdout).
		WithStderr(&stderr)

	mod, err := h.runtime.InstantiateModule(ctx, h.compiled, cfg)
	if mod != nil {
		defer mod.Close(ctx)
	}
	if err != nil {
		// The module exits with status 1 after writing an error response.
		var exitErr *sys.ExitError
		if !errors.As(err, &exitErr) || stdout.Len() == 0 {
			return protocol.Response{}, fmt.Errorf("run module: %w (stderr: %s)", err, stderr.String())
		}
	}

	var resp protocol.Response
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return protocol.Response{}, fmt.Errorf("decode response: %w (raw: %q)", err, stdout.String())
	}
	return resp, nil
}

// Close releases the runtime and every compiled module.
func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}
