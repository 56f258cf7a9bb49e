//go:build wasip1

// Command gocalc-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "op": "evaluate", "expression": "2+3*4" }
//	        { "op": "convert", "number": 25, "source_base": 2, "target_base": 10 }
//	stdout: { "value": 14 } / { "digits": "9" }          on success
//	        { "error": "<message>", "code": "D1001" }    on failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o gocalc.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"op":"evaluate","expression":"2+3*4"}' | wasmtime gocalc.wasm
//
// From Go, see package github.com/sandrolain/gocalc/pkg/wasmhost.
package main

import (
	"context"
	"os"

	"github.com/sandrolain/gocalc"
	"github.com/sandrolain/gocalc/pkg/protocol"
)

func main() {
	h := protocol.NewHandler(gocalc.Version())
	resp, err := h.Serve(context.Background(), os.Stdin, os.Stdout)
	if err != nil || resp.Error != "" {
		os.Exit(1)
	}
}
