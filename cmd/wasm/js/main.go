//go:build js && wasm

// Command gocalc-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `gocalc` object with the following API:
//
//	gocalc.version()                         → string
//	gocalc.eval(expression)                  → number  (throws on error)
//	gocalc.convert(number, source, target)   → string  (throws on error)
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o gocalc.wasm ./cmd/wasm/js/
//
// Usage in a page:
//
//	<script src="wasm_exec.js"></script>
//	<script>
//	  const go = new Go()
//	  WebAssembly.instantiateStreaming(fetch('gocalc.wasm'), go.importObject)
//	    .then(r => { go.run(r.instance); console.log(gocalc.eval('2+3*4')) })
//	</script>
package main

import (
	"fmt"
	"syscall/js"

	"github.com/sandrolain/gocalc"
)

// jsThrow panics with a JS Error so the caller receives a thrown exception.
func jsThrow(msg string) {
	panic(js.Global().Get("Error").New(msg))
}

// jsEval implements gocalc.eval(expression) → number.
// Results are returned as JS numbers, exact up to 2^53.
func jsEval(_ js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		jsThrow("gocalc.eval requires 1 argument: expression (string)")
	}
	v, err := gocalc.Eval(args[0].String())
	if err != nil {
		jsThrow(fmt.Sprintf("gocalc.eval: %v", err))
	}
	return js.ValueOf(float64(v))
}

// jsConvert implements gocalc.convert(number, source, target) → string.
func jsConvert(_ js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		jsThrow("gocalc.convert requires 3 arguments: number, source base, target base")
	}
	digits, err := gocalc.ConvertBase(int64(args[0].Int()), int64(args[1].Int()), int64(args[2].Int()))
	if err != nil {
		jsThrow(fmt.Sprintf("gocalc.convert: %v", err))
	}
	return digits
}

func main() {
	api := map[string]interface{}{
		"eval":    js.FuncOf(jsEval),
		"convert": js.FuncOf(jsConvert),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return gocalc.Version()
		}),
	}
	js.Global().Set(gocalc.Name, js.ValueOf(api))

	// Block forever; the JS event loop owns execution from here.
	select {}
}
