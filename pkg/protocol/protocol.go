// Package protocol defines the JSON request/response envelope spoken by the
// WASI build of gocalc and by the hosts that drive it.
//
//	{"op":"evaluate","expression":"2+3*4"}                         → {"value":14}
//	{"op":"convert","number":25,"source_base":2,"target_base":10}  → {"digits":"9"}
//	{"op":"evaluate","expression":"5/0"}                           → {"error":"...","code":"D1001"}
package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sandrolain/gocalc/pkg/baseconv"
	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/types"
)

// Supported operations.
const (
	OpEvaluate = "evaluate"
	OpConvert  = "convert"
	OpVersion  = "version"
)

// Request is a single calculator request.
type Request struct {
	Op         string `json:"op"`
	Expression string `json:"expression,omitempty"`
	Number     int64  `json:"number,omitempty"`
	SourceBase int64  `json:"source_base,omitempty"`
	TargetBase int64  `json:"target_base,omitempty"`
	MaxLength  int    `json:"max_length,omitempty"`
}

// Response carries either a result or an error.
type Response struct {
	Value   *int64 `json:"value,omitempty"`
	Digits  string `json:"digits,omitempty"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Err rebuilds the error described by the response, or returns nil.
func (r Response) Err() error {
	if r.Error == "" {
		return nil
	}
	if r.Code == "" {
		return fmt.Errorf("%s", r.Error)
	}
	return types.NewError(types.ErrorCode(r.Code), r.Error, -1)
}

// Handler answers requests.
type Handler struct {
	version string
	opts    []evaluator.EvalOption
}

// NewHandler returns a handler reporting version for OpVersion and
// evaluating with opts.
func NewHandler(version string, opts ...evaluator.EvalOption) *Handler {
	return &Handler{version: version, opts: opts}
}

// Handle executes a single request.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	switch req.Op {
	case OpEvaluate:
		opts := h.opts
		if req.MaxLength > 0 {
			opts = append(append([]evaluator.EvalOption(nil), opts...), evaluator.WithMaxLength(req.MaxLength))
		}
		v, err := evaluator.New(opts...).EvalString(ctx, req.Expression)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Value: &v}
	case OpConvert:
		digits, err := baseconv.Convert(req.Number, req.SourceBase, req.TargetBase)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Digits: digits}
	case OpVersion:
		return Response{Version: h.version}
	default:
		return Response{Error: fmt.Sprintf("unknown op %q", req.Op)}
	}
}

// Serve decodes one request from r, handles it and encodes the response
// to w. It returns the response so callers can pick an exit status.
func (h *Handler) Serve(ctx context.Context, r io.Reader, w io.Writer) (Response, error) {
	var req Request
	var resp Response
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		resp = Response{Error: "invalid request JSON: " + err.Error()}
	} else {
		resp = h.Handle(ctx, req)
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return resp, fmt.Errorf("encode response: %w", err)
	}
	return resp, nil
}

func errorResponse(err error) Response {
	resp := Response{Error: err.Error()}
	if code := types.CodeOf(err); code != "" {
		resp.Code = string(code)
		resp.Error = messageOf(err)
	}
	return resp
}

// messageOf returns the bare message of a *types.Error so Err() does not
// repeat the code prefix.
func messageOf(err error) string {
	var e *types.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
