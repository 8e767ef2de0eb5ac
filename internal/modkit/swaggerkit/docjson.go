package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"akkadian/internal/core/version"
	perr "akkadian/internal/platform/errors"
)

// Op describes one documented operation. Path is the full request path
type Op struct {
	Method  string
	Path    string
	Summary string
	Tag     string
}

var (
	mu  sync.RWMutex
	ops = map[string]Op{}
)

func opKey(method, path string) string { return strings.ToLower(method) + " " + path }

// Operations adds ops to the document. Registering the same method and
// path again replaces the earlier entry
func Operations(list ...Op) {
	mu.Lock()
	defer mu.Unlock()
	for _, op := range list {
		ops[opKey(op.Method, op.Path)] = op
	}
}

// registered returns the ops sorted by path then method
func registered() []Op {
	mu.RLock()
	out := make([]Op, 0, len(ops))
	for _, op := range ops {
		out = append(out, op)
	}
	mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// failure is one documented error outcome
type failure struct {
	code perr.ErrorCode
	msg  string
}

// every op can fail these ways; bodies add the decode and validation ones
var (
	alwaysFails = []failure{
		{perr.ErrorCodeUnavailable, "translator backend disabled"},
		{perr.ErrorCodePanic, "panic recovered"},
	}
	bodyFails = []failure{
		{perr.ErrorCodeJSON, "invalid JSON: unexpected EOF"},
		{perr.ErrorCodeInvalidArgument, `unknown policy "every"`},
	}
)

// Document builds the OpenAPI 3.0.3 document for the registered ops
func Document(title string) map[string]any {
	paths := map[string]any{}
	for _, op := range registered() {
		node, ok := paths[op.Path].(map[string]any)
		if !ok {
			node = map[string]any{}
			paths[op.Path] = node
		}
		m := strings.ToLower(op.Method)
		fails := alwaysFails
		if m == "post" || m == "put" || m == "patch" {
			fails = append(append([]failure(nil), bodyFails...), alwaysFails...)
		}
		node[m] = operation(op, fails)
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   title,
			"version": version.Info().Version,
		},
		"paths": paths,
		"components": map[string]any{
			"schemas": map[string]any{"ErrorResponse": envelopeSchema},
		},
	}
}

func operation(op Op, fails []failure) map[string]any {
	resps := map[string]any{
		"200": map[string]any{"description": "OK"},
	}
	for _, f := range fails {
		status := f.code.Status()
		key := strconv.Itoa(status)
		if _, taken := resps[key]; taken {
			continue
		}
		resps[key] = map[string]any{
			"description": http.StatusText(status),
			"content": map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
					"example": map[string]any{
						"status_code": status,
						"status":      http.StatusText(status),
						"code":        int(f.code),
						"error":       f.msg,
					},
				},
			},
		}
	}
	out := map[string]any{"summary": op.Summary, "responses": resps}
	if op.Tag != "" {
		out["tags"] = []any{op.Tag}
	}
	return out
}

var envelopeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

// serveDocJSON writes the document fresh on every request
func serveDocJSON(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Document(title))
	}
}
