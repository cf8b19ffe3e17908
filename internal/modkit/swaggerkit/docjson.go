package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	docs "producescan/internal/services/api/docs"
)

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(map[string]any)

var (
	mutators  []SpecMutator
	docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
)

// Register adds a mutator, call it from module wiring before Mount
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// errorExample is a representative failure envelope per status
var errorExample = map[string]map[string]any{
	"400": {"status_code": 400, "status": "Bad Request", "code": 8, "error": "no image supplied", "request_id": "kiosk-1/abc-000001"},
	"500": {"status_code": 500, "status": "Internal Server Error", "code": 1, "error": "panic recovered", "request_id": "kiosk-1/abc-000001"},
}

var errorDescription = map[string]string{"400": "Bad Request", "500": "Internal Server Error"}

// serveDocJSON serves the document downgraded to what swagger ui renders, with the shared error responses filled in
func serveDocJSON(basePath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		normalize(spec, basePath)
		for _, m := range mutators {
			m(spec)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalize lifts swagger 2 and lowers 3.1 to 3.0.3, sets servers and adds the error schema plus default 400 and 500 responses
func normalize(spec map[string]any, basePath string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": basePath}}
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = map[string]any{
			"type":     "object",
			"required": []any{"status_code", "status"},
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer", "format": "int32"},
				"status":      map[string]any{"type": "string"},
				"code":        map[string]any{"type": "integer", "format": "int32"},
				"error":       map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
			},
		}
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, o := range ops {
			op, ok := o.(map[string]any)
			if !ok {
				continue
			}
			responses := child(op, "responses")
			for code, ex := range errorExample {
				if _, exists := responses[code]; exists {
					continue
				}
				responses[code] = map[string]any{
					"description": errorDescription[code],
					"content": map[string]any{"application/json": map[string]any{
						"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
						"example": ex,
					}},
				}
			}
		}
	}
}

// child returns m[key] as an object, creating it when missing
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
