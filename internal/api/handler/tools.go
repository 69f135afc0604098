package handler

import (
	"net/http"

	"github.com/kheti-ai/kheti/internal/api/response"
	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/kheti-ai/kheti/internal/tools"
)

// ListTools returns the registered agent tools and their parameters
func ListTools(registry *tools.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decls := registry.Declarations()

		out := make([]map[string]any, 0, len(decls))
		for _, d := range decls {
			params := make([]map[string]any, 0, len(d.Params))
			for _, p := range d.Params {
				params = append(params, map[string]any{
					"name":        p.Name,
					"type":        p.Type,
					"description": p.Description,
					"required":    p.Required,
				})
			}
			out = append(out, map[string]any{
				"name":        d.Name,
				"description": d.Description,
				"parameters":  params,
			})
		}

		response.OK(w, map[string]any{
			"tools": out,
			"count": len(out),
		})
	}
}

// ListLLMProviders returns available LLM providers
func ListLLMProviders(router *llm.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]any{
			"providers":        router.GetProvidersInfo(),
			"default_provider": router.DefaultProvider(),
		})
	}
}
