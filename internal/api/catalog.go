package api

import (
	"context"
	"net/http"
)

// ListCategories fetches all service categories.
func (c *Client) ListCategories(ctx context.Context) *ResListarCategorias {
	return exchange[ResListarCategorias](ctx, c, http.MethodGet, "api/categoria/listar", nil)
}

// ListSubCategories fetches all subcategories across categories.
func (c *Client) ListSubCategories(ctx context.Context) *ResListarSubCategorias {
	return exchange[ResListarSubCategorias](ctx, c, http.MethodGet, "api/subcategoria/listar", nil)
}

// ListProvinces fetches the province catalog.
func (c *Client) ListProvinces(ctx context.Context) *ResListarProvincias {
	return exchange[ResListarProvincias](ctx, c, http.MethodGet, "api/provincia/listar", nil)
}

// ListCantons fetches the canton catalog; each canton references its province.
func (c *Client) ListCantons(ctx context.Context) *ResListarCantones {
	return exchange[ResListarCantones](ctx, c, http.MethodGet, "api/canton/listar", nil)
}

// FilterCantonsByProvince returns the cantons belonging to provinciaID.
// Filtering happens client-side; the backend lists cantons unfiltered.
func FilterCantonsByProvince(cantones []Canton, provinciaID int) []Canton {
	out := make([]Canton, 0, len(cantones))
	for _, canton := range cantones {
		if canton.Provincia != nil && canton.Provincia.ProvinciaID == provinciaID {
			out = append(out, canton)
		}
	}
	return out
}
