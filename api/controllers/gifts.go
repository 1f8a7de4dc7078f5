package controllers

import (
	"net/http"

	"github.com/avalosmendoza/wedding-backend/api/responses"
	"github.com/avalosmendoza/wedding-backend/internal/gifts"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

type giftPackageResponse struct {
	Amount      float64 `json:"amount"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
}

// ListGiftPackages returns the catalog keyed by package id.
func ListGiftPackages(catalog *gifts.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]giftPackageResponse, len(catalog.IDs()))
		for _, id := range catalog.IDs() {
			pkg, ok := catalog.Lookup(id)
			if !ok {
				continue
			}
			out[id.String()] = giftPackageResponse{
				Amount:      pkg.Amount.InexactFloat64(),
				Name:        pkg.Name,
				Description: pkg.Description,
			}
		}
		responses.WriteJSON(r.Context(), w, logg, http.StatusOK, out)
	}
}
