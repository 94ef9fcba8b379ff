package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"goflare.io/storefront/cart"
	"goflare.io/storefront/models"
)

type dessertResponse struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Price          string `json:"price" example:"6.50"`
	FormattedPrice string `json:"formatted_price" example:"$6.50"`
	ImageSrc       string `json:"image_src"`
}

type lineResponse struct {
	DessertID          uint64 `json:"dessert_id"`
	Name               string `json:"name"`
	ImageSrc           string `json:"image_src"`
	Quantity           uint64 `json:"quantity"`
	UnitPrice          string `json:"unit_price" example:"4.50"`
	LineTotal          string `json:"line_total" example:"9.00"`
	FormattedUnitPrice string `json:"formatted_unit_price" example:"$4.50"`
	FormattedLineTotal string `json:"formatted_line_total" example:"$9.00"`
}

// cartResponse carries money as fixed two-decimal strings.
type cartResponse struct {
	Currency       string         `json:"currency" example:"usd"`
	Lines          []lineResponse `json:"lines"`
	ItemCount      uint64         `json:"item_count"`
	Total          string         `json:"total" example:"11.75"`
	FormattedTotal string         `json:"formatted_total" example:"$11.75"`
	Empty          bool           `json:"empty"`
}

func newCartResponse(s *models.CartSummary) cartResponse {
	lines := make([]lineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, lineResponse{
			DessertID:          l.DessertID,
			Name:               l.Name,
			ImageSrc:           l.ImageSrc,
			Quantity:           l.Quantity,
			UnitPrice:          cart.FormatAmount(l.UnitPrice),
			LineTotal:          cart.FormatAmount(l.LineTotal),
			FormattedUnitPrice: l.FormattedUnitPrice,
			FormattedLineTotal: l.FormattedLineTotal,
		})
	}
	return cartResponse{
		Currency:       string(s.Currency),
		Lines:          lines,
		ItemCount:      s.ItemCount,
		Total:          cart.FormatAmount(s.Total),
		FormattedTotal: s.FormattedTotal,
		Empty:          s.Empty,
	}
}

// listDesserts godoc
// @Summary List desserts
// @Description Returns the catalog in display order
// @Tags desserts
// @Produce json
// @Success 200 {array} dessertResponse
// @Router /api/desserts [get]
func (h *Handler) listDesserts(w http.ResponseWriter, r *http.Request) {
	currency := h.svc.Currency()
	desserts := h.svc.Catalog()
	resp := make([]dessertResponse, 0, len(desserts))
	for _, d := range desserts {
		resp = append(resp, dessertResponse{
			ID:             d.ID,
			Name:           d.Name,
			Price:          cart.FormatAmount(d.Price),
			FormattedPrice: cart.FormatPrice(currency, d.Price),
			ImageSrc:       d.ImageSrc,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// getCart godoc
// @Summary Get cart
// @Description Returns the session cart with line and order totals
// @Tags cart
// @Produce json
// @Success 200 {object} cartResponse
// @Router /api/cart [get]
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.GetCart(r.Context(), SessionID(r.Context()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(summary))
}

// apiAction runs action for the {id} path variable and returns the new cart.
//
// @Summary Change cart line
// @Description POST /api/cart/items/{id} adds one unit, .../increase and .../decrease change the quantity by one, DELETE removes the line
// @Tags cart
// @Produce json
// @Param id path int true "Dessert ID"
// @Success 200 {object} cartResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/cart/items/{id} [post]
// @Router /api/cart/items/{id} [delete]
// @Router /api/cart/items/{id}/increase [post]
// @Router /api/cart/items/{id}/decrease [post]
func (h *Handler) apiAction(action cartAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseDessertID(mux.Vars(r)["id"])
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := r.Context()
		summary, err := action(ctx, SessionID(ctx), id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newCartResponse(summary))
	}
}

