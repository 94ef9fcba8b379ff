// Package web serves the storefront page, its form actions and the JSON cart
// API.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"goflare.io/storefront"
	"goflare.io/storefront/cart"
	_ "goflare.io/storefront/docs"
	"goflare.io/storefront/models"
)

const (
	addLabel     = "Add to cart"
	addMoreLabel = "Add one more"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type Handler struct {
	svc        storefront.Service
	sessionTTL time.Duration
	tracer     trace.Tracer
	logger     *zap.Logger
}

func NewHandler(svc storefront.Service, sessionTTL time.Duration, logger *zap.Logger) *Handler {
	return &Handler{
		svc:        svc,
		sessionTTL: sessionTTL,
		tracer:     otel.Tracer("goflare.io/storefront/web"),
		logger:     logger,
	}
}

// Router returns a new router with every storefront route registered.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(h.traceMiddleware, h.loggingMiddleware)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	s := r.NewRoute().Subrouter()
	s.Use(h.sessionMiddleware)

	s.HandleFunc("/", h.index).Methods(http.MethodGet)
	s.HandleFunc("/cart/add", h.formAction(h.svc.AddToCart)).Methods(http.MethodPost)
	s.HandleFunc("/cart/increase", h.formAction(h.svc.IncreaseQuantity)).Methods(http.MethodPost)
	s.HandleFunc("/cart/decrease", h.formAction(h.svc.DecreaseQuantity)).Methods(http.MethodPost)
	s.HandleFunc("/cart/remove", h.formAction(h.svc.RemoveFromCart)).Methods(http.MethodPost)
	s.HandleFunc("/session/end", h.endSession).Methods(http.MethodPost)

	api := s.PathPrefix("/api").Subrouter()
	api.HandleFunc("/desserts", h.listDesserts).Methods(http.MethodGet)
	api.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	api.HandleFunc("/cart/items/{id:[0-9]+}", h.apiAction(h.svc.AddToCart)).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{id:[0-9]+}/increase", h.apiAction(h.svc.IncreaseQuantity)).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{id:[0-9]+}/decrease", h.apiAction(h.svc.DecreaseQuantity)).Methods(http.MethodPost)
	api.HandleFunc("/cart/items/{id:[0-9]+}", h.apiAction(h.svc.RemoveFromCart)).Methods(http.MethodDelete)
}

// DessertCard is one tile of the catalog grid.
type DessertCard struct {
	ID             uint64
	Name           string
	ImageSrc       string
	FormattedPrice string
	Quantity       uint64
	InCart         bool
	AddLabel       string
}

type PageData struct {
	Desserts []DessertCard
	Cart     *models.CartSummary
}

func newPageData(desserts []models.Dessert, summary *models.CartSummary) PageData {
	cards := make([]DessertCard, 0, len(desserts))
	for _, d := range desserts {
		qty := summary.Quantity(d.ID)
		card := DessertCard{
			ID:             d.ID,
			Name:           d.Name,
			ImageSrc:       d.ImageSrc,
			FormattedPrice: cart.FormatPrice(summary.Currency, d.Price),
			Quantity:       qty,
			InCart:         qty > 0,
			AddLabel:       addLabel,
		}
		if card.InCart {
			card.AddLabel = addMoreLabel
		}
		cards = append(cards, card)
	}
	return PageData{Desserts: cards, Cart: summary}
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.svc.GetCart(ctx, SessionID(ctx))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPageData(h.svc.Catalog(), summary)); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
	}
}

type cartAction func(ctx context.Context, sessionID string, dessertID uint64) (*models.CartSummary, error)

// formAction runs action for the dessert in the "id" form field, then
// redirects back to the page.
func (h *Handler) formAction(action cartAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseDessertID(r.FormValue("id"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		ctx := r.Context()
		if _, err := action(ctx, SessionID(ctx), id); err != nil {
			h.writeError(w, r, err)
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.svc.EndSession(ctx, SessionID(ctx)); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, "", 0)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// health godoc
// @Summary Health check
// @Produce json
// @Success 200 {object} statusResponse
// @Router /healthz [get]
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

var errInvalidDessertID = errors.New("invalid dessert id")

func parseDessertID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidDessertID
	}
	return id, nil
}
