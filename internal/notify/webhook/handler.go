package webhook

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dwikikusuma/order-notify/internal/notify/app"
	"github.com/dwikikusuma/order-notify/internal/notify/domain"
	"github.com/dwikikusuma/order-notify/pkg/metrics"
	"github.com/google/uuid"
)

const (
	headerSignature  = "X-Shopify-Hmac-Sha256"
	headerShopDomain = "X-Shopify-Shop-Domain"
	headerWebhookID  = "X-Shopify-Webhook-Id"

	maxBodyBytes   = 1 << 20
	processTimeout = 5 * time.Second
)

// Handler is the webhook entry point. A delivery moves through
// received -> authenticated -> normalized -> published; an invalid signature
// stops it at the gate before anything else runs.
type Handler struct {
	svc     *app.Service
	secret  []byte
	log     *slog.Logger
	metrics *metrics.Registry
}

func NewHandler(svc *app.Service, secret string, log *slog.Logger, m *metrics.Registry) *Handler {
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		svc:     svc,
		secret:  []byte(secret),
		log:     log,
		metrics: m,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/webhooks/orders/create", h.handleOrderCreated)
}

func (h *Handler) handleOrderCreated(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	h.metrics.WebhooksReceived.Inc()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	deliveryID := r.Header.Get(headerWebhookID)
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	log := h.log.With(slog.String("delivery_id", deliveryID))

	if !ValidSignature(h.secret, body, r.Header.Get(headerSignature)) {
		h.metrics.AuthFailed.Inc()
		log.Warn("webhook signature rejected")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var order domain.OrderRecord
	if err := json.Unmarshal(body, &order); err != nil {
		log.Warn("malformed order payload", slog.Any("err", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	shopDomain := r.Header.Get(headerShopDomain)

	ctx, cancel := context.WithTimeout(r.Context(), processTimeout)
	defer cancel()

	receipt, err := h.svc.Process(ctx, order, shopDomain)
	if err != nil {
		// Publish is not retried internally; failing the response lets the
		// gateway redeliver.
		log.Error("order notification failed",
			slog.Int64("order_id", order.ID),
			slog.Any("err", err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.Info("order notification published",
		slog.Int64("order_id", order.ID),
		slog.String("shop", shopDomain),
		slog.String("publish_id", receipt.ID),
	)
	w.WriteHeader(http.StatusOK)
}
