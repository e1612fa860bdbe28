package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/order-notify/internal/notify/domain"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	// Images and Broadcast are optional; nil disables the corresponding leg.
	Images    ImageLookup
	Broadcast Broadcaster

	publisher  Publisher
	channel    string
	maxLookups int
	log        *slog.Logger
}

func NewService(pub Publisher, channel string, maxLookups int, log *slog.Logger) *Service {
	if maxLookups <= 0 {
		maxLookups = 8
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		publisher:  pub,
		channel:    channel,
		maxLookups: maxLookups,
		log:        log,
	}
}

// Normalize builds the outbound notification from an inbound order by copying
// only allow-listed fields. Anything not copied here (customer contact,
// addresses, payment details, client IP) is dropped, which is the privacy
// guarantee this service exists for.
//
// Image URLs are resolved concurrently across line items, bounded by
// maxLookups, and joined back positionally. Lookup failures only cost the
// image field; Normalize itself never fails.
func (s *Service) Normalize(ctx context.Context, order domain.OrderRecord, shopDomain string) domain.NotificationRecord {
	lines := make([]domain.NotificationLineItem, len(order.LineItems))
	itemCount := 0

	for i, item := range order.LineItems {
		title := item.Title
		if title == "" {
			title = item.Name
		}

		lines[i] = domain.NotificationLineItem{
			Title:            title,
			Quantity:         item.Quantity,
			Price:            item.Price,
			SKU:              item.SKU,
			ProductID:        item.ProductID,
			VariantID:        item.VariantID,
			Grams:            item.Grams,
			Vendor:           item.Vendor,
			RequiresShipping: item.RequiresShipping,
			Taxable:          item.Taxable,
			GiftCard:         item.GiftCard,
		}

		itemCount += item.Quantity
	}

	if s.Images != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.maxLookups)

		for idx := range order.LineItems {
			idx := idx
			productID := order.LineItems[idx].ProductID
			if productID == 0 {
				continue
			}

			g.Go(func() error {
				url, err := s.Images.ProductImage(gctx, productID)
				if err != nil {
					s.log.Warn("image lookup failed",
						slog.Int64("product_id", productID),
						slog.Any("err", err),
					)
					return nil
				}
				lines[idx].ImageURL = url
				return nil
			})
		}

		// Goroutines only ever return nil; failures are absorbed above.
		_ = g.Wait()
	}

	return domain.NotificationRecord{
		CreatedAt:      order.CreatedAt,
		Currency:       order.Currency,
		SubtotalPrice:  order.SubtotalPrice,
		TotalTax:       order.TotalTax,
		TotalDiscounts: order.TotalDiscounts,
		TotalPrice:     order.TotalPrice,
		ItemCount:      itemCount,
		LineItems:      lines,
		ShopDomain:     shopDomain,
		Test:           order.Test,
		TotalWeight:    order.TotalWeight,
		Tags:           order.Tags,
		SourceName:     order.SourceName,
	}
}

// Process normalizes the order and publishes the result. A publish failure is
// returned to the caller; the broadcast leg is best-effort and never affects
// the outcome.
func (s *Service) Process(ctx context.Context, order domain.OrderRecord, shopDomain string) (domain.PublishReceipt, error) {
	rec := s.Normalize(ctx, order, shopDomain)

	receipt, err := s.publisher.Publish(ctx, s.channel, rec)
	if err != nil {
		return domain.PublishReceipt{}, fmt.Errorf("publish order %d: %w", order.ID, err)
	}

	if s.Broadcast != nil {
		if err := s.Broadcast.Broadcast(ctx, rec); err != nil {
			s.log.Warn("broadcast forward failed",
				slog.Int64("order_id", order.ID),
				slog.Any("err", err),
			)
		}
	}

	return receipt, nil
}
