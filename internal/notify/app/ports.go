package app

import (
	"context"

	"github.com/dwikikusuma/order-notify/internal/notify/domain"
)

// ImageLookup resolves a display image URL for a product. An empty URL with a
// nil error means the product simply has no image.
type ImageLookup interface {
	ProductImage(ctx context.Context, productID int64) (string, error)
}

// Publisher delivers a notification to the hosted ingestion endpoint.
type Publisher interface {
	Publish(ctx context.Context, channel string, rec domain.NotificationRecord) (domain.PublishReceipt, error)
}

// Broadcaster is an optional secondary leg that forwards the notification to
// self-hosted real-time subscribers.
type Broadcaster interface {
	Broadcast(ctx context.Context, rec domain.NotificationRecord) error
}
