package domain

import "time"

// NotificationRecord is the PII-free record published for every order. It is
// built fresh per webhook delivery by allow-listing OrderRecord fields and is
// discarded once published; it has no persisted identity.
type NotificationRecord struct {
	CreatedAt      string                 `json:"created_at"`
	Currency       string                 `json:"currency"`
	SubtotalPrice  string                 `json:"subtotal_price"`
	TotalTax       string                 `json:"total_tax"`
	TotalDiscounts string                 `json:"total_discounts"`
	TotalPrice     string                 `json:"total_price"`
	ItemCount      int                    `json:"item_count"`
	LineItems      []NotificationLineItem `json:"line_items"`
	ShopDomain     string                 `json:"shop_domain"`
	Test           bool                   `json:"test"`
	TotalWeight    int64                  `json:"total_weight,omitempty"`
	Tags           string                 `json:"tags,omitempty"`
	SourceName     string                 `json:"source_name,omitempty"`
}

type NotificationLineItem struct {
	Title            string `json:"title"`
	Quantity         int    `json:"quantity"`
	Price            string `json:"price"`
	SKU              string `json:"sku,omitempty"`
	ProductID        int64  `json:"product_id,omitempty"`
	VariantID        int64  `json:"variant_id,omitempty"`
	Grams            int    `json:"grams,omitempty"`
	Vendor           string `json:"vendor,omitempty"`
	RequiresShipping bool   `json:"requires_shipping"`
	Taxable          bool   `json:"taxable"`
	GiftCard         bool   `json:"gift_card"`
	ImageURL         string `json:"image_url,omitempty"`
}

// PublishReceipt is the ingestion endpoint's acknowledgement of a publish.
type PublishReceipt struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
