package domain

import "encoding/json"

// OrderRecord is the inbound order payload as delivered by the storefront
// webhook. The shape is owned by the platform, not by this service; monetary
// totals arrive as decimal strings and are passed through verbatim.
//
// Contact and address fields are decoded so that the normalizer's exclusion
// guarantee can be exercised directly in tests, but they are never copied
// into a NotificationRecord.
type OrderRecord struct {
	ID             int64      `json:"id"`
	Currency       string     `json:"currency"`
	SubtotalPrice  string     `json:"subtotal_price"`
	TotalTax       string     `json:"total_tax"`
	TotalDiscounts string     `json:"total_discounts"`
	TotalPrice     string     `json:"total_price"`
	TotalWeight    int64      `json:"total_weight"`
	CreatedAt      string     `json:"created_at"`
	LineItems      []LineItem `json:"line_items"`
	Tags           string     `json:"tags"`
	SourceName     string     `json:"source_name"`
	Test           bool       `json:"test"`

	// Never propagated downstream.
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Customer        json.RawMessage `json:"customer"`
	BillingAddress  json.RawMessage `json:"billing_address"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
	BrowserIP       string          `json:"browser_ip"`
}

// LineItem is a single order line as delivered by the platform. ProductID and
// VariantID are zero when the platform sends null (custom line items).
type LineItem struct {
	Title            string `json:"title"`
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	Price            string `json:"price"`
	SKU              string `json:"sku"`
	ProductID        int64  `json:"product_id"`
	VariantID        int64  `json:"variant_id"`
	Grams            int    `json:"grams"`
	Vendor           string `json:"vendor"`
	RequiresShipping bool   `json:"requires_shipping"`
	Taxable          bool   `json:"taxable"`
	GiftCard         bool   `json:"gift_card"`
}
