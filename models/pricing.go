package models

// LinePrice represents the pricing breakdown of a single order line
type LinePrice struct {
	ProductID               int64   `json:"productId"`
	Quantity                int     `json:"quantity"`
	UnitPriceBeforeDiscount float64 `json:"unitPriceBeforeDiscount"`
	EffectiveUnitPrice      float64 `json:"effectiveUnitPrice"`
	DiscountPercent         float64 `json:"discountPercent"`
	LineSubtotal            float64 `json:"lineSubtotal"`
	LineDiscountAmount      float64 `json:"lineDiscountAmount"`
	LineTotal               float64 `json:"lineTotal"`
}

// OrderPricing represents the complete pricing calculation for an order.
// Invariant: Total equals the sum of each line's quantity times its
// effective unit price, within floating point tolerance.
type OrderPricing struct {
	Lines         []LinePrice `json:"lines"`
	Subtotal      float64     `json:"subtotal"`
	DiscountTotal float64     `json:"discountTotal"`
	Total         float64     `json:"total"`
}

// PricedOrderResponse represents an order detail with its pricing
// Example response:
//
//	{
//	  "order": {"id": 31, "status": "pending", ...},
//	  "pricing": {
//	    "lines": [
//	      {
//	        "productId": 12,
//	        "quantity": 3,
//	        "unitPriceBeforeDiscount": 100,
//	        "effectiveUnitPrice": 90,
//	        "discountPercent": 10,
//	        "lineSubtotal": 300,
//	        "lineDiscountAmount": 30,
//	        "lineTotal": 270
//	      }
//	    ],
//	    "subtotal": 300,
//	    "discountTotal": 30,
//	    "total": 270
//	  }
//	}
type PricedOrderResponse struct {
	Order   *Order       `json:"order"`
	Pricing OrderPricing `json:"pricing"`
}
