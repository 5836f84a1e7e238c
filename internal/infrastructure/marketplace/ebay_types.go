package marketplace

// Request and response shapes for the eBay Sell Inventory API. Only the
// fields the adapter reads or writes are modeled.

// ebayInventoryItemRequest is the body of PUT /sell/inventory/v1/inventory_item/{sku}
type ebayInventoryItemRequest struct {
	Product      ebayProduct      `json:"product"`
	Condition    string           `json:"condition"`
	Availability ebayAvailability `json:"availability"`
}

// ebayProduct describes the item being listed
type ebayProduct struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Aspects     map[string][]string `json:"aspects,omitempty"`
	ImageURLs   []string          `json:"imageUrls,omitempty"`
}

// ebayAvailability carries the quantity available to ship
type ebayAvailability struct {
	ShipToLocationAvailability ebayShipToLocation `json:"shipToLocationAvailability"`
}

type ebayShipToLocation struct {
	Quantity int `json:"quantity"`
}

// ebayOfferRequest is the body of POST /sell/inventory/v1/offer
type ebayOfferRequest struct {
	SKU                 string              `json:"sku"`
	MarketplaceID       string              `json:"marketplaceId"`
	Format              string              `json:"format"`
	AvailableQuantity   int                 `json:"availableQuantity"`
	CategoryID          string              `json:"categoryId"`
	ListingDescription  string              `json:"listingDescription"`
	PricingSummary      ebayPricingSummary  `json:"pricingSummary"`
	ListingPolicies     ebayListingPolicies `json:"listingPolicies,omitempty"`
	MerchantLocationKey string              `json:"merchantLocationKey,omitempty"`
}

// ebayPricingSummary carries the offer price
type ebayPricingSummary struct {
	Price ebayAmount `json:"price"`
}

// ebayAmount is eBay's money shape: a decimal string plus currency code
type ebayAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ebayListingPolicies references the seller's business policies
type ebayListingPolicies struct {
	FulfillmentPolicyID string `json:"fulfillmentPolicyId,omitempty"`
	PaymentPolicyID     string `json:"paymentPolicyId,omitempty"`
	ReturnPolicyID      string `json:"returnPolicyId,omitempty"`
}

// ebayOfferResponse is the body returned by POST /sell/inventory/v1/offer
type ebayOfferResponse struct {
	OfferID string `json:"offerId"`
}

// ebayPublishResponse is the body returned by
// POST /sell/inventory/v1/offer/{offerId}/publish
type ebayPublishResponse struct {
	ListingID string          `json:"listingId"`
	Fees      []ebayFeeDetail `json:"fees,omitempty"`
}

// ebayFeeDetail is a single quoted fee line on a publish response
type ebayFeeDetail struct {
	FeeType string     `json:"feeType"`
	Amount  ebayAmount `json:"amount"`
}

// ebayErrorResponse is the error envelope of every Sell API endpoint
type ebayErrorResponse struct {
	Errors []ebayAPIError `json:"errors"`
}

// ebayAPIError is a single error entry in the envelope
type ebayAPIError struct {
	ErrorID     int    `json:"errorId"`
	Domain      string `json:"domain"`
	Message     string `json:"message"`
	LongMessage string `json:"longMessage"`
}

// FirstMessage returns the most descriptive message of the first error, or
// an empty string when the envelope carries none
func (r *ebayErrorResponse) FirstMessage() string {
	if len(r.Errors) == 0 {
		return ""
	}
	if r.Errors[0].LongMessage != "" {
		return r.Errors[0].LongMessage
	}
	return r.Errors[0].Message
}
