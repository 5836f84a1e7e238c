package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// maxResponseSize is the maximum allowed response size from the eBay API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// EbayAdapter implements MarketplacePublisher against the eBay Sell
// Inventory API. Publishing is the three-call sequence the API requires:
// upsert the inventory item, create an offer, publish the offer.
type EbayAdapter struct {
	config     *EbayConfig
	httpClient *http.Client
}

// NewEbayAdapter creates a new eBay adapter with the given configuration
func NewEbayAdapter(config *EbayConfig) (*EbayAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &EbayAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform returns the platform this adapter publishes to
func (a *EbayAdapter) Platform() crosspost.PlatformName {
	return crosspost.PlatformEbay
}

// Mode returns the publish mode
func (a *EbayAdapter) Mode() crosspost.PublishMode {
	return crosspost.ModeAutomated
}

// Publish creates and publishes an eBay listing from the payload. The
// returned result carries the live listing ID, its public URL, and the fee
// total eBay quoted on publish.
func (a *EbayAdapter) Publish(ctx context.Context, payload *crosspost.ListingPayload) (crosspost.PublishResult, error) {
	sku := payload.ItemID.String()

	if err := a.putInventoryItem(ctx, sku, payload); err != nil {
		return crosspost.PublishResult{}, err
	}

	offerID, err := a.createOffer(ctx, sku, payload)
	if err != nil {
		return crosspost.PublishResult{}, err
	}

	listingID, fees, err := a.publishOffer(ctx, offerID)
	if err != nil {
		return crosspost.PublishResult{}, err
	}

	return crosspost.NewAutomatedResult(
		crosspost.PlatformEbay,
		listingID,
		a.config.ListingURL(listingID),
		fees,
	), nil
}

// ---------------------------------------------------------------------------
// API Calls
// ---------------------------------------------------------------------------

// putInventoryItem upserts the SKU's inventory record
func (a *EbayAdapter) putInventoryItem(ctx context.Context, sku string, payload *crosspost.ListingPayload) error {
	aspects := make(map[string][]string)
	if payload.Condition != "" {
		aspects["Condition"] = []string{payload.Condition}
	}

	body := ebayInventoryItemRequest{
		Product: ebayProduct{
			Title:       payload.Title,
			Description: payload.Description,
			Aspects:     aspects,
			ImageURLs:   payload.ImageURLs,
		},
		Condition: mapConditionToEbayEnum(payload.Condition),
		Availability: ebayAvailability{
			ShipToLocationAvailability: ebayShipToLocation{Quantity: 1},
		},
	}

	_, err := a.doRequest(ctx, http.MethodPut, "/sell/inventory/v1/inventory_item/"+sku, body)
	return err
}

// createOffer creates a fixed-price offer for the SKU
func (a *EbayAdapter) createOffer(ctx context.Context, sku string, payload *crosspost.ListingPayload) (string, error) {
	body := ebayOfferRequest{
		SKU:                sku,
		MarketplaceID:      a.config.MarketplaceID,
		Format:             "FIXED_PRICE",
		AvailableQuantity:  1,
		CategoryID:         mapCategoryToEbayID(payload.Category),
		ListingDescription: payload.Description,
		PricingSummary: ebayPricingSummary{
			Price: ebayAmount{
				Value:    payload.Price.StringFixed(2),
				Currency: "USD",
			},
		},
		ListingPolicies: ebayListingPolicies{
			FulfillmentPolicyID: a.config.FulfillmentPolicyID,
			PaymentPolicyID:     a.config.PaymentPolicyID,
			ReturnPolicyID:      a.config.ReturnPolicyID,
		},
		MerchantLocationKey: a.config.MerchantLocationKey,
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, "/sell/inventory/v1/offer", body)
	if err != nil {
		return "", err
	}

	var resp ebayOfferResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to parse offer response: %v", crosspost.ErrPublishInvalidResponse, err)
	}
	if resp.OfferID == "" {
		return "", fmt.Errorf("%w: offer response missing offer id", crosspost.ErrPublishInvalidResponse)
	}
	return resp.OfferID, nil
}

// publishOffer makes the offer live and returns the listing ID plus the
// total of the fees eBay quoted
func (a *EbayAdapter) publishOffer(ctx context.Context, offerID string) (string, decimal.Decimal, error) {
	respBody, err := a.doRequest(ctx, http.MethodPost, "/sell/inventory/v1/offer/"+offerID+"/publish", nil)
	if err != nil {
		return "", decimal.Zero, err
	}

	var resp ebayPublishResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", decimal.Zero, fmt.Errorf("%w: failed to parse publish response: %v", crosspost.ErrPublishInvalidResponse, err)
	}
	if resp.ListingID == "" {
		return "", decimal.Zero, fmt.Errorf("%w: publish response missing listing id", crosspost.ErrPublishInvalidResponse)
	}

	fees := decimal.Zero
	for _, fee := range resp.Fees {
		if amount, err := decimal.NewFromString(fee.Amount.Value); err == nil {
			fees = fees.Add(amount)
		}
	}
	return resp.ListingID, fees, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doRequest performs an authenticated JSON request against the eBay API
func (a *EbayAdapter) doRequest(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ebay: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.APIBaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.OAuthToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Language", "en-US")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crosspost.ErrPublishRequestFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp ebayErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.FirstMessage() != "" {
			return nil, fmt.Errorf("%w: HTTP %d: %s", crosspost.ErrPublishRequestFailed, resp.StatusCode, errResp.FirstMessage())
		}
		return nil, fmt.Errorf("%w: HTTP %d", crosspost.ErrPublishRequestFailed, resp.StatusCode)
	}

	return respBody, nil
}

// ---------------------------------------------------------------------------
// Vocabulary Mapping
// ---------------------------------------------------------------------------

// mapConditionToEbayEnum maps the display condition to the Sell API's
// condition enum
func mapConditionToEbayEnum(condition string) string {
	switch condition {
	case "New with tags":
		return "NEW_WITH_TAGS"
	case "Pre-owned - Excellent":
		return "USED_EXCELLENT"
	case "Pre-owned - Good":
		return "USED_GOOD"
	case "Pre-owned - Fair":
		return "USED_ACCEPTABLE"
	default:
		return "USED_GOOD"
	}
}

// ebayCategoryIDs maps the category path vocabulary to eBay leaf category
// IDs on the US marketplace
var ebayCategoryIDs = map[string]string{
	"Clothing, Shoes & Accessories > Women > Women's Clothing > Tops":                    "53159",
	"Clothing, Shoes & Accessories > Women > Women's Clothing > Pants":                   "63863",
	"Clothing, Shoes & Accessories > Women > Women's Clothing > Dresses":                 "63861",
	"Clothing, Shoes & Accessories > Women > Women's Clothing > Coats, Jackets & Vests":  "63862",
	"Clothing, Shoes & Accessories > Women > Women's Shoes":                              "3034",
	"Clothing, Shoes & Accessories > Women > Women's Accessories":                        "4251",
}

// ebayCategoryIDFallback is the generic clothing category
const ebayCategoryIDFallback = "11450"

// mapCategoryToEbayID resolves a category path to its eBay category ID
func mapCategoryToEbayID(categoryPath string) string {
	if id, ok := ebayCategoryIDs[categoryPath]; ok {
		return id
	}
	return ebayCategoryIDFallback
}

// Ensure EbayAdapter implements MarketplacePublisher interface
var _ crosspost.MarketplacePublisher = (*EbayAdapter)(nil)
