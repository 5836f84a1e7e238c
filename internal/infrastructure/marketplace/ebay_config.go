// Package marketplace contains the platform publisher adapters: the eBay
// API client and the manual-prep publishers for platforms without an API
// integration, plus the registry that hands them to the engine.
package marketplace

import "errors"

// EbayConfig holds configuration for the eBay Sell API integration
type EbayConfig struct {
	// OAuthToken is the seller's OAuth user access token
	OAuthToken string
	// MarketplaceID is the eBay marketplace to list on
	MarketplaceID string
	// APIBaseURL is the base URL for the eBay API (production or sandbox)
	APIBaseURL string
	// IsSandbox indicates if this is a sandbox environment
	IsSandbox bool
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
	// FulfillmentPolicyID is the seller's shipping policy
	FulfillmentPolicyID string
	// PaymentPolicyID is the seller's payment policy
	PaymentPolicyID string
	// ReturnPolicyID is the seller's return policy
	ReturnPolicyID string
	// MerchantLocationKey is the inventory location the offers ship from
	MerchantLocationKey string
}

const (
	// EbayProductionAPIURL is the production API endpoint
	EbayProductionAPIURL = "https://api.ebay.com"
	// EbaySandboxAPIURL is the sandbox API endpoint
	EbaySandboxAPIURL = "https://api.sandbox.ebay.com"

	// EbayDefaultMarketplaceID is the US marketplace
	EbayDefaultMarketplaceID = "EBAY_US"
)

// Errors for eBay configuration
var (
	ErrEbayConfigMissingToken       = errors.New("ebay: oauth token is required")
	ErrEbayConfigMissingMarketplace = errors.New("ebay: marketplace id is required")
)

// NewEbayConfig creates a new eBay configuration with defaults
func NewEbayConfig(oauthToken string) *EbayConfig {
	return &EbayConfig{
		OAuthToken:     oauthToken,
		MarketplaceID:  EbayDefaultMarketplaceID,
		APIBaseURL:     EbayProductionAPIURL,
		IsSandbox:      false,
		TimeoutSeconds: 30,
	}
}

// NewSandboxEbayConfig creates a new eBay configuration for the sandbox
// environment
func NewSandboxEbayConfig(oauthToken string) *EbayConfig {
	return &EbayConfig{
		OAuthToken:     oauthToken,
		MarketplaceID:  EbayDefaultMarketplaceID,
		APIBaseURL:     EbaySandboxAPIURL,
		IsSandbox:      true,
		TimeoutSeconds: 30,
	}
}

// Validate validates the eBay configuration
func (c *EbayConfig) Validate() error {
	if c.OAuthToken == "" {
		return ErrEbayConfigMissingToken
	}
	if c.MarketplaceID == "" {
		return ErrEbayConfigMissingMarketplace
	}
	if c.APIBaseURL == "" {
		if c.IsSandbox {
			c.APIBaseURL = EbaySandboxAPIURL
		} else {
			c.APIBaseURL = EbayProductionAPIURL
		}
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// ListingURL returns the public URL of a live listing
func (c *EbayConfig) ListingURL(listingID string) string {
	if c.IsSandbox {
		return "https://sandbox.ebay.com/itm/" + listingID
	}
	return "https://www.ebay.com/itm/" + listingID
}
