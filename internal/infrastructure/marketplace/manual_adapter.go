package marketplace

import (
	"context"
	"fmt"
	"strings"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

// Listing-creation pages for the manual-prep platforms
const (
	PoshmarkCreateListingURL = "https://poshmark.com/create-listing"
	DepopCreateListingURL    = "https://www.depop.com/products/create/"
	MercariCreateListingURL  = "https://www.mercari.com/sell/"
)

// ManualAdapter implements MarketplacePublisher for platforms without an
// API integration. Publishing produces a copy-paste package: the formatted
// listing body, the platform's listing-creation page, and ordered posting
// instructions. It never reports a live listing.
type ManualAdapter struct {
	platform   crosspost.PlatformName
	listingURL string
}

// NewPoshmarkAdapter creates the manual publisher for Poshmark
func NewPoshmarkAdapter() *ManualAdapter {
	return &ManualAdapter{
		platform:   crosspost.PlatformPoshmark,
		listingURL: PoshmarkCreateListingURL,
	}
}

// NewDepopAdapter creates the manual publisher for Depop
func NewDepopAdapter() *ManualAdapter {
	return &ManualAdapter{
		platform:   crosspost.PlatformDepop,
		listingURL: DepopCreateListingURL,
	}
}

// NewMercariAdapter creates the manual publisher for Mercari
func NewMercariAdapter() *ManualAdapter {
	return &ManualAdapter{
		platform:   crosspost.PlatformMercari,
		listingURL: MercariCreateListingURL,
	}
}

// Platform returns the platform this adapter prepares packages for
func (a *ManualAdapter) Platform() crosspost.PlatformName {
	return a.platform
}

// Mode returns the publish mode
func (a *ManualAdapter) Mode() crosspost.PublishMode {
	return crosspost.ModeManualPrepared
}

// Publish assembles the copy-paste package. No network calls are made.
func (a *ManualAdapter) Publish(ctx context.Context, payload *crosspost.ListingPayload) (crosspost.PublishResult, error) {
	if payload.Platform != a.platform {
		return crosspost.PublishResult{}, fmt.Errorf("%w: payload formatted for %s, adapter handles %s",
			crosspost.ErrUnsupportedPlatform, payload.Platform, a.platform)
	}

	pkg := &crosspost.ManualPostPackage{
		Platform:      a.platform,
		ListingURL:    a.listingURL,
		FormattedText: a.formattedText(payload),
		Instructions:  a.instructions(payload),
	}
	return crosspost.NewManualPreparedResult(a.platform, pkg), nil
}

// formattedText joins the payload into one paste-ready block. Poshmark's
// description already folds the title into its first line, so only the
// other platforms get a separate title line.
func (a *ManualAdapter) formattedText(payload *crosspost.ListingPayload) string {
	var b strings.Builder
	if a.platform != crosspost.PlatformPoshmark && payload.Title != "" {
		b.WriteString(payload.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(payload.Description)
	// Tags arrive prefix-ready from the formatter. Depop's description
	// already ends with the joined tag block, so it must not be repeated.
	if len(payload.Tags) > 0 {
		tagBlock := strings.Join(payload.Tags, " ")
		if !strings.HasSuffix(payload.Description, tagBlock) {
			b.WriteString("\n\n")
			b.WriteString(tagBlock)
		}
	}
	return b.String()
}

// instructions builds the ordered posting steps for the platform
func (a *ManualAdapter) instructions(payload *crosspost.ListingPayload) []string {
	steps := []string{
		fmt.Sprintf("Open %s and sign in to your %s account.", a.listingURL, a.platform.DisplayName()),
		"Upload the item photos in the same order as your Vintage Crib listing.",
		"Paste the formatted text into the listing form.",
		fmt.Sprintf("Set the price to $%s.", payload.Price.StringFixed(2)),
	}
	if payload.Category != "" {
		steps = append(steps, fmt.Sprintf("Select the category %q.", payload.Category))
	}
	if payload.Condition != "" {
		steps = append(steps, fmt.Sprintf("Select the condition %q.", payload.Condition))
	}
	steps = append(steps, "Publish the listing and mark it as cross-posted in your dashboard.")
	return steps
}

// Ensure ManualAdapter implements MarketplacePublisher interface
var _ crosspost.MarketplacePublisher = (*ManualAdapter)(nil)
