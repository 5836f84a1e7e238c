package crosspost

import (
	"fmt"
	"strings"
)

// Per-platform hard title length caps (characters)
const (
	EbayTitleMaxLen    = 80
	DepopTitleMaxLen   = 65
	MercariTitleMaxLen = 80
	// Poshmark has no separate title field in its create form; the built
	// title is folded into the description and this cap only bounds it there.
	PoshmarkTitleMaxLen = 80
)

// DepopMaxHashtags is Depop's hashtag cap per listing
const DepopMaxHashtags = 5

// Format converts a platform-neutral item snapshot into the platform's
// listing payload. It is pure: no I/O, deterministic for the same input.
// The home platform bypasses formatting entirely and is rejected here.
func Format(item ItemDetails, platform PlatformName) (*ListingPayload, error) {
	var payload *ListingPayload
	switch platform {
	case PlatformEbay:
		payload = formatEbay(item)
	case PlatformPoshmark:
		payload = formatPoshmark(item)
	case PlatformDepop:
		payload = formatDepop(item)
	case PlatformMercari:
		payload = formatMercari(item)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	payload.ItemID = item.ItemID
	return payload, nil
}

// ---------------------------------------------------------------------------
// Title construction
// ---------------------------------------------------------------------------

// buildTitle assembles the platform title: brand is prepended when the
// seller's title does not already mention it, "Vintage" is prepended when
// absent, the size is appended in parentheses when it still fits, and the
// result is truncated to the platform's hard cap.
func buildTitle(item ItemDetails, maxLen int) string {
	title := strings.TrimSpace(item.Title)

	if item.Brand != "" && !containsFold(title, item.Brand) {
		title = item.Brand + " " + title
	}
	if !containsFold(title, "vintage") {
		title = "Vintage " + title
	}
	if item.Size != "" {
		withSize := title + " (" + item.Size + ")"
		if len([]rune(withSize)) <= maxLen {
			title = withSize
		}
	}
	return truncateRunes(title, maxLen)
}

// containsFold reports whether s contains substr, case-insensitively
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// truncateRunes cuts s to at most maxLen runes
func truncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// priceText renders the price the same way on every platform so the
// formatted description always embeds it verbatim
func priceText(item ItemDetails) string {
	return "$" + item.Price.StringFixed(2)
}

// mapVocab looks up a platform vocabulary value, falling back to the
// platform's most generic bucket for unknown input
func mapVocab(vocab map[string]string, key, fallback string) string {
	if v, ok := vocab[strings.ToLower(strings.TrimSpace(key))]; ok {
		return v
	}
	return fallback
}
