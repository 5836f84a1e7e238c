package marketplace

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vintagecrib/backend/internal/domain/crosspost"
)

func manualPayload(platform crosspost.PlatformName) *crosspost.ListingPayload {
	return &crosspost.ListingPayload{
		ItemID:      uuid.New(),
		Platform:    platform,
		Title:       "Vintage Levi's 501 Jeans (M)",
		Description: "Classic 90s denim. $58.50",
		Price:       decimal.NewFromFloat(58.50),
		Category:    "Jeans",
		Condition:   "Excellent used condition",
	}
}

func TestManualAdapter_Publish(t *testing.T) {
	tests := []struct {
		name       string
		adapter    *ManualAdapter
		platform   crosspost.PlatformName
		listingURL string
	}{
		{"poshmark", NewPoshmarkAdapter(), crosspost.PlatformPoshmark, PoshmarkCreateListingURL},
		{"depop", NewDepopAdapter(), crosspost.PlatformDepop, DepopCreateListingURL},
		{"mercari", NewMercariAdapter(), crosspost.PlatformMercari, MercariCreateListingURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.platform, tt.adapter.Platform())
			assert.Equal(t, crosspost.ModeManualPrepared, tt.adapter.Mode())

			result, err := tt.adapter.Publish(context.Background(), manualPayload(tt.platform))
			require.NoError(t, err)

			assert.True(t, result.Success)
			assert.False(t, result.IsLive(), "a prepared package is never a live listing")
			require.NotNil(t, result.Manual)
			assert.Equal(t, tt.listingURL, result.Manual.ListingURL)
			assert.Contains(t, result.Manual.FormattedText, "Classic 90s denim. $58.50")
			assert.NotEmpty(t, result.Manual.Instructions)
			assert.Contains(t, result.Manual.Instructions[3], "$58.50")
		})
	}
}

func TestManualAdapter_Publish_WrongPlatformPayload(t *testing.T) {
	adapter := NewDepopAdapter()
	_, err := adapter.Publish(context.Background(), manualPayload(crosspost.PlatformMercari))
	assert.ErrorIs(t, err, crosspost.ErrUnsupportedPlatform)
}

func TestManualAdapter_FormattedText(t *testing.T) {
	t.Run("poshmark omits the separate title line", func(t *testing.T) {
		payload := manualPayload(crosspost.PlatformPoshmark)
		result, err := NewPoshmarkAdapter().Publish(context.Background(), payload)
		require.NoError(t, err)
		assert.NotContains(t, result.Manual.FormattedText, payload.Title+"\n\n")
	})

	t.Run("depop tag block appears exactly once", func(t *testing.T) {
		item := crosspost.ItemDetails{
			ItemID:      uuid.New(),
			Title:       "Levi's 501 Jeans",
			Description: "Classic 90s denim.",
			Price:       decimal.NewFromFloat(58.50),
			Brand:       "Levi's",
			Category:    "outerwear",
			Size:        "M",
			Condition:   "excellent",
		}
		payload, err := crosspost.Format(item, crosspost.PlatformDepop)
		require.NoError(t, err)
		require.NotEmpty(t, payload.Tags)

		result, err := NewDepopAdapter().Publish(context.Background(), payload)
		require.NoError(t, err)

		text := result.Manual.FormattedText
		tagBlock := strings.Join(payload.Tags, " ")
		assert.Equal(t, 1, strings.Count(text, tagBlock), "tag block must not be duplicated")
		assert.NotContains(t, text, "##")
		for _, tag := range payload.Tags {
			assert.Regexp(t, `^#[a-z0-9]+$`, tag)
		}
	})

	t.Run("tags outside the description are appended once", func(t *testing.T) {
		payload := manualPayload(crosspost.PlatformMercari)
		payload.Tags = []string{"#vintage", "#levis"}
		result, err := NewMercariAdapter().Publish(context.Background(), payload)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(result.Manual.FormattedText, "\n\n#vintage #levis"))
		assert.NotContains(t, result.Manual.FormattedText, "##")
	})
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(
		NewPoshmarkAdapter(),
		NewDepopAdapter(),
		NewMercariAdapter(),
	)

	pub, err := registry.Get(crosspost.PlatformDepop)
	require.NoError(t, err)
	assert.Equal(t, crosspost.PlatformDepop, pub.Platform())

	_, err = registry.Get(crosspost.PlatformEbay)
	assert.ErrorIs(t, err, crosspost.ErrPublisherNotRegistered)

	assert.Len(t, registry.List(), 3)
}
