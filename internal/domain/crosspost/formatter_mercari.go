package crosspost

import (
	"strings"
)

var mercariCategories = map[string]string{
	"tops":        "Women > Tops & blouses",
	"bottoms":     "Women > Pants",
	"dresses":     "Women > Dresses",
	"outerwear":   "Women > Coats & jackets",
	"shoes":       "Women > Shoes",
	"accessories": "Women > Women's accessories",
}

const mercariCategoryFallback = "Women > Other"

var mercariConditions = map[string]string{
	"new_with_tags": "New",
	"excellent":     "Like new",
	"good":          "Good",
	"fair":          "Fair",
}

const mercariConditionFallback = "Good"

// formatMercari renders the bullet "Details" block Mercari listings use
func formatMercari(item ItemDetails) *ListingPayload {
	condition := mapVocab(mercariConditions, item.Condition, mercariConditionFallback)

	var b strings.Builder
	b.WriteString(item.Title + "\n\n")
	b.WriteString(item.Description + "\n\n")
	b.WriteString("Details:\n")
	if item.Brand != "" {
		b.WriteString("• Brand: " + item.Brand + "\n")
	}
	if item.Size != "" {
		b.WriteString("• Size: " + item.Size + "\n")
	}
	b.WriteString("• Condition: " + condition + "\n")
	b.WriteString("• Price: " + priceText(item) + "\n\n")
	b.WriteString("Ships fast with tracking. All sales final.")

	return &ListingPayload{
		Platform:    PlatformMercari,
		Title:       buildTitle(item, MercariTitleMaxLen),
		Description: b.String(),
		Price:       item.Price,
		Category:    mapVocab(mercariCategories, item.Category, mercariCategoryFallback),
		Condition:   condition,
		ImageURLs:   item.ImageURLs,
	}
}
