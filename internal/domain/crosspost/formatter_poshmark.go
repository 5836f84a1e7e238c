package crosspost

import (
	"strings"
)

var poshmarkCategories = map[string]string{
	"tops":        "Women > Tops",
	"bottoms":     "Women > Pants & Jumpsuits",
	"dresses":     "Women > Dresses",
	"outerwear":   "Women > Jackets & Coats",
	"shoes":       "Women > Shoes",
	"accessories": "Women > Accessories",
}

const poshmarkCategoryFallback = "Women > Other"

var poshmarkConditions = map[string]string{
	"new_with_tags": "NWT",
	"excellent":     "Excellent used condition",
	"good":          "Good used condition",
	"fair":          "Fair condition",
}

const poshmarkConditionFallback = "Good used condition"

// formatPoshmark renders a Poshmark listing. Poshmark's create form has no
// separate title field reachable for us, so the built title leads the
// description body instead.
func formatPoshmark(item ItemDetails) *ListingPayload {
	title := buildTitle(item, PoshmarkTitleMaxLen)
	condition := mapVocab(poshmarkConditions, item.Condition, poshmarkConditionFallback)

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(item.Title + "\n")
	b.WriteString(item.Description + "\n\n")
	b.WriteString("Condition: " + condition + "\n")
	if item.Brand != "" {
		b.WriteString("Brand: " + item.Brand + "\n")
	}
	if item.Size != "" {
		b.WriteString("Size: " + item.Size + "\n")
	}
	b.WriteString("Price: " + priceText(item) + "\n\n")
	b.WriteString("Bundle for a private discount! Smoke-free home, fast shipping.")

	return &ListingPayload{
		Platform:    PlatformPoshmark,
		Title:       title,
		Description: b.String(),
		Price:       item.Price,
		Category:    mapVocab(poshmarkCategories, item.Category, poshmarkCategoryFallback),
		Condition:   condition,
		ImageURLs:   item.ImageURLs,
	}
}
