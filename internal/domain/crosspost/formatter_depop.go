package crosspost

import (
	"strings"
)

var depopCategories = map[string]string{
	"tops":        "Tops",
	"bottoms":     "Bottoms",
	"dresses":     "Dresses",
	"outerwear":   "Coats and jackets",
	"shoes":       "Shoes",
	"accessories": "Accessories",
}

const depopCategoryFallback = "Other"

var depopConditions = map[string]string{
	"new_with_tags": "Brand new",
	"excellent":     "Used - Excellent",
	"good":          "Used - Good",
	"fair":          "Used - Fair",
}

const depopConditionFallback = "Used - Good"

// formatDepop renders the casual hashtag-led listing text Depop buyers
// expect. Hashtags are derived from the item itself so the same item always
// formats to the same tags.
func formatDepop(item ItemDetails) *ListingPayload {
	condition := mapVocab(depopConditions, item.Condition, depopConditionFallback)
	tags := depopHashtags(item)

	var b strings.Builder
	b.WriteString(item.Title + " ✨\n\n")
	b.WriteString(item.Description + "\n\n")
	if item.Size != "" {
		b.WriteString("size " + item.Size + " · ")
	}
	b.WriteString(strings.ToLower(condition) + " · " + priceText(item) + "\n\n")
	b.WriteString("message me with any questions! bundles welcome 💌\n\n")
	b.WriteString(strings.Join(tags, " "))

	return &ListingPayload{
		Platform:    PlatformDepop,
		Title:       buildTitle(item, DepopTitleMaxLen),
		Description: b.String(),
		Price:       item.Price,
		Category:    mapVocab(depopCategories, item.Category, depopCategoryFallback),
		Condition:   condition,
		Tags:        tags,
		ImageURLs:   item.ImageURLs,
	}
}

// depopHashtags derives up to DepopMaxHashtags deterministic hashtags from
// the item's brand, category, size and condition
func depopHashtags(item ItemDetails) []string {
	candidates := []string{"vintage"}
	if item.Brand != "" {
		candidates = append(candidates, item.Brand)
	}
	if item.Category != "" {
		candidates = append(candidates, item.Category)
	}
	if item.Size != "" {
		candidates = append(candidates, "size"+item.Size)
	}
	candidates = append(candidates, "secondhand", "sustainablefashion")

	tags := make([]string, 0, DepopMaxHashtags)
	seen := make(map[string]bool)
	for _, c := range candidates {
		tag := "#" + sanitizeHashtag(c)
		if tag == "#" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == DepopMaxHashtags {
			break
		}
	}
	return tags
}

// sanitizeHashtag lowercases and strips everything but letters and digits
func sanitizeHashtag(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
