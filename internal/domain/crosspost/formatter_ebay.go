package crosspost

import (
	"strings"
)

// eBay category vocabulary, keyed by our internal category values
var ebayCategories = map[string]string{
	"tops":        "Clothing, Shoes & Accessories > Women > Women's Clothing > Tops",
	"bottoms":     "Clothing, Shoes & Accessories > Women > Women's Clothing > Pants",
	"dresses":     "Clothing, Shoes & Accessories > Women > Women's Clothing > Dresses",
	"outerwear":   "Clothing, Shoes & Accessories > Women > Women's Clothing > Coats, Jackets & Vests",
	"shoes":       "Clothing, Shoes & Accessories > Women > Women's Shoes",
	"accessories": "Clothing, Shoes & Accessories > Women > Women's Accessories",
}

const ebayCategoryFallback = "Clothing, Shoes & Accessories > Specialty > Other"

// eBay condition vocabulary
var ebayConditions = map[string]string{
	"new_with_tags": "New with tags",
	"excellent":     "Pre-owned - Excellent",
	"good":          "Pre-owned - Good",
	"fair":          "Pre-owned - Fair",
}

const ebayConditionFallback = "Pre-owned - Good"

// ebaySellerBlurb is appended to every eBay description
const ebaySellerBlurb = "Sold by a verified Vintage Crib seller. Every item is photographed in-house and ships within 2 business days. Questions? Message us any time."

// formatEbay renders the structured HTML description eBay listings use:
// title heading, seller description, a details block with condition, brand
// and size, the price, and the seller trust blurb.
func formatEbay(item ItemDetails) *ListingPayload {
	condition := mapVocab(ebayConditions, item.Condition, ebayConditionFallback)

	var b strings.Builder
	b.WriteString("<h2>" + item.Title + "</h2>\n")
	b.WriteString("<p>" + item.Description + "</p>\n")
	b.WriteString("<h3>Item Details</h3>\n<ul>\n")
	b.WriteString("<li>Condition: " + condition + "</li>\n")
	if item.Brand != "" {
		b.WriteString("<li>Brand: " + item.Brand + "</li>\n")
	}
	if item.Size != "" {
		b.WriteString("<li>Size: " + item.Size + "</li>\n")
	}
	b.WriteString("<li>Price: " + priceText(item) + "</li>\n")
	b.WriteString("</ul>\n")
	b.WriteString("<p>" + ebaySellerBlurb + "</p>")

	return &ListingPayload{
		Platform:    PlatformEbay,
		Title:       buildTitle(item, EbayTitleMaxLen),
		Description: b.String(),
		Price:       item.Price,
		Category:    mapVocab(ebayCategories, item.Category, ebayCategoryFallback),
		Condition:   condition,
		ImageURLs:   item.ImageURLs,
	}
}
