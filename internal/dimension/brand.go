// Package dimension derives the deduplicated dimension rows of the star
// schema from the canonical silver table.
package dimension

import (
	"strings"
)

// brandByPrefix is the fixed SKU-prefix to brand table. The prefix is the
// substring before the first separator of the SKU.
var brandByPrefix = map[string]string{
	"ZYY": "Zhi Yang Yao",
	"MDN": "Madu Nusantara",
	"HRB": "Herbalindo",
	"KPS": "Kapsida",
	"SRK": "Sari Kurma",
}

const unknownBrand = "Unknown"

// BrandFromSKU infers the brand from the SKU prefix. SKUs without a known
// prefix map to "Unknown", so the brand dimension always resolves.
func BrandFromSKU(sku string) string {
	prefix, _, _ := strings.Cut(sku, "-")
	if brand, ok := brandByPrefix[strings.ToUpper(strings.TrimSpace(prefix))]; ok {
		return brand
	}
	return unknownBrand
}
