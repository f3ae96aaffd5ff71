package dimension

import (
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// deriveBrand attaches the inferred brand name to a canonical row so both
// dim_brand and dim_product can key on it.
func deriveBrand(r table.Row) {
	sku, ok := r["sku"].(string)
	if !ok {
		return
	}
	r["brand_name"] = BrandFromSKU(sku)
}

var (
	Marketplace = entity.DimensionSpec{
		Table:        "dim_marketplace",
		SurrogateKey: "marketplace_id",
		NaturalKey:   []string{"marketplace"},
	}

	Brand = entity.DimensionSpec{
		Table:        "dim_brand",
		SurrogateKey: "brand_id",
		NaturalKey:   []string{"brand_name"},
		Derive:       deriveBrand,
	}

	ShippingService = entity.DimensionSpec{
		Table:        "dim_shipping_service",
		SurrogateKey: "shipping_service_id",
		NaturalKey:   []string{"shipping_provider"},
	}

	PaymentMethod = entity.DimensionSpec{
		Table:        "dim_payment_method",
		SurrogateKey: "payment_method_id",
		NaturalKey:   []string{"payment_method"},
	}

	Customer = entity.DimensionSpec{
		Table:        "dim_customer",
		SurrogateKey: "customer_id",
		NaturalKey:   []string{"buyer_name", "buyer_phone", "address"},
		Attributes:   []string{"city", "province"},
	}

	Store = entity.DimensionSpec{
		Table:        "dim_store",
		SurrogateKey: "store_id",
		NaturalKey:   []string{"store_name"},
		Parent: &entity.ParentRef{
			Dimension:  "dim_marketplace",
			KeyColumns: []string{"marketplace"},
			ForeignKey: "marketplace_id",
		},
	}

	Product = entity.DimensionSpec{
		Table:        "dim_product",
		SurrogateKey: "product_id",
		NaturalKey:   []string{"sku"},
		Attributes:   []string{"product_name"},
		Derive:       deriveBrand,
		Parent: &entity.ParentRef{
			Dimension:  "dim_brand",
			KeyColumns: []string{"brand_name"},
			ForeignKey: "brand_id",
		},
	}
)

// Independent dimensions load first; Dependent ones need a parent's resolved
// surrogate ids and load second.
func Independent() []entity.DimensionSpec {
	return []entity.DimensionSpec{Marketplace, Brand, ShippingService, PaymentMethod, Customer}
}

func Dependent() []entity.DimensionSpec {
	return []entity.DimensionSpec{Store, Product}
}
