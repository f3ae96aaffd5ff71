package silver

import (
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/schema"
)

// MonetaryColumns are parsed with the locale-tolerant currency parser and
// are non-negative after standardization (discounts arrive negative in some
// exports).
var MonetaryColumns = []string{
	"unit_price", "subtotal", "shipping_cost",
	"shipping_discount_seller", "shipping_discount_platform",
	"admin_fee", "service_fee",
	"seller_voucher", "platform_voucher", "total_paid",
}

// TimeColumns are parsed day-first with the Indonesian month table.
var TimeColumns = []string{
	"created_at", "paid_at", "shipped_at", "completed_at", "canceled_at",
}

// Contract is the canonical silver shape: one row per marketplace order
// line item. The order identifier is the only hard requirement; everything
// else is nullable because the facts decide later what they cannot live
// without.
var Contract = schema.Contract{
	Name: "silver_order_items",
	Columns: []schema.Column{
		{Name: "order_id", Type: schema.TypeString, Nullable: false},
		{Name: "order_status", Type: schema.TypeString, Nullable: true},
		{Name: "tracking_number", Type: schema.TypeString, Nullable: true},
		{Name: "created_at", Type: schema.TypeTimestamp, Nullable: true},
		{Name: "paid_at", Type: schema.TypeTimestamp, Nullable: true},
		{Name: "shipped_at", Type: schema.TypeTimestamp, Nullable: true},
		{Name: "completed_at", Type: schema.TypeTimestamp, Nullable: true},
		{Name: "canceled_at", Type: schema.TypeTimestamp, Nullable: true},
		{Name: "buyer_name", Type: schema.TypeString, Nullable: true},
		{Name: "buyer_phone", Type: schema.TypeString, Nullable: true},
		{Name: "address", Type: schema.TypeString, Nullable: true},
		{Name: "city", Type: schema.TypeString, Nullable: true},
		{Name: "province", Type: schema.TypeString, Nullable: true},
		{Name: "sku", Type: schema.TypeString, Nullable: true},
		{Name: "product_name", Type: schema.TypeString, Nullable: true},
		{Name: "qty", Type: schema.TypeInteger, Nullable: true},
		{Name: "unit_price", Type: schema.TypeFloat, Nullable: true},
		{Name: "subtotal", Type: schema.TypeFloat, Nullable: true},
		{Name: "shipping_cost", Type: schema.TypeFloat, Nullable: true},
		{Name: "shipping_discount_seller", Type: schema.TypeFloat, Nullable: true},
		{Name: "shipping_discount_platform", Type: schema.TypeFloat, Nullable: true},
		{Name: "admin_fee", Type: schema.TypeFloat, Nullable: true},
		{Name: "service_fee", Type: schema.TypeFloat, Nullable: true},
		{Name: "seller_voucher", Type: schema.TypeFloat, Nullable: true},
		{Name: "platform_voucher", Type: schema.TypeFloat, Nullable: true},
		{Name: "total_paid", Type: schema.TypeFloat, Nullable: true},
		{Name: "shipping_provider", Type: schema.TypeString, Nullable: true},
		{Name: "payment_method", Type: schema.TypeString, Nullable: true},
		{Name: "store_name", Type: schema.TypeString, Nullable: true},
		{Name: "marketplace", Type: schema.TypeString, Nullable: false},
	},
}
