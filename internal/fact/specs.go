// Package fact joins canonical rows against resolved key maps and
// aggregates them to each fact table's declared grain.
package fact

import (
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/schema"
)

// Orders is the order-grain fact. All line items of one order share the
// order-level attributes, so every column reduces with "first".
var Orders = entity.FactSpec{
	Table: "fact_orders",
	Grain: []string{"order_id"},
	ForeignKeys: []entity.ForeignKey{
		{Column: "customer_id", Dimension: "dim_customer", KeyColumns: []string{"buyer_name", "buyer_phone", "address"}},
		{Column: "store_id", Dimension: "dim_store", KeyColumns: []string{"store_name"}},
	},
	Reductions: map[string]entity.Reduction{},
	Contract: schema.Contract{
		Name: "fact_orders",
		Columns: []schema.Column{
			{Name: "order_id", Type: schema.TypeString, Nullable: false, Unique: true},
			{Name: "customer_id", Type: schema.TypeInteger, Nullable: false},
			{Name: "store_id", Type: schema.TypeInteger, Nullable: false},
			{Name: "order_status", Type: schema.TypeString, Nullable: true},
			{Name: "created_at", Type: schema.TypeTimestamp, Nullable: true},
			{Name: "paid_at", Type: schema.TypeTimestamp, Nullable: true},
			{Name: "completed_at", Type: schema.TypeTimestamp, Nullable: true},
			{Name: "canceled_at", Type: schema.TypeTimestamp, Nullable: true},
			{Name: "shipping_cost", Type: schema.TypeFloat, Nullable: true},
			{Name: "seller_voucher", Type: schema.TypeFloat, Nullable: true},
			{Name: "platform_voucher", Type: schema.TypeFloat, Nullable: true},
			{Name: "total_paid", Type: schema.TypeFloat, Nullable: true},
		},
	},
	Conflict: []string{"order_id"},
}

// OrderItems is the line-item fact: one row per order, product and store,
// quantities and amounts summed, unit price averaged. A line that cannot
// resolve its product is dropped: an item fact without a product key is
// meaningless.
var OrderItems = entity.FactSpec{
	Table: "fact_order_items",
	Grain: []string{"order_id", "product_id", "store_id"},
	ForeignKeys: []entity.ForeignKey{
		{Column: "product_id", Dimension: "dim_product", KeyColumns: []string{"sku"}, Required: true},
		{Column: "store_id", Dimension: "dim_store", KeyColumns: []string{"store_name"}},
	},
	Reductions: map[string]entity.Reduction{
		"qty":        entity.ReduceSum,
		"unit_price": entity.ReduceMean,
		"subtotal":   entity.ReduceSum,
	},
	Contract: schema.Contract{
		Name: "fact_order_items",
		Columns: []schema.Column{
			{Name: "order_id", Type: schema.TypeString, Nullable: false},
			{Name: "product_id", Type: schema.TypeInteger, Nullable: false},
			{Name: "store_id", Type: schema.TypeInteger, Nullable: false},
			{Name: "qty", Type: schema.TypeInteger, Nullable: true},
			{Name: "unit_price", Type: schema.TypeFloat, Nullable: true},
			{Name: "subtotal", Type: schema.TypeFloat, Nullable: true},
		},
	},
	Conflict: []string{"order_id", "product_id", "store_id"},
}

// Shipments is keyed by tracking number: one shipment carries many line
// items but a single set of shipment attributes, so "first" per column.
// Rows without a tracking number are not shipments yet and are dropped.
var Shipments = entity.FactSpec{
	Table: "fact_shipments",
	Grain: []string{"tracking_number"},
	ForeignKeys: []entity.ForeignKey{
		{Column: "shipping_service_id", Dimension: "dim_shipping_service", KeyColumns: []string{"shipping_provider"}},
	},
	Reductions: map[string]entity.Reduction{},
	Contract: schema.Contract{
		Name: "fact_shipments",
		Columns: []schema.Column{
			{Name: "tracking_number", Type: schema.TypeString, Nullable: false, Unique: true},
			{Name: "order_id", Type: schema.TypeString, Nullable: true},
			{Name: "shipping_service_id", Type: schema.TypeInteger, Nullable: false},
			{Name: "shipped_at", Type: schema.TypeTimestamp, Nullable: true},
			{Name: "shipping_cost", Type: schema.TypeFloat, Nullable: true},
			{Name: "shipping_discount_seller", Type: schema.TypeFloat, Nullable: true},
			{Name: "shipping_discount_platform", Type: schema.TypeFloat, Nullable: true},
		},
	},
	Conflict: []string{"tracking_number"},
}

// Payments aggregates fees and amounts to the order.
var Payments = entity.FactSpec{
	Table: "fact_payments",
	Grain: []string{"order_id"},
	ForeignKeys: []entity.ForeignKey{
		{Column: "payment_method_id", Dimension: "dim_payment_method", KeyColumns: []string{"payment_method"}},
	},
	Reductions: map[string]entity.Reduction{
		"admin_fee":   entity.ReduceSum,
		"service_fee": entity.ReduceSum,
		"total_paid":  entity.ReduceSum,
	},
	Contract: schema.Contract{
		Name: "fact_payments",
		Columns: []schema.Column{
			{Name: "order_id", Type: schema.TypeString, Nullable: false, Unique: true},
			{Name: "payment_method_id", Type: schema.TypeInteger, Nullable: false},
			{Name: "admin_fee", Type: schema.TypeFloat, Nullable: true},
			{Name: "service_fee", Type: schema.TypeFloat, Nullable: true},
			{Name: "total_paid", Type: schema.TypeFloat, Nullable: true},
		},
	},
	Conflict: []string{"order_id"},
}

// All returns the fact specs in load order.
func All() []entity.FactSpec {
	return []entity.FactSpec{Orders, OrderItems, Shipments, Payments}
}
