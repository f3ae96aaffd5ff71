package fact

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

func orderItemKeys(products, stores map[string]int64) map[string]*entity.KeyMap {
	pm := entity.NewKeyMap("sku")
	for sku, id := range products {
		pm.Put(table.Row{"sku": sku}, id)
	}
	sm := entity.NewKeyMap("store_name")
	for name, id := range stores {
		sm.Put(table.Row{"store_name": name}, id)
	}
	return map[string]*entity.KeyMap{"dim_product": pm, "dim_store": sm}
}

func TestBuildOrderItemsAggregatesToGrain(t *testing.T) {
	silver := table.New("order_id", "sku", "store_name", "qty", "unit_price", "subtotal")
	silver.Append(table.Row{"order_id": "INV-1", "sku": "ZYY-001", "store_name": "Toko Sehat", "qty": int64(2), "unit_price": 10000.0, "subtotal": 20000.0})
	silver.Append(table.Row{"order_id": "INV-1", "sku": "ZYY-001", "store_name": "Toko Sehat", "qty": int64(3), "unit_price": 12000.0, "subtotal": 36000.0})

	keys := orderItemKeys(map[string]int64{"ZYY-001": 1}, map[string]int64{"Toko Sehat": 2})
	built, err := Build(silver, OrderItems, keys)
	require.NoError(t, err)
	require.Zero(t, built.Dropped)
	require.Len(t, built.Table.Rows, 1)

	r := built.Table.Rows[0]
	require.Equal(t, "INV-1", r["order_id"])
	require.Equal(t, int64(1), r["product_id"])
	require.Equal(t, int64(2), r["store_id"])
	require.Equal(t, int64(5), r["qty"])
	require.InDelta(t, 11000.0, r["unit_price"], 1e-9)
	require.InDelta(t, 56000.0, r["subtotal"], 1e-9)
}

func TestBuildDropsUnresolvedRequiredKey(t *testing.T) {
	silver := table.New("order_id", "sku", "store_name", "qty")
	silver.Append(table.Row{"order_id": "INV-1", "sku": "GHOST-1", "store_name": "Toko Sehat", "qty": int64(1)})
	silver.Append(table.Row{"order_id": "INV-1", "sku": "ZYY-001", "store_name": "Toko Sehat", "qty": int64(1)})

	keys := orderItemKeys(map[string]int64{"ZYY-001": 1}, map[string]int64{"Toko Sehat": 2})
	built, err := Build(silver, OrderItems, keys)
	require.NoError(t, err)
	require.Equal(t, 1, built.Dropped)
	require.Len(t, built.Table.Rows, 1)
	require.Equal(t, int64(1), built.Table.Rows[0]["product_id"])
}

func TestBuildOptionalKeyTakesSentinel(t *testing.T) {
	silver := table.New("order_id", "buyer_name", "buyer_phone", "address", "store_name", "order_status", "total_paid")
	silver.Append(table.Row{"order_id": "INV-1", "buyer_name": "budi", "buyer_phone": "0812", "address": "Jl. Mawar 1", "store_name": "Toko Baru", "order_status": "completed", "total_paid": 50000.0})

	customers := entity.NewKeyMap("buyer_name", "buyer_phone", "address")
	customers.Put(table.Row{"buyer_name": "budi", "buyer_phone": "0812", "address": "Jl. Mawar 1"}, 11)
	stores := entity.NewKeyMap("store_name")
	keys := map[string]*entity.KeyMap{"dim_customer": customers, "dim_store": stores}

	built, err := Build(silver, Orders, keys)
	require.NoError(t, err)
	require.Zero(t, built.Dropped)

	r := built.Table.Rows[0]
	require.Equal(t, int64(11), r["customer_id"])
	require.Equal(t, entity.UnknownKey, r["store_id"])
	require.Equal(t, "completed", r["order_status"])
}

func TestBuildDropsMissingGrain(t *testing.T) {
	silver := table.New("tracking_number", "order_id", "shipping_provider", "shipped_at", "shipping_cost")
	silver.Append(table.Row{"tracking_number": nil, "order_id": "INV-1", "shipping_provider": "JNE"})
	silver.Append(table.Row{"tracking_number": "RESI-1", "order_id": "INV-2", "shipping_provider": "JNE", "shipped_at": time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "shipping_cost": 12000.0})

	services := entity.NewKeyMap("shipping_provider")
	services.Put(table.Row{"shipping_provider": "JNE"}, 3)
	keys := map[string]*entity.KeyMap{"dim_shipping_service": services}

	built, err := Build(silver, Shipments, keys)
	require.NoError(t, err)
	require.Equal(t, 1, built.Dropped)
	require.Len(t, built.Table.Rows, 1)
	require.Equal(t, "RESI-1", built.Table.Rows[0]["tracking_number"])
	require.Equal(t, int64(3), built.Table.Rows[0]["shipping_service_id"])
}

func TestBuildPaymentsSumsRepeatedOrderAmounts(t *testing.T) {
	silver := table.New("order_id", "payment_method", "admin_fee", "service_fee", "total_paid")
	silver.Append(table.Row{"order_id": "INV-1", "payment_method": "cod", "admin_fee": 1000.0, "service_fee": 500.0, "total_paid": 25000.0})
	silver.Append(table.Row{"order_id": "INV-1", "payment_method": "cod", "admin_fee": 1000.0, "service_fee": 500.0, "total_paid": 25000.0})

	methods := entity.NewKeyMap("payment_method")
	methods.Put(table.Row{"payment_method": "cod"}, 4)
	keys := map[string]*entity.KeyMap{"dim_payment_method": methods}

	built, err := Build(silver, Payments, keys)
	require.NoError(t, err)
	require.Len(t, built.Table.Rows, 1)

	r := built.Table.Rows[0]
	require.InDelta(t, 2000.0, r["admin_fee"], 1e-9)
	require.InDelta(t, 50000.0, r["total_paid"], 1e-9)
}

func TestBuildMissingKeyMapIsError(t *testing.T) {
	silver := table.New("order_id", "sku", "store_name")
	silver.Append(table.Row{"order_id": "INV-1", "sku": "ZYY-001", "store_name": "Toko Sehat"})

	_, err := Build(silver, OrderItems, map[string]*entity.KeyMap{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "dim_product")
}

func TestBuildGroupOrderIsStable(t *testing.T) {
	silver := table.New("order_id", "sku", "store_name", "qty")
	silver.Append(table.Row{"order_id": "INV-2", "sku": "ZYY-001", "store_name": "Toko Sehat", "qty": int64(1)})
	silver.Append(table.Row{"order_id": "INV-1", "sku": "ZYY-001", "store_name": "Toko Sehat", "qty": int64(1)})

	keys := orderItemKeys(map[string]int64{"ZYY-001": 1}, map[string]int64{"Toko Sehat": 2})
	built, err := Build(silver, OrderItems, keys)
	require.NoError(t, err)
	require.Equal(t, "INV-2", built.Table.Rows[0]["order_id"])
	require.Equal(t, "INV-1", built.Table.Rows[1]["order_id"])
}
