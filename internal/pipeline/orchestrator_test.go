package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/entity"
	"github.com/leonalhidayah/monitoring-dashboard-apps-sub000/internal/table"
)

// fakeStore is an in-memory warehouse: dimension upserts assign surrogate
// ids per natural key with merge semantics, Resolve joins against them.
type fakeStore struct {
	rowsByTable    map[string][][]any
	columnsByTable map[string][]string
	idsByDimension map[string]map[string]int64
	nextID         int64
	failOnTable    string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rowsByTable:    make(map[string][][]any),
		columnsByTable: make(map[string][]string),
		idsByDimension: make(map[string]map[string]int64),
	}
}

func (f *fakeStore) Upsert(_ context.Context, tableName string, columns []string, rows [][]any, conflictColumns []string) (int64, error) {
	if tableName == f.failOnTable {
		return 0, errors.New("warehouse unavailable")
	}
	f.rowsByTable[tableName] = append(f.rowsByTable[tableName], rows...)
	f.columnsByTable[tableName] = columns

	if strings.HasPrefix(tableName, "dim_") {
		ids, ok := f.idsByDimension[tableName]
		if !ok {
			ids = make(map[string]int64)
			f.idsByDimension[tableName] = ids
		}
		for _, row := range rows {
			k := positionalKey(columns, row, conflictColumns)
			if _, seen := ids[k]; !seen {
				f.nextID++
				ids[k] = f.nextID
			}
		}
	}
	return int64(len(rows)), nil
}

func (f *fakeStore) Resolve(_ context.Context, dim, _ string, keyColumns []string, keys []table.Row) (*entity.KeyMap, error) {
	km := entity.NewKeyMap(keyColumns...)
	ids := f.idsByDimension[dim]
	for _, r := range keys {
		parts := make([]string, len(keyColumns))
		for i, c := range keyColumns {
			parts[i] = table.FormatValue(r[c])
		}
		if id, ok := ids[strings.Join(parts, "\x1f")]; ok {
			km.Put(r, id)
		}
	}
	return km, nil
}

func positionalKey(columns []string, row []any, keyColumns []string) string {
	byName := make(map[string]any, len(columns))
	for i, c := range columns {
		byName[c] = row[i]
	}
	parts := make([]string, len(keyColumns))
	for i, c := range keyColumns {
		parts[i] = table.FormatValue(byName[c])
	}
	return strings.Join(parts, "\x1f")
}

func (f *fakeStore) table(name string) map[string][]any {
	if len(f.rowsByTable[name]) == 0 {
		return nil
	}
	out := make(map[string][]any)
	for _, row := range f.rowsByTable[name] {
		for i, c := range f.columnsByTable[name] {
			out[c] = append(out[c], row[i])
		}
	}
	return out
}

var sampleExport = strings.Join([]string{
	"No. Pesanan,Status Pesanan,No. Resi,Jumlah,Harga Setelah Diskon,Total Harga Produk,Nomor Referensi SKU,Nama Produk,Username (Pembeli),No. Telepon,Alamat Pengiriman,Nama Toko,Opsi Pengiriman,Metode Pembayaran,Total Pembayaran",
	"INV-1,Terkirim,RESI-1,1,\"10,000\",\"10,000\",ZYY-001,Minyak Herbal,budi,0812,Jl. Mawar 1,Toko Sehat,JNE,Transfer Bank,\"30,000\"",
	"INV-1,Terkirim,RESI-1,2,\"10,000\",\"20,000\",ZYY-001,Minyak Herbal,budi,0812,Jl. Mawar 1,Toko Sehat,JNE,Transfer Bank,\"30,000\"",
}, "\n")

func runParams(file, layout string) entity.RunParams {
	return entity.RunParams{
		File:         []byte(file),
		SourceLayout: layout,
		RunAt:        time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRunEndToEnd(t *testing.T) {
	store := newFakeStore()
	orch := New(store, nil)

	report, err := orch.Run(context.Background(), runParams(sampleExport, "shopee"))
	require.NoError(t, err)
	require.Equal(t, "loaded", report.Status)
	require.NotEmpty(t, report.RunID)

	// one stage per loaded table plus the silver stage
	require.Len(t, report.Stages, 12)
	require.Equal(t, "silver", report.Stages[0].Stage)
	require.Equal(t, int64(2), report.Stages[0].Rows)

	brand := store.table("dim_brand")
	require.Equal(t, []any{"Zhi Yang Yao"}, brand["brand_name"])

	product := store.table("dim_product")
	require.Equal(t, []any{"ZYY-001"}, product["sku"])
	require.NotEqual(t, entity.UnknownKey, product["brand_id"][0], "brand parent must resolve")

	marketplace := store.table("dim_marketplace")
	require.Equal(t, []any{"Shopee"}, marketplace["marketplace"])

	orders := store.table("fact_orders")
	require.Len(t, orders["order_id"], 1)
	require.Equal(t, "delivered", orders["order_status"][0])
	require.Equal(t, 30000.0, orders["total_paid"][0])
	require.NotEqual(t, entity.UnknownKey, orders["customer_id"][0])

	items := store.table("fact_order_items")
	require.Len(t, items["order_id"], 1)
	require.Equal(t, int64(3), items["qty"][0])
	require.Equal(t, 30000.0, items["subtotal"][0])
	require.Equal(t, 10000.0, items["unit_price"][0])

	shipments := store.table("fact_shipments")
	require.Equal(t, []any{"RESI-1"}, shipments["tracking_number"])
}

func TestRunIsIdempotent(t *testing.T) {
	store := newFakeStore()
	orch := New(store, nil)

	first, err := orch.Run(context.Background(), runParams(sampleExport, "shopee"))
	require.NoError(t, err)

	second, err := orch.Run(context.Background(), runParams(sampleExport, "shopee"))
	require.NoError(t, err)
	require.NotEqual(t, first.RunID, second.RunID)

	// the fake appends rows, so both runs staged the same single brand key
	// and it kept its first surrogate id
	require.Len(t, store.idsByDimension["dim_brand"], 1)
}

func TestRunInvalidParams(t *testing.T) {
	testCases := []struct {
		name   string
		params entity.RunParams
	}{
		{name: "empty file", params: runParams("", "shopee")},
		{name: "unknown layout", params: runParams(sampleExport, "bukalapak")},
		{name: "zero run time", params: entity.RunParams{File: []byte(sampleExport), SourceLayout: "shopee"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			report, err := New(store, nil).Run(context.Background(), tc.params)
			require.Error(t, err)
			require.Equal(t, "failed", report.Status)
			require.NotEmpty(t, report.Error)
			require.Empty(t, store.rowsByTable, "nothing may be written on a rejected run")
		})
	}
}

func TestRunStoreFailureFailsBatch(t *testing.T) {
	store := newFakeStore()
	store.failOnTable = "fact_orders"

	report, err := New(store, nil).Run(context.Background(), runParams(sampleExport, "shopee"))
	require.Error(t, err)
	require.Equal(t, "failed", report.Status)
	require.Contains(t, report.Error, "warehouse unavailable")
}

func TestRunMalformedCSV(t *testing.T) {
	store := newFakeStore()
	report, err := New(store, nil).Run(context.Background(), runParams("\"broken", "shopee"))
	require.Error(t, err)
	require.Equal(t, "failed", report.Status)
}
