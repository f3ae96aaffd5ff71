// Package silver standardizes one dirty marketplace export into the
// canonical order-line table, independent of which marketplace produced it.
package silver

// Layout is the versioned rename table for one known source export format.
// Header coupling is explicit here, never positional, so each layout can be
// tested against a fixed sample header on its own.
type Layout struct {
	ID          string
	Version     string
	Marketplace string
	// Rename maps a source header to its canonical column.
	Rename map[string]string
	// RepairColumns carry the sub-threshold x1000 truncation repair. Declared
	// per column for the one export format with the known bug.
	RepairColumns []string
}

var Layouts = map[string]Layout{
	"shopee": {
		ID:          "shopee",
		Version:     "2024-03",
		Marketplace: "Shopee",
		Rename: map[string]string{
			"No. Pesanan":                           "order_id",
			"Status Pesanan":                        "order_status",
			"No. Resi":                              "tracking_number",
			"Waktu Pesanan Dibuat":                  "created_at",
			"Waktu Pembayaran Dilakukan":            "paid_at",
			"Waktu Pengiriman Diatur":               "shipped_at",
			"Waktu Pesanan Selesai":                 "completed_at",
			"Waktu Pembatalan":                      "canceled_at",
			"Username (Pembeli)":                    "buyer_name",
			"No. Telepon":                           "buyer_phone",
			"Alamat Pengiriman":                     "address",
			"Kota/Kabupaten":                        "city",
			"Provinsi":                              "province",
			"Nomor Referensi SKU":                   "sku",
			"Nama Produk":                           "product_name",
			"Jumlah":                                "qty",
			"Harga Setelah Diskon":                  "unit_price",
			"Total Harga Produk":                    "subtotal",
			"Ongkos Kirim Dibayar oleh Pembeli":     "shipping_cost",
			"Estimasi Potongan Biaya Pengiriman":    "shipping_discount_seller",
			"Diskon Ongkos Kirim Ditanggung Shopee": "shipping_discount_platform",
			"Biaya Administrasi":                    "admin_fee",
			"Biaya Layanan (termasuk PPN 11%)":      "service_fee",
			"Voucher Ditanggung Penjual":            "seller_voucher",
			"Voucher Ditanggung Shopee":             "platform_voucher",
			"Total Pembayaran":                      "total_paid",
			"Opsi Pengiriman":                       "shipping_provider",
			"Metode Pembayaran":                     "payment_method",
			"Nama Toko":                             "store_name",
		},
	},
	"tokopedia": {
		ID:          "tokopedia",
		Version:     "2024-01",
		Marketplace: "Tokopedia",
		Rename: map[string]string{
			"Nomor Invoice":                            "order_id",
			"Status Terakhir":                          "order_status",
			"No Resi / Kode Booking":                   "tracking_number",
			"Tanggal Pesanan Dibuat":                   "created_at",
			"Tanggal Pembayaran":                       "paid_at",
			"Tanggal Pengiriman Barang":                "shipped_at",
			"Tanggal Pesanan Selesai":                  "completed_at",
			"Tanggal Pembatalan Pesanan":               "canceled_at",
			"Nama Pembeli":                             "buyer_name",
			"No Telp Pembeli":                          "buyer_phone",
			"Alamat Pengiriman":                        "address",
			"Kota":                                     "city",
			"Provinsi":                                 "province",
			"Nomor SKU":                                "sku",
			"Nama Produk":                              "product_name",
			"Jumlah Produk Dibeli":                     "qty",
			"Harga Jual (IDR)":                         "unit_price",
			"Harga Total (IDR)":                        "subtotal",
			"Ongkos Kirim (IDR)":                       "shipping_cost",
			"Diskon Ongkir Ditanggung Penjual (IDR)":   "shipping_discount_seller",
			"Diskon Ongkir Ditanggung Tokopedia (IDR)": "shipping_discount_platform",
			"Biaya Admin (IDR)":                        "admin_fee",
			"Biaya Layanan (IDR)":                      "service_fee",
			"Voucher Toko (IDR)":                       "seller_voucher",
			"Voucher Tokopedia (IDR)":                  "platform_voucher",
			"Total Pembayaran (IDR)":                   "total_paid",
			"Kurir":                                    "shipping_provider",
			"Jenis Pembayaran":                         "payment_method",
			"Nama Toko":                                "store_name",
		},
	},
	"tiktok": {
		ID:          "tiktok",
		Version:     "2024-06",
		Marketplace: "TikTok Shop",
		Rename: map[string]string{
			"Order ID":                       "order_id",
			"Order Status":                   "order_status",
			"Tracking ID":                    "tracking_number",
			"Created Time":                   "created_at",
			"Paid Time":                      "paid_at",
			"Shipped Time":                   "shipped_at",
			"Delivered Time":                 "completed_at",
			"Cancelled Time":                 "canceled_at",
			"Buyer Username":                 "buyer_name",
			"Phone #":                        "buyer_phone",
			"Detail Address":                 "address",
			"Regency and City":               "city",
			"Province":                       "province",
			"Seller SKU":                     "sku",
			"Product Name":                   "product_name",
			"Quantity":                       "qty",
			"SKU Unit Original Price":        "unit_price",
			"SKU Subtotal After Discount":    "subtotal",
			"Shipping Fee After Discount":    "shipping_cost",
			"Shipping Fee Seller Discount":   "shipping_discount_seller",
			"Shipping Fee Platform Discount": "shipping_discount_platform",
			"Admin Fee":                      "admin_fee",
			"Service Fee":                    "service_fee",
			"SKU Seller Discount":            "seller_voucher",
			"SKU Platform Discount":          "platform_voucher",
			"Order Amount":                   "total_paid",
			"Shipping Provider Name":         "shipping_provider",
			"Payment Method":                 "payment_method",
			"Shop Name":                      "store_name",
		},
		// The TikTok export truncates thousands from the two price columns.
		RepairColumns: []string{"unit_price", "subtotal"},
	},
}

// StatusVocab maps raw order statuses (lowercased) to the canonical set.
// Unmatched values pass through unchanged: best effort, not a gate.
var StatusVocab = map[string]string{
	"belum bayar":         "pending",
	"menunggu pembayaran": "pending",
	"unpaid":              "pending",
	"to pay":              "pending",
	"dibayar":             "paid",
	"sudah dibayar":       "paid",
	"to ship":             "paid",
	"dikirim":             "shipped",
	"sedang dikirim":      "shipped",
	"telah dikirim":       "shipped",
	"in transit":          "shipped",
	"terkirim":            "delivered",
	"tiba di tujuan":      "delivered",
	"selesai":             "completed",
	"pesanan selesai":     "completed",
	"dibatalkan":          "canceled",
	"batal":               "canceled",
	"cancelled":           "canceled",
}

// PaymentVocab maps raw payment methods (lowercased) to canonical ones.
var PaymentVocab = map[string]string{
	"bayar di tempat":  "cod",
	"cash on delivery": "cod",
	"transfer bank":    "bank_transfer",
	"bank transfer":    "bank_transfer",
	"kartu kredit":     "credit_card",
	"credit card":      "credit_card",
	"virtual account":  "virtual_account",
	"va":               "virtual_account",
	"shopeepay":        "shopeepay",
	"spaylater":        "spaylater",
	"gopay":            "gopay",
	"ovo":              "ovo",
	"dana":             "dana",
	"seabank":          "seabank",
}
