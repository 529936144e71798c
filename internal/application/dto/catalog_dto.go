package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU            string           `json:"sku" validate:"required,min=1,max=100"`
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	Price          decimal.Decimal  `json:"price"`
	MinStockLevel  *decimal.Decimal `json:"min_stock_level"`
	IsBatchTracked bool             `json:"is_batch_tracked"`
	TrackExpiry    bool             `json:"track_expiry"`
	Barcodes       []string         `json:"barcodes" validate:"omitempty,dive,required,max=100"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string           `json:"id"`
	SKU            string           `json:"sku"`
	Name           string           `json:"name"`
	Price          decimal.Decimal  `json:"price"`
	MinStockLevel  *decimal.Decimal `json:"min_stock_level"`
	IsBatchTracked bool             `json:"is_batch_tracked"`
	TrackExpiry    bool             `json:"track_expiry"`
	CreatedAt      time.Time        `json:"created_at"`
}

// AddBarcodeRequest body para POST /api/products/:id/barcodes.
type AddBarcodeRequest struct {
	Barcode string `json:"barcode" validate:"required,max=100"`
}

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	IsDefault bool   `json:"is_default"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest entrada para crear un proveedor. PaymentDetails debe ser un objeto JSON.
type CreateSupplierRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	ContactName    string          `json:"contact_name"`
	Email          string          `json:"email" validate:"omitempty,email"`
	Phone          string          `json:"phone"`
	PaymentMethod  string          `json:"payment_method" validate:"omitempty,oneof=CASH TRANSFER CHECK OTHER"`
	PaymentDetails json.RawMessage `json:"payment_details"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ContactName    string          `json:"contact_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentDetails json.RawMessage `json:"payment_details,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	TaxID string `json:"tax_id" validate:"max=20"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
