package entity

import (
	"encoding/json"
	"time"
)

// Métodos de pago aceptados para proveedores.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCheck    = "CHECK"
	PaymentMethodOther    = "OTHER"
)

// Supplier proveedor de mercadería. PaymentDetails es un objeto JSON libre (CBU, alias, banco...).
type Supplier struct {
	ID             string
	Name           string
	ContactName    string
	Email          string
	Phone          string
	PaymentMethod  string
	PaymentDetails json.RawMessage
	CreatedAt      time.Time
}
