package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssueDocumentRequest body para POST /api/documents/issue.
type IssueDocumentRequest struct {
	SaleID string `json:"sale_id" validate:"required"`
}

// DocumentResponse comprobante emitido con las líneas de la venta.
type DocumentResponse struct {
	ID         string             `json:"id"`
	SaleID     string             `json:"sale_id,omitempty"`
	Status     string             `json:"status"`
	Total      decimal.Decimal    `json:"total"`
	CustomerID string             `json:"customer_id,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []SaleItemResponse `json:"items,omitempty"`
}

// DocumentListResponse lista paginada de comprobantes.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
