package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
)

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. PaymentDetails, si viene, debe ser un objeto JSON.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	details, err := normalizePaymentDetails(in.PaymentDetails)
	if err != nil {
		return nil, err
	}
	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodTransfer
	}
	s := &entity.Supplier{
		ID:             uuid.New().String(),
		Name:           in.Name,
		ContactName:    in.ContactName,
		Email:          in.Email,
		Phone:          in.Phone,
		PaymentMethod:  method,
		PaymentDetails: details,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List lista los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// normalizePaymentDetails acepta vacío/null (sin datos) o un objeto JSON; cualquier otra cosa es inválida.
func normalizePaymentDetails(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("payment_details debe ser un objeto JSON: %w", domain.ErrInvalidInput)
	}
	return json.RawMessage(trimmed), nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:             s.ID,
		Name:           s.Name,
		ContactName:    s.ContactName,
		Email:          s.Email,
		Phone:          s.Phone,
		PaymentMethod:  s.PaymentMethod,
		PaymentDetails: s.PaymentDetails,
		CreatedAt:      s.CreatedAt,
	}
}
