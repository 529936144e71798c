package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jofra02/proyecto-ventas/internal/application/dto"
	"github.com/jofra02/proyecto-ventas/internal/application/ports"
	"github.com/jofra02/proyecto-ventas/internal/domain"
	"github.com/jofra02/proyecto-ventas/internal/domain/entity"
	"github.com/jofra02/proyecto-ventas/internal/domain/repository"
	"github.com/jofra02/proyecto-ventas/pkg/logger"
)

// DocumentUseCase emite comprobantes a partir de ventas y descuenta el inventario en una sola transacción.
type DocumentUseCase struct {
	txRunner    ports.TxRunner
	saleRepo    repository.SaleRepository
	docRepo     repository.DocumentRepository
	stock       StockWriter
	ledger      InvoicePoster
	invalidator ports.AnalyticsInvalidator // opcional
	log         *logger.Logger
}

// NewDocumentUseCase construye el caso de uso. invalidator puede ser nil.
func NewDocumentUseCase(
	txRunner ports.TxRunner,
	saleRepo repository.SaleRepository,
	docRepo repository.DocumentRepository,
	stock StockWriter,
	ledger InvoicePoster,
	invalidator ports.AnalyticsInvalidator,
	log *logger.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		docRepo:     docRepo,
		stock:       stock,
		ledger:      ledger,
		invalidator: invalidator,
		log:         log,
	}
}

// IssueDocument emite el comprobante de la venta:
//  1. total = Σ(cantidad × precio) de las líneas congeladas de la venta
//  2. documento ISSUED (uno por venta, ErrConflict si ya existe)
//  3. un COMMIT por línea y, si la venta estaba CONFIRMED, un RELEASE por línea que compensa la reserva
//  4. débito INVOICE en la cuenta corriente si la venta tiene cliente
//
// No exige que la venta esté CONFIRMED: emitir desde DRAFT se permite y queda registrado como warning.
func (uc *DocumentUseCase) IssueDocument(ctx context.Context, saleID string) (*dto.DocumentResponse, error) {
	var (
		doc  *entity.Document
		sale *entity.Sale
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		sale, err = repos.Sales.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
		}
		existing, err := repos.Documents.GetBySaleID(ctx, saleID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("la venta %s ya tiene el documento %s: %w", saleID, existing.ID, domain.ErrConflict)
		}
		if sale.Status != entity.SaleStatusConfirmed {
			uc.log.Warn().
				Str("sale_id", saleID).
				Str("status", sale.Status).
				Msg("emitiendo documento para venta no confirmada")
		}

		now := time.Now()
		doc = &entity.Document{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			Status:    entity.DocumentStatusIssued,
			Total:     sale.Total(),
			CreatedAt: now,
		}
		if err := repos.Documents.Create(ctx, doc); err != nil {
			return err
		}
		if err := uc.stock.CommitInTx(ctx, repos.Movements, sale, doc.ID, now); err != nil {
			return fmt.Errorf("descontar stock: %w", err)
		}
		if sale.Status == entity.SaleStatusConfirmed {
			if err := uc.stock.ReleaseInTx(ctx, repos.Movements, sale, now); err != nil {
				return fmt.Errorf("liberar reserva: %w", err)
			}
		}
		if sale.CustomerID != "" {
			if err := uc.ledger.PostInvoiceInTx(ctx, repos.Ledger, sale.CustomerID, doc.Total, doc.ID, now); err != nil {
				return fmt.Errorf("registrar en cuenta corriente: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if uc.invalidator != nil {
		if err := uc.invalidator.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de analítica")
		}
	}
	return toDocumentResponse(doc, sale), nil
}

// GetDocument obtiene un comprobante con las líneas de su venta.
func (uc *DocumentUseCase) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("documento %s: %w", id, domain.ErrNotFound)
	}
	var sale *entity.Sale
	if doc.SaleID != "" {
		if sale, err = uc.saleRepo.GetByID(ctx, doc.SaleID); err != nil {
			return nil, err
		}
	}
	return toDocumentResponse(doc, sale), nil
}

// ListDocuments lista comprobantes, más recientes primero.
func (uc *DocumentUseCase) ListDocuments(ctx context.Context, limit, offset int) (*dto.DocumentListResponse, error) {
	list, err := uc.docRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d, nil))
	}
	return &dto.DocumentListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset, Count: len(items)}}, nil
}

func toDocumentResponse(d *entity.Document, sale *entity.Sale) *dto.DocumentResponse {
	out := &dto.DocumentResponse{
		ID:        d.ID,
		SaleID:    d.SaleID,
		Status:    d.Status,
		Total:     d.Total,
		CreatedAt: d.CreatedAt,
	}
	if sale == nil {
		return out
	}
	out.CustomerID = sale.CustomerID
	out.Items = make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return out
}
