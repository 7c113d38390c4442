package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tillpoint/tillpoint_backend/internal/apperrors"
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	portsrepo "github.com/tillpoint/tillpoint_backend/internal/core/ports/repositories"
	portssvc "github.com/tillpoint/tillpoint_backend/internal/core/ports/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

type saleService struct {
	BaseService
	saleRepo portsrepo.SaleRepositoryFacade
	ledger   portssvc.LedgerSvcFacade
}

// NewSaleService creates a new sale service.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, ledger portssvc.LedgerSvcFacade) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo: saleRepo,
		ledger:   ledger,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func (s *saleService) CreateSale(ctx context.Context, tenantID string, req dto.CreateSaleRequest, creatorID string) (*domain.Sale, error) {
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("sale total must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	sale := domain.Sale{
		SaleID:        uuid.NewString(),
		TenantID:      tenantID,
		SellerID:      req.SellerID,
		TotalAmount:   req.TotalAmount,
		PaidAmount:    decimal.Zero,
		BalanceAmount: req.TotalAmount,
		Status:        domain.SaleConfirmed,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.saleRepo.SaveSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}

	s.LogInfo(ctx, "Sale registered",
		slog.String("sale_id", sale.SaleID),
		slog.String("total", sale.TotalAmount.String()))
	return &sale, nil
}

func (s *saleService) GetSale(ctx context.Context, tenantID, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, tenantID, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return sale, nil
}

func (s *saleService) GetSaleBalance(ctx context.Context, tenantID, saleID string) (*domain.Balance, error) {
	return s.ledger.ComputeSaleBalance(ctx, tenantID, saleID)
}

func (s *saleService) ListSales(ctx context.Context, tenantID string, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	sales, nextToken, err := s.saleRepo.ListSales(ctx, tenantID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	resp := &dto.ListSalesResponse{
		Sales:     make([]dto.SaleResponse, len(sales)),
		NextToken: nextToken,
	}
	for i := range sales {
		resp.Sales[i] = dto.ToSaleResponse(&sales[i])
	}
	return resp, nil
}
