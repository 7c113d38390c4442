package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/core/services"
	"github.com/tillpoint/tillpoint_backend/internal/dto"
)

func TestImportTransfers_ProcessesInArrivalOrder(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actorID := uuid.NewString()

	transferRepo := new(MockTransferRepository)
	matching := new(MockMatchingService)
	reconcile := new(MockReconcileService)
	svc := services.NewTransferService(transferRepo, matching, reconcile)

	var savedOrder []decimal.Decimal
	transferRepo.On("SaveTransfer", ctx, mock.AnythingOfType("domain.IncomingTransfer")).
		Run(func(args mock.Arguments) {
			tr := args.Get(1).(domain.IncomingTransfer)
			savedOrder = append(savedOrder, tr.Amount)
		}).Return(nil).Twice()
	matching.On("Match", ctx, tenantID, mock.AnythingOfType("string")).Return([]domain.MatchCandidate{}, nil).Twice()
	reconcile.On("Reconcile", ctx, tenantID, mock.AnythingOfType("string"), mock.Anything, actorID).
		Return(&domain.ReconcileResult{Outcome: domain.OutcomeNoMatch}, nil).Twice()

	batch := []dto.ImportTransferRequest{
		{Amount: decimal.RequireFromString("10.00")},
		{Amount: decimal.RequireFromString("20.00")},
	}

	results, err := svc.ImportTransfers(ctx, tenantID, batch, domain.SourceCSV, actorID)

	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Len(t, savedOrder, 2)
	assert.True(t, savedOrder[0].Equal(decimal.RequireFromString("10.00")))
	assert.True(t, savedOrder[1].Equal(decimal.RequireFromString("20.00")))
	transferRepo.AssertExpectations(t)
}

func TestImportTransfers_BadRowDoesNotAbortBatch(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	actorID := uuid.NewString()

	transferRepo := new(MockTransferRepository)
	matching := new(MockMatchingService)
	reconcile := new(MockReconcileService)
	svc := services.NewTransferService(transferRepo, matching, reconcile)

	transferRepo.On("SaveTransfer", ctx, mock.AnythingOfType("domain.IncomingTransfer")).Return(nil).Once()
	matching.On("Match", ctx, tenantID, mock.AnythingOfType("string")).Return([]domain.MatchCandidate{}, nil).Once()
	reconcile.On("Reconcile", ctx, tenantID, mock.AnythingOfType("string"), mock.Anything, actorID).
		Return(&domain.ReconcileResult{Outcome: domain.OutcomeNoMatch}, nil).Once()

	batch := []dto.ImportTransferRequest{
		{Amount: decimal.Zero}, // invalid
		{Amount: decimal.RequireFromString("20.00")},
	}

	results, err := svc.ImportTransfers(ctx, tenantID, batch, domain.SourceAPI, actorID)

	require.NoError(t, err)
	require.Len(t, results, 2)
	require.NotNil(t, results[0].Error)
	assert.Contains(t, *results[0].Error, "positive")
	assert.Nil(t, results[1].Error)
	transferRepo.AssertExpectations(t)
}

func TestGetCandidates_DelegatesToMatching(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.NewString()
	transferID := uuid.NewString()

	transferRepo := new(MockTransferRepository)
	matching := new(MockMatchingService)
	reconcile := new(MockReconcileService)
	svc := services.NewTransferService(transferRepo, matching, reconcile)

	expected := []domain.MatchCandidate{{
		PaymentID:  uuid.NewString(),
		TransferID: transferID,
		Confidence: decimal.RequireFromString("0.75"),
		Result:     domain.MatchedSuggested,
	}}
	matching.On("Match", ctx, tenantID, transferID).Return(expected, nil).Once()

	candidates, err := svc.GetCandidates(ctx, tenantID, transferID)

	require.NoError(t, err)
	assert.Equal(t, expected, candidates)
	matching.AssertExpectations(t)
}
