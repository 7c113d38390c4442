package mapping

import (
	"github.com/tillpoint/tillpoint_backend/internal/core/domain"
	"github.com/tillpoint/tillpoint_backend/internal/models"
)

// ToModelCashPeriod converts a domain CashPeriod to a model CashPeriod.
func ToModelCashPeriod(d domain.CashPeriod) models.CashPeriod {
	return models.CashPeriod{
		PeriodID:        d.PeriodID,
		OwnerKind:       string(d.Owner.Kind),
		TenantID:        d.Owner.TenantID,
		OwnerID:         d.Owner.OwnerID,
		OpeningBalance:  d.OpeningBalance,
		ClosingBalance:  d.ClosingBalance,
		ReportedClosing: d.ReportedClosing,
		Difference:      d.Difference,
		Status:          models.CashPeriodStatus(d.Status),
		OpenedAt:        d.OpenedAt,
		ClosedAt:        d.ClosedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashPeriod converts a model CashPeriod to a domain CashPeriod.
func ToDomainCashPeriod(m models.CashPeriod) domain.CashPeriod {
	return domain.CashPeriod{
		PeriodID: m.PeriodID,
		Owner: domain.CashPeriodOwner{
			Kind:     domain.CashPeriodKind(m.OwnerKind),
			TenantID: m.TenantID,
			OwnerID:  m.OwnerID,
		},
		OpeningBalance:  m.OpeningBalance,
		ClosingBalance:  m.ClosingBalance,
		ReportedClosing: m.ReportedClosing,
		Difference:      m.Difference,
		Status:          domain.CashPeriodStatus(m.Status),
		OpenedAt:        m.OpenedAt,
		ClosedAt:        m.ClosedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCashMovement converts a domain CashMovement to a model CashMovement.
func ToModelCashMovement(d domain.CashMovement) models.CashMovement {
	var method *string
	if d.Method != nil {
		s := string(*d.Method)
		method = &s
	}
	return models.CashMovement{
		MovementID:  d.MovementID,
		PeriodID:    d.PeriodID,
		Type:        string(d.Type),
		Method:      method,
		Amount:      d.Amount,
		ReferenceID: d.ReferenceID,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainCashMovement converts a model CashMovement to a domain CashMovement.
func ToDomainCashMovement(m models.CashMovement) domain.CashMovement {
	var method *domain.PaymentMethod
	if m.Method != nil {
		pm := domain.PaymentMethod(*m.Method)
		method = &pm
	}
	return domain.CashMovement{
		MovementID:  m.MovementID,
		PeriodID:    m.PeriodID,
		Type:        domain.MovementType(m.Type),
		Method:      method,
		Amount:      m.Amount,
		ReferenceID: m.ReferenceID,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToDomainCashMovementSlice converts a slice of model movements to domain movements.
func ToDomainCashMovementSlice(ms []models.CashMovement) []domain.CashMovement {
	ds := make([]domain.CashMovement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashMovement(m)
	}
	return ds
}
