package mapping

import (
	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
	"github.com/nusantara-construction/ledger-backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:            d.AccountID,
		Code:                 d.Code,
		Name:                 d.Name,
		AccountType:          models.AccountType(d.AccountType),
		SubType:              d.SubType,
		NormalBalance:        string(d.NormalBalance),
		Level:                d.Level,
		ParentAccountID:      d.ParentAccountID,
		IsActive:             d.IsActive,
		IsControlAccount:     d.IsControlAccount,
		ConstructionSpecific: d.ConstructionSpecific,
		ProjectCostCenter:    d.ProjectCostCenter,
		CurrentBalance:       d.CurrentBalance,
		SubsidiaryID:         d.SubsidiaryID,
		Description:          d.Description,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:            m.AccountID,
		Code:                 m.Code,
		Name:                 m.Name,
		AccountType:          domain.AccountType(m.AccountType),
		SubType:              m.SubType,
		NormalBalance:        domain.NormalBalance(m.NormalBalance),
		Level:                m.Level,
		ParentAccountID:      m.ParentAccountID,
		IsActive:             m.IsActive,
		IsControlAccount:     m.IsControlAccount,
		ConstructionSpecific: m.ConstructionSpecific,
		ProjectCostCenter:    m.ProjectCostCenter,
		CurrentBalance:       m.CurrentBalance,
		SubsidiaryID:         m.SubsidiaryID,
		Description:          m.Description,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
