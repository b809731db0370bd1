package pgsql

import (
	"github.com/SscSPs/site_ledger_app/internal/core/domain"
	"github.com/SscSPs/site_ledger_app/internal/models"
)

func toDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

func toDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:   m.AccountID,
		Kind:        domain.AccountKind(m.Kind),
		OwnerID:     m.OwnerID,
		SiteID:      m.SiteID,
		Balance:     m.Balance,
		Sequence:    m.Sequence,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}

func toDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		AccountID:    m.AccountID,
		Sequence:     m.Sequence,
		Amount:       m.Amount,
		BalanceAfter: m.BalanceAfter,
		Type:         domain.EntryType(m.Type),
		Description:  m.Description,
		SiteID:       m.SiteID,
		RelatedID:    m.RelatedID,
		ActorID:      m.ActorID,
		EntryDate:    m.EntryDate,
		CreatedAt:    m.CreatedAt,
	}
}

func toDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:        m.UserID,
		Name:          m.Name,
		Email:         m.Email,
		Role:          domain.Role(m.Role),
		IsSalaried:    m.IsSalaried,
		MonthlySalary: m.MonthlySalary,
		AuditFields:   toDomainAuditFields(m.AuditFields),
		DeletedAt:     m.DeletedAt,
	}
}

func toDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Type:           domain.NotificationType(m.Type),
		RelatedID:      m.RelatedID,
		Message:        m.Message,
		Status:         domain.NotificationStatus(m.Status),
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainSalaryAssignment(m models.SalaryAssignment) domain.SalaryAssignment {
	return domain.SalaryAssignment{
		AssignmentID: m.AssignmentID,
		UserID:       m.UserID,
		Month:        m.Month,
		Amount:       m.Amount,
		Status:       domain.EventStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}
