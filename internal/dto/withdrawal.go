package dto

import (
	"time"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type WithdrawalRequestDTO struct {
	Amount         decimal.Decimal `json:"amount" swaggertype:"string" example:"150.00"`
	PaymentMethod  string          `json:"payment_method" example:"bank_transfer"`
	PaymentDetails string          `json:"payment_details" example:"IBAN DE89 3704 0044 0532 0130 00"`
}

type ProcessWithdrawalRequestDTO struct {
	Notes string `json:"notes,omitempty" example:"payment details do not match the account holder"`
}

type WithdrawalResponseDTO struct {
	ID             int64           `json:"id" example:"41"`
	AffiliateID    int64           `json:"affiliate_id" example:"12"`
	Amount         decimal.Decimal `json:"amount" swaggertype:"string" example:"150.00"`
	Status         string          `json:"status" example:"pending"`
	PaymentMethod  string          `json:"payment_method" example:"bank_transfer"`
	PaymentDetails string          `json:"payment_details,omitempty" example:"IBAN DE89 3704 0044 0532 0130 00"`
	RequestedAt    time.Time       `json:"requested_at" example:"2024-06-01T09:00:00Z"`
	ProcessedAt    *time.Time      `json:"processed_at,omitempty" example:"2024-06-02T10:00:00Z"`
	ProcessedBy    *string         `json:"processed_by,omitempty" example:"7"`
	Notes          string          `json:"notes,omitempty"`
}

func NewWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponseDTO {
	return WithdrawalResponseDTO{
		ID:             w.ID,
		AffiliateID:    w.AffiliateID,
		Amount:         w.Amount,
		Status:         w.Status,
		PaymentMethod:  w.PaymentMethod,
		PaymentDetails: w.PaymentDetails,
		RequestedAt:    w.RequestedAt,
		ProcessedAt:    w.ProcessedAt,
		ProcessedBy:    w.ProcessedBy,
		Notes:          w.Notes,
	}
}

func NewWithdrawalsResponse(withdrawals []domain.Withdrawal) []WithdrawalResponseDTO {
	response := make([]WithdrawalResponseDTO, len(withdrawals))
	for i := range withdrawals {
		response[i] = NewWithdrawalResponse(&withdrawals[i])
	}
	return response
}
