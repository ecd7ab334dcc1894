package dto

import (
	"time"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type CommissionResponseDTO struct {
	ID            int64           `json:"id" example:"301"`
	AffiliateID   int64           `json:"affiliate_id" example:"12"`
	OrderID       string          `json:"order_id" example:"79927398713"`
	Level         int             `json:"level" example:"1"`
	OrderSubtotal decimal.Decimal `json:"order_commissionable_total" swaggertype:"string" example:"1000"`
	Percentage    decimal.Decimal `json:"commission_percentage" swaggertype:"string" example:"5"`
	Amount        decimal.Decimal `json:"commission_amount" swaggertype:"string" example:"50"`
	Status        string          `json:"status" example:"pending"`
	CreatedAt     time.Time       `json:"created_at" example:"2024-06-01T09:00:00Z"`
}

func NewCommissionResponse(c *domain.Commission) CommissionResponseDTO {
	return CommissionResponseDTO{
		ID:            c.ID,
		AffiliateID:   c.AffiliateID,
		OrderID:       c.OrderID,
		Level:         c.Level,
		OrderSubtotal: c.OrderCommissionableTotal,
		Percentage:    c.CommissionPercentage,
		Amount:        c.CommissionAmount,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
}

func NewCommissionsResponse(commissions []domain.Commission) []CommissionResponseDTO {
	response := make([]CommissionResponseDTO, len(commissions))
	for i := range commissions {
		response[i] = NewCommissionResponse(&commissions[i])
	}
	return response
}
