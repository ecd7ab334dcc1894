package dto

import "time"

type AttributionRequestDTO struct {
	PromoCode string `json:"promo_code" example:"SPRING24"`
	Token     string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type AttributionResponseDTO struct {
	Token       string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	PromoCode   string    `json:"promo_code" example:"SPRING24"`
	AffiliateID int64     `json:"affiliate_id" example:"12"`
	ExpiresAt   time.Time `json:"expires_at" example:"2024-07-01T09:00:00Z"`
}

type ValidateTokenRequestDTO struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
