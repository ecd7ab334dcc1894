package attribution

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/dto"
	"github.com/GlebRadaev/affiliate-ledger/internal/handlers/httperr"
	"github.com/GlebRadaev/affiliate-ledger/pkg/utils"
	"go.uber.org/zap"
)

//go:generate mockgen -source=attribution.go -destination=mock_attribution.go -package=attribution
type Service interface {
	Attribute(ctx context.Context, current *domain.AttributionToken, promoCode string) (*domain.AttributionToken, error)
	Verify(raw string) (*domain.AttributionToken, error)
	Encode(token domain.AttributionToken) (string, error)
	Decode(raw string) (domain.AttributionToken, error)
}

type AttributionHandler struct {
	attributionService Service
}

func New(attributionService Service) *AttributionHandler {
	return &AttributionHandler{
		attributionService: attributionService,
	}
}

// Attribute godoc
//
//	@Summary		Attribute a visit to an affiliate
//	@Description	Present a promo code together with the visitor's current token. A valid code replaces the token, otherwise a still valid token is kept.
//	@Tags			Attribution
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.AttributionRequestDTO	true	"Promo code and current token"
//	@Success		200		{object}	dto.AttributionResponseDTO	"Token to store with the visitor"
//	@Success		204		{object}	utils.Response				"No attribution"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/attribution [post]
func (h *AttributionHandler) Attribute(w http.ResponseWriter, r *http.Request) {
	var req dto.AttributionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var current *domain.AttributionToken
	if raw := strings.TrimSpace(req.Token); raw != "" {
		token, err := h.attributionService.Decode(raw)
		if err != nil {
			zap.L().Debug("ignoring undecodable attribution token", zap.Error(err))
		} else {
			current = &token
		}
	}

	token, err := h.attributionService.Attribute(r.Context(), current, req.PromoCode)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if token == nil {
		utils.RespondWithError(w, http.StatusNoContent, "no attribution")
		return
	}
	h.respondWithToken(w, *token)
}

// Validate godoc
//
//	@Summary		Validate an attribution token
//	@Description	Check that a token was issued by this service and has not expired.
//	@Tags			Attribution
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.ValidateTokenRequestDTO	true	"Token to check"
//	@Success		200		{object}	dto.AttributionResponseDTO	"Token is valid"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		422		{object}	utils.Response				"Token is tampered or expired"
//	@Router			/api/attribution/validate [post]
func (h *AttributionHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req dto.ValidateTokenRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.attributionService.Verify(strings.TrimSpace(req.Token))
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	h.respondWithToken(w, *token)
}

func (h *AttributionHandler) respondWithToken(w http.ResponseWriter, token domain.AttributionToken) {
	raw, err := h.attributionService.Encode(token)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AttributionResponseDTO{
		Token:       raw,
		PromoCode:   token.PromoCode,
		AffiliateID: token.AffiliateID,
		ExpiresAt:   token.ExpiresAt,
	})
}
