package affiliates

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/dto"
	"github.com/GlebRadaev/affiliate-ledger/internal/handlers/httperr"
	"github.com/GlebRadaev/affiliate-ledger/pkg/auth"
	"github.com/GlebRadaev/affiliate-ledger/pkg/utils"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=affiliates.go -destination=mock_affiliates.go -package=affiliates
type AffiliateService interface {
	Enroll(ctx context.Context, userID int64, promoCode string) (*domain.Affiliate, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Affiliate, error)
}

type LedgerService interface {
	GetProgress(ctx context.Context, affiliateID int64) (*domain.AffiliateProgress, error)
	ListCommissions(ctx context.Context, affiliateID int64) ([]domain.Commission, error)
}

type WithdrawalService interface {
	Create(ctx context.Context, affiliateID int64, amount decimal.Decimal, paymentMethod, paymentDetails string) (*domain.Withdrawal, error)
	List(ctx context.Context, affiliateID int64) ([]domain.Withdrawal, error)
}

type AffiliateHandler struct {
	affiliateService  AffiliateService
	ledgerService     LedgerService
	withdrawalService WithdrawalService
}

func New(affiliateService AffiliateService, ledgerService LedgerService, withdrawalService WithdrawalService) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateService:  affiliateService,
		ledgerService:     ledgerService,
		withdrawalService: withdrawalService,
	}
}

// Enroll godoc
//
//	@Summary		Join the affiliate program
//	@Description	Opt the authenticated user into the affiliate program under the given promo code. Repeating the call returns the existing affiliate.
//	@Tags			Affiliate
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.EnrollRequestDTO		true	"Promo code to register"
//	@Success		200		{object}	dto.AffiliateResponseDTO	"Affiliate profile"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		403		{object}	utils.Response				"Program disabled"
//	@Failure		422		{object}	utils.Response				"Promo code malformed or taken"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/affiliates [post]
func (h *AffiliateHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req dto.EnrollRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	affiliate, err := h.affiliateService.Enroll(r.Context(), userID, req.PromoCode)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAffiliateResponse(affiliate))
}

// Me godoc
//
//	@Summary		Affiliate dashboard
//	@Description	Profile, ledger counters and level progress of the authenticated affiliate.
//	@Tags			Affiliate
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.DashboardResponseDTO	"Dashboard"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		404	{object}	utils.Response				"User is not an affiliate"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/affiliates/me [get]
func (h *AffiliateHandler) Me(w http.ResponseWriter, r *http.Request) {
	affiliate, ok := h.current(w, r)
	if !ok {
		return
	}
	progress, err := h.ledgerService.GetProgress(r.Context(), affiliate.ID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.DashboardResponseDTO{
		Affiliate: dto.NewAffiliateResponse(affiliate),
		Progress:  dto.NewProgressResponse(progress),
	})
}

// Progress godoc
//
//	@Summary		Level progress
//	@Description	Current level, delivered orders and the threshold of the next level.
//	@Tags			Affiliate
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ProgressResponseDTO	"Progress"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		404	{object}	utils.Response			"User is not an affiliate"
//	@Failure		503	{object}	utils.Response			"Invalid program configuration"
//	@Router			/api/affiliates/me/progress [get]
func (h *AffiliateHandler) Progress(w http.ResponseWriter, r *http.Request) {
	affiliate, ok := h.current(w, r)
	if !ok {
		return
	}
	progress, err := h.ledgerService.GetProgress(r.Context(), affiliate.ID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewProgressResponse(progress))
}

// Commissions godoc
//
//	@Summary		Commission history
//	@Description	Commissions of the authenticated affiliate, newest first.
//	@Tags			Affiliate
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.CommissionResponseDTO	"Commissions"
//	@Success		204	{object}	utils.Response				"No commissions yet"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		404	{object}	utils.Response				"User is not an affiliate"
//	@Router			/api/affiliates/me/commissions [get]
func (h *AffiliateHandler) Commissions(w http.ResponseWriter, r *http.Request) {
	affiliate, ok := h.current(w, r)
	if !ok {
		return
	}
	commissions, err := h.ledgerService.ListCommissions(r.Context(), affiliate.ID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if len(commissions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Commissions not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCommissionsResponse(commissions))
}

// CreateWithdrawal godoc
//
//	@Summary		Request a payout
//	@Description	Reserve the amount from the available balance and create a pending withdrawal.
//	@Tags			Affiliate
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WithdrawalRequestDTO	true	"Payout request"
//	@Success		201		{object}	dto.WithdrawalResponseDTO	"Pending withdrawal"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		403		{object}	utils.Response				"Affiliate inactive or program disabled"
//	@Failure		422		{object}	utils.Response				"Amount below minimum or above balance"
//	@Failure		503		{object}	utils.Response				"Ledger busy, retry later"
//	@Router			/api/affiliates/me/withdrawals [post]
func (h *AffiliateHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawalRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	affiliate, ok := h.current(w, r)
	if !ok {
		return
	}
	withdrawal, err := h.withdrawalService.Create(r.Context(), affiliate.ID, req.Amount, req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewWithdrawalResponse(withdrawal))
}

// Withdrawals godoc
//
//	@Summary		Payout history
//	@Description	Withdrawals of the authenticated affiliate, newest first.
//	@Tags			Affiliate
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WithdrawalResponseDTO	"Withdrawals"
//	@Success		204	{object}	utils.Response				"No withdrawals yet"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		404	{object}	utils.Response				"User is not an affiliate"
//	@Router			/api/affiliates/me/withdrawals [get]
func (h *AffiliateHandler) Withdrawals(w http.ResponseWriter, r *http.Request) {
	affiliate, ok := h.current(w, r)
	if !ok {
		return
	}
	withdrawals, err := h.withdrawalService.List(r.Context(), affiliate.ID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	if len(withdrawals) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Withdrawals not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalsResponse(withdrawals))
}

func (h *AffiliateHandler) current(w http.ResponseWriter, r *http.Request) (*domain.Affiliate, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	affiliate, err := h.affiliateService.GetByUserID(r.Context(), userID)
	if err != nil {
		httperr.Respond(w, err)
		return nil, false
	}
	return affiliate, true
}
