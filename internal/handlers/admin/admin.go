package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/dto"
	"github.com/GlebRadaev/affiliate-ledger/internal/handlers/httperr"
	"github.com/GlebRadaev/affiliate-ledger/pkg/auth"
	"github.com/GlebRadaev/affiliate-ledger/pkg/utils"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=admin.go -destination=mock_admin.go -package=admin
type AffiliateService interface {
	Get(ctx context.Context, id int64) (*domain.Affiliate, error)
	SetStatus(ctx context.Context, id int64, status string) (*domain.Affiliate, error)
}

type CouponService interface {
	Assign(ctx context.Context, affiliateID int64, couponID *string) (*domain.Affiliate, error)
}

type LedgerService interface {
	GetProgress(ctx context.Context, affiliateID int64) (*domain.AffiliateProgress, error)
	ApproveCommission(ctx context.Context, commissionID int64) (*domain.Commission, error)
	CancelCommission(ctx context.Context, commissionID int64) (*domain.Commission, error)
	Audit(ctx context.Context, affiliateID int64) (*domain.LedgerReport, error)
}

type WithdrawalService interface {
	List(ctx context.Context, affiliateID int64) ([]domain.Withdrawal, error)
	Approve(ctx context.Context, id int64, processedBy string) (*domain.Withdrawal, error)
	Reject(ctx context.Context, id int64, processedBy, notes string) (*domain.Withdrawal, error)
	Complete(ctx context.Context, id int64, processedBy string) (*domain.Withdrawal, error)
}

type SettingsService interface {
	Stored(ctx context.Context) (*domain.AffiliateSettings, error)
	Update(ctx context.Context, settings *domain.AffiliateSettings) (*domain.AffiliateSettings, error)
}

type AdminHandler struct {
	affiliateService  AffiliateService
	couponService     CouponService
	ledgerService     LedgerService
	withdrawalService WithdrawalService
	settingsService   SettingsService
}

func New(
	affiliateService AffiliateService,
	couponService CouponService,
	ledgerService LedgerService,
	withdrawalService WithdrawalService,
	settingsService SettingsService,
) *AdminHandler {
	return &AdminHandler{
		affiliateService:  affiliateService,
		couponService:     couponService,
		ledgerService:     ledgerService,
		withdrawalService: withdrawalService,
		settingsService:   settingsService,
	}
}

// GetAffiliate godoc
//
//	@Summary	Get affiliate
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int							true	"Affiliate ID"
//	@Success	200	{object}	dto.AffiliateResponseDTO	"Affiliate"
//	@Failure	403	{object}	utils.Response				"Admin role required"
//	@Failure	404	{object}	utils.Response				"Affiliate not found"
//	@Router		/api/admin/affiliates/{id} [get]
func (h *AdminHandler) GetAffiliate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	affiliate, err := h.affiliateService.Get(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAffiliateResponse(affiliate))
}

// GetProgress godoc
//
//	@Summary	Get affiliate level progress
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int						true	"Affiliate ID"
//	@Success	200	{object}	dto.ProgressResponseDTO	"Progress"
//	@Failure	404	{object}	utils.Response			"Affiliate not found"
//	@Router		/api/admin/affiliates/{id}/progress [get]
func (h *AdminHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	progress, err := h.ledgerService.GetProgress(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewProgressResponse(progress))
}

// SetStatus godoc
//
//	@Summary		Change affiliate status
//	@Description	Activate, deactivate or suspend an affiliate. Ledger counters are untouched.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Affiliate ID"
//	@Param			request	body		dto.StatusRequestDTO		true	"New status"
//	@Success		200		{object}	dto.AffiliateResponseDTO	"Affiliate"
//	@Failure		404		{object}	utils.Response				"Affiliate not found"
//	@Failure		422		{object}	utils.Response				"Unknown status"
//	@Router			/api/admin/affiliates/{id}/status [put]
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.StatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	affiliate, err := h.affiliateService.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAffiliateResponse(affiliate))
}

// AssignCoupon godoc
//
//	@Summary		Link a coupon to an affiliate
//	@Description	Empty, "null", "none" or "0" clears the link. Any other value must exist in the coupon catalog.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Affiliate ID"
//	@Param			request	body		dto.CouponRequestDTO		true	"Coupon"
//	@Success		200		{object}	dto.AffiliateResponseDTO	"Affiliate"
//	@Failure		404		{object}	utils.Response				"Affiliate or coupon not found"
//	@Failure		422		{object}	utils.Response				"Coupon linked to another affiliate"
//	@Router			/api/admin/affiliates/{id}/coupon [put]
func (h *AdminHandler) AssignCoupon(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.CouponRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	affiliate, err := h.couponService.Assign(r.Context(), id, req.CouponID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewAffiliateResponse(affiliate))
}

// Withdrawals godoc
//
//	@Summary	List affiliate withdrawals
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int							true	"Affiliate ID"
//	@Success	200	{array}		dto.WithdrawalResponseDTO	"Withdrawals, newest first"
//	@Success	204	{object}	utils.Response				"No withdrawals"
//	@Router		/api/admin/affiliates/{id}/withdrawals [get]
func (h *AdminHandler) Withdrawals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	withdrawals, err := h.withdrawalService.List(r.Context(), id)
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

// Ledger godoc
//
//	@Summary		Audit affiliate ledger
//	@Description	Recompute earnings, withdrawn total and balance from stored commissions and withdrawals and report any drift.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int							true	"Affiliate ID"
//	@Success		200	{object}	dto.LedgerReportResponseDTO	"Audit report"
//	@Failure		404	{object}	utils.Response				"Affiliate not found"
//	@Router			/api/admin/affiliates/{id}/ledger [get]
func (h *AdminHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	report, err := h.ledgerService.Audit(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewLedgerReportResponse(report))
}

// ApproveWithdrawal godoc
//
//	@Summary	Approve a pending withdrawal
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int							true	"Withdrawal ID"
//	@Success	200	{object}	dto.WithdrawalResponseDTO	"Approved withdrawal"
//	@Failure	404	{object}	utils.Response				"Withdrawal not found"
//	@Failure	409	{object}	utils.Response				"Withdrawal is not pending"
//	@Router		/api/admin/withdrawals/{id}/approve [post]
func (h *AdminHandler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.processWithdrawal(w, r, func(ctx context.Context, id int64, by string, _ string) (*domain.Withdrawal, error) {
		return h.withdrawalService.Approve(ctx, id, by)
	})
}

// RejectWithdrawal godoc
//
//	@Summary		Reject a withdrawal
//	@Description	Reject a pending or approved withdrawal and release the reserved amount back to the balance.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Withdrawal ID"
//	@Param			request	body		dto.ProcessWithdrawalRequestDTO	false	"Rejection notes"
//	@Success		200		{object}	dto.WithdrawalResponseDTO		"Rejected withdrawal"
//	@Failure		404		{object}	utils.Response					"Withdrawal not found"
//	@Failure		409		{object}	utils.Response					"Withdrawal already settled"
//	@Router			/api/admin/withdrawals/{id}/reject [post]
func (h *AdminHandler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.processWithdrawal(w, r, h.withdrawalService.Reject)
}

// CompleteWithdrawal godoc
//
//	@Summary	Mark an approved withdrawal as paid out
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int							true	"Withdrawal ID"
//	@Success	200	{object}	dto.WithdrawalResponseDTO	"Completed withdrawal"
//	@Failure	404	{object}	utils.Response				"Withdrawal not found"
//	@Failure	409	{object}	utils.Response				"Withdrawal is not approved"
//	@Router		/api/admin/withdrawals/{id}/complete [post]
func (h *AdminHandler) CompleteWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.processWithdrawal(w, r, func(ctx context.Context, id int64, by string, _ string) (*domain.Withdrawal, error) {
		return h.withdrawalService.Complete(ctx, id, by)
	})
}

func (h *AdminHandler) processWithdrawal(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id int64, processedBy, notes string) (*domain.Withdrawal, error),
) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req dto.ProcessWithdrawalRequestDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	withdrawal, err := apply(r.Context(), id, processedBy(r), req.Notes)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewWithdrawalResponse(withdrawal))
}

// ApproveCommission godoc
//
//	@Summary		Approve a commission
//	@Description	Credit a pending commission to the affiliate. Already approved or cancelled commissions are returned unchanged.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int							true	"Commission ID"
//	@Success		200	{object}	dto.CommissionResponseDTO	"Commission"
//	@Failure		404	{object}	utils.Response				"Commission not found"
//	@Failure		503	{object}	utils.Response				"Ledger busy, retry later"
//	@Router			/api/admin/commissions/{id}/approve [post]
func (h *AdminHandler) ApproveCommission(w http.ResponseWriter, r *http.Request) {
	h.processCommission(w, r, h.ledgerService.ApproveCommission)
}

// CancelCommission godoc
//
//	@Summary		Cancel a commission
//	@Description	Cancel a commission, reversing it from the balance when it was already approved.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int							true	"Commission ID"
//	@Success		200	{object}	dto.CommissionResponseDTO	"Commission"
//	@Failure		404	{object}	utils.Response				"Commission not found"
//	@Failure		409	{object}	utils.Response				"Balance too low to reverse"
//	@Router			/api/admin/commissions/{id}/cancel [post]
func (h *AdminHandler) CancelCommission(w http.ResponseWriter, r *http.Request) {
	h.processCommission(w, r, h.ledgerService.CancelCommission)
}

func (h *AdminHandler) processCommission(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, id int64) (*domain.Commission, error),
) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	commission, err := apply(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCommissionResponse(commission))
}

// GetSettings godoc
//
//	@Summary		Get program settings
//	@Description	Stored settings are returned even when invalid; invalid_reason then says why the program is off.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.SettingsDTO	"Current settings"
//	@Router			/api/admin/settings [get]
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Stored(r.Context())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	resp := dto.NewSettingsDTO(settings)
	if err := settings.Validate(); err != nil {
		resp.InvalidReason = err.Error()
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// UpdateSettings godoc
//
//	@Summary		Replace program settings
//	@Description	Validate and store the whole program configuration.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SettingsDTO	true	"Settings"
//	@Success		200		{object}	dto.SettingsDTO	"Stored settings"
//	@Failure		422		{object}	utils.Response	"Invalid settings"
//	@Router			/api/admin/settings [put]
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	settings, err := h.settingsService.Update(r.Context(), req.ToDomain())
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewSettingsDTO(settings))
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := httperr.PathID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid id")
	}
	return id, ok
}

func processedBy(r *http.Request) string {
	userID, _ := auth.UserID(r.Context())
	return strconv.FormatInt(userID, 10)
}
