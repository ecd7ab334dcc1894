// Package memrepo keeps every repository in process memory. Transactions
// are serialised and rolled back by restoring a snapshot, which makes it
// suitable for tests that exercise whole service flows.
package memrepo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
	"github.com/GlebRadaev/affiliate-ledger/internal/pg"
)

type txKey struct{}

type state struct {
	affiliates  map[int64]domain.Affiliate
	commissions map[int64]domain.Commission
	withdrawals map[int64]domain.Withdrawal
	settings    *domain.AffiliateSettings
	nextID      int64
}

func (s *state) clone() *state {
	c := &state{
		affiliates:  make(map[int64]domain.Affiliate, len(s.affiliates)),
		commissions: make(map[int64]domain.Commission, len(s.commissions)),
		withdrawals: make(map[int64]domain.Withdrawal, len(s.withdrawals)),
		nextID:      s.nextID,
	}
	for k, v := range s.affiliates {
		c.affiliates[k] = v
	}
	for k, v := range s.commissions {
		c.commissions[k] = v
	}
	for k, v := range s.withdrawals {
		c.withdrawals[k] = v
	}
	if s.settings != nil {
		settings := *s.settings
		c.settings = &settings
	}
	return c
}

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state

	conflicts int

	Affiliates  *Affiliates
	Commissions *Commissions
	Withdrawals *Withdrawals
	Settings    *Settings
}

var _ pg.TXManager = (*Store)(nil)

func New() *Store {
	s := &Store{st: &state{
		affiliates:  map[int64]domain.Affiliate{},
		commissions: map[int64]domain.Commission{},
		withdrawals: map[int64]domain.Withdrawal{},
	}}
	s.Affiliates = &Affiliates{s: s}
	s.Commissions = &Commissions{s: s}
	s.Withdrawals = &Withdrawals{s: s}
	s.Settings = &Settings{s: s}
	return s
}

// Begin runs fn with exclusive access to the store. When fn fails every
// change it made is discarded.
func (s *Store) Begin(ctx context.Context, fn pg.TransactionalFn) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// InjectConflicts makes the next n counter updates fail as if another
// writer had bumped the affiliate version first.
func (s *Store) InjectConflicts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = n
}

func (s *Store) nextID() int64 {
	s.st.nextID++
	return s.st.nextID
}

type Affiliates struct{ s *Store }

func (r *Affiliates) GetByID(_ context.Context, id int64) (*domain.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.affiliates[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *Affiliates) find(match func(domain.Affiliate) bool) *domain.Affiliate {
	ids := make([]int64, 0, len(r.s.st.affiliates))
	for id := range r.s.st.affiliates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if a := r.s.st.affiliates[id]; match(a) {
			return &a
		}
	}
	return nil
}

func (r *Affiliates) GetByUserID(_ context.Context, userID int64) (*domain.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(func(a domain.Affiliate) bool { return a.UserID == userID }), nil
}

func (r *Affiliates) GetByPromoCode(_ context.Context, promoCode string) (*domain.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(func(a domain.Affiliate) bool { return strings.EqualFold(a.PromoCode, promoCode) }), nil
}

func (r *Affiliates) GetByCouponID(_ context.Context, couponID string) (*domain.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.find(func(a domain.Affiliate) bool { return a.CouponID != nil && *a.CouponID == couponID }), nil
}

func (r *Affiliates) Create(_ context.Context, affiliate *domain.Affiliate) (*domain.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.find(func(a domain.Affiliate) bool {
		return a.UserID == affiliate.UserID || strings.EqualFold(a.PromoCode, affiliate.PromoCode)
	}) != nil {
		return nil, fmt.Errorf("%w: promo code %q is already taken", domain.ErrValidation, affiliate.PromoCode)
	}
	a := *affiliate
	a.ID = r.s.nextID()
	a.Version = 1
	a.UpdatedAt = a.CreatedAt
	r.s.st.affiliates[a.ID] = a
	return &a, nil
}

// Put stores affiliate as is. Tests use it to seed balances.
func (r *Affiliates) Put(affiliate domain.Affiliate) domain.Affiliate {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if affiliate.ID == 0 {
		affiliate.ID = r.s.nextID()
	} else if affiliate.ID > r.s.st.nextID {
		r.s.st.nextID = affiliate.ID
	}
	if affiliate.Version == 0 {
		affiliate.Version = 1
	}
	r.s.st.affiliates[affiliate.ID] = affiliate
	return affiliate
}

func (r *Affiliates) UpdateCounters(_ context.Context, affiliate *domain.Affiliate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.st.affiliates[affiliate.ID]
	if r.s.conflicts > 0 {
		r.s.conflicts--
		return fmt.Errorf("%w: affiliate %d", domain.ErrConcurrencyConflict, affiliate.ID)
	}
	if !ok || stored.Version != affiliate.Version {
		return fmt.Errorf("%w: affiliate %d version %d", domain.ErrConcurrencyConflict, affiliate.ID, affiliate.Version)
	}
	stored.Level = affiliate.Level
	stored.TotalOrders = affiliate.TotalOrders
	stored.DeliveredOrders = affiliate.DeliveredOrders
	stored.TotalEarnings = affiliate.TotalEarnings
	stored.TotalWithdrawn = affiliate.TotalWithdrawn
	stored.AvailableBalance = affiliate.AvailableBalance
	stored.UpdatedAt = affiliate.UpdatedAt
	stored.Version++
	r.s.st.affiliates[affiliate.ID] = stored
	affiliate.Version = stored.Version
	return nil
}

func (r *Affiliates) UpdateStatus(_ context.Context, id int64, status string, now time.Time) (*domain.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.affiliates[id]
	if !ok {
		return nil, nil
	}
	a.Status = status
	a.UpdatedAt = now
	r.s.st.affiliates[id] = a
	return &a, nil
}

func (r *Affiliates) UpdateCoupon(_ context.Context, id int64, couponID *string, now time.Time) (*domain.Affiliate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.st.affiliates[id]
	if !ok {
		return nil, nil
	}
	if couponID != nil {
		for _, other := range r.s.st.affiliates {
			if other.ID != id && other.CouponID != nil && *other.CouponID == *couponID {
				return nil, fmt.Errorf("%w: coupon %s is assigned to another affiliate", domain.ErrValidation, *couponID)
			}
		}
	}
	a.CouponID = couponID
	a.UpdatedAt = now
	r.s.st.affiliates[id] = a
	return &a, nil
}

type Commissions struct{ s *Store }

func (r *Commissions) Insert(_ context.Context, commission *domain.Commission) (*domain.Commission, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.commissions {
		if c.AffiliateID == commission.AffiliateID && c.OrderID == commission.OrderID {
			return &c, false, nil
		}
	}
	c := *commission
	c.ID = r.s.nextID()
	c.UpdatedAt = c.CreatedAt
	r.s.st.commissions[c.ID] = c
	return &c, true, nil
}

func (r *Commissions) GetByID(_ context.Context, id int64) (*domain.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.st.commissions[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *Commissions) UpdateStatus(_ context.Context, commission *domain.Commission, from string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.st.commissions[commission.ID]
	if !ok || stored.Status != from {
		return fmt.Errorf("%w: commission %d is no longer %s", domain.ErrConcurrencyConflict, commission.ID, from)
	}
	stored.Status = commission.Status
	stored.UpdatedAt = commission.UpdatedAt
	r.s.st.commissions[commission.ID] = stored
	return nil
}

func (r *Commissions) list(match func(domain.Commission) bool) []domain.Commission {
	var out []domain.Commission
	for _, c := range r.s.st.commissions {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Commissions) ListByAffiliate(_ context.Context, affiliateID int64) ([]domain.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.list(func(c domain.Commission) bool { return c.AffiliateID == affiliateID })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *Commissions) ListByOrder(_ context.Context, orderID string) ([]domain.Commission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(c domain.Commission) bool { return c.OrderID == orderID }), nil
}

type Withdrawals struct{ s *Store }

func (r *Withdrawals) Create(_ context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	withdrawal.ID = r.s.nextID()
	r.s.st.withdrawals[withdrawal.ID] = *withdrawal
	return withdrawal, nil
}

func (r *Withdrawals) GetByID(_ context.Context, id int64) (*domain.Withdrawal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.st.withdrawals[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *Withdrawals) UpdateStatus(_ context.Context, withdrawal *domain.Withdrawal, from string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.st.withdrawals[withdrawal.ID]
	if !ok || stored.Status != from {
		return fmt.Errorf("%w: withdrawal %d is no longer %s", domain.ErrConcurrencyConflict, withdrawal.ID, from)
	}
	stored.Status = withdrawal.Status
	stored.ProcessedAt = withdrawal.ProcessedAt
	stored.ProcessedBy = withdrawal.ProcessedBy
	stored.Notes = withdrawal.Notes
	r.s.st.withdrawals[withdrawal.ID] = stored
	return nil
}

func (r *Withdrawals) ListByAffiliate(_ context.Context, affiliateID int64) ([]domain.Withdrawal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Withdrawal
	for _, w := range r.s.st.withdrawals {
		if w.AffiliateID == affiliateID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type Settings struct{ s *Store }

func (r *Settings) Get(_ context.Context) (*domain.AffiliateSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.st.settings == nil {
		return nil, nil
	}
	settings := *r.s.st.settings
	return &settings, nil
}

func (r *Settings) Save(_ context.Context, settings *domain.AffiliateSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *settings
	r.s.st.settings = &stored
	return nil
}
