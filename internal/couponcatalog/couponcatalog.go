// Package couponcatalog asks the coupon service whether a coupon exists.
package couponcatalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/config"
	"github.com/GlebRadaev/affiliate-ledger/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var (
	ErrNotConfigured    = errors.New("coupon service address is not configured")
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

type Client struct {
	url           string
	client        clients.HTTPClientI
	retryInterval time.Duration
}

func New(cfg *config.Config, client clients.HTTPClientI) *Client {
	return &Client{
		url:           cfg.CouponAddress,
		client:        client,
		retryInterval: retryInterval,
	}
}

// Exists reports whether the coupon service knows couponID.
func (c *Client) Exists(ctx context.Context, couponID string) (bool, error) {
	if c.url == "" {
		return false, ErrNotConfigured
	}
	endpoint := c.url + "/api/coupons/" + url.PathEscape(couponID)

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var (
			statusCode  int
			respHeaders http.Header
		)
		statusCode, _, respHeaders, err = c.client.Get(ctx, endpoint, nil)
		if err != nil {
			zap.L().Warn("Coupon service request failed", zap.String("couponID", couponID), zap.Int("attempt", attempt), zap.Error(err))
			if attempt < maxRetries {
				if err := c.wait(ctx, c.retryInterval*time.Duration(attempt)); err != nil {
					return false, err
				}
				continue
			}
			return false, fmt.Errorf("failed to check coupon %s after %d retries: %w", couponID, maxRetries, err)
		}

		switch statusCode {
		case http.StatusOK:
			return true, nil
		case http.StatusNotFound:
			return false, nil
		case http.StatusTooManyRequests:
			err = fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
			if attempt < maxRetries {
				if err := c.wait(ctx, c.retryAfter(respHeaders, attempt)); err != nil {
					return false, err
				}
				continue
			}
		default:
			zap.L().Error("Unexpected status code", zap.Int("status", statusCode), zap.String("couponID", couponID))
			return false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
		}
	}
	return false, fmt.Errorf("failed to check coupon %s after %d retries: %w", couponID, maxRetries, err)
}

func (c *Client) retryAfter(respHeaders http.Header, attempt int) time.Duration {
	retryAfter := c.retryInterval * time.Duration(attempt)
	if header := respHeaders.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn("Rate limit detected, retrying", zap.Int("attempt", attempt), zap.Duration("retryAfter", retryAfter))
	return retryAfter
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
