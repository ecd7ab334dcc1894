package attributionservice

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/GlebRadaev/affiliate-ledger/internal/domain"
)

const tokenIssuer = "affiliate-ledger"

// attributionClaims never fails validation while parsing; expiry is
// checked by Service.ValidateToken.
type attributionClaims struct {
	ID          string `json:"jti"`
	Issuer      string `json:"iss"`
	PromoCode   string `json:"promo"`
	AffiliateID int64  `json:"aff"`
	IssuedAt    int64  `json:"iat"`
	ExpiresAt   int64  `json:"exp"`
}

func (attributionClaims) Valid() error { return nil }

type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Encode signs token into its compact cookie form.
func (c *TokenCodec) Encode(token domain.AttributionToken) (string, error) {
	claims := attributionClaims{
		ID:          token.ID,
		Issuer:      tokenIssuer,
		PromoCode:   token.PromoCode,
		AffiliateID: token.AffiliateID,
		IssuedAt:    token.IssuedAt.Unix(),
		ExpiresAt:   token.ExpiresAt.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the signature of raw and returns the token it carries.
// Expiry is not checked here.
func (c *TokenCodec) Decode(raw string) (domain.AttributionToken, error) {
	parsed, err := jwt.ParseWithClaims(raw, &attributionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.AttributionToken{}, fmt.Errorf("%w: invalid attribution token", domain.ErrValidation)
	}
	claims, ok := parsed.Claims.(*attributionClaims)
	if !ok || claims.Issuer != tokenIssuer || claims.AffiliateID == 0 || claims.PromoCode == "" {
		return domain.AttributionToken{}, fmt.Errorf("%w: invalid attribution token claims", domain.ErrValidation)
	}
	return domain.AttributionToken{
		ID:          claims.ID,
		PromoCode:   claims.PromoCode,
		AffiliateID: claims.AffiliateID,
		IssuedAt:    time.Unix(claims.IssuedAt, 0).UTC(),
		ExpiresAt:   time.Unix(claims.ExpiresAt, 0).UTC(),
	}, nil
}
