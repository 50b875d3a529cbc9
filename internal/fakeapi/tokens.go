package fakeapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-ukci-client/users"
	"github.com/pkg/errors"
)

// tokenIssuer signs and verifies HS256 bearer tokens.
type tokenIssuer struct {
	secret  []byte
	expiry  time.Duration
	nowFunc func() time.Time
}

type tokenClaims struct {
	UserID   string
	TenantID string
}

func newTokenIssuer(secret string, expiry time.Duration, now func() time.Time) *tokenIssuer {
	return &tokenIssuer{
		secret:  []byte(secret),
		expiry:  expiry,
		nowFunc: now,
	}
}

func (t *tokenIssuer) Issue(user *users.User) (string, error) {
	now := t.nowFunc()
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"tenant": user.TenantID,
		"jti":    uuid.New().String(),
		"iat":    now.Unix(),
		"exp":    now.Add(t.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token with HMAC")
	}
	return signed, nil
}

func (t *tokenIssuer) verificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return t.secret, nil
}

func (t *tokenIssuer) Verify(raw string) (tokenClaims, error) {
	token, err := jwt.Parse(raw, t.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return tokenClaims{}, errors.Wrap(err, "tokenIssuer.Verify Parse")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return tokenClaims{}, errors.New("error extracting claims from token")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return tokenClaims{}, errors.New("token has no subject")
	}
	tenantID, _ := claims["tenant"].(string)
	return tokenClaims{UserID: sub, TenantID: tenantID}, nil
}
