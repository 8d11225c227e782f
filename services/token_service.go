package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	roleBattleOwner = "battle_owner"
	roleAdmin       = "admin"
	tokenIssuer     = "movie-battle"
)

type TokenService interface {
	IssueBattleToken(battleID string) (string, time.Time, error)
	// ParseBattleToken returns the battle id the token was issued for.
	ParseBattleToken(token string) (string, error)
	IssueAdminToken() (string, time.Time, error)
	ParseAdminToken(token string) error
}

type tokenClaims struct {
	BattleID string `json:"battle_id,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type tokenService struct {
	secret    []byte
	battleTTL time.Duration
	adminTTL  time.Duration
	now       func() time.Time
}

func NewTokenService(secret string, battleTTL time.Duration) TokenService {
	return &tokenService{
		secret:    []byte(secret),
		battleTTL: battleTTL,
		adminTTL:  12 * time.Hour,
		now:       time.Now,
	}
}

func (s *tokenService) IssueBattleToken(battleID string) (string, time.Time, error) {
	return s.issue(tokenClaims{BattleID: battleID, Role: roleBattleOwner}, s.battleTTL)
}

func (s *tokenService) ParseBattleToken(token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Role != roleBattleOwner || claims.BattleID == "" {
		return "", ErrBattleTokenInvalid
	}
	return claims.BattleID, nil
}

func (s *tokenService) IssueAdminToken() (string, time.Time, error) {
	return s.issue(tokenClaims{Role: roleAdmin}, s.adminTTL)
}

func (s *tokenService) ParseAdminToken(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return ErrAuthenticationFailed
	}
	if claims.Role != roleAdmin {
		return ErrForbiddenOperation
	}
	return nil
}

func (s *tokenService) issue(claims tokenClaims, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *tokenService) parse(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrBattleTokenInvalid
	}
	if claims.Issuer != tokenIssuer {
		return nil, ErrBattleTokenInvalid
	}
	return claims, nil
}
