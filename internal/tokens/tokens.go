package tokens

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Muskan6505/Local-helpHub/internal/models"
)

const refreshKeyPrefix = "refresh:"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrUnknownRefresh = errors.New("unknown or expired refresh token")
)

// AccessClaims is the payload of a signed access token.
type AccessClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Manager issues short-lived access tokens and keeps long-lived refresh
// tokens in redis so a logout actually revokes them.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	rdb        *redis.Client
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration, rdb *redis.Client) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		rdb:        rdb,
	}
}

func (m *Manager) IssueAccess(u *models.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) ParseAccess(tokenStr string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueRefresh stores an opaque refresh token for the user with a TTL.
func (m *Manager) IssueRefresh(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	key := refreshKeyPrefix + token
	if err := m.rdb.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), m.refreshTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

// Rotate redeems a refresh token and replaces it with a new one. The old
// token is deleted first so it can only be redeemed once.
func (m *Manager) Rotate(ctx context.Context, token string) (uint, string, error) {
	key := refreshKeyPrefix + token

	val, err := m.rdb.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return 0, "", ErrUnknownRefresh
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to redeem refresh token: %w", err)
	}

	userID64, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, "", ErrUnknownRefresh
	}
	userID := uint(userID64)

	next, err := m.IssueRefresh(ctx, userID)
	if err != nil {
		return 0, "", err
	}
	return userID, next, nil
}

// Revoke removes a refresh token, if present.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.rdb.Del(ctx, refreshKeyPrefix+token).Err()
}
