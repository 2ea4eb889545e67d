package server

import (
	"context"
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"

	"github.com/gravitas-games/hexland/internal/config"
	"github.com/gravitas-games/hexland/pkg/models"
)

// JWTValidator checks the ECDSA bearer tokens minted by the account
// service players log in against. The service publishes its signing
// key over HTTP; the validator fetches it at startup, refreshes it in
// the background, and consults a shared Redis blacklist for revoked
// accounts.
type JWTValidator struct {
	config    *config.Config
	publicKey *ecdsa.PublicKey
	keyMu     sync.RWMutex
	redis     *redis.Client
	ctx       context.Context
}

// Claims are the token claims this server acts on. The account service
// issues a wider set; anything not listed here is ignored.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Activated int64  `json:"activated"` // >0 active, 0 pending, -1 banned
	jwt.RegisteredClaims
}

// NewJWTValidator fetches the signing key and starts the refresh loop.
func NewJWTValidator(cfg *config.Config, redisClient *redis.Client) (*JWTValidator, error) {
	v := &JWTValidator{
		config: cfg,
		redis:  redisClient,
		ctx:    context.Background(),
	}

	if err := v.RefreshPublicKey(); err != nil {
		return nil, fmt.Errorf("failed to fetch public key: %w", err)
	}
	go v.periodicKeyRefresh()

	log.Println("JWT validator initialized")
	return v, nil
}

// RefreshPublicKey downloads and parses the current signing key.
func (v *JWTValidator) RefreshPublicKey() error {
	log.Printf("Fetching public key from %s", v.config.JWT.PublicKeyURL)

	resp, err := http.Get(v.config.JWT.PublicKeyURL)
	if err != nil {
		return fmt.Errorf("fetch public key: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("public key endpoint returned status %d", resp.StatusCode)
	}

	keyData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read public key: %w", err)
	}

	block, _ := pem.Decode(keyData)
	if block == nil {
		return fmt.Errorf("public key is not PEM")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}
	ecdsaKey, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return fmt.Errorf("public key is not ECDSA")
	}

	v.keyMu.Lock()
	v.publicKey = ecdsaKey
	v.keyMu.Unlock()

	log.Println("Public key refreshed")
	return nil
}

func (v *JWTValidator) periodicKeyRefresh() {
	interval := time.Duration(v.config.JWT.PublicKeyRefreshHrs) * time.Hour
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if err := v.RefreshPublicKey(); err != nil {
			log.Printf("Failed to refresh public key: %v", err)
		}
	}
}

// ValidateToken verifies a token and builds the player it identifies.
// The player's civilization id is their account id: one civilization
// per account.
func (v *JWTValidator) ValidateToken(tokenString string) (*models.Player, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		v.keyMu.RLock()
		defer v.keyMu.RUnlock()
		return v.publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Issuer != v.config.JWT.Issuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", v.config.JWT.Issuer, claims.Issuer)
	}
	if claims.Activated == 0 {
		return nil, fmt.Errorf("user not activated")
	}
	if claims.Activated == -1 {
		return nil, fmt.Errorf("user is banned")
	}

	userID := strconv.FormatInt(claims.UserID, 10)
	blacklistKey := v.config.Redis.BlacklistPrefix + userID
	blacklisted, err := v.redis.Exists(v.ctx, blacklistKey).Result()
	if err != nil {
		// Don't fail authentication when Redis is down.
		log.Printf("Warning: failed to check blacklist: %v", err)
	} else if blacklisted > 0 {
		return nil, fmt.Errorf("token is revoked")
	}

	return &models.Player{
		ID:        userID,
		Username:  claims.Username,
		Activated: claims.Activated,
		CivID:     userID,
	}, nil
}

// extractTokenFromHeader pulls the bearer token off a WebSocket upgrade
// request. Browsers cannot set an Authorization header on an upgrade,
// so the token may ride in the subprotocol list as
// "access_token, <token>".
func extractTokenFromHeader(r *http.Request) string {
	if protos := r.Header.Get("Sec-WebSocket-Protocol"); protos != "" {
		parts := strings.Split(protos, ",")
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == "access_token" {
			return strings.TrimSpace(parts[1])
		}
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
