package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTTL = 72 * time.Hour

// Session is what a valid session token resolves to. Admin sessions carry
// no user ID when the admin logs in through the back-office credentials.
type Session struct {
	UserID uuid.UUID
	Admin  bool
}

// TokenManager signs and validates session tokens stored in the session cookie
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// GenerateUserToken creates a session token for a signed-in customer
func (m *TokenManager) GenerateUserToken(userID uuid.UUID) (string, error) {
	return m.sign(jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(sessionTTL).Unix(),
		"iat": time.Now().Unix(),
	})
}

// GenerateAdminToken creates a session token for the back-office
func (m *TokenManager) GenerateAdminToken() (string, error) {
	return m.sign(jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(sessionTTL).Unix(),
		"iat":   time.Now().Unix(),
	})
}

func (m *TokenManager) sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses a session token and returns the session it represents
func (m *TokenManager) ValidateToken(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	session := &Session{}
	if admin, ok := claims["admin"].(bool); ok && admin {
		session.Admin = true
	}
	if sub, ok := claims["sub"].(string); ok {
		userID, err := uuid.Parse(sub)
		if err != nil {
			return nil, errors.New("invalid subject claim")
		}
		session.UserID = userID
	} else if !session.Admin {
		return nil, errors.New("invalid subject claim")
	}
	return session, nil
}
