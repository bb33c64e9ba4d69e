package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"airfoil-lab-service/internal/domain"
	"airfoil-lab-service/internal/ports"
)

const defaultTokenExpiryMinutes = 30

type AuthConfig struct {
	Secret        string
	ExpireMinutes int
}

type RegisterRequest struct {
	Username   string
	Email      string
	Password   string
	SkillLevel string
}

type LoginRequest struct {
	Username string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// TokenClaims is the identity carried by a verified access token.
type TokenClaims struct {
	UserID   int64
	Username string
}

// Register creates a learner account with a bcrypt-hashed password.
func Register(ctx context.Context, req RegisterRequest, repo ports.UserRepository) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 || len(username) > 50 {
		return nil, requestErrorf("username must be 3-50 characters")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, requestErrorf("email is invalid")
	}

	if len(req.Password) < 8 {
		return nil, requestErrorf("password must be at least 8 characters")
	}

	skill := req.SkillLevel
	if skill == "" {
		skill = domain.SkillBeginner
	}
	if !domain.ValidSkillLevel(skill) {
		return nil, requestErrorf("skill_level must be beginner, intermediate, or advanced")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user, err := repo.CreateUser(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		SkillLevel:   skill,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues an HS256 access token. The same
// failure message covers unknown usernames and wrong passwords.
func Login(ctx context.Context, req LoginRequest, repo ports.UserRepository, cfg AuthConfig) (LoginResult, error) {
	user, err := repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return LoginResult{}, &AuthError{Msg: "Incorrect username or password"}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return LoginResult{}, &AuthError{Msg: "Incorrect username or password"}
	}

	minutes := cfg.ExpireMinutes
	if minutes <= 0 {
		minutes = defaultTokenExpiryMinutes
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(minutes) * time.Minute)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return LoginResult{}, fmt.Errorf("login: sign token: %w", err)
	}

	if err := repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("touch last login for user %d failed: %v", user.ID, err)
	}
	user.LastLogin = &now

	return LoginResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

// ValidateToken verifies an access token and returns the identity it
// carries. Any parse, signature, or expiry problem comes back as an
// AuthError.
func ValidateToken(tokenString, secret string) (TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return TokenClaims{}, &AuthError{Msg: "invalid or expired token"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, &AuthError{Msg: "invalid or expired token"}
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return TokenClaims{}, &AuthError{Msg: "invalid or expired token"}
	}
	username, _ := claims["username"].(string)

	return TokenClaims{UserID: id, Username: username}, nil
}
