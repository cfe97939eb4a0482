package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fagame/backend/internal/logger"
	"github.com/fagame/backend/internal/repos"
	"github.com/fagame/backend/internal/requestdata"
	"github.com/fagame/backend/internal/types"
)

var ErrInvalidLogin = errors.New("invalid email or password")

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) (string, string, error)
	LoginUser(ctx context.Context, email, password string) (string, string, error)
	RefreshUser(ctx context.Context) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  []byte(jwtSecretKey),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) (string, string, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)

	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return "", "", fmt.Errorf("a valid email is required")
	}
	if len(user.Password) < 8 {
		return "", "", fmt.Errorf("password must be at least 8 characters")
	}
	if user.FirstName == "" {
		return "", "", fmt.Errorf("first name is required")
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", "", fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		accessToken, refreshToken, err = as.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return "", "", err
	}

	as.log.Info("user registered", "user_id", user.ID)
	return accessToken, refreshToken, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidLogin
		}
		return "", "", fmt.Errorf("look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", ErrInvalidLogin
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// One active token row per user; a new login replaces the old one.
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("clear old tokens: %w", err)
		}
		accessToken, refreshToken, err = as.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return "", "", err
	}

	as.log.Info("user logged in", "user_id", user.ID)
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context) (string, string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return "", "", fmt.Errorf("no refresh token on request")
	}

	stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, rd.RefreshToken)
	if err != nil {
		return "", "", fmt.Errorf("unknown refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return "", "", fmt.Errorf("refresh token expired")
	}

	user, err := as.userRepo.GetByID(ctx, nil, stored.UserID)
	if err != nil {
		return "", "", fmt.Errorf("look up user: %w", err)
	}

	var accessToken, refreshToken string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteByID(ctx, tx, stored.ID); err != nil {
			return fmt.Errorf("rotate token: %w", err)
		}
		accessToken, refreshToken, err = as.issueTokens(ctx, tx, user)
		return err
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("no authenticated user on request")
	}
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, rd.UserID); err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}
	as.log.Info("user logged out", "user_id", rd.UserID)
	return nil
}

// SetContextFromToken verifies a bearer token and attaches the caller's
// identity to the context. The token must both verify and still exist in the
// token table, so logout revokes it immediately.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.jwtSecretKey, nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}

	if _, err := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString); err != nil {
		return ctx, fmt.Errorf("token revoked")
	}

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (string, string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecretKey)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.NewString()
	tokenRow := &types.UserToken{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{tokenRow}); err != nil {
		return "", "", fmt.Errorf("store token: %w", err)
	}
	return accessToken, refreshToken, nil
}
