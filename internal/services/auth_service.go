package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/netsentinel/internal/database"
	"github.com/thereayou/netsentinel/internal/models"
	"github.com/thereayou/netsentinel/pkg/auth"
)

const DefaultRegisterTokenTTL = 100 * time.Hour

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type LoginResult struct {
	Token    string
	Username string
}

type VerifyResult struct {
	Valid    bool
	Username string
}

type AuthService struct {
	users       UserStore
	jwt         *auth.JWTManager
	registerTTL time.Duration
	bcryptCost  int

	// dummyHash сравнивается с паролем, когда пользователь не найден
	dummyHash []byte
}

// NewAuthService. Логин использует срок жизни токена из jwtMgr, регистрация registerTTL.
func NewAuthService(users UserStore, jwtMgr *auth.JWTManager, registerTTL time.Duration, bcryptCost int) (*AuthService, error) {
	if registerTTL <= 0 {
		registerTTL = DefaultRegisterTokenTTL
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("init dummy hash: %w", err)
	}

	return &AuthService{
		users:       users,
		jwt:         jwtMgr,
		registerTTL: registerTTL,
		bcryptCost:  bcryptCost,
		dummyHash:   dummy,
	}, nil
}

// Register создаёт пользователя и сразу выдаёт токен
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.ToLower(username)
	email = strings.ToLower(email)

	if !emailPattern.MatchString(email) {
		return "", ErrInvalidEmail
	}
	if username == "" || password == "" {
		return "", ErrMissingFields
	}

	exists, err := s.users.UserExists(ctx, email, username)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrServer, err)
	}
	if exists {
		return "", ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %w", ErrServer, err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.SaveUser(ctx, user); err != nil {
		// параллельная регистрация с теми же данными проигрывает на уникальном индексе
		if errors.Is(err, database.ErrDuplicate) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("%w: %w", ErrServer, err)
	}

	token, err := s.jwt.GenerateWithTTL(user.ID.String(), s.registerTTL)
	if err != nil {
		return "", fmt.Errorf("%w: generate token: %w", ErrServer, err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User registered")
	return token, nil
}

// Login принимает email или username
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.ToLower(identifier)

	user, err := s.users.FindUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %w", ErrServer, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: generate token: %w", ErrServer, err)
	}

	return &LoginResult{Token: token, Username: user.Username}, nil
}

func (s *AuthService) VerifyToken(ctx context.Context, token string) (*VerifyResult, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwt.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrServer, err)
	}

	return &VerifyResult{Valid: true, Username: user.Username}, nil
}

// UserProfile возвращает публичные данные пользователя по username
func (s *AuthService) UserProfile(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindUserByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrServer, err)
	}
	return user, nil
}
