package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/projectgate-backend/internal/data/repos"
	"github.com/yungbote/projectgate-backend/internal/domain"
	"github.com/yungbote/projectgate-backend/internal/pkg/apperr"
	"github.com/yungbote/projectgate-backend/internal/pkg/ctxutil"
	"github.com/yungbote/projectgate-backend/internal/platform/logger"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// SetContextFromToken validates a bearer token and returns a context
	// carrying the caller's identity.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
}

type authService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	jwtSecret string
	accessTTL time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecret string, accessTTL time.Duration) AuthService {
	return &authService{
		db:        db,
		log:       log.With("service", "AuthService"),
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		accessTTL: accessTTL,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.New(apperr.KindValidation, "invalid_email", "a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, apperr.New(apperr.KindValidation, "weak_password", "password must be at least 8 characters")
	}
	role, ok := domain.ParseRole(strings.TrimSpace(input.Role))
	if !ok {
		role = domain.RoleStudent
	}

	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apperr.New(apperr.KindConflict, "email_taken", "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		FullName: strings.TrimSpace(input.FullName),
		Role:     role,
	}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, cerr := s.userRepo.Create(ctx, tx, []*domain.User{user})
		return cerr
	}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID, "role", string(role))
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := s.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return "", nil, apperr.New(apperr.KindAuthorization, "invalid_credentials", "invalid email or password")
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.New(apperr.KindAuthorization, "invalid_credentials", "invalid email or password")
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"uid":   user.ID.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ctx, apperr.Wrap(apperr.KindAuthorization, "invalid_token", "invalid or expired token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, apperr.New(apperr.KindAuthorization, "invalid_token", "malformed token claims")
	}
	uid, _ := claims["uid"].(string)
	userID, err := uuid.Parse(uid)
	if err != nil {
		return ctx, apperr.New(apperr.KindAuthorization, "invalid_token", "malformed subject claim")
	}
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role, ok := domain.ParseRole(roleStr)
	if !ok {
		return ctx, apperr.New(apperr.KindAuthorization, "invalid_token", "unknown role claim")
	}

	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID: userID,
		Email:  email,
		Role:   string(role),
	}), nil
}

func (s *authService) CurrentUser(ctx context.Context) (*domain.User, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apperr.New(apperr.KindAuthorization, "invalid_token", "no authenticated identity")
	}
	users, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apperr.New(apperr.KindNotFound, apperr.CodeNotFound, "user not found")
	}
	return users[0], nil
}
