package auth

import (
	"context"
	"errors"
	"strings"

	"tourbook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtService interface {
	GenerateToken(userID int64, role string) (string, error)
}

// Service contains all business logic for authentication.
type Service struct {
	users UserRepositoryInterface
	jwt   jwtService
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

func NewService(users UserRepositoryInterface, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

func (s *Service) RegisterTraveler(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	return s.register(ctx, &domain.User{
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
		Role:  domain.RoleTraveler,
	}, req.Password)
}

func (s *Service) RegisterAgency(ctx context.Context, req RegisterAgencyRequest) (*domain.User, error) {
	return s.register(ctx, &domain.User{
		Email:       req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		Role:        domain.RoleAgency,
		CompanyName: req.CompanyName,
	}, req.Password)
}

func (s *Service) register(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.Email = email
	user.PasswordHash = string(hash)

	if err := s.users.Create(ctx, user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// isUniqueViolation catches the race between ExistsByEmail and Create when
// two registrations for the same address land concurrently. Postgres reports
// SQLSTATE 23505; sqlite reports a constraint message.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
