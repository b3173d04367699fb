package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/attendease/attendease-backend-go/internal/domain/auth"
	"github.com/attendease/attendease-backend-go/internal/domain/employee"
	"github.com/attendease/attendease-backend-go/internal/fixtures"
	"github.com/attendease/attendease-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	exists, err := a.EmployeeRepository.ExistsByIDAndRole(ctx, loginReq.EmployeeID, loginReq.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check account: %w", err)
	}
	if !exists {
		return auth.TokenResponse{}, auth.ErrAccountNotFound
	}

	employeeData, err := a.EmployeeRepository.GetByIDAndRole(ctx, loginReq.EmployeeID, loginReq.Role)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrAccountNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	// Cek password
	if employeeData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*employeeData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	sessionUser := auth.NewSessionUser(employeeData)
	accessToken, expiresAt, err := a.Service.GenerateAccessToken(sessionUser)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
		User:                 sessionUser,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context) error {
	_, tokenID, expiresAt, err := jwt.SessionFromContext(ctx)
	if err != nil {
		// nothing to revoke
		return nil
	}
	if tokenID == "" {
		return nil
	}
	a.Service.RevokeToken(tokenID, expiresAt)
	return nil
}

// CurrentUser implements auth.AuthService.
func (a *AuthServiceImpl) CurrentUser(ctx context.Context) (auth.SessionUser, error) {
	if user, ok := auth.SessionUserFromContext(ctx); ok {
		return user, nil
	}

	claimed, tokenID, _, err := jwt.SessionFromContext(ctx)
	if err != nil {
		return auth.SessionUser{}, auth.ErrNoSession
	}
	if a.Service.IsTokenRevoked(tokenID) {
		return auth.SessionUser{}, auth.ErrNoSession
	}

	// a token outlives removals and role changes, so the directory decides
	current, err := a.EmployeeRepository.GetByIDAndRole(ctx, claimed.ID, claimed.Role)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.SessionUser{}, auth.ErrNoSession
		}
		return auth.SessionUser{}, fmt.Errorf("failed to load session employee: %w", err)
	}
	return auth.NewSessionUser(current), nil
}

// Bootstrap implements auth.AuthService.
func (a *AuthServiceImpl) Bootstrap(ctx context.Context) (bool, error) {
	admin := fixtures.GetDefaultAdmin()

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash default password: %w", err)
	}
	hashed := string(hash)

	created, err := a.EmployeeRepository.CreateIfEmpty(ctx, employee.Employee{
		ID:              admin.ID,
		Name:            admin.Name,
		Role:            admin.Role,
		PasswordHash:    &hashed,
		Email:           admin.Email,
		Phone:           admin.Phone,
		IsPhoneVerified: fixtures.DefaultAdminPhoneVerified(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed default HR admin: %w", err)
	}

	if created {
		slog.Info("Seeded default HR admin", "employee_id", admin.ID)
	}
	return created, nil
}
