package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gatewatch/vpms-backend/internal/auth"
	"github.com/gatewatch/vpms-backend/internal/config"
	"github.com/gatewatch/vpms-backend/internal/dto"
	"github.com/gatewatch/vpms-backend/internal/models"
	"github.com/gatewatch/vpms-backend/internal/workflow"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates an account with the requested role and returns a signed
// token alongside the stored user.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validateRegister(req); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		Role:        workflow.Role(req.Role),
		ContactInfo: strings.TrimSpace(req.ContactInfo),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.respondWithToken("User registered successfully", &user)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.respondWithToken("Login successful", &user)
}

// Residents lists every user with the Resident role, for the guard's
// record-creation form.
func (s *AuthService) Residents() ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.Where("role = ?", workflow.RoleResident).Order("name ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, mapUser(&users[i]))
	}
	return out, nil
}

func (s *AuthService) respondWithToken(message string, user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, []byte(s.cfg.JWTSecret), s.cfg.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.AuthResponse{
		Message: message,
		Token:   token,
		User:    mapUser(user),
	}, nil
}

func mapUser(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		ContactInfo: u.ContactInfo,
	}
}

func validateRegister(req *dto.RegisterRequest) error {
	var fe fieldErrors
	if len(req.Name) < 2 || len(req.Name) > 100 {
		fe.add("name", "Name must be 2-100 characters")
	}
	if !validEmail(req.Email) {
		fe.add("email", "Valid email is required")
	}
	if !strongPassword(req.Password) {
		fe.add("password", "Password must be 8+ chars with uppercase, lowercase, and number")
	}
	if !workflow.ValidRole(workflow.Role(req.Role)) {
		fe.add("role", "Invalid role")
	}
	if len(req.ContactInfo) > 20 {
		fe.add("contact_info", "Contact info max 20 characters")
	}
	return fe.err()
}
