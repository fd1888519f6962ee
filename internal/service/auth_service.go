package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/surveyportal/surveyportal/config"
	"github.com/surveyportal/surveyportal/internal/apperror"
	"github.com/surveyportal/surveyportal/internal/auth"
	"github.com/surveyportal/surveyportal/internal/dto"
	"github.com/surveyportal/surveyportal/internal/model"
	"github.com/surveyportal/surveyportal/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 10 * time.Hour

type AuthService interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	Profile(userID uint) (*dto.ProfileResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: cfg.JWTSecret}
}

func (s *authService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmployeeNo(req.EmployeeNo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrUnauthorized
	}
	if err != nil {
		log.Error().Err(err).Str("employee_no", req.EmployeeNo).Msg("Login: user lookup failed")
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperror.ErrUnauthorized
	}

	roles, err := s.userRepo.FindRoleNames(user.ID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("Login: role lookup failed")
		return nil, fmt.Errorf("looking up roles: %w", err)
	}

	token, err := s.signToken(user, roles)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("Login: token signing failed")
		return nil, fmt.Errorf("signing token: %w", err)
	}

	log.Info().Uint("user_id", user.ID).Strs("roles", roles).Msg("User logged in")
	return &dto.LoginResponse{
		Token: token,
		User:  profileOf(user, roles),
	}, nil
}

func (s *authService) Profile(userID uint) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user %d: %w", userID, err)
	}

	roles, err := s.userRepo.FindRoleNames(user.ID)
	if err != nil {
		return nil, fmt.Errorf("looking up roles: %w", err)
	}

	profile := profileOf(user, roles)
	return &profile, nil
}

func (s *authService) signToken(user *model.User, roles []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

func profileOf(user *model.User, roles []string) dto.ProfileResponse {
	caps := auth.Authorize(roles)
	if roles == nil {
		roles = []string{}
	}
	return dto.ProfileResponse{
		ID:         user.ID,
		EmployeeNo: user.EmployeeNo,
		Name:       user.Name,
		Title:      user.Title,
		Roles:      roles,
		Capabilities: dto.CapabilitiesResponse{
			CanManageSurveys: caps.CanManageSurveys,
			CanViewReports:   caps.CanViewReports,
			PrivilegedLister: caps.PrivilegedLister,
		},
	}
}
