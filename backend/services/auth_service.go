package services

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"codeclub/backend/config"
	"codeclub/backend/models"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// minBcryptCost is the floor applied regardless of configuration.
const minBcryptCost = 13

var usernameRx = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRx.MatchString(fl.Field().String())
	})
	return v
}

type AuthService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=20,username"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) Register(in RegisterInput) (*models.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fieldErrors(err)
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, NewPersistenceError("check username", err)
	}
	if count > 0 {
		return nil, NewValidationError("username is already taken")
	}
	if err := s.DB.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, NewPersistenceError("check email", err)
	}
	if count > 0 {
		return nil, NewValidationError("email is already registered")
	}

	cost := s.Cfg.BcryptCost
	if cost < minBcryptCost {
		cost = minBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, NewPersistenceError("hash password", err)
	}

	var userRole models.Role
	if err := s.DB.Where(models.Role{Name: "User"}).FirstOrCreate(&userRole).Error; err != nil {
		return nil, NewPersistenceError("load default role", err)
	}

	user := models.User{
		Username:           in.Username,
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Email:              in.Email,
		PasswordHash:       string(hash),
		RefreshToken:       uuid.NewString(),
		RefreshTokenExpiry: time.Now().Add(s.Cfg.RefreshTokenTTL),
		IsActive:           true,
		Roles:              []models.Role{userRole},
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, NewPersistenceError("create user", err)
	}
	return &user, nil
}

// Login authenticates by username or email and returns a fresh token pair.
// The stored refresh token is rotated on every successful login.
func (s *AuthService) Login(identifier, password string) (*TokenPair, error) {
	var user models.User
	err := s.DB.Preload("Roles").
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewAuthError("invalid credentials")
		}
		return nil, NewPersistenceError("load user", err)
	}

	if !user.IsActive || user.IsLocked {
		return nil, NewAuthError("account is locked or inactive")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, NewAuthError("invalid credentials")
	}

	return s.issueTokens(&user)
}

// Refresh exchanges a refresh token for a new token pair. The old token is
// invalidated by rotation, so replaying it fails.
func (s *AuthService) Refresh(rawToken string) (*TokenPair, error) {
	token, err := url.QueryUnescape(rawToken)
	if err != nil {
		return nil, NewAuthError("invalid refresh token")
	}
	if token == "" {
		return nil, NewAuthError("invalid refresh token")
	}

	var user models.User
	err = s.DB.Preload("Roles").Where("refresh_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewAuthError("invalid refresh token")
		}
		return nil, NewPersistenceError("load user", err)
	}

	if time.Now().After(user.RefreshTokenExpiry) {
		return nil, NewAuthError("refresh token expired")
	}
	if !user.IsActive || user.IsLocked {
		return nil, NewAuthError("account is locked or inactive")
	}

	return s.issueTokens(&user)
}

func (s *AuthService) UsernameTaken(username string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, NewPersistenceError("check username", err)
	}
	return count > 0, nil
}

func (s *AuthService) EmailTaken(email string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, NewPersistenceError("check email", err)
	}
	return count > 0, nil
}

func (s *AuthService) issueTokens(user *models.User) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":         strconv.FormatUint(uint64(user.ID), 10),
		"given_name":  user.FirstName,
		"family_name": user.LastName,
		"email":       user.Email,
		"roles":       user.RoleNames(),
		"iss":         s.Cfg.JWTIssuer,
		"aud":         s.Cfg.JWTAudience,
		"iat":         now.Unix(),
		"exp":         now.Add(s.Cfg.AccessTokenTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Cfg.JWTSecret))
	if err != nil {
		return nil, NewPersistenceError("sign access token", err)
	}

	refresh := uuid.NewString()
	updates := map[string]interface{}{
		"refresh_token":        refresh,
		"refresh_token_expiry": now.Add(s.Cfg.RefreshTokenTTL),
	}
	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		return nil, NewPersistenceError("rotate refresh token", err)
	}

	return &TokenPair{Token: access, RefreshToken: refresh}, nil
}

func fieldErrors(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError(err.Error())
	}
	out := &ValidationError{Msg: "validation failed", Fields: make(map[string]string)}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = fe.Tag()
	}
	return out
}
