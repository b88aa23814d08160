package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/splitday/internal/models"
	"github.com/terraincognita07/splitday/internal/security"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken                 = errors.New("email already registered")
	ErrUserNotFound               = errors.New("user not found")
	ErrInvalidCurrentPassword     = errors.New("invalid current password")
	ErrNewPasswordMustDiffer      = errors.New("new password must differ")
	ErrPasswordChangeInvalidInput = errors.New("password change invalid input")
	ErrAccountLoadFailed          = errors.New("load account failed")
	ErrAccountWriteFailed         = errors.New("write account failed")
)

const temporaryPasswordLength = 12

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	FindByID(userID string) (models.User, bool, error)
	Create(user *models.User) error
	UpdatePassword(userID string, passwordHash string, mustChangePassword bool) error
	DeleteAccountAndRelatedData(userID string) error
}

type AuthService struct {
	users AuthUserRepository
	cost  int
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// Register creates an account. The email is matched case-insensitively
// against existing accounts.
func (service *AuthService) Register(nameRaw string, emailRaw string, password string) (models.User, error) {
	name, err := NormalizeDisplayName(nameRaw)
	if err != nil {
		return models.User{}, err
	}
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrAccountLoadFailed, err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), service.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: hash password: %w", ErrAccountWriteFailed, err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	}
	if err := service.users.Create(&user); err != nil {
		if exists, findErr := service.users.ExistsByNormalizedEmail(email); findErr == nil && exists {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrAccountWriteFailed, err)
	}
	return user, nil
}

// Authenticate reports ErrAuthCredentialsInvalid for both unknown emails and
// wrong passwords.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrAccountLoadFailed, err)
	}
	if !found {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID string) (models.User, error) {
	user, found, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrAccountLoadFailed, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

func (service *AuthService) ChangePassword(userID string, currentPassword string, newPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)
	if currentPassword == "" || newPassword == "" {
		return ErrPasswordChangeInvalidInput
	}

	user, err := service.FindByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCurrentPassword
	}
	if currentPassword == newPassword {
		return ErrNewPasswordMustDiffer
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), service.cost)
	if err != nil {
		return fmt.Errorf("%w: hash password: %w", ErrAccountWriteFailed, err)
	}
	if err := service.users.UpdatePassword(user.ID, string(passwordHash), false); err != nil {
		return fmt.Errorf("%w: %w", ErrAccountWriteFailed, err)
	}
	return nil
}

// DeleteAccount removes the user and all of their workout data after
// re-checking the password.
func (service *AuthService) DeleteAccount(userID string, password string) error {
	user, err := service.FindByID(userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))) != nil {
		return ErrInvalidCurrentPassword
	}
	if err := service.users.DeleteAccountAndRelatedData(user.ID); err != nil {
		return fmt.Errorf("%w: %w", ErrAccountWriteFailed, err)
	}
	return nil
}

// ResetPassword replaces the password of the account with a random temporary
// one and flags the account so the user must pick a new password.
func (service *AuthService) ResetPassword(emailRaw string) (string, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", ErrAuthCredentialsInvalid
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAccountLoadFailed, err)
	}
	if !found {
		return "", ErrUserNotFound
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), service.cost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %w", ErrAccountWriteFailed, err)
	}
	if err := service.users.UpdatePassword(user.ID, string(passwordHash), true); err != nil {
		return "", fmt.Errorf("%w: %w", ErrAccountWriteFailed, err)
	}
	return temporaryPassword, nil
}
