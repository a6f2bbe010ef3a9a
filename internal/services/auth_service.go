package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/courtlog/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthUserNotFound             = errors.New("user not found")
	ErrPasswordChangeInvalidInput   = errors.New("current and new password are required")
	ErrPasswordChangeInvalidCurrent = errors.New("current password is incorrect")
	ErrPasswordChangeMustDiffer     = errors.New("new password must differ")
	ErrPasswordUpdateFailed         = errors.New("update password failed")
	ErrRegisterFailed               = errors.New("register failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	FindByID(userID string) (models.User, bool, error)
	Create(user *models.User) error
	UpdatePassword(userID string, passwordHash string) error
}

type AuthService struct {
	users AuthUserRepository
	now   func() time.Time
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, now: time.Now}
}

func (service *AuthService) Register(input RegisterInput) (models.User, error) {
	normalized, err := NormalizeRegisterInput(input)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(normalized.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}
	if exists {
		return models.User{}, ErrEmailAlreadyRegistered
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(normalized.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: hash password: %v", ErrRegisterFailed, err)
	}

	user := models.User{
		Email:        normalized.Email,
		PasswordHash: string(passwordHash),
		Name:         normalized.Name,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		// A concurrent signup may have taken the email after the check above.
		if taken, lookupErr := service.users.ExistsByNormalizedEmail(normalized.Email); lookupErr == nil && taken {
			return models.User{}, ErrEmailAlreadyRegistered
		}
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}
	return user, nil
}

// Authenticate answers ErrAuthCredentialsInvalid for both unknown emails and
// wrong passwords.
func (service *AuthService) Authenticate(emailRaw string, password string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return models.User{}, err
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
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
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrAuthUserNotFound
	}
	return user, nil
}

func (service *AuthService) ChangePassword(user models.User, currentPassword string, newPassword string) error {
	currentPassword = strings.TrimSpace(currentPassword)
	newPassword = strings.TrimSpace(newPassword)

	if currentPassword == "" || newPassword == "" {
		return ErrPasswordChangeInvalidInput
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrPasswordChangeInvalidCurrent
	}
	if currentPassword == newPassword {
		return ErrPasswordChangeMustDiffer
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	return service.setPassword(user.ID, newPassword)
}

// ResetPassword replaces the password of the account registered under email
// without checking the previous one.
func (service *AuthService) ResetPassword(emailRaw string, newPassword string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrRegisterEmailInvalid
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return models.User{}, err
	}

	user, found, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrAuthUserNotFound
	}
	if err := service.setPassword(user.ID, newPassword); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) setPassword(userID string, password string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: hash password: %v", ErrPasswordUpdateFailed, err)
	}
	if err := service.users.UpdatePassword(userID, string(passwordHash)); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordUpdateFailed, err)
	}
	return nil
}
