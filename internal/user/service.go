package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	emailService "github.com/Xario13/MoneyTracker/internal/email"
)

const (
	maxEmailLength     = 35
	minEmailLength     = 3
	maxLoginLength     = 30
	minLoginLength     = 5
	bcryptCost         = 12
	defaultCodeTimeout = 2
	CodeVerifyType     = "verify"
)

var (
	ErrInvalidEmail             = fmt.Errorf("email address is not valid")
	ErrEmailLength              = fmt.Errorf("email address length must be between %d and %d characters", minEmailLength, maxEmailLength)
	ErrLoginLength              = fmt.Errorf("login length must be between %d and %d characters", minLoginLength, maxLoginLength)
	ErrEmailAlreadyExists       = errors.New("email already exists")
	ErrInternalError            = errors.New("internal Server Error")
	ErrLoginAlreadyExists       = errors.New("login already exists")
	ErrUserAlreadyVerified      = errors.New("user already verified")
	ErrInvalidVerificationCode  = errors.New("invalid verification code")
	ErrVerificationCodeExpired  = errors.New("verification code expired")
	ErrTooManyEmailCodeRequests = errors.New("too many email code requests")
	ErrInvalidOldPassword       = errors.New("invalid old password")
)

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Login            string    `json:"login"`
	PasswordHash     string    `json:"-"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	HashToken        string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	IsActive         bool      `json:"is_active"`
}

type Service interface {
	Register(email, login, password string) (*User, error)
	VerifyRegistrationCode(email, code string) error
	ResendVerificationCode(user *User) error
	GetUserByID(userID string) (*User, error)
	GetUserByLoginOrEmail(loginOrEmail string) (*User, error)
	SaveVerificationCode(userID, code string, expiresAt time.Time, codeType string) error
	GetVerificationCode(userID string) (string, string, time.Time, time.Time, error)
	DeleteVerificationCode(userID string) error
	ChangePasswordWithOldPassword(userID, oldPassword, newPassword string) error
	ResetPassword(userID, newPassword string) error
}

type service struct {
	repo         Repository
	emailService emailService.EmailSender
}

func NewUserService(repo Repository, emailService emailService.EmailSender) Service {
	return &service{
		repo:         repo,
		emailService: emailService,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func GenerateVerificationCode() (string, error) {
	code := make([]byte, 6)
	_, err := rand.Read(code)
	if err != nil {
		return "", fmt.Errorf("could not generate verification code: %v", err)
	}
	for i := range code {
		code[i] = '0' + (code[i] % 10)
	}

	return string(code), nil
}

func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}

	if err := checkmail.ValidateHost(email); err != nil {
		// A host timeout is tolerated, anything else rejects the address.
		if !strings.Contains(err.Error(), "timeout") {
			return ErrInvalidEmail
		}
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		return ErrEmailLength
	}
	return nil
}

func (s *service) Register(email, login, password string) (*User, error) {
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}

	if len(login) == 0 {
		parts := strings.Split(email, "@")
		if len(parts) < 2 {
			return nil, ErrInvalidEmail
		}
		login = parts[0]
	} else if len(login) > maxLoginLength || len(login) < minLoginLength {
		return nil, ErrLoginLength
	}

	existingUser, err := s.repo.userExistsByLoginOrEmail(login, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, ErrInternalError
	}

	if existingUser != nil {
		if existingUser.Login == login {
			return nil, ErrLoginAlreadyExists
		} else if existingUser.Email == email {
			return nil, ErrEmailAlreadyExists
		}
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}

	hashToken, err := generateHashToken()
	if err != nil {
		return nil, ErrInternalError
	}

	user := &User{
		Email:        email,
		Login:        login,
		PasswordHash: passwordHash,
		HashToken:    hashToken,
	}

	if err := s.repo.createUser(user); err != nil {
		return nil, ErrInternalError
	}

	if err := s.sendVerificationCode(user); err != nil {
		return nil, ErrInternalError
	}

	return user, nil
}

func (s *service) sendVerificationCode(user *User) error {
	newCode, err := GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("could not generate verification code: %v", err)
	}

	expirationTime := time.Now().UTC().Add(10 * time.Minute)
	if err := s.repo.saveVerificationCode(user.ID, newCode, expirationTime, CodeVerifyType); err != nil {
		return fmt.Errorf("could not save verification code: %v", err)
	}

	s.emailService.QueueEmail(user.Email, emailService.RegistrationConfirmationData{
		UserName: user.Login,
		Code:     newCode,
	})

	return nil
}

func (s *service) VerifyRegistrationCode(email, code string) error {
	user, err := s.repo.getUserByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if user.IsActive {
		return ErrUserAlreadyVerified
	}

	storedCode, codeType, expiryTime, _, err := s.repo.getVerificationCode(user.ID)
	if err != nil {
		return ErrInvalidVerificationCode
	}

	if codeType != CodeVerifyType || storedCode != code {
		return ErrInvalidVerificationCode
	}

	if time.Now().UTC().After(expiryTime) {
		return ErrVerificationCodeExpired
	}

	if err := s.repo.markVerified(user.ID); err != nil {
		return ErrInternalError
	}

	_ = s.repo.deleteVerificationCode(user.ID)
	return nil
}

func (s *service) ResendVerificationCode(user *User) error {
	_, _, _, createdAt, err := s.repo.getVerificationCode(user.ID)
	if err != nil && !errors.Is(err, ErrNoVerificationCode) {
		return ErrInternalError
	}

	if err == nil {
		timeSinceLastCode := time.Now().UTC().Sub(createdAt.UTC())
		if timeSinceLastCode.Minutes() < defaultCodeTimeout {
			return ErrTooManyEmailCodeRequests
		}
	}

	return s.sendVerificationCode(user)
}

func (s *service) ChangePasswordWithOldPassword(userID, oldPassword, newPassword string) error {
	user, err := s.repo.getUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if !doPasswordsMatch(user.PasswordHash, oldPassword) {
		return ErrInvalidOldPassword
	}

	return s.changePassword(userID, newPassword)
}

// changePassword also rotates the hash token so outstanding refresh tokens
// are invalidated.
func (s *service) changePassword(userID, newPassword string) error {
	newPasswordHash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("could not hash password: %v", err)
	}

	newHashToken, err := generateHashToken()
	if err != nil {
		return fmt.Errorf("could not generate hash token: %v", err)
	}

	if err := s.repo.updatePasswordAndHashToken(userID, newPasswordHash, newHashToken); err != nil {
		return fmt.Errorf("could not update user password: %v", err)
	}

	return nil
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashedPassword), []byte(currPassword))
	return err == nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

func (s *service) GetUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	return s.repo.getUserByLoginOrEmail(loginOrEmail)
}

func (s *service) SaveVerificationCode(userID, code string, expiresAt time.Time, codeType string) error {
	return s.repo.saveVerificationCode(userID, code, expiresAt, codeType)
}

func (s *service) GetVerificationCode(userID string) (string, string, time.Time, time.Time, error) {
	return s.repo.getVerificationCode(userID)
}

func (s *service) DeleteVerificationCode(userID string) error {
	return s.repo.deleteVerificationCode(userID)
}

func (s *service) ResetPassword(userID, newPassword string) error {
	return s.changePassword(userID, newPassword)
}
