package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	emailService "github.com/Xario13/MoneyTracker/internal/email"
	"github.com/Xario13/MoneyTracker/internal/user"
)

const (
	defaultCodeTimeout = 2
	CodePassType       = "password"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrInternalError            = errors.New("internal Server Error")
	ErrUser2FANotEnabled        = errors.New("two factor auth is not enabled")
	ErrInvalid2FACode           = errors.New("2fa code is invalid")
	ErrUser2FAAlreadyEnabled    = errors.New("2fa auth already enabled")
	ErrVerificationCodeExpired  = errors.New("verification code expired")
	ErrUserNotVerified          = errors.New("user has not been verified")
	ErrTooManyEmailCodeRequests = errors.New("too many email code requests")
	ErrInvalidCodeType          = errors.New("invalid code type")
)

type Service interface {
	Login(emailOrLogin, password string) (*user.User, string, string, error)
	VerifyTwoFactor(sessionToken, code string) (*user.User, string, string, error)
	RegisterTwoFactor(userID string) (string, error)
	ConfirmTwoFactor(userID, code string) error
	DisableTwoFactorAuth(userID, code string) error
	RefreshAccessToken(userID string) (string, string, error)
	RequestPasswordReset(email string) error
	ResetPassword(email, code, newPassword string) error
	JWTRefreshTokenMiddleware() func(http.Handler) http.Handler
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	repo           TwoFactorRepository
	userService    user.Service
	sessionManager SessionManagerInterface
	jwtManager     JWTManagerInterface
	emailService   emailService.EmailSender
	authenticator  Authenticator
}

func NewAuthService(repo TwoFactorRepository, userService user.Service, sessionManager SessionManagerInterface, jwtManager JWTManagerInterface, emailService emailService.EmailSender, authenticator Authenticator) Service {
	return &service{
		repo:           repo,
		userService:    userService,
		sessionManager: sessionManager,
		jwtManager:     jwtManager,
		emailService:   emailService,
		authenticator:  authenticator,
	}
}

func (s *service) sendPasswordResetCode(u *user.User) error {
	_, storedCodeType, _, createdAt, err := s.userService.GetVerificationCode(u.ID)
	if err == nil && storedCodeType == CodePassType {
		timeSinceLastCode := time.Now().UTC().Sub(createdAt.UTC())
		if timeSinceLastCode.Minutes() < defaultCodeTimeout {
			return ErrTooManyEmailCodeRequests
		}
	}

	newCode, err := user.GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("could not generate verification code: %v", err)
	}

	expirationTime := time.Now().UTC().Add(10 * time.Minute)
	if err := s.userService.SaveVerificationCode(u.ID, newCode, expirationTime, CodePassType); err != nil {
		return fmt.Errorf("could not save verification code: %v", err)
	}

	s.emailService.QueueEmail(u.Email, emailService.ResetPasswordData{
		UserName: u.Login,
		Code:     newCode,
	})

	return nil
}

func (s *service) Login(emailOrLogin, password string) (*user.User, string, string, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(emailOrLogin)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", ErrInternalError
	}

	if !doPasswordsMatch(existingUser.PasswordHash, password) {
		return nil, "", "", ErrInvalidCredentials
	}

	if !existingUser.IsActive {
		if err := s.userService.ResendVerificationCode(existingUser); err != nil && !errors.Is(err, user.ErrTooManyEmailCodeRequests) {
			return nil, "", "", ErrInternalError
		}
		return nil, "", "", ErrUserNotVerified
	}

	if existingUser.TwoFactorEnabled {
		sessionToken, err := s.sessionManager.GenerateSessionToken(existingUser.ID, defaultSessionTokenDuration)
		if err != nil {
			return nil, "", "", ErrInternalError
		}
		return existingUser, sessionToken, "", nil
	}

	jwtToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, defaultJWTDuration)
	if err != nil {
		return nil, "", "", ErrInternalError
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(existingUser.ID, existingUser.HashToken, defaultJWTRefreshDuration)
	if err != nil {
		return nil, "", "", ErrInternalError
	}

	return existingUser, jwtToken, refreshToken, nil
}

func (s *service) VerifyTwoFactor(sessionToken, code string) (*user.User, string, string, error) {
	userID, err := s.sessionManager.VerifySessionToken(sessionToken)
	if err != nil {
		return nil, "", "", err
	}
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, "", "", ErrUserNotFound
		}
		return nil, "", "", ErrInternalError
	}
	if !existingUser.TwoFactorEnabled {
		return nil, "", "", ErrUser2FANotEnabled
	}

	secret, err := s.repo.GetTOTPSecret(userID)
	if err != nil {
		return nil, "", "", err
	}
	if !s.authenticator.VerifyCode(secret, code) {
		return nil, "", "", ErrInvalid2FACode
	}

	s.sessionManager.DeleteSessionToken(sessionToken)

	jwtToken, err := s.jwtManager.GenerateAccessJWT(existingUser.ID, defaultJWTDuration)
	if err != nil {
		return nil, "", "", ErrInternalError
	}
	refreshToken, err := s.jwtManager.GenerateRefreshJWT(existingUser.ID, existingUser.HashToken, defaultJWTRefreshDuration)
	if err != nil {
		return nil, "", "", ErrInternalError
	}

	return existingUser, jwtToken, refreshToken, nil
}

// RegisterTwoFactor stores a fresh TOTP secret and returns the provisioning
// URI. The secret only becomes active after ConfirmTwoFactor.
func (s *service) RegisterTwoFactor(userID string) (string, error) {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternalError
	}

	if existingUser.TwoFactorEnabled {
		return "", ErrUser2FAAlreadyEnabled
	}

	otpURI, secret, err := s.authenticator.GenerateSecret(existingUser.Email)
	if err != nil {
		return "", ErrInternalError
	}
	if err := s.repo.SaveTOTPSecret(userID, secret); err != nil {
		return "", ErrInternalError
	}

	return otpURI, nil
}

func (s *service) ConfirmTwoFactor(userID, code string) error {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if existingUser.TwoFactorEnabled {
		return ErrUser2FAAlreadyEnabled
	}

	secret, err := s.repo.GetTOTPSecret(userID)
	if err != nil {
		if errors.Is(err, ErrUser2FANotEnabled) {
			return ErrUser2FANotEnabled
		}
		return ErrInternalError
	}
	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalid2FACode
	}

	if err := s.repo.EnableTwoFactor(userID); err != nil {
		return ErrInternalError
	}

	return nil
}

func (s *service) DisableTwoFactorAuth(userID, code string) error {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !existingUser.TwoFactorEnabled {
		return ErrUser2FANotEnabled
	}

	secret, err := s.repo.GetTOTPSecret(userID)
	if err != nil {
		return ErrInternalError
	}
	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalid2FACode
	}

	if err := s.repo.DisableTwoFactor(userID); err != nil {
		return ErrInternalError
	}

	return nil
}

// RefreshAccessToken requests are already checked in refresh token middleware
func (s *service) RefreshAccessToken(userID string) (string, string, error) {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", ErrInternalError
	}
	jwtToken, err := s.jwtManager.GenerateAccessJWT(userID, defaultJWTDuration)
	if err != nil {
		return "", "", ErrInternalError
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshJWT(userID, existingUser.HashToken, defaultJWTRefreshDuration)
	if err != nil {
		return "", "", ErrInternalError
	}

	return jwtToken, newRefreshToken, nil
}

func (s *service) RequestPasswordReset(email string) error {
	existingUser, err := s.userService.GetUserByLoginOrEmail(email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	// With TOTP enabled the reset is confirmed against the authenticator
	// code, so no email has to go out.
	if existingUser.TwoFactorEnabled {
		return nil
	}

	if err := s.sendPasswordResetCode(existingUser); err != nil {
		if errors.Is(err, ErrTooManyEmailCodeRequests) {
			return ErrTooManyEmailCodeRequests
		}
		return ErrInternalError
	}
	return nil
}

func (s *service) ResetPassword(email, verificationCode, newPassword string) error {
	existingUser, err := s.userService.GetUserByLoginOrEmail(email)
	if err != nil {
		return ErrUserNotFound
	}

	if existingUser.TwoFactorEnabled {
		secret, err := s.repo.GetTOTPSecret(existingUser.ID)
		if err != nil {
			return ErrInternalError
		}
		if !s.authenticator.VerifyCode(secret, verificationCode) {
			return ErrInvalid2FACode
		}
	} else {
		storedCode, codeType, expiryTime, _, err := s.userService.GetVerificationCode(existingUser.ID)
		if err != nil {
			if errors.Is(err, user.ErrNoVerificationCode) {
				return user.ErrNoVerificationCode
			}
			return ErrInternalError
		}
		if codeType != CodePassType {
			return ErrInvalidCodeType
		}
		if storedCode != verificationCode {
			return ErrInvalid2FACode
		}
		if time.Now().UTC().After(expiryTime) {
			return ErrVerificationCodeExpired
		}

		if err := s.userService.DeleteVerificationCode(existingUser.ID); err != nil {
			return ErrInternalError
		}
	}

	if err := s.userService.ResetPassword(existingUser.ID, newPassword); err != nil {
		return ErrInternalError
	}
	return nil
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashedPassword), []byte(currPassword))
	return err == nil
}
