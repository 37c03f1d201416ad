package auth

import (
	"database/sql"
	"errors"
	"fmt"
)

type TwoFactorRepository interface {
	EnableTwoFactor(userID string) error
	DisableTwoFactor(userID string) error
	GetTOTPSecret(userID string) (string, error)
	SaveTOTPSecret(userID, encryptedSecret string) error
}

type twoFactorRepository struct {
	db *sql.DB
}

func NewTwoFactorRepository(db *sql.DB) TwoFactorRepository {
	return &twoFactorRepository{
		db: db,
	}
}

func (r *twoFactorRepository) SaveTOTPSecret(userID, encryptedSecret string) error {
	query := `
        INSERT INTO user_totp_secrets (user_id, encrypted_secret, created_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id) DO UPDATE
        SET encrypted_secret = EXCLUDED.encrypted_secret,
            created_at = NOW()
    `
	_, err := r.db.Exec(query, userID, encryptedSecret)
	if err != nil {
		return ErrInternalError
	}
	return nil
}

func (r *twoFactorRepository) GetTOTPSecret(userID string) (string, error) {
	var encryptedSecret string
	query := `
        SELECT encrypted_secret
        FROM user_totp_secrets
        WHERE user_id = $1
    `
	err := r.db.QueryRow(query, userID).Scan(&encryptedSecret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUser2FANotEnabled
		}
		return "", ErrInternalError
	}
	return encryptedSecret, nil
}

func (r *twoFactorRepository) EnableTwoFactor(userID string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = TRUE,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return ErrInternalError
	}
	return nil
}

func (r *twoFactorRepository) DisableTwoFactor(userID string) error {
	query := `
		UPDATE users
		SET two_factor_enabled = FALSE,
			updated_at = NOW()
		WHERE id = $1
	`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("could not disable two-factor authentication: %v", err)
	}

	query = `DELETE FROM user_totp_secrets WHERE user_id = $1`
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("could not delete TOTP secret: %v", err)
	}

	return nil
}
