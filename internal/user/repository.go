package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrNoVerificationCode = errors.New("no verification code generated")
)

type Repository interface {
	createUser(user *User) error
	getUserByEmail(email string) (*User, error)
	userExistsByLoginOrEmail(login, email string) (*User, error)
	getUserByLoginOrEmail(loginOrEmail string) (*User, error)
	getUserByID(id string) (*User, error)
	markVerified(userID string) error
	saveVerificationCode(userID, code string, expiresAt time.Time, codeType string) error
	getVerificationCode(userID string) (string, string, time.Time, time.Time, error)
	deleteVerificationCode(userID string) error
	updatePasswordAndHashToken(userID, newPasswordHash, newHashToken string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

const userColumns = `id, email, login, password_hash, is_verified, two_factor_enabled, hash_token, created_at, updated_at`

func scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Email, &user.Login, &user.PasswordHash, &user.IsActive, &user.TwoFactorEnabled, &user.HashToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return &user, nil
}

func (r *userRepository) createUser(user *User) error {
	query := `
		INSERT INTO users (email, login, password_hash, hash_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id;
	`
	var id string
	err := r.db.QueryRow(query, user.Email, user.Login, user.PasswordHash, user.HashToken).Scan(&id)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}

	user.ID = id
	return nil
}

func (r *userRepository) getUserByEmail(email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(query, email))
}

func (r *userRepository) userExistsByLoginOrEmail(login, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1 OR email = $2`
	return scanUser(r.db.QueryRow(query, login, email))
}

func (r *userRepository) getUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login = $1 OR email = $1`
	return scanUser(r.db.QueryRow(query, loginOrEmail))
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) markVerified(userID string) error {
	query := `
        UPDATE users
        SET is_verified = TRUE, updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("could not update verification status: %v", err)
	}
	return nil
}

func (r *userRepository) saveVerificationCode(userID, code string, expiresAt time.Time, codeType string) error {
	query := `
        INSERT INTO user_verification_codes (user_id, code, expires_at, type)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (user_id) DO UPDATE
        SET code = $2, expires_at = $3, type = $4, created_at = CURRENT_TIMESTAMP
    `
	_, err := r.db.Exec(query, userID, code, expiresAt, codeType)
	if err != nil {
		return fmt.Errorf("could not save verification code: %v", err)
	}
	return nil
}

func (r *userRepository) getVerificationCode(userID string) (string, string, time.Time, time.Time, error) {
	query := `
        SELECT code, type, expires_at, created_at
        FROM user_verification_codes
        WHERE user_id = $1
    `

	var code, codeType string
	var expiresAt, createdAt time.Time
	err := r.db.QueryRow(query, userID).Scan(&code, &codeType, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", time.Time{}, time.Time{}, ErrNoVerificationCode
		}
		return "", "", time.Time{}, time.Time{}, fmt.Errorf("could not retrieve verification code: %v", err)
	}

	return code, codeType, expiresAt, createdAt, nil
}

func (r *userRepository) deleteVerificationCode(userID string) error {
	query := `DELETE FROM user_verification_codes WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("could not delete verification code: %v", err)
	}
	return nil
}

func (r *userRepository) updatePasswordAndHashToken(userID, newPasswordHash, newHashToken string) error {
	query := `
        UPDATE users
        SET password_hash = $1,
            hash_token = $2,
            updated_at = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(query, newPasswordHash, newHashToken, time.Now(), userID)
	return err
}
