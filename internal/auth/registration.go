package auth

import (
	"errors"
	"time"

	"loadshed-console-go/pkg/model"
)

// ErrEmailTaken is returned when the email is already registered
var ErrEmailTaken = errors.New("email already exists")

// RegisterUser creates a new admin account with a hashed password
func (s *AuthService) RegisterUser(req model.RegistrationRequest) (int64, error) {
	var count int
	err := s.db.Get(&count, "SELECT COUNT(*) FROM user_auth WHERE email = $1", req.Email)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, ErrEmailTaken
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	var userID int64
	err = s.db.QueryRow(
		`INSERT INTO user_auth (email, name, password_hash, two_factor_enabled, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $5)
         RETURNING id`,
		req.Email, req.Name, hashedPassword, false, time.Now().UTC()).Scan(&userID)
	if err != nil {
		return 0, err
	}

	return userID, nil
}
