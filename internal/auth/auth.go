package auth

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"loadshed-console-go/pkg/model"
)

// Sentinel errors surfaced to the handler layer
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTwoFactorRequired  = errors.New("2fa_required")
	ErrInvalidTOTP        = errors.New("invalid 2FA code")
)

// AuthService handles authentication operations. Credentials live in the
// user_auth table as bcrypt hashes; plaintext passwords are never stored or
// compared.
type AuthService struct {
	db            *sqlx.DB
	jwtSecret     []byte
	encryptionKey string
}

// NewAuthService creates a new authentication service
func NewAuthService(db *sqlx.DB, jwtSecret, encryptionKey string) *AuthService {
	return &AuthService{
		db:            db,
		jwtSecret:     []byte(jwtSecret),
		encryptionKey: encryptionKey,
	}
}

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPassword compares password with hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateJWT creates a new JWT token for authenticated admins
func (s *AuthService) GenerateJWT(userID int, email string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	claims["email"] = email
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	return token.SignedString(s.jwtSecret)
}

// Login authenticates an admin and handles 2FA if enabled
func (s *AuthService) Login(creds model.UserCredentials) (*model.User, string, error) {
	var user model.User

	err := s.db.Get(&user, "SELECT * FROM user_auth WHERE email = $1", creds.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !CheckPassword(creds.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		if creds.TOTPCode == "" {
			return &user, "", ErrTwoFactorRequired
		}

		secret, err := DecryptTOTPSecret(user.TwoFactorSecret, s.encryptionKey)
		if err != nil {
			return nil, "", errors.New("error processing 2FA")
		}

		if !ValidateTOTP(secret, creds.TOTPCode) {
			return nil, "", ErrInvalidTOTP
		}
	}

	token, err := s.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// SetupTwoFactor initializes 2FA for an admin account
func (s *AuthService) SetupTwoFactor(userID int) (*model.TwoFactorSetupResponse, error) {
	var user model.User
	err := s.db.Get(&user, "SELECT * FROM user_auth WHERE id = $1", userID)
	if err != nil {
		return nil, err
	}

	secret, err := GenerateTOTPSecret()
	if err != nil {
		return nil, err
	}

	// Setup always starts from a disabled state; enabling happens after
	// the first code is verified.
	_, err = s.db.Exec("UPDATE user_auth SET two_factor_enabled = false WHERE id = $1", userID)
	if err != nil {
		log.Printf("Error resetting 2FA flag: %v", err)
	}

	encryptedSecret, err := EncryptTOTPSecret(secret, s.encryptionKey)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec("UPDATE user_auth SET two_factor_secret = $1 WHERE id = $2",
		sql.NullString{String: encryptedSecret, Valid: true}, userID)
	if err != nil {
		return nil, err
	}

	qrCodeURL := GenerateTOTPQRCodeURL(secret, user.Email, "SHEDR")

	return &model.TwoFactorSetupResponse{
		Secret:    secret,
		QRCodeURL: qrCodeURL,
	}, nil
}

// VerifyAndEnableTwoFactor verifies the 2FA code and enables 2FA if valid
func (s *AuthService) VerifyAndEnableTwoFactor(userID int, code string) error {
	var user model.User

	err := s.db.Get(&user, "SELECT * FROM user_auth WHERE id = $1", userID)
	if err != nil {
		return err
	}

	if !user.TwoFactorSecret.Valid {
		return errors.New("two-factor authentication is not set up")
	}

	secret, err := DecryptTOTPSecret(user.TwoFactorSecret, s.encryptionKey)
	if err != nil {
		return err
	}

	if !ValidateTOTP(secret, code) {
		return ErrInvalidTOTP
	}

	_, err = s.db.Exec("UPDATE user_auth SET two_factor_enabled = true WHERE id = $1", userID)
	return err
}

// DisableTwoFactor disables 2FA for an admin account
func (s *AuthService) DisableTwoFactor(userID int) error {
	_, err := s.db.Exec("UPDATE user_auth SET two_factor_enabled = false, two_factor_secret = NULL WHERE id = $1", userID)
	return err
}

// GetUserByID fetches an admin by id
func (s *AuthService) GetUserByID(userID int) (*model.User, error) {
	var user model.User
	err := s.db.Get(&user, "SELECT * FROM user_auth WHERE id = $1", userID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword verifies the current password and stores a new hash
func (s *AuthService) UpdatePassword(userID int, req model.PasswordUpdateRequest) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if !CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	_, err = s.db.Exec("UPDATE user_auth SET password_hash = $1, updated_at = $2 WHERE id = $3",
		hash, time.Now().UTC(), userID)
	return err
}
