package settings

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"loadshed-console-go/pkg/model"
)

// SettingsService handles per-admin console preferences
type SettingsService struct {
	db *sqlx.DB
}

// NewSettingsService creates a new settings service
func NewSettingsService(db *sqlx.DB) *SettingsService {
	return &SettingsService{db: db}
}

// defaults applied before a row exists for the user
func defaultSettings(userID int) model.UserSettings {
	return model.UserSettings{
		UserID:               userID,
		DarkMode:             false,
		EmailAlerts:          true,
		NotificationsEnabled: true,
		UpdatedAt:            time.Now().UTC(),
	}
}

// Get returns the user's settings, falling back to defaults
func (s *SettingsService) Get(userID int) (*model.UserSettings, error) {
	var settings model.UserSettings
	err := s.db.Get(&settings, `
        SELECT user_id, dark_mode, email_alerts, notifications_enabled, updated_at
        FROM user_settings
        WHERE user_id = $1
    `, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			def := defaultSettings(userID)
			return &def, nil
		}
		return nil, err
	}
	return &settings, nil
}

// Update applies the non-nil toggles and upserts the row
func (s *SettingsService) Update(userID int, req model.SettingsUpdateRequest) (*model.UserSettings, error) {
	settings, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if req.DarkMode != nil {
		settings.DarkMode = *req.DarkMode
	}
	if req.EmailAlerts != nil {
		settings.EmailAlerts = *req.EmailAlerts
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	settings.UpdatedAt = time.Now().UTC()

	_, err = s.db.Exec(`
        INSERT INTO user_settings (user_id, dark_mode, email_alerts, notifications_enabled, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id) DO UPDATE
        SET dark_mode = EXCLUDED.dark_mode,
            email_alerts = EXCLUDED.email_alerts,
            notifications_enabled = EXCLUDED.notifications_enabled,
            updated_at = EXCLUDED.updated_at
    `, settings.UserID, settings.DarkMode, settings.EmailAlerts, settings.NotificationsEnabled, settings.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return settings, nil
}
