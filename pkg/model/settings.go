package model

import "time"

// UserSettings holds per-admin console preferences
type UserSettings struct {
	UserID               int       `db:"user_id" json:"user_id"`
	DarkMode             bool      `db:"dark_mode" json:"dark_mode"`
	EmailAlerts          bool      `db:"email_alerts" json:"email_alerts"`
	NotificationsEnabled bool      `db:"notifications_enabled" json:"notifications_enabled"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// SettingsUpdateRequest updates individual toggles; nil fields are untouched
type SettingsUpdateRequest struct {
	DarkMode             *bool `json:"dark_mode"`
	EmailAlerts          *bool `json:"email_alerts"`
	NotificationsEnabled *bool `json:"notifications_enabled"`
}

// AlertSubscription is an email address that receives schedule notifications
type AlertSubscription struct {
	ID        int       `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SubscriptionAddRequest registers a new alert recipient
type SubscriptionAddRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}
