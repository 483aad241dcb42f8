package customer

import "time"

// Session is a server-side login session. The Storefront customer access
// token stays on the server; the browser only holds the session ID.
type Session struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)"`
	AccessToken    string    `gorm:"type:varchar(255);not null"`
	TokenExpiresAt time.Time `gorm:"not null"`
	ExpiresAt      time.Time `gorm:"not null;index:ix_customer_sessions_expires_at"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
	LastSeenAt     time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "customer_sessions" }

// Active reports whether both the session and its access token are valid at now.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt) && now.Before(s.TokenExpiresAt)
}
