// Package domain defines the persistent entities of the application.
package domain

import "time"

// User is an account that can own todos. The Password field always holds a
// bcrypt hash, never plaintext, and is excluded from every JSON response.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex:idx_users_username;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Deleting a user removes their todos with it.
	Todos []Todo `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
