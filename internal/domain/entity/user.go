package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized credential table. Every person record may
// own exactly one user; admin-created profiles without login data get a
// synthesized placeholder user so the deactivation cascade always has an
// account to flip.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username    string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:text;not null" json:"-"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"is_superuser"`
	IsActive    *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Person *Person `gorm:"foreignKey:UserID" json:"person,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Active reports the is_active flag, treating a nil pointer as inactive.
func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}
