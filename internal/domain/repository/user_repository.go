package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repositories take the *gorm.DB as first argument so usecases can pass
// either the root connection or an open transaction.
type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	Update(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindAllActive(db *gorm.DB) ([]entity.User, error)
	// ExistsByEmail reports whether another user owns the email; exclude
	// removes the current owner from the conflict check on updates.
	ExistsByEmail(db *gorm.DB, email string, exclude *uuid.UUID) (bool, error)
	ExistsByUsername(db *gorm.DB, username string, exclude *uuid.UUID) (bool, error)
}
