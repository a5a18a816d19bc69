package repository

import (
	"clinic-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(db *gorm.DB, person *entity.Person) error
	Update(db *gorm.DB, person *entity.Person) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Person, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Person, error)
	// ExistsByDNI reports whether another person already registered the DNI;
	// exclude removes the current person from the conflict check on updates.
	ExistsByDNI(db *gorm.DB, dni string, exclude *uuid.UUID) (bool, error)
}
