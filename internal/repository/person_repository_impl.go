package repository

import (
	"errors"

	"clinic-backend/internal/domain/entity"
	domainRepo "clinic-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type personRepository struct{}

func NewPersonRepository() domainRepo.PersonRepository {
	return &personRepository{}
}

func (r *personRepository) Create(db *gorm.DB, person *entity.Person) error {
	return db.Create(person).Error
}

func (r *personRepository) Update(db *gorm.DB, person *entity.Person) error {
	return db.Save(person).Error
}

func (r *personRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Person, error) {
	var person entity.Person
	err := db.Preload("User").Where("id = ?", id).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Person, error) {
	var person entity.Person
	err := db.Preload("User").Where("user_id = ?", userID).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) ExistsByDNI(db *gorm.DB, dni string, exclude *uuid.UUID) (bool, error) {
	query := db.Model(&entity.Person{}).Where("dni = ?", dni)
	if exclude != nil {
		query = query.Where("id <> ?", *exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
