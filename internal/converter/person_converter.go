package converter

import (
	"clinic-backend/internal/delivery/dto"
	"clinic-backend/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// PersonToResponse converts a Person entity, including its user when loaded.
func PersonToResponse(person *entity.Person) dto.PersonResponse {
	resp := dto.PersonResponse{
		ID:        person.ID,
		FirstName: person.FirstName,
		LastName:  person.LastName,
		Phone:     person.Phone,
		Gender:    person.Gender,
		Direction: person.Direction,
		User:      UserToResponse(person.User),
	}
	if person.DNI != nil {
		resp.DNI = *person.DNI
	}
	if person.BirthDate != nil {
		resp.BirthDate = person.BirthDate.Format(dateLayout)
	}
	return resp
}
