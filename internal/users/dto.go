package users

import (
	"github.com/aurumpos/backend/pkg/db/models"
	"github.com/aurumpos/backend/pkg/enums"
)

// CreateUserDTO carries the fields needed to persist a new operator.
// Credential must already be hashed by the caller.
type CreateUserDTO struct {
	Username   string
	Credential string
	Role       enums.Role
}

// ToModel maps the DTO onto the persistence model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Username:   d.Username,
		Credential: d.Credential,
		Role:       d.Role,
		Active:     true,
	}
}
