package auth

import "github.com/aurumpos/backend/pkg/enums"

// EnrollInput carries the fields for creating a new operator account.
type EnrollInput struct {
	Username string `validate:"required,min=1,max=64"`
	Password string `validate:"required,min=1"`
	Role     enums.Role
}

// Operator is the authenticated identity handed back to the caller.
type Operator struct {
	ID       int64
	Username string
	Role     enums.Role
}
