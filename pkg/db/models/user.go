package models

import "github.com/aurumpos/backend/pkg/enums"

// User is a till operator account. Credential holds either an Argon2id
// hash or, on databases predating the hashing rollout, the legacy
// plaintext password; pkg/security classifies the value at read time.
type User struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Username   string     `gorm:"column:username;not null;uniqueIndex"`
	Credential string     `gorm:"column:credential;not null"`
	Role       enums.Role `gorm:"column:role;not null"`
	Active     bool       `gorm:"column:active;not null;default:true"`
}
