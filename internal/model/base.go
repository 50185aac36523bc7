package model

import (
	"github.com/google/uuid"
)

// Base holds the identifier shared by all primary entities.
type Base struct {
	ID uuid.UUID `db:"id" json:"id"`
}
