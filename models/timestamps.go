package models

import (
	"time"

	"github.com/google/uuid"
)

// Timestamps adds GORM auto-times. Rows are never deleted.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
