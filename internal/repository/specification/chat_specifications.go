package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByState filters chat sessions on the lifted state column.
type ByState struct {
	State string
}

func (s ByState) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("state = ?", s.State)
}

// BySessionID filters rows owned by a chat session.
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}
