package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

// ChatSession wraps one conversation document. The full transcript, profile
// and cart live inside Session; State is lifted out for querying.
type ChatSession struct {
	Id        uuid.UUID
	State     store.ChatState
	Session   *store.Session
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
