package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Iamhamptom/foodfriend/pkg/store"
)

type CreateSessionResponse struct {
	Id      uuid.UUID      `json:"id"`
	Token   string         `json:"token"`
	Session *store.Session `json:"session"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type SendMessageResponse struct {
	SessionId  uuid.UUID       `json:"session_id"`
	State      store.ChatState `json:"state"`
	Reply      []store.Message `json:"reply"` // messages appended this turn
	PaymentUrl string          `json:"payment_url,omitempty"`
}

// SessionAdvancedMessage is the in-process bus payload emitted after each
// turn, consumed by the websocket fanout.
type SessionAdvancedMessage struct {
	SessionId uuid.UUID       `json:"session_id"`
	State     store.ChatState `json:"state"`
	Reply     []store.Message `json:"reply"`
}

type GetSessionResponse struct {
	Id        uuid.UUID      `json:"id"`
	State     store.ChatState `json:"state"`
	Session   *store.Session `json:"session"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at"`
}
