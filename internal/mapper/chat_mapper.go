package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Iamhamptom/foodfriend/internal/entity"
	"github.com/Iamhamptom/foodfriend/internal/model"
	"github.com/Iamhamptom/foodfriend/pkg/store"

	"gorm.io/gorm"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// sessionDocument mirrors store.Session with pointer fields so a decode can
// tell "key absent" apart from "zero value". Truncated or hand-edited rows
// must be rejected, not resumed from a half-empty session.
type sessionDocument struct {
	ID          string             `json:"id"`
	Messages    *[]store.Message   `json:"messages"`
	State       *store.ChatState   `json:"state"`
	UserProfile *store.UserProfile `json:"userProfile"`
	Cart        []store.CartItem   `json:"cart"`
}

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) (*entity.ChatSession, error) {
	if s == nil {
		return nil, nil
	}

	var doc sessionDocument
	if err := json.Unmarshal(s.Document, &doc); err != nil {
		return nil, fmt.Errorf("chat session %s: corrupt document: %w", s.Id, err)
	}
	if doc.State == nil {
		return nil, fmt.Errorf("chat session %s: document missing state", s.Id)
	}
	if doc.Messages == nil {
		return nil, fmt.Errorf("chat session %s: document missing messages", s.Id)
	}
	if doc.UserProfile == nil {
		return nil, fmt.Errorf("chat session %s: document missing userProfile", s.Id)
	}
	if !validState(*doc.State) {
		return nil, fmt.Errorf("chat session %s: unknown state %q", s.Id, *doc.State)
	}

	session := &store.Session{
		ID:          doc.ID,
		Messages:    *doc.Messages,
		State:       *doc.State,
		UserProfile: *doc.UserProfile,
		Cart:        doc.Cart,
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatSession{
		Id:        s.Id,
		State:     session.State,
		Session:   session,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}, nil
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) (*model.ChatSession, error) {
	if s == nil {
		return nil, nil
	}
	if s.Session == nil {
		return nil, fmt.Errorf("chat session %s: nil session document", s.Id)
	}

	doc, err := json.Marshal(s.Session)
	if err != nil {
		return nil, fmt.Errorf("chat session %s: encode document: %w", s.Id, err)
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.ChatSession{
		Id:        s.Id,
		State:     string(s.Session.State),
		Document:  doc,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}, nil
}

func validState(state store.ChatState) bool {
	for _, known := range store.States() {
		if state == known {
			return true
		}
	}
	return false
}
