package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iamhamptom/foodfriend/internal/entity"
	"github.com/Iamhamptom/foodfriend/internal/model"
	"github.com/Iamhamptom/foodfriend/pkg/store"
)

func validSession() *store.Session {
	return &store.Session{
		ID: uuid.NewString(),
		Messages: []store.Message{
			{ID: "m1", Role: store.RoleAssistant, Content: "Hi!", Type: store.TypeText, Timestamp: 1},
		},
		State:       store.StateReady,
		UserProfile: store.UserProfile{Name: "Alice", ConnectedStores: []string{}, Permissions: []string{}},
		Cart:        []store.CartItem{},
	}
}

func TestChatSessionRoundTrip(t *testing.T) {
	m := NewChatMapper()
	session := validSession()
	id := uuid.MustParse(session.ID)

	mod, err := m.ChatSessionToModel(&entity.ChatSession{
		Id:        id,
		State:     session.State,
		Session:   session,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, string(store.StateReady), mod.State)

	ent, err := m.ChatSessionToEntity(mod)
	require.NoError(t, err)
	require.NotNil(t, ent.Session)
	assert.Equal(t, session.ID, ent.Session.ID)
	assert.Equal(t, store.StateReady, ent.Session.State)
	assert.Equal(t, "Alice", ent.Session.UserProfile.Name)
	assert.Len(t, ent.Session.Messages, 1)
}

func TestChatSessionToEntityRejectsMissingFields(t *testing.T) {
	m := NewChatMapper()

	tests := []struct {
		name string
		doc  map[string]interface{}
	}{
		{
			name: "missing state",
			doc: map[string]interface{}{
				"id": "s1", "messages": []interface{}{}, "userProfile": map[string]interface{}{},
			},
		},
		{
			name: "missing messages",
			doc: map[string]interface{}{
				"id": "s1", "state": "READY", "userProfile": map[string]interface{}{},
			},
		},
		{
			name: "missing userProfile",
			doc: map[string]interface{}{
				"id": "s1", "state": "READY", "messages": []interface{}{},
			},
		},
		{
			name: "unknown state",
			doc: map[string]interface{}{
				"id": "s1", "state": "LIMBO", "messages": []interface{}{},
				"userProfile": map[string]interface{}{},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.doc)
			require.NoError(t, err)

			_, err = m.ChatSessionToEntity(&model.ChatSession{
				Id:       uuid.New(),
				State:    "READY",
				Document: raw,
			})
			assert.Error(t, err)
		})
	}
}

func TestChatSessionToEntityRejectsCorruptJSON(t *testing.T) {
	m := NewChatMapper()

	_, err := m.ChatSessionToEntity(&model.ChatSession{
		Id:       uuid.New(),
		Document: []byte(`{"state": `),
	})
	assert.Error(t, err)
}

func TestChatSessionToModelRejectsNilDocument(t *testing.T) {
	m := NewChatMapper()

	_, err := m.ChatSessionToModel(&entity.ChatSession{Id: uuid.New()})
	assert.Error(t, err)
}
