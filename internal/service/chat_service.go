package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Iamhamptom/foodfriend/internal/dto"
	"github.com/Iamhamptom/foodfriend/internal/entity"
	"github.com/Iamhamptom/foodfriend/internal/pkg/logger"
	"github.com/Iamhamptom/foodfriend/internal/pkg/serverutils"
	"github.com/Iamhamptom/foodfriend/internal/repository/memory"
	"github.com/Iamhamptom/foodfriend/internal/repository/specification"
	"github.com/Iamhamptom/foodfriend/internal/repository/unitofwork"
	"github.com/Iamhamptom/foodfriend/pkg/dialogue"
	"github.com/Iamhamptom/foodfriend/pkg/events"
	pktNats "github.com/Iamhamptom/foodfriend/pkg/nats"
	"github.com/Iamhamptom/foodfriend/pkg/payment"
	"github.com/Iamhamptom/foodfriend/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionTokenTTL = 24 * time.Hour

type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	SendMessage(ctx context.Context, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.GetSessionResponse, error)
}

type chatService struct {
	engine           *dialogue.Engine
	uowFactory       unitofwork.RepositoryFactory
	sessionCache     *memory.SessionRepository
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	linkGenerator    payment.LinkGenerator
	tokenSecret      string
	log              logger.ILogger
}

func NewChatService(
	engine *dialogue.Engine,
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *memory.SessionRepository,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	linkGenerator payment.LinkGenerator,
	tokenSecret string,
	log logger.ILogger,
) IChatService {
	if linkGenerator == nil {
		linkGenerator = payment.NoopGenerator{}
	}
	return &chatService{
		engine:           engine,
		uowFactory:       uowFactory,
		sessionCache:     sessionCache,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		linkGenerator:    linkGenerator,
		tokenSecret:      tokenSecret,
		log:              log,
	}
}

func (s *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := s.engine.NewSession()

	id, err := uuid.Parse(session.ID)
	if err != nil {
		return nil, err
	}

	ent := &entity.ChatSession{
		Id:        id,
		State:     session.State,
		Session:   session,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, ent); err != nil {
		return nil, err
	}
	s.sessionCache.Save(ent)

	token, err := serverutils.IssueSessionToken(s.tokenSecret, session.ID, sessionTokenTTL)
	if err != nil {
		return nil, err
	}

	s.log.Info("chat", "session created", map[string]interface{}{"session_id": session.ID})

	return &dto.CreateSessionResponse{
		Id:      id,
		Token:   token,
		Session: session,
	}, nil
}

func (s *chatService) SendMessage(ctx context.Context, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	ent, err := s.loadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "session not found")
	}

	prev := ent.Session
	prevCount := len(prev.Messages)
	cartHadItems := len(prev.Cart) > 0

	next := s.engine.Advance(prev, req.Message)

	paymentUrl := s.decoratePaymentLink(ctx, next)

	ent.Session = next
	ent.State = next.State

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Update(ctx, ent); err != nil {
		return nil, err
	}
	s.sessionCache.Save(ent)

	// User echo sits at prevCount; the reply is everything after it.
	var reply []store.Message
	if len(next.Messages) > prevCount+1 {
		reply = next.Messages[prevCount+1:]
	}

	s.publishTurn(ctx, sessionId, next, reply)
	s.publishCheckout(ctx, sessionId, next, cartHadItems)

	return &dto.SendMessageResponse{
		SessionId:  sessionId,
		State:      next.State,
		Reply:      reply,
		PaymentUrl: paymentUrl,
	}, nil
}

func (s *chatService) GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.GetSessionResponse, error) {
	ent, err := s.loadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, serverutils.NewApiError(fiber.StatusNotFound, "session not found")
	}

	return &dto.GetSessionResponse{
		Id:        ent.Id,
		State:     ent.State,
		Session:   ent.Session,
		CreatedAt: ent.CreatedAt,
		UpdatedAt: ent.UpdatedAt,
	}, nil
}

func (s *chatService) loadSession(ctx context.Context, sessionId uuid.UUID) (*entity.ChatSession, error) {
	if ent, found := s.sessionCache.Get(sessionId.String()); found {
		return ent, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ent, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if ent != nil {
		s.sessionCache.Save(ent)
	}
	return ent, nil
}

// decoratePaymentLink swaps the engine's placeholder store link on a checkout
// summary for a hosted payment URL. Failures keep the placeholder; checkout
// must not break because the gateway is down.
func (s *chatService) decoratePaymentLink(ctx context.Context, session *store.Session) string {
	last := session.LastMessage()
	if last == nil || last.Type != store.TypeCheckout || last.Data == nil || last.Data.Checkout == nil {
		return ""
	}

	linkIdx := -1
	for i, a := range last.Actions {
		if a.Kind == store.ActionLink {
			linkIdx = i
			break
		}
	}
	if linkIdx == -1 {
		return ""
	}

	url, err := s.linkGenerator.PaymentLink(ctx, payment.Order{
		ID:       last.ID,
		Store:    last.Data.Checkout.Store,
		Items:    last.Data.Checkout.Items,
		Total:    last.Data.Checkout.Total,
		Currency: session.UserProfile.Currency,
	})
	if err != nil {
		s.log.Warn("chat", "payment link generation failed", map[string]interface{}{
			"session_id": session.ID, "error": err.Error(),
		})
		return ""
	}
	if url == "" {
		return ""
	}

	last.Actions[linkIdx].LinkURL = url
	return url
}

func (s *chatService) publishTurn(ctx context.Context, sessionId uuid.UUID, session *store.Session, reply []store.Message) {
	if s.publisherService == nil {
		return
	}

	payload, err := json.Marshal(dto.SessionAdvancedMessage{
		SessionId: sessionId,
		State:     session.State,
		Reply:     reply,
	})
	if err != nil {
		s.log.Error("chat", "failed to encode turn message", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.log.Warn("chat", "failed to publish turn message", map[string]interface{}{"error": err.Error()})
	}

	if s.eventPublisher != nil {
		evt := events.NewSessionAdvanced(sessionId.String(), string(session.State), len(session.Messages))
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("chat", "failed to publish session event", map[string]interface{}{"error": err.Error()})
		}
	}
}

// publishCheckout emits ORDER_CHECKED_OUT when this turn drained a non-empty
// cart into a checkout summary.
func (s *chatService) publishCheckout(ctx context.Context, sessionId uuid.UUID, session *store.Session, cartHadItems bool) {
	if s.eventPublisher == nil || !cartHadItems || len(session.Cart) != 0 {
		return
	}
	last := session.LastMessage()
	if last == nil || last.Type != store.TypeCheckout || last.Data == nil || last.Data.Checkout == nil {
		return
	}

	checkout := last.Data.Checkout
	evt := events.NewOrderCheckedOut(sessionId.String(), checkout.Store, checkout.Total, len(checkout.Items))
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("chat", "failed to publish checkout event", map[string]interface{}{"error": err.Error()})
	}
}
