package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/Iamhamptom/foodfriend/internal/config"
	"github.com/Iamhamptom/foodfriend/internal/controller"
	"github.com/Iamhamptom/foodfriend/internal/handler"
	"github.com/Iamhamptom/foodfriend/internal/pkg/logger"
	"github.com/Iamhamptom/foodfriend/internal/repository/memory"
	"github.com/Iamhamptom/foodfriend/internal/repository/unitofwork"
	"github.com/Iamhamptom/foodfriend/internal/service"
	"github.com/Iamhamptom/foodfriend/internal/websocket"
	"github.com/Iamhamptom/foodfriend/pkg/catalog"
	"github.com/Iamhamptom/foodfriend/pkg/dialogue"
	"github.com/Iamhamptom/foodfriend/pkg/llm/factory"
	"github.com/Iamhamptom/foodfriend/pkg/payment"
	"github.com/Iamhamptom/foodfriend/pkg/planner"
	"github.com/Iamhamptom/foodfriend/pkg/shoppinglist"

	pktNats "github.com/Iamhamptom/foodfriend/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// turnTopic is the in-process bus topic carrying completed chat turns
// from the chat service to the websocket consumer.
const turnTopic = "chat_turn_completed"

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	StoreController   controller.IStoreController
	PlannerController controller.IPlannerController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Domain Core
	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	registry := catalog.NewRegistry()
	engine := dialogue.NewEngine(registry)
	mealPlanner := planner.NewPlanner(llmProvider)
	pricer := shoppinglist.NewPricer(registry)

	// Payment link generation is optional. Without a server key the
	// checkout summary keeps its fallback link.
	var linkGenerator payment.LinkGenerator
	if cfg.Payment.MidtransServerKey != "" {
		linkGenerator = payment.NewMidtransGenerator(cfg.Payment.MidtransServerKey, cfg.Payment.Production)
		log.Printf("[INFO] Payment links enabled via Midtrans Snap")
	} else {
		linkGenerator = payment.NoopGenerator{}
	}

	// Initialize In-Memory Session Storage
	sessionCache := memory.NewSessionRepository(time.Duration(cfg.App.SessionCacheTTLMin) * time.Minute)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, turnTopic)
	consumerService := service.NewConsumerService(pubSub, turnTopic, wsHub)

	chatService := service.NewChatService(
		engine,
		uowFactory,
		sessionCache,
		publisherService,
		natsPub,
		linkGenerator,
		cfg.App.SessionTokenSecret,
		sysLogger,
	)
	catalogService := service.NewCatalogService(registry)
	plannerService := service.NewPlannerService(mealPlanner, pricer, uowFactory, sysLogger)

	// Handler
	chatStreamHandler := handler.NewChatStreamHandler(wsHub, cfg.App.SessionTokenSecret, sysLogger)

	// 5. Controllers
	return &Container{
		ChatController:    controller.NewChatController(chatService),
		StoreController:   controller.NewStoreController(catalogService),
		PlannerController: controller.NewPlannerController(plannerService),

		ConsumerService:   consumerService,
		ChatStreamHandler: chatStreamHandler,
		WebSocketHub:      wsHub,
	}
}
