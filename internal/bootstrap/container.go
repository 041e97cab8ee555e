package bootstrap

import (
	"context"
	"log"

	"prd-studio-be/internal/config"
	"prd-studio-be/internal/controller"
	"prd-studio-be/internal/handler"
	"prd-studio-be/internal/pkg/logger"
	"prd-studio-be/internal/pkg/mailer"
	"prd-studio-be/internal/repository/memory"
	"prd-studio-be/internal/repository/unitofwork"
	"prd-studio-be/internal/service"
	"prd-studio-be/internal/websocket"
	"prd-studio-be/pkg/aigen"
	"prd-studio-be/pkg/canvas"
	"prd-studio-be/pkg/llm/breaker"
	"prd-studio-be/pkg/llm/factory"

	pktNats "prd-studio-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	DocumentController controller.IDocumentController
	ReviewController   controller.IReviewController
	ChatController     controller.IChatController
	TemplateController controller.ITemplateController
	CanvasController   controller.ICanvasController

	// Background services (run by main)
	NotifierService service.INotifierService

	// Live sync infrastructure
	SyncHandler  *handler.SyncHandler
	WebSocketHub *websocket.Hub
	CanvasBus    *canvas.Bus

	// Seeding (used by cmd/seed)
	TemplateService service.ITemplateService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderEmail,
	)

	// 2. AI stack. The provider sits behind a circuit breaker so a dead
	// upstream fails fast instead of stalling every request.
	apiKey := cfg.Ai.GeminiAPIKey
	if cfg.Ai.Provider == "huggingface" {
		apiKey = cfg.Ai.HuggingFaceAPIKey
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)
	generator := aigen.NewGenerator(breaker.Wrap(llmProvider, cfg.Ai.Provider))

	// 3. In-memory state
	generationState := memory.NewGenerationStateRepository()
	canvasState := memory.NewCanvasStateRepository()

	// 4. Infrastructure
	canvasBus := canvas.NewBus(watermill.NewStdLogger(false, false))

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
		natsSub = nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/delivery.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	authService := service.NewAuthService(uowFactory)
	documentService := service.NewDocumentService(uowFactory, generator, emailService, natsPub, sysLogger)
	reviewService := service.NewReviewService(uowFactory, generator, natsPub, sysLogger)
	chatService := service.NewChatService(uowFactory, generator, generationState, sysLogger)
	templateService := service.NewTemplateService(uowFactory, natsPub, sysLogger)
	canvasService := service.NewCanvasService(uowFactory, canvasBus, canvasState, sysLogger)

	var notifierService service.INotifierService
	if natsSub != nil {
		notifierService = service.NewNotifierService(natsSub, wsHub, wsLogger)
	}

	// 6. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		DocumentController: controller.NewDocumentController(documentService),
		ReviewController:   controller.NewReviewController(reviewService),
		ChatController:     controller.NewChatController(chatService),
		TemplateController: controller.NewTemplateController(templateService),
		CanvasController:   controller.NewCanvasController(canvasService),

		NotifierService: notifierService,
		SyncHandler:     handler.NewSyncHandler(wsHub, canvasBus, wsLogger),
		WebSocketHub:    wsHub,
		CanvasBus:       canvasBus,
		TemplateService: templateService,
	}
}
