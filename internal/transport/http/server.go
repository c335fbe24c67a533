package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/ai"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/bootstrap"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/cache"
	rabbitmqClient "github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/platform/rabbitmq"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/repository"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/study"
	"github.com/abhijeetforprojectonly2000-ai/smartstudy/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	cfg := app.Config

	documentRepo := repository.NewDocumentRepository(app.MySQL)
	quizRepo := repository.NewQuizRepository(app.MySQL)
	attemptRepo := repository.NewAttemptRepository(app.MySQL)
	chatRepo := repository.NewChatRepository(app.MySQL)

	historyCache := cache.NewHistoryCache(
		app.Redis,
		time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(cfg.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)
	eventPublisher := rabbitmqClient.NewEventPublisher(app.MQConn, cfg.RabbitMQ.StudyEventQueue)
	completer := ai.NewClient(ai.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Timeout:     time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	})

	documentService := study.NewDocumentService(documentRepo, eventPublisher, app.Log, cfg.Upload.Dir)
	quizService := study.NewQuizService(
		documentRepo,
		quizRepo,
		attemptRepo,
		completer,
		eventPublisher,
		app.Log,
		cfg.Study.ContextChars,
		cfg.Study.AnswerKeywordOverlap,
		cfg.Study.MaxQuizQuestions,
	)
	chatService := study.NewChatService(
		chatRepo,
		documentRepo,
		completer,
		historyCache,
		eventPublisher,
		app.Log,
		cfg.Study.CitationTopK,
		cfg.Study.SnippetMaxChars,
		cfg.LLM.MaxContextMessage,
	)
	progressService := study.NewProgressService(attemptRepo, app.Log, cfg.Study.StrengthThreshold, cfg.Study.WeaknessThreshold)
	recommendService := study.NewRecommendService(documentRepo, completer, app.Log, cfg.Study.RecommendContextChars)

	documentHandler := handler.NewDocumentHandler(documentService, cfg.MaxUploadBytes())
	quizHandler := handler.NewQuizHandler(quizService)
	chatHandler := handler.NewChatHandler(chatService)
	progressHandler := handler.NewProgressHandler(progressService)
	recommendHandler := handler.NewRecommendHandler(recommendService)

	api := router.Group("/api")

	pdfGroup := api.Group("/pdf")
	pdfGroup.POST("/upload", documentHandler.Upload)
	pdfGroup.GET("/list", documentHandler.List)
	pdfGroup.GET("/:id", documentHandler.GetFile)
	pdfGroup.GET("/:id/text", documentHandler.GetText)
	pdfGroup.DELETE("/:id", documentHandler.Delete)

	quizGroup := api.Group("/quiz")
	quizGroup.POST("/generate", quizHandler.Generate)
	quizGroup.POST("/submit", quizHandler.Submit)

	chatGroup := api.Group("/chat")
	chatGroup.POST("", chatHandler.Ask)
	chatGroup.GET("/history", chatHandler.History)
	chatGroup.GET("/:id", chatHandler.Get)
	chatGroup.DELETE("/:id", chatHandler.Delete)

	api.POST("/recommend/youtube", recommendHandler.YouTube)
	api.GET("/progress", progressHandler.Get)

	return router
}
