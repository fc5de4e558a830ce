package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/streadway/amqp"

	"github.com/talentgate/resume-screener/internal/config"
	"github.com/talentgate/resume-screener/internal/database"
	"github.com/talentgate/resume-screener/internal/handlers"
	"github.com/talentgate/resume-screener/internal/queue"
	"github.com/talentgate/resume-screener/internal/services"
	"github.com/talentgate/resume-screener/internal/storage"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()

	// 2. Database Connection
	db := database.Connect(cfg.DatabaseURL)

	// 3. Object Store for resume binaries
	store, err := storage.New(context.Background(), storage.Config{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
	})
	if err != nil {
		log.Fatal("Failed to create object store:", err)
	}

	// 4. Message Broker
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatal("error connecting to RabbitMQ:", err)
	}
	defer conn.Close()
	publisher := queue.NewPublisher(conn)

	// 5. Initialize Core Services (Dependencies)
	postingService := services.NewPostingService(db)
	submissionService := services.NewSubmissionService(db, store, publisher)

	// 6. Initialize Handlers
	postingHandler := handlers.NewPostingHandler(postingService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, postingService)

	// 7. Setup Router & CORS
	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // For development only
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Access-Token"}
	r.Use(cors.New(corsConfig))

	// 8. Define Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/postings", postingHandler.CreatePosting)
		api.GET("/postings", postingHandler.ListPostings)
		api.GET("/postings/:id", postingHandler.GetPosting)

		api.POST("/postings/:id/submissions", submissionHandler.CreateSubmission)
		api.GET("/submissions/:ref", submissionHandler.GetSubmission)
		api.GET("/submissions/:ref/resume", submissionHandler.DownloadResume)
	}

	log.Println("🚀 Server starting on port " + cfg.Port + "...")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
