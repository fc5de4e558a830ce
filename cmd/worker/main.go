package main

import (
	"context"
	"fmt"
	"log"

	"github.com/streadway/amqp"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/talentgate/resume-screener/internal/config"
	"github.com/talentgate/resume-screener/internal/database"
	"github.com/talentgate/resume-screener/internal/queue"
	"github.com/talentgate/resume-screener/internal/services"
)

func main() {
	cfg := config.Load()
	if cfg.GeminiAPIKey == "" {
		log.Fatal("empty GEMINI_API_KEY in environment")
	}

	db := database.Connect(cfg.DatabaseURL)

	// The LLM client is built here, once, and handed to the service.
	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel(cfg.GeminiModel),
	)
	if err != nil {
		log.Fatal("Failed to create Gemini client:", err)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("error connecting to RabbitMQ: %v", err)
	}
	defer conn.Close()

	scoringService := services.NewScoringService(db, llm, queue.NewPublisher(conn))

	fmt.Println("Starting 3 workers consumer pool")
	queue.StartConsumerPool(cfg.RabbitMQURL, 3, scoringService.ProcessTask)
}
