package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/meetscribe/summarizer/internal/client"
	"github.com/meetscribe/summarizer/internal/config"
	"github.com/meetscribe/summarizer/internal/handler"
	"github.com/meetscribe/summarizer/internal/logger"
	"github.com/meetscribe/summarizer/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	logg := logger.New(cfg.Log.Level)

	transcriber := client.NewTranscribeClient(awsCfg, &cfg.Transcribe)
	ingestService := service.NewIngestService(transcriber, cfg, logg)
	h := handler.NewIngestHandler(ingestService, logg)

	lambda.Start(h.Handle)
}
