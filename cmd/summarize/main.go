package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-playground/validator/v10"

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
	validate := validator.New()

	store := client.NewS3Client(awsCfg, &cfg.Storage)
	transcriber := client.NewTranscribeClient(awsCfg, &cfg.Transcribe)
	generator := client.NewBedrockClient(awsCfg, &cfg.Bedrock, logg)

	summarizeService := service.NewSummarizeService(store, transcriber, generator, logg)
	h := handler.NewSummarizeHandler(summarizeService, validate, cfg.Transcribe.JobPrefix, logg)

	lambda.Start(h.Handle)
}
