package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"

	"github.com/meetscribe/summarizer/internal/client"
	"github.com/meetscribe/summarizer/internal/config"
	"github.com/meetscribe/summarizer/internal/handler"
	"github.com/meetscribe/summarizer/internal/logger"
	"github.com/meetscribe/summarizer/internal/model"
	"github.com/meetscribe/summarizer/internal/service"
)

// replay invokes a handler locally with a sample or recorded event, outside
// the Lambda runtime. Point AWS_ENDPOINT_URL at a local S3-compatible stack
// to keep everything off the real account.
func main() {
	var (
		fn     = flag.String("fn", "ingest", "handler to invoke: ingest or summarize")
		file   = flag.String("file", "", "path to a recorded JSON event; a sample is built when empty")
		bucket = flag.String("bucket", "", "bucket for the sample ingest event (defaults to OUTPUT_BUCKET)")
		key    = flag.String("key", "source/standup.mp3", "object key for the sample ingest event")
		job    = flag.String("job", "", "job name for the sample summarize event")
		status = flag.String("status", "COMPLETED", "job status for the sample summarize event")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	awsCfg, err := loadAWSConfig(ctx)
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	logg := logger.New(cfg.Log.Level)

	switch *fn {
	case "ingest":
		if *bucket == "" {
			*bucket = cfg.Storage.Bucket
		}
		event, err := ingestEvent(*file, *bucket, *key)
		if err != nil {
			log.Fatalf("Failed to build event: %v", err)
		}

		transcriber := client.NewTranscribeClient(awsCfg, &cfg.Transcribe)
		h := handler.NewIngestHandler(service.NewIngestService(transcriber, cfg, logg), logg)
		report(h.Handle(ctx, event))

	case "summarize":
		jobName := *job
		if jobName == "" {
			jobName = cfg.Transcribe.JobPrefix + "-replay"
		}
		event, err := summarizeEvent(*file, jobName, *status)
		if err != nil {
			log.Fatalf("Failed to build event: %v", err)
		}

		store := client.NewS3Client(awsCfg, &cfg.Storage)
		transcriber := client.NewTranscribeClient(awsCfg, &cfg.Transcribe)
		generator := client.NewBedrockClient(awsCfg, &cfg.Bedrock, logg)
		svc := service.NewSummarizeService(store, transcriber, generator, logg)
		h := handler.NewSummarizeHandler(svc, validator.New(), cfg.Transcribe.JobPrefix, logg)
		report(h.Handle(ctx, event))

	default:
		log.Fatalf("Unknown handler %q, want ingest or summarize", *fn)
	}
}

// loadAWSConfig honors AWS_ENDPOINT_URL so the handlers can run against a
// local stack with static credentials.
func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	endpoint := os.Getenv("AWS_ENDPOINT_URL")
	if endpoint == "" {
		return awsconfig.LoadDefaultConfig(ctx)
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint}, nil
	})

	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
}

func ingestEvent(file, bucket, key string) (events.S3Event, error) {
	var event events.S3Event
	if file != "" {
		return event, readEvent(file, &event)
	}

	event.Records = []events.S3EventRecord{
		{
			EventSource: "aws:s3",
			EventName:   "ObjectCreated:Put",
			S3: events.S3Entity{
				Bucket: events.S3Bucket{Name: bucket},
				Object: events.S3Object{Key: key},
			},
		},
	}
	return event, nil
}

func summarizeEvent(file, jobName, status string) (events.CloudWatchEvent, error) {
	var event events.CloudWatchEvent
	if file != "" {
		return event, readEvent(file, &event)
	}

	detail, err := json.Marshal(model.JobStateChange{
		JobName:   jobName,
		JobStatus: model.JobStatus(status),
	})
	if err != nil {
		return event, err
	}

	event.Source = model.TranscribeEventSource
	event.DetailType = model.TranscribeJobStateDetail
	event.Detail = detail
	return event, nil
}

func readEvent(file string, out interface{}) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func report(err error) {
	if err != nil {
		log.Fatalf("Handler returned error: %v", err)
	}
	fmt.Println("handler returned without error")
}
