package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Log        LogConfig
	Storage    StorageConfig
	Transcribe TranscribeConfig
	Bedrock    BedrockConfig
}

type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

type StorageConfig struct {
	// Bucket holds the source media and receives every pipeline artifact.
	Bucket string `validate:"required"`
	// PathStyle forces path-style addressing for S3-compatible local stacks.
	PathStyle bool
}

// jobPrefixPattern is the character set Transcribe accepts in job names.
var jobPrefixPattern = regexp.MustCompile(`^[0-9A-Za-z._-]+$`)

type TranscribeConfig struct {
	JobPrefix    string   `validate:"required"`
	MediaFormats []string `validate:"required,min=1"`
	MaxSpeakers  int      `validate:"gte=2,lte=30"`
	// IdentifyLanguages lets the transcription service detect the spoken
	// languages; LanguageCode is used when detection is turned off.
	IdentifyLanguages bool
	LanguageCode      string `validate:"required_if=IdentifyLanguages false"`
}

type BedrockConfig struct {
	ModelID          string  `validate:"required"`
	AnthropicVersion string  `validate:"required"`
	MaxTokens        int     `validate:"gte=1"`
	Temperature      float64 `validate:"gte=0,lte=1"`
	TopP             float64 `validate:"gte=0,lte=1"`
	TopK             int     `validate:"gte=0"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("log.level", "LOG_LEVEL")
	_ = viper.BindEnv("storage.bucket", "OUTPUT_BUCKET")
	_ = viper.BindEnv("storage.path_style", "S3_PATH_STYLE")
	_ = viper.BindEnv("transcribe.job_prefix", "JOB_NAME_PREFIX")
	_ = viper.BindEnv("transcribe.media_formats", "MEDIA_FORMATS")
	_ = viper.BindEnv("transcribe.max_speakers", "MAX_SPEAKER_LABELS")
	_ = viper.BindEnv("transcribe.identify_languages", "IDENTIFY_MULTIPLE_LANGUAGES")
	_ = viper.BindEnv("transcribe.language_code", "LANGUAGE_CODE")
	_ = viper.BindEnv("bedrock.model_id", "BEDROCK_MODEL_ID")
	_ = viper.BindEnv("bedrock.anthropic_version", "BEDROCK_ANTHROPIC_VERSION")
	_ = viper.BindEnv("bedrock.max_tokens", "BEDROCK_MAX_TOKENS")
	_ = viper.BindEnv("bedrock.temperature", "BEDROCK_TEMPERATURE")
	_ = viper.BindEnv("bedrock.top_p", "BEDROCK_TOP_P")
	_ = viper.BindEnv("bedrock.top_k", "BEDROCK_TOP_K")

	// Defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("storage.path_style", false)
	viper.SetDefault("transcribe.job_prefix", "summarizer")
	viper.SetDefault("transcribe.media_formats", []string{"mp3", "mp4", "wav", "flac", "ogg", "amr", "webm", "m4a"})
	viper.SetDefault("transcribe.max_speakers", 10)
	viper.SetDefault("transcribe.identify_languages", true)
	viper.SetDefault("transcribe.language_code", "en-US")

	// Bedrock defaults
	viper.SetDefault("bedrock.model_id", "anthropic.claude-3-sonnet-20240229-v1:0")
	viper.SetDefault("bedrock.anthropic_version", "bedrock-2023-05-31")
	viper.SetDefault("bedrock.max_tokens", 2000)
	viper.SetDefault("bedrock.temperature", 1.0)
	viper.SetDefault("bedrock.top_p", 0.999)
	viper.SetDefault("bedrock.top_k", 40)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Log: LogConfig{
			Level: viper.GetString("log.level"),
		},
		Storage: StorageConfig{
			Bucket:    viper.GetString("storage.bucket"),
			PathStyle: viper.GetBool("storage.path_style"),
		},
		Transcribe: TranscribeConfig{
			JobPrefix:         viper.GetString("transcribe.job_prefix"),
			MediaFormats:      viper.GetStringSlice("transcribe.media_formats"),
			MaxSpeakers:       viper.GetInt("transcribe.max_speakers"),
			IdentifyLanguages: viper.GetBool("transcribe.identify_languages"),
			LanguageCode:      viper.GetString("transcribe.language_code"),
		},
		Bedrock: BedrockConfig{
			ModelID:          viper.GetString("bedrock.model_id"),
			AnthropicVersion: viper.GetString("bedrock.anthropic_version"),
			MaxTokens:        viper.GetInt("bedrock.max_tokens"),
			Temperature:      viper.GetFloat64("bedrock.temperature"),
			TopP:             viper.GetFloat64("bedrock.top_p"),
			TopK:             viper.GetInt("bedrock.top_k"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if !jobPrefixPattern.MatchString(cfg.Transcribe.JobPrefix) {
		return nil, fmt.Errorf("invalid configuration: job prefix %q has characters outside [0-9A-Za-z._-]", cfg.Transcribe.JobPrefix)
	}

	return cfg, nil
}
