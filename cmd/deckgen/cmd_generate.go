package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appdeck "github.com/coralpitch/pitchdeck/internal/application/deck"
	"github.com/coralpitch/pitchdeck/internal/config"
	"github.com/coralpitch/pitchdeck/internal/infra/ai/elevenlabs"
	"github.com/coralpitch/pitchdeck/internal/infra/ai/mistral"
	openaiimg "github.com/coralpitch/pitchdeck/internal/infra/ai/openai"
	"github.com/coralpitch/pitchdeck/internal/infra/storage"
	"github.com/coralpitch/pitchdeck/internal/logger"
)

var generateFlags struct {
	outDir     string
	configPath string
	upload     bool
}

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate pitch.json, logo.png and pitch.mp3 for a topic",
	Long: `Generate asks the analysis model for a structured pitch, renders a logo
with the image service and narrates the pitch with the speech service.

API keys are read from the environment (or a .env file):
MISTRAL_API_KEY, ELEVENLABS_API_KEY and OPENAI_API_KEY.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&generateFlags.outDir, "output", "o", "output", "Output directory for deck artifacts")
	f.StringVar(&generateFlags.configPath, "config", "config.yaml", "Path to config file")
	f.BoolVar(&generateFlags.upload, "upload", false, "Upload artifacts to object storage")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	log := logger.New()

	cfg, err := config.Load(generateFlags.configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		cfg = config.Default()
	}

	keys := config.KeysFromEnv()
	if err := keys.RequireDeck(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	aiTimeout := time.Duration(cfg.Analysis.TimeoutSeconds) * time.Second
	svc := &appdeck.Service{
		Analyzer: mistral.NewClient(keys.Mistral, cfg.Analysis.BaseURL, cfg.Analysis.Model, aiTimeout),
		Images:   openaiimg.NewImageClient(keys.OpenAI, aiTimeout),
		Voice: elevenlabs.NewClient(keys.ElevenLabs,
			elevenlabs.WithBaseURL(cfg.Speech.BaseURL),
			elevenlabs.WithVoiceID(cfg.Speech.VoiceID),
			elevenlabs.WithTimeout(time.Duration(cfg.Speech.TimeoutSeconds)*time.Second),
		),
		Log: log,
	}

	if generateFlags.upload {
		if cfg.Minio.Endpoint == "" {
			return fmt.Errorf("%w: --upload requires minio settings in config", config.ErrConfiguration)
		}
		store, err := storage.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return err
		}
		svc.Artifacts = store
	}

	res, err := svc.Generate(ctx, args[0], generateFlags.outDir, generateFlags.upload)
	if err != nil {
		return err
	}

	fmt.Printf("pitch:     %s\n", res.PitchPath)
	fmt.Printf("logo:      %s\n", res.LogoPath)
	fmt.Printf("narration: %s\n", res.AudioPath)
	for _, url := range res.URLs {
		fmt.Printf("uploaded:  %s\n", url)
	}
	return nil
}
