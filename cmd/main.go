package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardgen/internal/clients"
	"cardgen/internal/config"
	"cardgen/internal/fakedata"
	"cardgen/internal/logger"
	"cardgen/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	if envErr != nil {
		log.Debug().Msg("no .env file found, using system env or defaults")
	}

	// cancelled on interrupt so a slow upload does not hang the run
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, log)

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("generation failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AppConfig) error {
	log := logger.FromContext(ctx)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	gen, err := service.NewGenerator(fakedata.New(seed), config.DefaultProfile(), time.Now(), log)
	if err != nil {
		return err
	}

	storage, err := clients.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		return err
	}

	var uploader service.ObjectUploader
	if cfg.S3Enabled() {
		uploader = mustInitS3(ctx, cfg.S3, log)
	}

	var tracker *service.StatusTracker
	if cfg.RedisEnabled() {
		redisClient := mustInitRedis(ctx, cfg.Redis, log)
		defer redisClient.Close()
		tracker = service.NewStatusTracker(redisClient)
	}

	log.Info().Uint64("seed", seed).Int("entities", config.EntityCount).Msg("generating dataset")
	ds := gen.Generate(config.EntityCount)

	exporter := service.NewExportService(storage, uploader, tracker, log)
	status, err := exporter.Export(ctx, ds, service.ExportOptions{Seed: seed, WriteXLSX: cfg.ExportXLSX})
	if err != nil {
		return err
	}

	log.Info().Strs("files", status.Files).Msg("files generated")
	return nil
}

func mustInitS3(ctx context.Context, cfg config.S3Config, log zerolog.Logger) *clients.S3Client {
	client, err := clients.NewS3Client(ctx, clients.S3Config{
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Bucket:          cfg.Bucket,
		UseSSL:          cfg.UseSSL,
		Region:          cfg.Region,
		Prefix:          cfg.Prefix,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("s3 init error")
	}
	return client
}

func mustInitRedis(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) *clients.RedisClient {
	client, err := clients.NewRedisClient(ctx, clients.RedisConfig{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		MaxRetries:  cfg.MaxRetries,
		DialTimeout: time.Duration(cfg.DialTimeout) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		Prefix:      cfg.Prefix,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis init error")
	}
	return client
}
