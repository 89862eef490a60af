package main

import (
	"fmt"
	"time"

	"dailypack/internal/catalog"
	"dailypack/internal/config"
	"dailypack/internal/domain"
	"dailypack/internal/notify"
	"dailypack/internal/provider"
	"dailypack/internal/repository/filesystem"
	"dailypack/internal/repository/gcs"
	"dailypack/internal/repository/postgres"
	"dailypack/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	day, err := resolveDay(cfg)
	if err != nil {
		return err
	}

	themes, err := loadThemes(cfg)
	if err != nil {
		return err
	}

	// Initialize repositories
	assets := filesystem.NewAssetRepo(cfg.ContentRoot)
	packs := filesystem.NewPackRepo(cfg.ContentRoot)

	// Initialize services
	imageProvider := provider.New(cfg.Provider, assets, provider.Options{Logger: logger})
	if _, disabled := imageProvider.(provider.Disabled); disabled {
		logger.Warn("Image provider has no API key or endpoint, every word uses the placeholder",
			zap.String("provider", string(cfg.Provider.Kind)),
		)
	}

	packService := service.NewPackService(
		catalog.NewSelector(themes, cfg.WordsPerDay, cfg.WordSampling == config.SamplingDate),
		service.NewImageService(imageProvider, assets, logger),
		service.NewAssembler(cfg.ChildName),
		assets,
		packs,
		logger,
	)

	if cfg.Database.Enabled {
		db, err := openLedger(cfg, logger)
		if err != nil {
			logger.Error("Run ledger unavailable, continuing without it", zap.Error(err))
		} else {
			defer db.Close()
			packService.WithLedger(postgres.NewRunRepo(db))
		}
	}

	if cfg.Publish.Bucket != "" {
		publisher, client, err := gcs.NewPublisher(ctx, cfg.Publish.Bucket, cfg.Publish.Prefix, cfg.ContentRoot, logger)
		if err != nil {
			logger.Error("Bucket publishing unavailable, continuing without it", zap.Error(err))
		} else {
			defer client.Close()
			packService.WithPublisher(publisher)
		}
	}

	if cfg.Notify.StepSummaryPath != "" {
		packService.WithNotifiers(notify.NewStepSummary(cfg.Notify.StepSummaryPath))
	}
	if cfg.Notify.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID, "", nil)
		if err != nil {
			logger.Error("Telegram notifications unavailable", zap.Error(err))
		} else {
			packService.WithNotifiers(tg)
		}
	}

	result, err := packService.Generate(ctx, day)
	if err != nil {
		return err
	}

	logger.Info("Daily pack ready",
		zap.String("date", result.Pack.Date),
		zap.String("theme", result.Pack.Theme),
		zap.String("path", result.Path),
	)
	return nil
}

// resolveDay honors --date, otherwise today in the configured zone
func resolveDay(cfg *config.Config) (domain.Day, error) {
	if dateFlag != "" {
		return domain.ParseDay(dateFlag)
	}
	return domain.ResolveDay(cfg.TimeZone, time.Now())
}

func loadThemes(cfg *config.Config) ([]domain.Theme, error) {
	if cfg.ThemesFile == "" {
		themes := catalog.Default()
		if err := catalog.Validate(themes, cfg.WordsPerDay); err != nil {
			return nil, fmt.Errorf("built-in theme catalog cannot supply WORDS_PER_DAY=%d: %w", cfg.WordsPerDay, err)
		}
		return themes, nil
	}

	themes, err := catalog.LoadFile(cfg.ThemesFile, cfg.WordsPerDay)
	if err != nil {
		return nil, err
	}
	logger.Info("Theme catalog loaded", zap.String("file", cfg.ThemesFile), zap.Int("themes", len(themes)))
	return themes, nil
}
