package main

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
	"github.com/yanqian/smart-wardrobe/internal/infra/archive"
	"github.com/yanqian/smart-wardrobe/internal/infra/config"
	"github.com/yanqian/smart-wardrobe/internal/infra/drive"
	"github.com/yanqian/smart-wardrobe/internal/infra/imageprep"
	"github.com/yanqian/smart-wardrobe/internal/infra/lookbook"
	"github.com/yanqian/smart-wardrobe/internal/infra/outfitstore"
	"github.com/yanqian/smart-wardrobe/internal/infra/wardrobeapi"
	httpiface "github.com/yanqian/smart-wardrobe/internal/interface/http"
	"github.com/yanqian/smart-wardrobe/internal/interface/view"
	"github.com/yanqian/smart-wardrobe/pkg/logger"
)

func provideLoggerOptions(cfg *config.Config) logger.Options {
	return logger.Options{Level: cfg.Log.Level, File: cfg.Log.File}
}

func provideControllerConfig(cfg *config.Config) wardrobe.Config {
	return wardrobe.Config{
		UserID:           cfg.Service.UserID,
		SuggestionCount:  cfg.UI.SuggestionCount,
		ProgressStep:     cfg.UI.ProgressStep,
		ProgressInterval: cfg.UI.ProgressInterval,
		WelcomeDelay:     cfg.UI.WelcomeDelay,
		WelcomeMessage:   cfg.UI.WelcomeMessage,
	}
}

func provideGateway(cfg *config.Config) *wardrobeapi.Client {
	return wardrobeapi.NewClient(cfg.Service.BaseURL, cfg.Service.UserID, cfg.Service.RequestTimeout)
}

func provideRenderer(cfg *config.Config, page *view.Page) *view.Renderer {
	return view.NewRenderer(page, cfg.Service.BaseURL)
}

func provideOutfitStore(cfg *config.Config, logger *slog.Logger) wardrobe.OutfitStore {
	fallback := func() wardrobe.OutfitStore { return outfitstore.NewMemoryStore(cfg.Outfits.TTL) }
	if cfg.Outfits.Store != config.OutfitStoreValkey {
		return fallback()
	}
	opt, err := buildValkeyOptions(cfg.Outfits.ValkeyAddr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return fallback()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return fallback()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return fallback()
	}
	logger.Info("outfit valkey store enabled", "addr", cfg.Outfits.ValkeyAddr)
	return outfitstore.NewValkeyStore(client, "wardrobe:"+cfg.Service.UserID, cfg.Outfits.TTL)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideExtensions(cfg *config.Config, logger *slog.Logger) wardrobe.Extensions {
	var ext wardrobe.Extensions
	if opt := cfg.Upload.Optimize; opt.Enabled {
		ext.Optimizer = imageprep.NewOptimizer(opt.MaxDimension, opt.Quality)
	}
	if store := provideArchive(cfg.Upload.Archive, logger); store != nil {
		ext.Archive = store
	}
	if cfg.Drive.Enabled {
		src, err := drive.NewSource(context.Background(), cfg.Drive.CredentialsFile)
		if err != nil {
			logger.Error("drive import disabled", "error", err)
		} else {
			ext.Images = src
		}
	}
	return ext
}

func provideArchive(cfg config.ArchiveConfig, logger *slog.Logger) wardrobe.ObjectStorage {
	if !cfg.Enabled {
		return nil
	}
	store, err := archive.NewS3Storage(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.Bucket, cfg.Region, logger)
	if err != nil {
		logger.Warn("s3 archive unavailable, uploads will not be archived", "error", err)
		return nil
	}
	logger.Info("upload archive enabled", "bucket", cfg.Bucket)
	return store
}

func provideLookbookExporter(cfg *config.Config, logger *slog.Logger) httpiface.LookbookExporter {
	if !cfg.Lookbook.Enabled {
		return nil
	}
	return lookbook.NewExporter(cfg.Lookbook.ChromePath, cfg.Lookbook.Timeout, logger)
}

func provideHandlerOptions(cfg *config.Config) httpiface.Options {
	return httpiface.Options{
		DriveEnabled:   cfg.Drive.Enabled,
		LookbookURL:    lookbookURL(cfg),
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
	}
}

func lookbookURL(cfg *config.Config) string {
	if base := strings.TrimRight(strings.TrimSpace(cfg.Lookbook.PublicURL), "/"); base != "" {
		return base + "/lookbook"
	}
	host, port, err := net.SplitHostPort(cfg.HTTP.Address)
	if err != nil {
		return "http://" + cfg.HTTP.Address + "/lookbook"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + "/lookbook"
}
