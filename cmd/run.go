package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"smarterdev/bot"
	"smarterdev/config"
	"smarterdev/domain/interfaces"
	"smarterdev/domain/services"
	"smarterdev/infrastructure"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting smarterdev bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize cache (optional)
	var cache interfaces.Cache
	var redisCache *infrastructure.RedisCache
	if cfg.RedisAddr != "" {
		log.Println("Connecting to Redis...")
		var err error
		redisCache, err = infrastructure.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		cache = redisCache
		log.Println("Redis connection established successfully")
	} else {
		log.Println("No Redis address configured, running without cache")
	}

	// Initialize event publisher (optional)
	var publisher interfaces.EventPublisher
	var natsPublisher *infrastructure.NATSEventPublisher
	if cfg.NATSServers != "" {
		log.Println("Connecting to NATS...")
		var err error
		natsPublisher, err = infrastructure.NewNATSEventPublisher(cfg.NATSServers)
		if err != nil {
			return fmt.Errorf("failed to connect to nats: %w", err)
		}
		publisher = natsPublisher
		log.Println("NATS connection established successfully")
	} else {
		log.Println("No NATS servers configured, events disabled")
		publisher = infrastructure.NewNoopEventPublisher()
	}

	// Initialize backend API client
	log.Println("Initializing backend API client...")
	apiClient := infrastructure.NewBackendAPIClient(cfg.BackendAPIURL, cfg.BackendAPIKey)

	// Initialize services
	log.Println("Initializing services...")
	bytesService := services.NewBytesService(apiClient, cache, publisher)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}
	discordBot, err := bot.New(botConfig, bytesService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if natsPublisher != nil {
		natsPublisher.Close()
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
