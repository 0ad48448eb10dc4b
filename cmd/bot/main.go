package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robuddie/robuddie/internal/application/guildconfig"
	"github.com/robuddie/robuddie/internal/application/verification"
	"github.com/robuddie/robuddie/internal/config"
	discordinfra "github.com/robuddie/robuddie/internal/infrastructure/discord"
	"github.com/robuddie/robuddie/internal/infrastructure/roblox"
	"github.com/robuddie/robuddie/internal/store"
	"github.com/robuddie/robuddie/internal/store/dynamo"
	"github.com/robuddie/robuddie/internal/store/memory"
	redisstore "github.com/robuddie/robuddie/internal/store/redis"
	discordtransport "github.com/robuddie/robuddie/internal/transport/discord"
	transporthttp "github.com/robuddie/robuddie/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Startup check: refuse to run without the two required secrets, before
	// any network activity.
	if cfg.DiscordToken == "" || cfg.DiscordAppID == "" {
		log.Fatal("FATAL: DISCORD_TOKEN or DISCORD_APP_ID is missing from the environment variables")
	}

	sessions, guilds := buildStores(cfg)

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("invalid bot token: %v", err)
	}
	// GuildMembers is required for role assignments.
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	verificationSvc := verification.NewService(verification.Deps{
		Sessions:     sessions,
		Guilds:       guilds,
		Profiles:     roblox.NewClient(cfg.RobloxBaseURL, cfg.RequestTimeout),
		Roles:        discordinfra.NewRoleDirectory(dg),
		Messenger:    discordinfra.NewMessenger(dg),
		PhrasePrefix: cfg.PhrasePrefix,
	})
	guildSvc := guildconfig.NewService(guilds)

	handler := discordtransport.NewHandler(discordtransport.Deps{
		Verification:     verificationSvc,
		Guilds:           guildSvc,
		Roles:            discordinfra.NewRoleDirectory(dg),
		VerifiedRoleName: cfg.VerifiedRoleName,
	})
	dg.AddHandler(handler.HandleInteraction)
	dg.AddHandler(func(s *discordgo.Session, _ *discordgo.Ready) {
		log.Printf("Success! Robuddie is online and logged in as %s", s.State.User.Username)
	})

	if err := dg.Open(); err != nil {
		log.Fatalf("failed to open Discord gateway: %v", err)
	}

	// Command sync is reported independently of gateway readiness: a sync
	// failure leaves the previous command set serving.
	syncCtx, cancelSync := context.WithTimeout(context.Background(), 30*time.Second)
	if n, err := discordtransport.Sync(syncCtx, dg, cfg.DiscordAppID); err != nil {
		log.Printf("ERROR: application command registration failed: %v", err)
	} else {
		log.Printf("Successfully synced %d application commands", n)
	}
	cancelSync()

	router := transporthttp.NewRouter(cfg, &transporthttp.Deps{
		Sessions:       sessions,
		Guilds:         guilds,
		GatewayLatency: dg.HeartbeatLatency,
	})
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Ops server starting on :%s (env=%s)", cfg.HTTPPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ops server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced ops server shutdown: %v", err)
	}
	if err := dg.Close(); err != nil {
		log.Printf("error closing Discord gateway: %v", err)
	}
	log.Println("Stopped")
}

// buildStores selects the store backend. Memory is the default; redis and
// dynamo trade the original's restart-volatility for durable state.
func buildStores(cfg *config.Config) (store.SessionStore, store.GuildStore) {
	switch cfg.StoreBackend {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		return redisstore.NewSessionStore(client), redisstore.NewGuildStore(client)
	case "dynamo":
		client := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), client, cfg.DynamoTables)
		return dynamo.NewSessionStore(client, cfg.DynamoTables.Sessions),
			dynamo.NewGuildStore(client, cfg.DynamoTables.Guilds)
	case "memory":
	default:
		log.Printf("unknown STORE_BACKEND %q, falling back to memory", cfg.StoreBackend)
	}
	return memory.NewSessionStore(), memory.NewGuildStore()
}
