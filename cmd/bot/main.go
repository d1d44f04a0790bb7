package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/faceoff/internal/chance"
	"github.com/KirkDiggler/faceoff/internal/common/clock"
	"github.com/KirkDiggler/faceoff/internal/common/uuid"
	"github.com/KirkDiggler/faceoff/internal/config"
	"github.com/KirkDiggler/faceoff/internal/handlers/discord"
	"github.com/KirkDiggler/faceoff/internal/log"
	"github.com/KirkDiggler/faceoff/internal/notify"
	duelRepo "github.com/KirkDiggler/faceoff/internal/repositories/duel"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
	duelService "github.com/KirkDiggler/faceoff/internal/services/duel"
	"github.com/KirkDiggler/faceoff/internal/services/matchmaker"
	"github.com/KirkDiggler/faceoff/internal/services/messaging"
	participantService "github.com/KirkDiggler/faceoff/internal/services/participant"
	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Logging is not configured yet
		logger := log.WithComponent("main")
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("main")

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to Redis")
	}

	// Initialize repositories
	directory, err := participantRepo.NewRedis(&participantRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create participant repository")
	}

	duels, err := duelRepo.NewRedis(&duelRepo.Config{
		RedisClient:   redisClient,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create duel repository")
	}

	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Discord session")
	}

	random := chance.New(&chance.Config{Seed: cfg.Seed})
	systemClock := clock.New()

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{
		Random: random,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create messaging service")
	}

	// Pick the notification transport
	var dispatcher notify.Dispatcher
	var inbox notify.Inbox
	switch cfg.NotifyTransport {
	case config.TransportRedis:
		redisInbox, err := notify.NewRedisInbox(&notify.RedisConfig{
			RedisClient: redisClient,
			DefaultTTL:  cfg.InboxTTL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create Redis inbox")
		}
		dispatcher = redisInbox
		inbox = redisInbox
	default:
		dm, err := notify.NewDiscordDM(&notify.DiscordConfig{
			Session:          session,
			MessagingService: messagingSvc,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create Discord dispatcher")
		}
		dispatcher = dm
	}

	// Initialize services
	matchmakerSvc, err := matchmaker.New(&matchmaker.Config{
		Directory:         directory,
		Random:            random,
		Clock:             systemClock,
		MaxDistanceMeters: cfg.MaxDistanceMeters,
		RecencyWindow:     cfg.RecencyWindow,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create matchmaker")
	}

	duelSvc, err := duelService.New(&duelService.Config{
		DuelRepo:         duels,
		Directory:        directory,
		Matchmaker:       matchmakerSvc,
		Dispatcher:       dispatcher,
		Random:           random,
		Clock:            systemClock,
		ResolutionWindow: cfg.ResolutionWindow,
		MaxRetries:       cfg.MaxRetries,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create duel service")
	}

	participantSvc, err := participantService.New(&participantService.Config{
		Directory:          directory,
		Dispatcher:         dispatcher,
		Clock:              systemClock,
		NearbyRadiusMeters: cfg.MaxDistanceMeters,
		NearbyLimit:        cfg.NearbyLimit,
		PokeTTL:            cfg.PokeTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create participant service")
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Session:            session,
		ApplicationID:      cfg.ApplicationID,
		GuildID:            cfg.GuildID,
		DuelService:        duelSvc,
		ParticipantService: participantSvc,
		MessagingService:   messagingSvc,
		Inbox:              inbox,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Discord bot")
	}

	opsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           opsRouter(redisClient),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("ops server listening")
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("ops server failed")
		}
	}()

	// Start the bot
	if err := bot.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start Discord bot")
	}

	logger.Info().
		Str("transport", cfg.NotifyTransport).
		Msg("faceoff is running, press CTRL-C to exit")

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		logger.Error().Err(err).Msg("error stopping bot")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error stopping ops server")
	}

	logger.Info().Msg("faceoff has been shut down")
}

// opsRouter serves metrics and a Redis-backed health check
func opsRouter(redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
