package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/estately/estately/backend/go-services/handlers"
	"github.com/estately/estately/backend/go-services/internal/config"
	"github.com/estately/estately/backend/go-services/internal/database"
	"github.com/estately/estately/backend/go-services/internal/listing/repository"
	listingsvc "github.com/estately/estately/backend/go-services/internal/listing/service"
	"github.com/estately/estately/backend/go-services/internal/oidc"
	"github.com/estately/estately/backend/go-services/internal/storage"
	"github.com/estately/estately/backend/go-services/internal/users"
	"github.com/estately/estately/backend/go-services/pkg/logger"
	"github.com/estately/estately/backend/go-services/pkg/metrics"
	"github.com/estately/estately/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

// rejectAllVerifier stands in when no identity provider is configured:
// protected routes answer 401 instead of panicking on a nil verifier.
type rejectAllVerifier struct{}

func (rejectAllVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	return nil, errors.New("identity provider not configured")
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAny := len(origins) == 0
	allowed := map[string]bool{}
	for _, o := range origins {
		if o == "*" {
			allowAny = true
		}
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAny:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func main() {
	// logging is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: auth=%v mongo=%v redis=%v", cfg.Auth.Issuer != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	// Connect to Redis early so the rate limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Identity-provider verifier
	ctx := context.Background()
	var verifier middleware.Verifier
	if cfg.Auth.Issuer != "" && cfg.Auth.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.Auth.Issuer, cfg.Auth.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
	}
	if verifier == nil {
		if strings.ToLower(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN"))) == "true" {
			logger.Warn("enabling insecure token verifier (integration mode)")
			verifier = oidc.NewInsecureVerifier()
		} else {
			verifier = rejectAllVerifier{}
		}
	}

	// MongoDB with retry/backoff to tolerate startup races
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	db := client.Database(cfg.MongoDB.Database)
	userRepo := users.NewMongoUserRepository(db.Collection("users"))
	userSvc := users.NewService(userRepo)
	listingRepo := repository.NewMongoRepo(db.Collection("listings"))
	listingSvc := listingsvc.NewService(listingRepo, userRepo)

	// Optional listing-image storage
	var imageStore *storage.ImageStore
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		imageStore, err = storage.NewImageStore(mcfg)
		if err != nil {
			logger.Warnf("image storage unavailable: %v", err)
			imageStore = nil
		} else {
			logger.Infof("image storage ready: bucket=%s", mcfg.Bucket)
		}
	}

	handlers.NewListingHandler(listingSvc, imageStore).Register(r, verifier, userSvc)
	handlers.NewUserHandler(userSvc).Register(r, verifier, userSvc)
	handlers.RegisterDocs(r)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongo"] = database.Healthy(c.Request.Context(), client)
		if !deps["mongo"] {
			ready = false
		}

		if cfg.Auth.Issuer != "" {
			_, isReject := verifier.(rejectAllVerifier)
			deps["oidc"] = !isReject
			if isReject {
				ready = false
			}
		} else {
			deps["oidc"] = true
		}

		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting listing service on %s (%s)", addr, cfg.Server.Environment)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
