package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"decentratrust/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas. Si tokenSvc
// es nil los endpoints de escritura quedan abiertos, igual que el API
// original sin autenticacion.
func NewRouter(
	logger *zap.Logger,
	scoreH *ScoreHandler,
	healthH *HealthHandler,
	tokenSvc *service.TokenService,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, CORS y request id.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(), requestIDMiddleware())

	r.GET("/", healthH.Root)
	r.GET("/health", healthH.Health)
	r.GET("/metrics", metricsHandler())

	r.POST("/evaluate", scoreH.Evaluate)

	write := r.Group("")
	if tokenSvc != nil {
		write.Use(AuthMiddleware(tokenSvc))
	}
	write.POST("/push-score", scoreH.PushScore)
	write.POST("/evaluate-and-push", scoreH.EvaluateAndPush)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// corsMiddleware permite cualquier origen, como el API original.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

const requestIDHeader = "X-Request-ID"

// requestIDMiddleware asigna un id por request para correlacionar logs.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}
