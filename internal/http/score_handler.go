package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"decentratrust/internal/domain"
	"decentratrust/internal/service"
)

// ScoreHandler mantiene dependencias para los endpoints de scoring.
type ScoreHandler struct {
	logger   *zap.Logger
	trustSvc *service.TrustService
}

// NewScoreHandler crea una instancia de ScoreHandler.
func NewScoreHandler(logger *zap.Logger, trustSvc *service.TrustService) *ScoreHandler {
	return &ScoreHandler{
		logger:   logger,
		trustSvc: trustSvc,
	}
}

// evaluateRequest replica el contrato de entrada del API: los campos
// numericos obligatorios van como punteros para que un cero explicito no se
// confunda con un campo ausente.
type evaluateRequest struct {
	WalletAddress          string   `json:"wallet_address" binding:"required"`
	TransactionCount       *int     `json:"transaction_count" binding:"required,gte=0"`
	AvgTransactionValue    *float64 `json:"avg_transaction_value" binding:"required,gte=0"`
	AccountAgeDays         *int     `json:"account_age_days" binding:"required,gte=0"`
	DisputeCount           *int     `json:"dispute_count" binding:"omitempty,gte=0"`
	SuccessfulTransactions *int     `json:"successful_transactions" binding:"required,gte=0"`
	FrequencyPerDay        *float64 `json:"frequency_per_day" binding:"required,gte=0"`
	VarianceScore          *float64 `json:"variance_score" binding:"omitempty,gte=0,lte=100"`
}

func (r evaluateRequest) toMetrics() domain.UserMetrics {
	m := domain.UserMetrics{
		TransactionCount:       *r.TransactionCount,
		AvgTransactionValue:    *r.AvgTransactionValue,
		AccountAgeDays:         *r.AccountAgeDays,
		SuccessfulTransactions: *r.SuccessfulTransactions,
		FrequencyPerDay:        *r.FrequencyPerDay,
		VarianceScore:          r.VarianceScore,
	}
	if r.DisputeCount != nil {
		m.DisputeCount = *r.DisputeCount
	}
	return m
}

// Evaluate maneja POST /evaluate. Calcula el score sin publicarlo.
func (h *ScoreHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid evaluate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	eval, err := h.trustSvc.Evaluate(c.Request.Context(), req.WalletAddress, req.toMetrics())
	if err != nil {
		h.respondServiceError(c, err, "evaluate failed")
		return
	}

	evaluationsTotal.Inc()
	scoreDistribution.Observe(float64(eval.Score))
	c.JSON(http.StatusOK, eval)
}

// PushScore maneja POST /push-score. Publica un score ya calculado.
func (h *ScoreHandler) PushScore(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"wallet_address" binding:"required"`
		Score         *int   `json:"score" binding:"required,gte=0,lte=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid push score request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	pub, err := h.trustSvc.Publish(c.Request.Context(), req.WalletAddress, *req.Score)
	if err != nil {
		h.respondServiceError(c, err, "push score failed")
		return
	}

	publicationsTotal.WithLabelValues(publicationOutcome(pub)).Inc()
	c.JSON(http.StatusOK, pub)
}

// EvaluateAndPush maneja POST /evaluate-and-push: evalua y publica en una
// sola llamada.
func (h *ScoreHandler) EvaluateAndPush(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid evaluate-and-push request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	pub, err := h.trustSvc.EvaluateAndPublish(c.Request.Context(), req.WalletAddress, req.toMetrics())
	if err != nil {
		h.respondServiceError(c, err, "evaluate and push failed")
		return
	}

	evaluationsTotal.Inc()
	scoreDistribution.Observe(float64(pub.Score))
	publicationsTotal.WithLabelValues(publicationOutcome(pub)).Inc()
	c.JSON(http.StatusOK, pub)
}

func (h *ScoreHandler) respondServiceError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrWalletRequired),
		errors.Is(err, service.ErrNegativeMetric),
		errors.Is(err, service.ErrVarianceOutOfRange),
		errors.Is(err, service.ErrScoreOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	default:
		h.logger.Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func publicationOutcome(pub domain.Publication) string {
	switch {
	case pub.Success && pub.TransactionHash != "":
		return "confirmed"
	case pub.Success:
		return "stub"
	default:
		return "failed"
	}
}
