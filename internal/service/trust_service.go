package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"decentratrust/internal/domain"
	"decentratrust/internal/ledger"
)

// Errores de validacion de entrada; siempre recuperables por el caller y
// nunca reintentados internamente.
var (
	ErrWalletRequired     = errors.New("wallet address required")
	ErrNegativeMetric     = errors.New("metric must be non-negative")
	ErrVarianceOutOfRange = errors.New("variance score out of range")
	ErrScoreOutOfRange    = errors.New("score out of range")
	ErrRateLimited        = errors.New("rate limited")
)

// TrustService coordina la evaluacion de metricas y la publicacion de
// scores hacia el ledger externo. No guarda estado entre requests.
type TrustService struct {
	logger  *zap.Logger
	ledger  ledger.Client
	limiter PublishRateLimiter
}

// NewTrustService crea el servicio. Sin cliente de ledger degrada a modo
// stub; sin limiter no se limita la publicacion.
func NewTrustService(logger *zap.Logger, ledgerClient ledger.Client, limiter PublishRateLimiter) *TrustService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ledgerClient == nil {
		ledgerClient = ledger.NewDisabledClient("ledger client not configured")
	}
	return &TrustService{
		logger:  logger,
		ledger:  ledgerClient,
		limiter: limiter,
	}
}

// Ledger expone el cliente de ledger inyectado, para handlers que solo
// necesitan leer el estado de conexion.
func (s *TrustService) Ledger() ledger.Client {
	return s.ledger
}

// Evaluate valida las metricas, corre el engine y clasifica el score.
// Para entrada bien formada nunca falla: el engine es una funcion total.
func (s *TrustService) Evaluate(_ context.Context, wallet string, metrics domain.UserMetrics) (domain.Evaluation, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return domain.Evaluation{}, ErrWalletRequired
	}
	if err := validateMetrics(metrics); err != nil {
		return domain.Evaluation{}, err
	}

	breakdown := ComputeScore(metrics)
	tier := TierForScore(breakdown.FinalScore)

	s.logger.Debug("metrics evaluated",
		zap.String("wallet", wallet),
		zap.Int("score", breakdown.FinalScore),
		zap.String("tier", string(tier)),
	)

	return domain.Evaluation{
		WalletAddress: wallet,
		Score:         breakdown.FinalScore,
		Tier:          tier,
		Details:       breakdown,
	}, nil
}

// Publish valida el score y lo entrega al ledger. Un fallo del lado del
// ledger se resuelve como Publication con Success en false, nunca como
// error: el exito de una evaluacion no depende de la publicacion. Solo la
// entrada invalida o el rate limit producen error.
func (s *TrustService) Publish(ctx context.Context, wallet string, score int) (domain.Publication, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return domain.Publication{}, ErrWalletRequired
	}
	if score < 0 || score > 100 {
		return domain.Publication{}, fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
	}
	if s.limiter != nil && !s.limiter.Allow(wallet) {
		return domain.Publication{}, ErrRateLimited
	}

	pub := domain.Publication{
		WalletAddress: wallet,
		Score:         score,
	}

	// Sin conexion la publicacion degrada a registro local: modo stub. Es
	// exito deliberado, la ausencia de ledger no es un error.
	if !s.ledger.Connected() {
		pub.Success = true
		pub.Message = "score recorded (ledger not connected - stub mode)"
		s.logger.Info("score recorded in stub mode",
			zap.String("wallet", wallet),
			zap.Int("score", score),
		)
		return pub, nil
	}

	txHash, err := s.ledger.SubmitScore(ctx, wallet, score)
	if err != nil {
		pub.Success = false
		pub.Message = publishFailureMessage(err)
		s.logger.Warn("score submission failed",
			zap.String("wallet", wallet),
			zap.Int("score", score),
			zap.Error(err),
		)
		return pub, nil
	}

	pub.Success = true
	pub.Message = "score pushed to ledger"
	pub.TransactionHash = txHash
	return pub, nil
}

// EvaluateAndPublish compone Evaluate y Publish; el mensaje resultante
// lleva score y tier junto al resultado de publicacion para que el caller
// tenga contexto completo en una sola llamada.
func (s *TrustService) EvaluateAndPublish(ctx context.Context, wallet string, metrics domain.UserMetrics) (domain.Publication, error) {
	eval, err := s.Evaluate(ctx, wallet, metrics)
	if err != nil {
		return domain.Publication{}, err
	}

	pub, err := s.Publish(ctx, eval.WalletAddress, eval.Score)
	if err != nil {
		return domain.Publication{}, err
	}

	pub.Message = fmt.Sprintf("evaluated (score: %d, tier: %s) - %s", eval.Score, eval.Tier, pub.Message)
	return pub, nil
}

func validateMetrics(m domain.UserMetrics) error {
	if m.TransactionCount < 0 {
		return fmt.Errorf("%w: transaction_count", ErrNegativeMetric)
	}
	if m.AvgTransactionValue < 0 {
		return fmt.Errorf("%w: avg_transaction_value", ErrNegativeMetric)
	}
	if m.AccountAgeDays < 0 {
		return fmt.Errorf("%w: account_age_days", ErrNegativeMetric)
	}
	if m.DisputeCount < 0 {
		return fmt.Errorf("%w: dispute_count", ErrNegativeMetric)
	}
	if m.SuccessfulTransactions < 0 {
		return fmt.Errorf("%w: successful_transactions", ErrNegativeMetric)
	}
	if m.FrequencyPerDay < 0 {
		return fmt.Errorf("%w: frequency_per_day", ErrNegativeMetric)
	}
	if m.VarianceScore != nil && (*m.VarianceScore < 0 || *m.VarianceScore > 100) {
		return fmt.Errorf("%w: %v", ErrVarianceOutOfRange, *m.VarianceScore)
	}
	return nil
}

// publishFailureMessage traduce el error del ledger a un mensaje apto para
// el caller, distinguiendo rechazo de indisponibilidad para que pueda
// decidir si reintentar tiene sentido.
func publishFailureMessage(err error) string {
	switch {
	case errors.Is(err, ledger.ErrRejected):
		return fmt.Sprintf("ledger rejected the submission: %v", err)
	case errors.Is(err, ledger.ErrUnavailable):
		return fmt.Sprintf("ledger unavailable: %v", err)
	default:
		return fmt.Sprintf("score submission failed: %v", err)
	}
}
