package service

import (
	"math"

	"decentratrust/internal/domain"
)

// Puntaje base desde el que suman factores y restan penalizaciones.
const baseScore = 50

// Nombres de factores positivos en el desglose del score.
const (
	FactorAccountAge        = "account_age"
	FactorSuccessRate       = "success_rate"
	FactorTransactionVolume = "transaction_volume"
	FactorFrequency         = "frequency"
	FactorLowVariance       = "low_variance"
)

// Nombres de penalizaciones en el desglose del score.
const (
	PenaltyDisputes      = "disputes"
	PenaltyNewAccount    = "new_account"
	PenaltyHighFrequency = "high_frequency"
	PenaltyWashTrading   = "wash_trading"
)

// ComputeScore calcula el trust score de una wallet a partir de sus metricas.
// Es una funcion total y determinista: toda metrica que respete los rangos
// documentados produce un score en [0,100] sin error posible.
//
// Cada termino esta acotado por si mismo, asi que el clamp final es una red
// de seguridad y no el mecanismo principal de acote. El desglose registra
// cada factor o penalizacion aplicado con su magnitud redondeada a dos
// decimales; el score final es round(base + factores - penalizaciones) con
// redondeo half-away-from-zero (semantica de math.Round) y clamp a [0,100].
func ComputeScore(m domain.UserMetrics) domain.ScoreBreakdown {
	factors := make(map[string]float64)
	penalties := make(map[string]float64)

	// Bono por antiguedad de cuenta (max +15).
	factors[FactorAccountAge] = roundTo2(math.Min(float64(m.AccountAgeDays)/365*10, 15))

	// Bono por tasa de exito (max +20); se omite sin transacciones.
	if m.TransactionCount > 0 {
		rate := float64(m.SuccessfulTransactions) / float64(m.TransactionCount)
		factors[FactorSuccessRate] = roundTo2(rate * 20)
	}

	// Bono por volumen (max +10); un count de 0 se eleva a 1 antes del log
	// para evitar un error de dominio.
	volume := math.Log10(math.Max(float64(m.TransactionCount), 1)+1) * 3
	factors[FactorTransactionVolume] = roundTo2(math.Min(volume, 10))

	// Bono por frecuencia moderada y regular (max +10).
	if m.FrequencyPerDay >= 0.1 && m.FrequencyPerDay <= 5 {
		bonus := 10 - math.Abs(m.FrequencyPerDay-1)*2
		factors[FactorFrequency] = roundTo2(clampFloat(bonus, 0, 10))
	}

	// Bono por baja varianza en patrones (max +5).
	if m.VarianceScore != nil && *m.VarianceScore < 30 {
		factors[FactorLowVariance] = roundTo2((30 - *m.VarianceScore) / 6)
	}

	// Penalizacion por disputas (max -30).
	if m.DisputeCount > 0 {
		penalties[PenaltyDisputes] = roundTo2(math.Min(float64(m.DisputeCount)*5, 30))
	}

	// Penalizacion por cuenta muy nueva (max -10).
	if m.AccountAgeDays < 30 {
		penalties[PenaltyNewAccount] = roundTo2(float64(30-m.AccountAgeDays) / 3)
	}

	// Penalizacion por frecuencia extrema, actividad tipo bot (max -20).
	if m.FrequencyPerDay > 10 {
		penalties[PenaltyHighFrequency] = roundTo2(math.Min((m.FrequencyPerDay-10)*2, 20))
	}

	// Penalizacion plana por patron de wash trading: valor promedio muy bajo
	// combinado con frecuencia alta.
	if m.AvgTransactionValue < 10 && m.FrequencyPerDay > 5 {
		penalties[PenaltyWashTrading] = 15
	}

	// El total se acumula sobre las magnitudes ya redondeadas para que el
	// invariante final == clamp(round(base + sum(factors) - sum(penalties)))
	// se sostenga exacto contra el desglose publicado.
	total := float64(baseScore)
	for _, v := range factors {
		total += v
	}
	for _, v := range penalties {
		total -= v
	}

	final := int(math.Round(total))
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}

	return domain.ScoreBreakdown{
		BaseScore:  baseScore,
		Factors:    factors,
		Penalties:  penalties,
		FinalScore: final,
	}
}

// TierForScore clasifica un score en su nivel de acceso. Los valores de
// borde (80 y 50 exactos) pertenecen al tier superior.
func TierForScore(score int) domain.Tier {
	switch {
	case score >= 80:
		return domain.TierFull
	case score >= 50:
		return domain.TierLimited
	default:
		return domain.TierBlocked
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
