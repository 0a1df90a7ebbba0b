package domain

// Tier es el nivel de acceso derivado del trust score.
type Tier string

const (
	TierFull    Tier = "FULL"
	TierLimited Tier = "LIMITED"
	TierBlocked Tier = "BLOCKED"
)

// ScoreBreakdown detalla como se compuso el score final. Solo los factores
// y penalizaciones aplicados aparecen en los mapas; los que no aplican se
// omiten, no se registran en cero.
type ScoreBreakdown struct {
	BaseScore  int                `json:"base_score"`
	Factors    map[string]float64 `json:"factors"`
	Penalties  map[string]float64 `json:"penalties"`
	FinalScore int                `json:"final_score"`
}

// Evaluation es el resultado de evaluar las metricas de una wallet.
type Evaluation struct {
	WalletAddress string         `json:"wallet_address"`
	Score         int            `json:"score"`
	Tier          Tier           `json:"tier"`
	Details       ScoreBreakdown `json:"details"`
}

// Publication es el resultado de publicar un score en el ledger externo.
// Success en false nunca es un error de programacion: representa un fallo
// esperado del lado del ledger (rechazo o indisponibilidad).
type Publication struct {
	WalletAddress   string `json:"wallet_address"`
	Score           int    `json:"score"`
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	TransactionHash string `json:"transaction_hash,omitempty"`
}
