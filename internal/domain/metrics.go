package domain

// UserMetrics agrupa las metricas de comportamiento de una wallet.
// Es un value object inmutable: el engine solo lo lee.
type UserMetrics struct {
	TransactionCount       int      `json:"transaction_count"`
	AvgTransactionValue    float64  `json:"avg_transaction_value"`
	AccountAgeDays         int      `json:"account_age_days"`
	DisputeCount           int      `json:"dispute_count"`
	SuccessfulTransactions int      `json:"successful_transactions"`
	FrequencyPerDay        float64  `json:"frequency_per_day"`
	VarianceScore          *float64 `json:"variance_score,omitempty"`
}
