package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuracion del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	// Conexion al ledger; con cualquiera de estos ausente el servicio corre
	// en modo stub.
	RPCURL               string `env:"RPC_URL"`
	OracleAddress        string `env:"ORACLE_ADDRESS"`
	PrivateKey           string `env:"PRIVATE_KEY"`
	ChainID              int64  `env:"CHAIN_ID" envDefault:"0"`
	SubmitTimeoutSeconds int    `env:"SUBMIT_TIMEOUT_SECONDS" envDefault:"30"`

	AuthSecret          string `env:"AUTH_SECRET"`
	AuthTokenTTLMinutes int    `env:"AUTH_TOKEN_TTL_MINUTES" envDefault:"60"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	PushRateWindowSeconds int `env:"PUSH_RATE_WINDOW_SECONDS" envDefault:"60"`
	PushRateMax           int `env:"PUSH_RATE_MAX" envDefault:"10"`
}

// LoadConfig carga la configuracion desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LedgerConfigured indica si hay suficiente configuracion para conectar con
// el ledger real.
func (c *Config) LedgerConfigured() bool {
	return c.RPCURL != "" && c.OracleAddress != "" && c.PrivateKey != ""
}
