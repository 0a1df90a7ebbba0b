package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"decentratrust/internal/ledger"
)

// HealthHandler expone el estado del servicio y de la conexion al ledger.
type HealthHandler struct {
	version string
	ledger  ledger.Client
}

func NewHealthHandler(version string, ledgerClient ledger.Client) *HealthHandler {
	if ledgerClient == nil {
		ledgerClient = ledger.NewDisabledClient("")
	}
	return &HealthHandler{
		version: version,
		ledger:  ledgerClient,
	}
}

// Root maneja GET / con informacion basica del API.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "decentratrust-api",
		"version": h.version,
		"health":  "/health",
	})
}

type healthResponse struct {
	Status              string `json:"status"`
	Version             string `json:"version"`
	BlockchainConnected bool   `json:"blockchain_connected"`
	OracleAddress       string `json:"oracle_address,omitempty"`
}

// Health maneja GET /health. El estado de conexion se lee en cada request:
// puede cambiar entre invocaciones sin aviso.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:              "healthy",
		Version:             h.version,
		BlockchainConnected: h.ledger.Connected(),
		OracleAddress:       h.ledger.OracleAddress(),
	})
}
