package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Client define la interfaz hacia el ledger externo que recibe los scores
// publicados. El core lo trata como una llamada opaca con tres resultados:
// exito con referencia de transaccion, rechazo a nivel contrato, o fallo de
// transporte.
type Client interface {
	// SubmitScore valida el score, resuelve la wallet, firma y envia la
	// transaccion y bloquea hasta confirmar el recibo.
	SubmitScore(ctx context.Context, wallet string, score int) (string, error)
	// Connected reporta si hay conexion con el ledger. Puede cambiar entre
	// invocaciones; los consumidores solo lo leen.
	Connected() bool
	// OracleAddress devuelve la direccion del contrato oracle, vacia si no
	// hay contrato configurado.
	OracleAddress() string
}

var (
	ErrInvalidScore   = errors.New("score out of range")
	ErrInvalidAddress = errors.New("invalid wallet address")
	// ErrRejected indica un fallo logico del ledger (transaccion revertida).
	ErrRejected = errors.New("ledger rejected submission")
	// ErrUnavailable indica un fallo de conectividad o timeout; reintentar
	// puede tener sentido, a criterio del caller.
	ErrUnavailable = errors.New("ledger unavailable")
)

type disabledClient struct {
	reason string
}

// NewDisabledClient crea un Client sin conexion. Es el modo stub: la
// publicacion degrada a un registro local en vez de fallar.
func NewDisabledClient(reason string) Client {
	return &disabledClient{reason: reason}
}

func (c *disabledClient) SubmitScore(_ context.Context, _ string, _ int) (string, error) {
	if c.reason == "" {
		return "", ErrUnavailable
	}
	return "", fmt.Errorf("%w: %s", ErrUnavailable, c.reason)
}

func (c *disabledClient) Connected() bool { return false }

func (c *disabledClient) OracleAddress() string { return "" }
