package ledger

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// ABI minimo del contrato oracle: solo la operacion de publicacion.
const oracleABI = `[{"inputs":[{"internalType":"address","name":"user","type":"address"},{"internalType":"uint256","name":"score","type":"uint256"}],"name":"pushScore","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

// Gas fijo para pushScore; la operacion escribe un unico slot.
const submitGasLimit = 100000

const defaultSubmitTimeout = 30 * time.Second

// EthClient implementa Client contra un nodo Ethereum via JSON-RPC.
type EthClient struct {
	logger  *zap.Logger
	client  *ethclient.Client
	abi     abi.ABI
	oracle  common.Address
	chainID *big.Int
	key     *ecdsa.PrivateKey
	from    common.Address
	timeout time.Duration
}

// NewEthClient conecta con el nodo, verifica el chain id y deja el cliente
// listo para firmar con la clave provista. Un chainID de 0 toma el que
// reporte el nodo. Devuelve error si no hay conectividad; el caller decide
// si degradar a un DisabledClient.
func NewEthClient(ctx context.Context, logger *zap.Logger, rpcURL, oracleAddress, privateKeyHex string, chainID int64, timeout time.Duration) (*EthClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	if !common.IsHexAddress(oracleAddress) {
		return nil, fmt.Errorf("%w: oracle %q", ErrInvalidAddress, oracleAddress)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(oracleABI))
	if err != nil {
		return nil, fmt.Errorf("parse oracle abi: %w", err)
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrUnavailable, rpcURL, err)
	}

	nodeChainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: chain id: %v", ErrUnavailable, err)
	}
	if chainID > 0 {
		nodeChainID = big.NewInt(chainID)
	}

	from := crypto.PubkeyToAddress(key.PublicKey)
	logger.Info("connected to ledger",
		zap.String("rpc_url", rpcURL),
		zap.String("chain_id", nodeChainID.String()),
		zap.String("oracle_address", oracleAddress),
		zap.String("signer", from.Hex()),
	)

	return &EthClient{
		logger:  logger,
		client:  client,
		abi:     parsedABI,
		oracle:  common.HexToAddress(oracleAddress),
		chainID: nodeChainID,
		key:     key,
		from:    from,
		timeout: timeout,
	}, nil
}

// SubmitScore publica un score firmando una transaccion contra el oracle y
// espera el recibo. El timeout del cliente acota toda la operacion.
func (c *EthClient) SubmitScore(ctx context.Context, wallet string, score int) (string, error) {
	if score < 0 || score > 100 {
		return "", fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}
	if !common.IsHexAddress(wallet) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, wallet)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return "", fmt.Errorf("%w: nonce: %v", ErrUnavailable, err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: gas price: %v", ErrUnavailable, err)
	}

	data, err := c.abi.Pack("pushScore", common.HexToAddress(wallet), big.NewInt(int64(score)))
	if err != nil {
		return "", fmt.Errorf("pack pushScore: %w", err)
	}

	tx := types.NewTransaction(nonce, c.oracle, big.NewInt(0), submitGasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signed); err != nil {
		if isRevertError(err) {
			return "", fmt.Errorf("%w: %v", ErrRejected, err)
		}
		return "", fmt.Errorf("%w: send: %v", ErrUnavailable, err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, signed)
	if err != nil {
		return "", fmt.Errorf("%w: wait receipt: %v", ErrUnavailable, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("%w: tx %s reverted", ErrRejected, signed.Hash().Hex())
	}

	c.logger.Info("score submitted",
		zap.String("wallet", wallet),
		zap.Int("score", score),
		zap.String("tx_hash", signed.Hash().Hex()),
	)
	return signed.Hash().Hex(), nil
}

func (c *EthClient) Connected() bool { return c.client != nil }

func (c *EthClient) OracleAddress() string { return c.oracle.Hex() }

// Close libera la conexion RPC subyacente.
func (c *EthClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// isRevertError distingue un rechazo del contrato de un fallo de transporte
// cuando el nodo rechaza la transaccion al enviarla.
func isRevertError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "revert") || strings.Contains(msg, "execution reverted")
}

var _ Client = (*EthClient)(nil)
var _ Client = (*MockClient)(nil)
