package ledger

import "context"

// MockSubmission guarda los argumentos de una llamada a SubmitScore.
type MockSubmission struct {
	Wallet string
	Score  int
}

// MockClient permite tests sin un nodo real.
type MockClient struct {
	TxHash      string
	Err         error
	IsConnected bool
	Oracle      string
	Submissions []MockSubmission
}

func (m *MockClient) SubmitScore(_ context.Context, wallet string, score int) (string, error) {
	m.Submissions = append(m.Submissions, MockSubmission{Wallet: wallet, Score: score})
	if m.Err != nil {
		return "", m.Err
	}
	return m.TxHash, nil
}

func (m *MockClient) Connected() bool { return m.IsConnected }

func (m *MockClient) OracleAddress() string { return m.Oracle }
