package feed

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"trxclicker/internal/core/port"
)

// sunPerTRX is the number of sun in one TRX.
var sunPerTRX = decimal.NewFromInt(1_000_000)

// TronClient reads incoming TRX transfers for the platform wallet over a
// Tron JSON-RPC gateway.
type TronClient struct {
	url      string
	wallet   string
	currency string
	limit    int
	memoHex  bool
	http     *http.Client
	log      *slog.Logger
	seq      atomic.Int64
}

// NewTronClient returns a client for the gateway at rpcURL. Requests use hc,
// whose Timeout bounds a single fetch. memoHex selects how transaction memos
// are encoded; see memoUser.
func NewTronClient(rpcURL, wallet, currency string, limit int, memoHex bool, hc *http.Client, log *slog.Logger) *TronClient {
	return &TronClient{
		url:      rpcURL,
		wallet:   wallet,
		currency: currency,
		limit:    limit,
		memoHex:  memoHex,
		http:     hc,
		log:      log,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int64  `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result []json.RawMessage `json:"result"`
	Error  *rpcError         `json:"error"`
}

// tronTx is the subset of a Tron transaction the client reads. The id field
// differs between gateways.
type tronTx struct {
	TxID          string `json:"txID"`
	TxIDSnake     string `json:"tx_id"`
	Hash          string `json:"hash"`
	TransactionID string `json:"transaction_id"`
	TxHash        string `json:"tx_hash"`
	RawData       struct {
		Data     string `json:"data"`
		Contract []struct {
			Parameter struct {
				Value struct {
					Amount    *json.Number `json:"amount"`
					ToAddress string       `json:"to_address"`
				} `json:"value"`
			} `json:"parameter"`
		} `json:"contract"`
	} `json:"raw_data"`
}

func (t *tronTx) id() string {
	for _, v := range []string{t.TxID, t.TxIDSnake, t.Hash, t.TransactionID, t.TxHash} {
		if v != "" {
			return v
		}
	}
	return ""
}

// amount returns the first native transfer amount in TRX.
func (t *tronTx) amount() (decimal.Decimal, bool) {
	for _, c := range t.RawData.Contract {
		if c.Parameter.Value.Amount == nil {
			continue
		}
		sun, err := decimal.NewFromString(c.Parameter.Value.Amount.String())
		if err != nil {
			return decimal.Zero, false
		}
		return sun.Div(sunPerTRX), true
	}
	return decimal.Zero, false
}

// memoUser extracts the user id a sender put in the transaction memo. The
// memo is read in exactly one encoding: hex (an optional 0x prefix allowed)
// when hexEncoded is set, plain decimal digits otherwise. A memo that is not
// a positive id in that encoding is unattributed.
func memoUser(data string, hexEncoded bool) *int64 {
	data = strings.TrimSpace(data)
	if hexEncoded {
		b, err := hex.DecodeString(strings.TrimPrefix(data, "0x"))
		if err != nil {
			return nil
		}
		data = string(b)
	}
	if id, ok := parseUserID(data); ok {
		return &id
	}
	return nil
}

func parseUserID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return id, err == nil && id > 0
}

// Fetch returns the latest incoming transfers. Transactions the client cannot
// decode are returned with an empty TxID or zero Amount so the ingestor counts
// them as malformed.
func (c *TronClient) Fetch(ctx context.Context) ([]port.FeedRecord, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "tron_getTransactionsToAddress",
		Params:  []any{c.wallet, c.limit},
		ID:      c.seq.Add(1),
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tron rpc: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tron rpc: unexpected status %d", resp.StatusCode)
	}
	var out rpcResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tron rpc: decode response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("tron rpc: %d %s", out.Error.Code, out.Error.Message)
	}
	records := make([]port.FeedRecord, 0, len(out.Result))
	for _, raw := range out.Result {
		var tx tronTx
		if err = json.Unmarshal(raw, &tx); err != nil {
			c.log.Warn("skip undecodable transaction", slog.Any("error", err))
			records = append(records, port.FeedRecord{Currency: c.currency})
			continue
		}
		amount, _ := tx.amount()
		records = append(records, port.FeedRecord{
			TxID:     tx.id(),
			Amount:   amount,
			Currency: c.currency,
			UserID:   memoUser(tx.RawData.Data, c.memoHex),
		})
	}
	return records, nil
}
