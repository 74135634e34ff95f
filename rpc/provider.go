/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

// Package rpc talks to a node over JSON-RPC 2.0.
package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/mr-tron/base58"

	"github.com/xuperchain/near-shell/common/log"
	"github.com/xuperchain/near-shell/transaction"
)

// Provider is a JSON-RPC provider bound to one node
type Provider struct {
	client  *ethrpc.Client
	timeout time.Duration
	logger  log.Logger
}

// Option configures a Provider
type Option func(p *Provider)

// WithTimeout bounds every call; zero keeps calls unbounded
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.timeout = d
	}
}

// WithLogger sets the provider logger
func WithLogger(l log.Logger) Option {
	return func(p *Provider) {
		p.logger = l
	}
}

// Dial connects to the node at nodeURL
func Dial(ctx context.Context, nodeURL string, opts ...Option) (*Provider, error) {
	client, err := ethrpc.DialContext(ctx, nodeURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", nodeURL, err)
	}
	return NewProvider(client, opts...), nil
}

// NewProvider wraps an existing client
func NewProvider(client *ethrpc.Client, opts ...Option) *Provider {
	p := &Provider{
		client: client,
		logger: log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close closes the underlying client
func (p *Provider) Close() {
	p.client.Close()
}

func (p *Provider) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	start := time.Now()
	err := p.client.CallContext(ctx, result, method, args...)
	p.logger.Debug("rpc call", "method", method, "args", args, "cost", time.Since(start), "err", err)
	if err != nil {
		return classify(err)
	}
	return nil
}

// Status returns the node status
func (p *Provider) Status(ctx context.Context) (*NodeStatus, error) {
	status := new(NodeStatus)
	if err := p.call(ctx, status, "status"); err != nil {
		return nil, err
	}
	return status, nil
}

// Query runs a path query. Older nodes report query failures inside the
// result, those are turned into errors too.
func (p *Provider) Query(ctx context.Context, path, data string, result interface{}) error {
	var raw json.RawMessage
	if err := p.call(ctx, &raw, "query", path, data); err != nil {
		return err
	}
	var qe struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &qe) == nil && qe.Error != "" {
		msg := fmt.Sprintf("querying %s failed: %s", path, qe.Error)
		return &Error{Kind: kindFromText(msg), Message: msg}
	}
	return json.Unmarshal(raw, result)
}

// ViewAccount returns the state of accountID
func (p *Provider) ViewAccount(ctx context.Context, accountID string) (*AccountView, error) {
	if err := ValidateAccountID(accountID); err != nil {
		return nil, err
	}
	view := new(AccountView)
	if err := p.Query(ctx, "account/"+accountID, "", view); err != nil {
		return nil, err
	}
	return view, nil
}

// ViewAccessKeyList returns every access key of accountID
func (p *Provider) ViewAccessKeyList(ctx context.Context, accountID string) (*AccessKeyList, error) {
	if err := ValidateAccountID(accountID); err != nil {
		return nil, err
	}
	list := new(AccessKeyList)
	if err := p.Query(ctx, "access_key/"+accountID, "", list); err != nil {
		return nil, err
	}
	return list, nil
}

// ViewAccessKey returns one access key of accountID
func (p *Provider) ViewAccessKey(ctx context.Context, accountID, publicKey string) (*AccessKeyView, error) {
	if err := ValidateAccountID(accountID); err != nil {
		return nil, err
	}
	view := new(AccessKeyView)
	if err := p.Query(ctx, "access_key/"+accountID+"/"+publicKey, "", view); err != nil {
		return nil, err
	}
	return view, nil
}

// CallFunction runs a view method of a contract
func (p *Provider) CallFunction(ctx context.Context, contractID, method string, args []byte) (*CallResult, error) {
	if err := ValidateAccountID(contractID); err != nil {
		return nil, err
	}
	res := new(CallResult)
	if err := p.Query(ctx, "call/"+contractID+"/"+method, base58.Encode(args), res); err != nil {
		return nil, err
	}
	return res, nil
}

// SendTransaction broadcasts a signed transaction and waits for its outcome
func (p *Provider) SendTransaction(ctx context.Context, st *transaction.SignedTransaction) (*FinalExecutionOutcome, error) {
	b64, err := st.Base64()
	if err != nil {
		return nil, err
	}
	outcome := new(FinalExecutionOutcome)
	if err := p.call(ctx, outcome, "broadcast_tx_commit", b64); err != nil {
		return nil, err
	}
	return outcome, nil
}

// TxStatus returns the outcome of a known transaction
func (p *Provider) TxStatus(ctx context.Context, txHash, accountID string) (*FinalExecutionOutcome, error) {
	outcome := new(FinalExecutionOutcome)
	if err := p.call(ctx, outcome, "tx", txHash, accountID); err != nil {
		return nil, err
	}
	return outcome, nil
}

// ErrTransactionFailed the transaction executed but failed
var ErrTransactionFailed = errors.New("transaction failed")

// GetTransactionLastResult decodes the value returned by the last receipt.
// Json values are decoded, anything else comes back as a string.
func GetTransactionLastResult(outcome *FinalExecutionOutcome) (interface{}, error) {
	if outcome == nil {
		return nil, nil
	}
	if len(outcome.Status.Failure) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrTransactionFailed, string(outcome.Status.Failure))
	}
	if outcome.Status.SuccessValue == nil {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(*outcome.Status.SuccessValue)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw), nil
	}
	return v, nil
}
