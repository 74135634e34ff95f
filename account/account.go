/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

// Package account wraps the account level operations: state and key queries,
// transfers, staking, contract deployment and calls.
package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"

	"github.com/xuperchain/near-shell/common/log"
	"github.com/xuperchain/near-shell/crypto/keypair"
	"github.com/xuperchain/near-shell/rpc"
	"github.com/xuperchain/near-shell/transaction"
)

// DefaultFunctionCallGas is attached to calls that do not set gas
const DefaultFunctionCallGas uint64 = 100000000000000

var (
	// ErrNoKey the key store has no key for the signing account
	ErrNoKey = errors.New("no signing key")
	// ErrBadBlockHash the node returned an undecodable block hash
	ErrBadBlockHash = errors.New("bad block hash")
)

// Provider is the node API accounts need
type Provider interface {
	Status(ctx context.Context) (*rpc.NodeStatus, error)
	ViewAccount(ctx context.Context, accountID string) (*rpc.AccountView, error)
	ViewAccessKeyList(ctx context.Context, accountID string) (*rpc.AccessKeyList, error)
	ViewAccessKey(ctx context.Context, accountID, publicKey string) (*rpc.AccessKeyView, error)
	CallFunction(ctx context.Context, contractID, method string, args []byte) (*rpc.CallResult, error)
	SendTransaction(ctx context.Context, st *transaction.SignedTransaction) (*rpc.FinalExecutionOutcome, error)
}

// Connection bundles what every account on one network shares
type Connection struct {
	NetworkID string
	Provider  Provider
	Signer    transaction.Signer
	Logger    log.Logger
}

// Account is a handle on one account of a connection
type Account struct {
	ID   string
	conn *Connection
}

// New new an account handle
func New(conn *Connection, accountID string) *Account {
	if conn.Logger.Logger == nil {
		conn.Logger = log.DefaultLogger
	}
	return &Account{ID: accountID, conn: conn}
}

// State returns the on-chain state of the account
func (a *Account) State(ctx context.Context) (*rpc.AccountView, error) {
	return a.conn.Provider.ViewAccount(ctx, a.ID)
}

// AccessKeys returns the access keys of the account
func (a *Account) AccessKeys(ctx context.Context) ([]rpc.AccessKeyInfo, error) {
	list, err := a.conn.Provider.ViewAccessKeyList(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return list.Keys, nil
}

// SendMoney transfers amount yoctoNEAR to receiverID
func (a *Account) SendMoney(ctx context.Context, receiverID string, amount *big.Int) (*rpc.FinalExecutionOutcome, error) {
	return a.signAndSendTransaction(ctx, receiverID, transaction.Transfer{Deposit: amount})
}

// Stake stakes amount yoctoNEAR with the validator key
func (a *Account) Stake(ctx context.Context, publicKey keypair.PublicKey, amount *big.Int) (*rpc.FinalExecutionOutcome, error) {
	return a.signAndSendTransaction(ctx, a.ID, transaction.Stake{Stake: amount, PublicKey: publicKey})
}

// DeployContract deploys wasm code to the account itself
func (a *Account) DeployContract(ctx context.Context, code []byte) (*rpc.FinalExecutionOutcome, error) {
	return a.signAndSendTransaction(ctx, a.ID, transaction.DeployContract{Code: code})
}

// FunctionCall calls a change method of contractID
func (a *Account) FunctionCall(ctx context.Context, contractID, method string, args []byte, gas uint64,
	deposit *big.Int) (*rpc.FinalExecutionOutcome, error) {

	if gas == 0 {
		gas = DefaultFunctionCallGas
	}
	return a.signAndSendTransaction(ctx, contractID, transaction.FunctionCall{
		MethodName: method,
		Args:       args,
		Gas:        gas,
		Deposit:    deposit,
	})
}

// ViewFunction runs a view method, json results are decoded
func (a *Account) ViewFunction(ctx context.Context, contractID, method string, args []byte) (interface{}, error) {
	res, err := a.conn.Provider.CallFunction(ctx, contractID, method, args)
	if err != nil {
		return nil, err
	}
	for _, l := range res.Logs {
		a.conn.Logger.Info("contract log", "contract", contractID, "log", l)
	}
	raw := res.Bytes()
	if len(raw) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw), nil
	}
	return v, nil
}

// CreateAccount creates newAccountID funded with amount and one full access key
func (a *Account) CreateAccount(ctx context.Context, newAccountID string, publicKey keypair.PublicKey,
	amount *big.Int) (*rpc.FinalExecutionOutcome, error) {

	return a.signAndSendTransaction(ctx, newAccountID,
		transaction.CreateAccount{},
		transaction.Transfer{Deposit: amount},
		transaction.AddKey{PublicKey: publicKey, AccessKey: transaction.FullAccessKey()},
	)
}

// DeleteAccount deletes the account and sends its balance to beneficiaryID
func (a *Account) DeleteAccount(ctx context.Context, beneficiaryID string) (*rpc.FinalExecutionOutcome, error) {
	return a.signAndSendTransaction(ctx, a.ID, transaction.DeleteAccount{BeneficiaryID: beneficiaryID})
}

// AddKey adds a full access key, or a function call key when contractID is set
func (a *Account) AddKey(ctx context.Context, publicKey keypair.PublicKey, contractID string,
	methodNames []string, allowance *big.Int) (*rpc.FinalExecutionOutcome, error) {

	ak := transaction.FullAccessKey()
	if contractID != "" {
		ak.FunctionCall = &transaction.FunctionCallPermission{
			Allowance:   allowance,
			ReceiverID:  contractID,
			MethodNames: methodNames,
		}
	}
	return a.signAndSendTransaction(ctx, a.ID, transaction.AddKey{PublicKey: publicKey, AccessKey: ak})
}

// DeleteKey removes an access key
func (a *Account) DeleteKey(ctx context.Context, publicKey keypair.PublicKey) (*rpc.FinalExecutionOutcome, error) {
	return a.signAndSendTransaction(ctx, a.ID, transaction.DeleteKey{PublicKey: publicKey})
}

func (a *Account) signAndSendTransaction(ctx context.Context, receiverID string,
	actions ...transaction.Action) (*rpc.FinalExecutionOutcome, error) {

	// 组装交易
	tx, err := a.buildTransaction(ctx, receiverID, actions)
	if err != nil {
		return nil, err
	}

	// 签名和生成 Tx hash
	hash, signed, err := transaction.Sign(tx, a.conn.Signer, a.ID, a.conn.NetworkID)
	if err != nil {
		return nil, err
	}
	a.conn.Logger.Debug("send transaction", "hash", hash, "signer", a.ID, "receiver", receiverID, "nonce", tx.Nonce)

	// 提交
	outcome, err := a.conn.Provider.SendTransaction(ctx, signed)
	if err != nil {
		return nil, err
	}
	if len(outcome.Status.Failure) > 0 {
		return outcome, fmt.Errorf("%w: transaction %s: %s", rpc.ErrTransactionFailed, hash, string(outcome.Status.Failure))
	}
	return outcome, nil
}

func (a *Account) buildTransaction(ctx context.Context, receiverID string,
	actions []transaction.Action) (*transaction.Transaction, error) {

	pk, err := a.conn.Signer.GetPublicKey(a.ID, a.conn.NetworkID)
	if err != nil {
		return nil, err
	}
	accessKey, err := a.conn.Provider.ViewAccessKey(ctx, a.ID, pk.String())
	if err != nil {
		return nil, err
	}
	status, err := a.conn.Provider.Status(ctx)
	if err != nil {
		return nil, err
	}
	blockHash, err := base58.Decode(status.SyncInfo.LatestBlockHash)
	if err != nil || len(blockHash) != 32 {
		return nil, fmt.Errorf("%w: %q", ErrBadBlockHash, status.SyncInfo.LatestBlockHash)
	}

	tx := &transaction.Transaction{
		SignerID:   a.ID,
		PublicKey:  pk,
		Nonce:      accessKey.Nonce + 1,
		ReceiverID: receiverID,
		Actions:    actions,
	}
	copy(tx.BlockHash[:], blockHash)
	return tx, nil
}
