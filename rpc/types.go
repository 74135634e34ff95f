/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package rpc

import (
	"encoding/json"
	"fmt"
)

// NodeStatus is the reply of `status`
type NodeStatus struct {
	ChainID  string   `json:"chain_id"`
	RPCAddr  string   `json:"rpc_addr"`
	SyncInfo SyncInfo `json:"sync_info"`
}

// SyncInfo is the sync part of the node status
type SyncInfo struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockHeight uint64 `json:"latest_block_height"`
	LatestBlockTime   string `json:"latest_block_time"`
	Syncing           bool   `json:"syncing"`
}

// AccountView is the on-chain state of an account
type AccountView struct {
	Amount        string `json:"amount"`
	Locked        string `json:"locked"`
	CodeHash      string `json:"code_hash"`
	StorageUsage  uint64 `json:"storage_usage"`
	StoragePaidAt uint64 `json:"storage_paid_at"`
	BlockHeight   uint64 `json:"block_height,omitempty"`
	BlockHash     string `json:"block_hash,omitempty"`
}

// AccessKeyList is the reply of an access key list query
type AccessKeyList struct {
	Keys []AccessKeyInfo `json:"keys"`
}

// UnmarshalJSON accepts the bare array older nodes reply with
func (l *AccessKeyList) UnmarshalJSON(data []byte) error {
	var keys []AccessKeyInfo
	if err := json.Unmarshal(data, &keys); err == nil {
		l.Keys = keys
		return nil
	}
	type list AccessKeyList
	var v list
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = AccessKeyList(v)
	return nil
}

// HasKey reports whether publicKey is among the keys
func (l *AccessKeyList) HasKey(publicKey string) bool {
	for _, k := range l.Keys {
		if k.PublicKey == publicKey {
			return true
		}
	}
	return false
}

// AccessKeyInfo pairs a public key with its permission record
type AccessKeyInfo struct {
	PublicKey string        `json:"public_key"`
	AccessKey AccessKeyView `json:"access_key"`
}

// AccessKeyView is the permission record of one key
type AccessKeyView struct {
	Nonce      uint64     `json:"nonce"`
	Permission Permission `json:"permission"`
}

// Permission is either "FullAccess" or a function call restriction
type Permission struct {
	FullAccess   bool
	FunctionCall *FunctionCallPermissionView
}

// FunctionCallPermissionView limits a key to calls on one contract
type FunctionCallPermissionView struct {
	Allowance   *string  `json:"allowance"`
	ReceiverID  string   `json:"receiver_id"`
	MethodNames []string `json:"method_names"`
}

// UnmarshalJSON accepts both the string and the object form
func (p *Permission) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "FullAccess" {
			return fmt.Errorf("unknown permission %q", s)
		}
		p.FullAccess = true
		return nil
	}
	var obj struct {
		FunctionCall *FunctionCallPermissionView `json:"FunctionCall"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.FunctionCall = obj.FunctionCall
	return nil
}

// MarshalJSON writes the node's form back
func (p Permission) MarshalJSON() ([]byte, error) {
	if p.FunctionCall == nil {
		return json.Marshal("FullAccess")
	}
	return json.Marshal(map[string]interface{}{"FunctionCall": p.FunctionCall})
}

// String is a short human form used in listings
func (p Permission) String() string {
	if p.FunctionCall == nil {
		return "FullAccess"
	}
	return fmt.Sprintf("FunctionCall(%s %v)", p.FunctionCall.ReceiverID, p.FunctionCall.MethodNames)
}

// CallResult is the reply of a view function call
type CallResult struct {
	Result []int    `json:"result"`
	Logs   []string `json:"logs"`
}

// Bytes converts the byte array the node sends as numbers
func (r *CallResult) Bytes() []byte {
	b := make([]byte, len(r.Result))
	for i, v := range r.Result {
		b[i] = byte(v)
	}
	return b
}

// FinalExecutionOutcome is the reply of broadcast_tx_commit and tx
type FinalExecutionOutcome struct {
	Status             ExecutionStatus `json:"status"`
	Transaction        json.RawMessage `json:"transaction,omitempty"`
	TransactionOutcome json.RawMessage `json:"transaction_outcome,omitempty"`
	ReceiptsOutcome    json.RawMessage `json:"receipts_outcome,omitempty"`
}

// ExecutionStatus is the final status of a transaction
type ExecutionStatus struct {
	SuccessValue     *string         `json:"SuccessValue,omitempty"`
	SuccessReceiptID *string         `json:"SuccessReceiptId,omitempty"`
	Failure          json.RawMessage `json:"Failure,omitempty"`
	// Plain is set for the string form, e.g. "NotStarted"
	Plain string `json:"-"`
}

// UnmarshalJSON accepts both the string and the object form
func (s *ExecutionStatus) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		s.Plain = plain
		return nil
	}
	type status ExecutionStatus
	var st status
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	*s = ExecutionStatus(st)
	return nil
}
