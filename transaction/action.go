/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package transaction

import (
	"math/big"

	"github.com/xuperchain/near-shell/crypto/keypair"
)

// action variant tags, order fixed by the chain
const (
	tagCreateAccount uint8 = iota
	tagDeployContract
	tagFunctionCall
	tagTransfer
	tagStake
	tagAddKey
	tagDeleteKey
	tagDeleteAccount
)

// access key permission tags
const (
	tagPermissionFunctionCall uint8 = iota
	tagPermissionFullAccess
)

// Action is one step executed by a transaction on its receiver
type Action interface {
	encode(w *borshWriter)
}

// CreateAccount creates the receiver account
type CreateAccount struct{}

func (CreateAccount) encode(w *borshWriter) {
	w.u8(tagCreateAccount)
}

// DeployContract replaces the receiver's contract code
type DeployContract struct {
	Code []byte
}

func (a DeployContract) encode(w *borshWriter) {
	w.u8(tagDeployContract)
	w.bytes(a.Code)
}

// FunctionCall calls a contract method on the receiver
type FunctionCall struct {
	MethodName string
	Args       []byte
	Gas        uint64
	Deposit    *big.Int
}

func (a FunctionCall) encode(w *borshWriter) {
	w.u8(tagFunctionCall)
	w.string(a.MethodName)
	w.bytes(a.Args)
	w.u64(a.Gas)
	w.u128(a.Deposit)
}

// Transfer moves Deposit yoctoNEAR to the receiver
type Transfer struct {
	Deposit *big.Int
}

func (a Transfer) encode(w *borshWriter) {
	w.u8(tagTransfer)
	w.u128(a.Deposit)
}

// Stake locks Stake yoctoNEAR for validation with PublicKey
type Stake struct {
	Stake     *big.Int
	PublicKey keypair.PublicKey
}

func (a Stake) encode(w *borshWriter) {
	w.u8(tagStake)
	w.u128(a.Stake)
	encodePublicKey(w, a.PublicKey)
}

// AccessKey is the permission record attached to a public key.
// A nil FunctionCall means full access.
type AccessKey struct {
	Nonce        uint64
	FunctionCall *FunctionCallPermission
}

// FunctionCallPermission restricts a key to calls on one contract
type FunctionCallPermission struct {
	Allowance   *big.Int
	ReceiverID  string
	MethodNames []string
}

// FullAccessKey returns a key allowed to sign any transaction
func FullAccessKey() AccessKey {
	return AccessKey{}
}

func (k AccessKey) encode(w *borshWriter) {
	w.u64(k.Nonce)
	if k.FunctionCall == nil {
		w.u8(tagPermissionFullAccess)
		return
	}
	w.u8(tagPermissionFunctionCall)
	if k.FunctionCall.Allowance == nil {
		w.u8(0)
	} else {
		w.u8(1)
		w.u128(k.FunctionCall.Allowance)
	}
	w.string(k.FunctionCall.ReceiverID)
	w.strings(k.FunctionCall.MethodNames)
}

// AddKey adds an access key to the receiver
type AddKey struct {
	PublicKey keypair.PublicKey
	AccessKey AccessKey
}

func (a AddKey) encode(w *borshWriter) {
	w.u8(tagAddKey)
	encodePublicKey(w, a.PublicKey)
	a.AccessKey.encode(w)
}

// DeleteKey removes an access key from the receiver
type DeleteKey struct {
	PublicKey keypair.PublicKey
}

func (a DeleteKey) encode(w *borshWriter) {
	w.u8(tagDeleteKey)
	encodePublicKey(w, a.PublicKey)
}

// DeleteAccount deletes the receiver and sends the rest to BeneficiaryID
type DeleteAccount struct {
	BeneficiaryID string
}

func (a DeleteAccount) encode(w *borshWriter) {
	w.u8(tagDeleteAccount)
	w.string(a.BeneficiaryID)
}

func encodePublicKey(w *borshWriter, pk keypair.PublicKey) {
	w.u8(uint8(pk.KeyType))
	w.fixed(pk.Data[:])
}
