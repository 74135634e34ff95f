/*
 * Copyright (c) 2021. Baidu Inc. All Rights Reserved.
 */

package rpc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	ethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Kind classifies remote failures the shell reacts to differently
type Kind int

const (
	// KindUnknown is any failure not recognized below
	KindUnknown Kind = iota
	// KindInvalidAccountID malformed or missing account id
	KindInvalidAccountID
	// KindAccountNotFound account does not exist on the network
	KindAccountNotFound
)

// String names the kind
func (k Kind) String() string {
	switch k {
	case KindInvalidAccountID:
		return "InvalidAccountIdentifier"
	case KindAccountNotFound:
		return "AccountNotFound"
	default:
		return "UnclassifiedRemoteError"
	}
}

// Error is returned by every Provider call that fails
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Data    interface{}

	err error
}

func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Data)
	}
	return e.Message
}

// Unwrap returns the transport error
func (e *Error) Unwrap() error {
	return e.err
}

// KindOf returns the Kind of err, KindUnknown when err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// classify turns a transport or node error into an *Error.
// Node errors only carry text, so the kind is decided here once and
// callers match on Kind.
func classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	re := &Error{Message: err.Error(), err: err}
	var codeErr ethrpc.Error
	if errors.As(err, &codeErr) {
		re.Code = codeErr.ErrorCode()
	}
	var dataErr ethrpc.DataError
	if errors.As(err, &dataErr) {
		re.Data = dataErr.ErrorData()
	}
	re.Kind = kindFromText(re.Error())
	return re
}

func kindFromText(text string) Kind {
	switch {
	// "Account ID" 优先于 "does not exist"
	case strings.Contains(text, "Account ID"),
		strings.Contains(strings.ToLower(text), "invalid account"):
		return KindInvalidAccountID
	case strings.Contains(text, "does not exist"):
		return KindAccountNotFound
	default:
		return KindUnknown
	}
}

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

// ValidateAccountID checks the account id format locally
func ValidateAccountID(accountID string) error {
	if len(accountID) < minAccountIDLen || len(accountID) > maxAccountIDLen ||
		!accountIDPattern.MatchString(accountID) {
		return &Error{
			Kind:    KindInvalidAccountID,
			Message: fmt.Sprintf("Account ID %q is invalid", accountID),
		}
	}
	return nil
}
