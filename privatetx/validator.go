// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package privatetx validates private transactions -- a component
// unrelated to the message-frame core, included only to document its
// minimal interface: a small set of pre-execution checks a private
// (RESTRICTED-privacy) transaction must pass before its frame is ever
// constructed.
package privatetx

import (
	"math/big"

	"github.com/Fantom-foundation/msgframe/common"
	"github.com/Fantom-foundation/msgframe/tosca"
)

// Result is the outcome of validating a private transaction.
type Result int

const (
	Valid Result = iota
	PrivateValueNotZero
	PrivateUnimplementedTransactionType
	InvalidSignature
	WrongChainId
	ReplayProtectedSignaturesNotSupported
	PrivateNonceTooLow
	IncorrectPrivateNonce
)

func (r Result) String() string {
	switch r {
	case Valid:
		return "Valid"
	case PrivateValueNotZero:
		return "PrivateValueNotZero"
	case PrivateUnimplementedTransactionType:
		return "PrivateUnimplementedTransactionType"
	case InvalidSignature:
		return "InvalidSignature"
	case WrongChainId:
		return "WrongChainId"
	case ReplayProtectedSignaturesNotSupported:
		return "ReplayProtectedSignaturesNotSupported"
	case PrivateNonceTooLow:
		return "PrivateNonceTooLow"
	case IncorrectPrivateNonce:
		return "IncorrectPrivateNonce"
	default:
		return "Unknown"
	}
}

// TransactionType enumerates the transaction envelopes this validator
// knows how to check. Only Legacy private transactions are
// implemented; every other envelope is rejected with
// PrivateUnimplementedTransactionType, matching RESTRICTED-privacy
// transactions as they exist on chain today.
type TransactionType int

const (
	LegacyTransaction TransactionType = iota
	AccessListTransaction
	DynamicFeeTransaction
)

// Transaction is the sliver of a private transaction this validator
// needs: its envelope type, declared value, optional replay-protection
// chain id, nonce, and a way to recover its sender without the
// validator itself depending on a signature-recovery implementation
// (out of scope, per §1).
type Transaction struct {
	Type          TransactionType
	Value         common.U256
	ChainID       *big.Int // nil means the signature carries no EIP-155 replay protection
	Nonce         uint64
	RecoverSender func() (tosca.Address, error)
}

// Account is the sliver of account state the validator needs: its
// current on-chain nonce.
type Account struct {
	Nonce uint64
}

// Validate checks tx against account and the node's chain id,
// returning Valid if every check passes. allowFutureNonces relaxes the
// exact-nonce-match requirement to accept any nonce at or above the
// account's current nonce.
func Validate(tx Transaction, account Account, nodeChainID *big.Int, allowFutureNonces bool) Result {
	if tx.Type != LegacyTransaction {
		return PrivateUnimplementedTransactionType
	}

	if _, err := tx.RecoverSender(); err != nil {
		return InvalidSignature
	}

	if nodeChainID != nil && tx.ChainID != nil && nodeChainID.Cmp(tx.ChainID) != 0 {
		return WrongChainId
	}
	if nodeChainID == nil && tx.ChainID != nil {
		return ReplayProtectedSignaturesNotSupported
	}

	if !tx.Value.IsZero() {
		return PrivateValueNotZero
	}

	switch {
	case tx.Nonce < account.Nonce:
		return PrivateNonceTooLow
	case tx.Nonce > account.Nonce:
		if !allowFutureNonces {
			return IncorrectPrivateNonce
		}
	}
	return Valid
}
