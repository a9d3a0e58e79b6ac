package service

import (
	"errors"
	"fmt"

	"github.com/KotFed0t/meme_launchpad_bot/internal/errorDecoder"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrValidation    = errors.New("invalid input")
	ErrAuthorization = errors.New("not authorized")
	ErrPrecondition  = errors.New("precondition failed")
	ErrChain         = errors.New("chain error")
	ErrReverted      = errors.New("transaction reverted")
)

// ChainError is a failed RPC call, submission or mined-but-reverted transaction.
type ChainError struct {
	Op     string
	TxHash common.Hash
	Err    error
	Revert errorDecoder.Revert
	// Reason is filled from the block explorer when the node gave no revert data.
	Reason string
}

func NewChainError(op string, txHash common.Hash, err error) *ChainError {
	revert, _ := errorDecoder.FromError(err)
	return &ChainError{Op: op, TxHash: txHash, Err: err, Revert: revert}
}

func (e *ChainError) Error() string {
	msg := e.Err.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Revert.Known() {
		msg += " (" + e.Revert.Name + ")"
	} else if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *ChainError) Unwrap() []error {
	return []error{e.Err, ErrChain}
}

type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
