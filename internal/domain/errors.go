package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrDisputeNotFound   = errors.New("dispute not found")
	ErrPayoutNotFound    = errors.New("payout not found")
	ErrIllegalTransition = errors.New("illegal order transition")
	// ErrOrderStateChanged means a conditional update found the order in a
	// different state than the caller observed. The caller lost the race and
	// must re-read, never retry blindly.
	ErrOrderStateChanged        = errors.New("order state changed, please refresh")
	ErrInvalidSignature         = errors.New("invalid webhook signature")
	ErrAmountMismatch           = errors.New("charged amount does not match order total")
	ErrInsufficientFunds        = errors.New("insufficient funds")
	ErrDisputeAlreadyOpen       = errors.New("an active dispute already exists for this order")
	ErrDisputeAlreadyResolved   = errors.New("dispute already resolved")
	ErrProviderCallFailed       = errors.New("payment provider call failed")
	ErrTrackingAlreadySubmitted = errors.New("return tracking already submitted")
	ErrNoChargeReference        = errors.New("order has no provider charge reference")
	ErrNotOrderParty            = errors.New("caller is not a party to this order")
)

func illegalTransition(current OrderStatus, event TransitionEvent) error {
	return fmt.Errorf("%w: cannot apply %s while %s", ErrIllegalTransition, event, current)
}
