package progression

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyInitialized = errors.New("avatar traits already initialized")
	ErrAlreadyMerged      = errors.New("trait already merged into this avatar")
	ErrInvalidTraitID     = errors.New("invalid trait id")

	ErrInvalidAssetID        = errors.New("invalid asset id")
	ErrAssetIdentityMismatch = errors.New("token is not the canonical mint for this asset")
	ErrNotABadge             = errors.New("asset is not a badge")
	ErrInvalidTier           = errors.New("invalid tier")

	ErrSequenceViolation = errors.New("tier out of sequence")
	ErrAlreadyPending    = errors.New("a minted badge is still waiting to be redeemed")
	ErrAlreadyMinted     = errors.New("badge for this tier already minted for this avatar")
	ErrSupplyExhausted   = errors.New("badge supply exhausted")

	ErrOwnershipVerificationFailed = errors.New("ownership verification failed")
	ErrWrongHolder                 = fmt.Errorf("%w: token is held by another wallet", ErrOwnershipVerificationFailed)
	ErrWrongMintIdentity           = fmt.Errorf("%w: token mint does not match", ErrOwnershipVerificationFailed)
	ErrWrongCollection             = fmt.Errorf("%w: token is not in the expected verified collection", ErrOwnershipVerificationFailed)
	ErrAmountNotExactlyOne         = fmt.Errorf("%w: token amount is not exactly one", ErrOwnershipVerificationFailed)
	ErrInsufficientBalance         = fmt.Errorf("%w: no token to burn", ErrOwnershipVerificationFailed)
)

func sequenceError(rank, requested Tier) error {
	return fmt.Errorf("%w: rank %s cannot advance to %s", ErrSequenceViolation, rank, requested)
}
