package services

import (
	"context"
	"errors"
)

// ErrGatewayFailed wraps every failure of the external token service.
var ErrGatewayFailed = errors.New("token service call failed")

// MintOrder asks the token service to mint Amount tokens of Mint to
// Recipient, debiting Price from Recipient and crediting the treasury.
type MintOrder struct {
	Mint      string `json:"mint"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
	Price     uint64 `json:"price"`
}

// BurnOrder asks the token service to burn Amount tokens of Mint held by Holder.
type BurnOrder struct {
	Mint   string `json:"mint"`
	Holder string `json:"holder"`
	Amount uint64 `json:"amount"`
}

// TokenGateway executes the token movements paired with each state
// transition. Services call it inside the database transaction, so a gateway
// failure rolls the transition back.
type TokenGateway interface {
	Mint(ctx context.Context, order MintOrder) error
	Burn(ctx context.Context, order BurnOrder) error
	UpdateMetadata(ctx context.Context, avatarMint, uri string) error
}
