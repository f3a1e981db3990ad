// Package token provides the read contract of the SPL Token Program the
// collection program relies on: the binary layouts of mint and token
// accounts. The collection program never mutates token state; it only
// inspects mints to decide whether they are NFT-shaped.
package token

import "errors"

// Token account layout errors
var (
	// ErrInvalidAccountData indicates the account data is malformed.
	ErrInvalidAccountData = errors.New("invalid account data")

	// ErrInvalidMint indicates the mint account is invalid.
	ErrInvalidMint = errors.New("invalid mint")
)
