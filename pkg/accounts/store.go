// Package accounts provides account storage for the collection program's
// host runtime: an in-memory store for tests and a persistent store
// backed by BadgerDB.
package accounts

import (
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// Store is the account storage interface the bank executes against.
type Store interface {
	// GetAccount retrieves an account by pubkey.
	// Returns nil, nil if the account does not exist.
	GetAccount(pubkey types.Pubkey) (*types.Account, error)

	// SetAccount stores an account.
	SetAccount(pubkey types.Pubkey, account *types.Account) error

	// DeleteAccount removes an account.
	DeleteAccount(pubkey types.Pubkey) error

	// HasAccount returns true if the account exists.
	HasAccount(pubkey types.Pubkey) bool

	// Count returns the total number of stored accounts.
	Count() uint64

	// Range calls fn for every stored account until fn returns false
	// or the iteration ends.
	Range(fn func(pubkey types.Pubkey, account *types.Account) bool) error

	// Close closes the store.
	Close() error
}
