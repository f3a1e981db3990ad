package token

import (
	"encoding/binary"
	"fmt"

	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// Account state sizes
const (
	// MintSize is the size of a serialized Mint account (82 bytes)
	MintSize = 82

	// TokenAccountSize is the size of a serialized TokenAccount (165 bytes)
	TokenAccountSize = 165
)

// Account state enum values
const (
	AccountStateUninitialized uint8 = 0
	AccountStateInitialized   uint8 = 1
	AccountStateFrozen        uint8 = 2
)

// COption represents an optional pubkey (like Rust's COption<Pubkey>).
// Wire form: 4 bytes tag + 32 bytes value = 36 bytes.
type COption struct {
	IsSome bool
	Value  types.Pubkey
}

// COptionU64 represents an optional u64 value.
// Wire form: 4 bytes tag + 8 bytes value = 12 bytes.
type COptionU64 struct {
	IsSome bool
	Value  uint64
}

// Mint represents an SPL Token mint account.
// Layout (82 bytes total):
//   - mint_authority: COption<Pubkey> (36 bytes)
//   - supply: u64 (8 bytes)
//   - decimals: u8 (1 byte)
//   - is_initialized: bool (1 byte)
//   - freeze_authority: COption<Pubkey> (36 bytes)
type Mint struct {
	MintAuthority   COption // Authority to mint new tokens
	Supply          uint64  // Total supply of tokens
	Decimals        uint8   // Number of decimal places
	IsInitialized   bool    // Whether the mint is initialized
	FreezeAuthority COption // Authority to freeze token accounts
}

// IsNFTShaped reports whether this mint carries exactly one indivisible
// token: supply 1 with 0 decimals.
func (m *Mint) IsNFTShaped() bool {
	return m.Supply == 1 && m.Decimals == 0
}

// TokenAccount represents an SPL Token account.
// Layout (165 bytes total):
//   - mint: Pubkey (32 bytes)
//   - owner: Pubkey (32 bytes)
//   - amount: u64 (8 bytes)
//   - delegate: COption<Pubkey> (36 bytes)
//   - state: AccountState (1 byte)
//   - is_native: COption<u64> (12 bytes)
//   - delegated_amount: u64 (8 bytes)
//   - close_authority: COption<Pubkey> (36 bytes)
type TokenAccount struct {
	Mint            types.Pubkey // The mint this account is associated with
	Owner           types.Pubkey // Owner of this account
	Amount          uint64       // Amount of tokens held
	Delegate        COption      // Optional delegate
	State           uint8        // Account state (Uninitialized, Initialized, Frozen)
	IsNative        COptionU64   // If Some, this is a wrapped SOL account
	DelegatedAmount uint64       // Amount delegated to the delegate
	CloseAuthority  COption      // Authority allowed to close this account
}

// DeserializeMint deserializes a Mint from bytes.
func DeserializeMint(data []byte) (*Mint, error) {
	if len(data) < MintSize {
		return nil, fmt.Errorf("%w: mint data too short, expected %d bytes, got %d",
			ErrInvalidAccountData, MintSize, len(data))
	}

	mint := &Mint{}
	offset := 0

	mint.MintAuthority, offset = deserializeCOption(data, offset)

	mint.Supply = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	mint.Decimals = data[offset]
	offset++

	mint.IsInitialized = data[offset] != 0
	offset++

	mint.FreezeAuthority, _ = deserializeCOption(data, offset)

	return mint, nil
}

// Serialize serializes the Mint to bytes.
func (m *Mint) Serialize() []byte {
	data := make([]byte, MintSize)
	offset := 0

	offset = serializeCOption(data, offset, m.MintAuthority)

	binary.LittleEndian.PutUint64(data[offset:offset+8], m.Supply)
	offset += 8

	data[offset] = m.Decimals
	offset++

	if m.IsInitialized {
		data[offset] = 1
	}
	offset++

	serializeCOption(data, offset, m.FreezeAuthority)

	return data
}

// DeserializeTokenAccount deserializes a TokenAccount from bytes.
func DeserializeTokenAccount(data []byte) (*TokenAccount, error) {
	if len(data) < TokenAccountSize {
		return nil, fmt.Errorf("%w: token account data too short, expected %d bytes, got %d",
			ErrInvalidAccountData, TokenAccountSize, len(data))
	}

	account := &TokenAccount{}
	offset := 0

	copy(account.Mint[:], data[offset:offset+32])
	offset += 32

	copy(account.Owner[:], data[offset:offset+32])
	offset += 32

	account.Amount = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	account.Delegate, offset = deserializeCOption(data, offset)

	account.State = data[offset]
	offset++

	account.IsNative, offset = deserializeCOptionU64(data, offset)

	account.DelegatedAmount = binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	account.CloseAuthority, _ = deserializeCOption(data, offset)

	return account, nil
}

// Serialize serializes the TokenAccount to bytes.
func (a *TokenAccount) Serialize() []byte {
	data := make([]byte, TokenAccountSize)
	offset := 0

	copy(data[offset:offset+32], a.Mint[:])
	offset += 32

	copy(data[offset:offset+32], a.Owner[:])
	offset += 32

	binary.LittleEndian.PutUint64(data[offset:offset+8], a.Amount)
	offset += 8

	offset = serializeCOption(data, offset, a.Delegate)

	data[offset] = a.State
	offset++

	offset = serializeCOptionU64(data, offset, a.IsNative)

	binary.LittleEndian.PutUint64(data[offset:offset+8], a.DelegatedAmount)
	offset += 8

	serializeCOption(data, offset, a.CloseAuthority)

	return data
}

func deserializeCOption(data []byte, offset int) (COption, int) {
	opt := COption{}
	tag := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	if tag == 1 {
		opt.IsSome = true
		copy(opt.Value[:], data[offset:offset+32])
	}
	offset += 32

	return opt, offset
}

func serializeCOption(data []byte, offset int, opt COption) int {
	if opt.IsSome {
		binary.LittleEndian.PutUint32(data[offset:offset+4], 1)
		copy(data[offset+4:offset+36], opt.Value[:])
	}
	return offset + 36
}

func deserializeCOptionU64(data []byte, offset int) (COptionU64, int) {
	opt := COptionU64{}
	tag := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	if tag == 1 {
		opt.IsSome = true
		opt.Value = binary.LittleEndian.Uint64(data[offset : offset+8])
	}
	offset += 8

	return opt, offset
}

func serializeCOptionU64(data []byte, offset int, opt COptionU64) int {
	if opt.IsSome {
		binary.LittleEndian.PutUint32(data[offset:offset+4], 1)
		binary.LittleEndian.PutUint64(data[offset+4:offset+12], opt.Value)
	}
	return offset + 12
}

// NewMint creates a new Mint with the given parameters.
func NewMint(decimals uint8, mintAuthority *types.Pubkey, freezeAuthority *types.Pubkey) *Mint {
	mint := &Mint{
		Supply:        0,
		Decimals:      decimals,
		IsInitialized: true,
	}
	if mintAuthority != nil {
		mint.MintAuthority = COption{IsSome: true, Value: *mintAuthority}
	}
	if freezeAuthority != nil {
		mint.FreezeAuthority = COption{IsSome: true, Value: *freezeAuthority}
	}
	return mint
}

// NewTokenAccount creates a new TokenAccount with the given parameters.
func NewTokenAccount(mint types.Pubkey, owner types.Pubkey) *TokenAccount {
	return &TokenAccount{
		Mint:   mint,
		Owner:  owner,
		Amount: 0,
		State:  AccountStateInitialized,
	}
}
