package collection

import "fmt"

// ProgramError is an error the collection program surfaces to the host as
// a custom program error. Codes are the declaration ordinals and are
// stable across releases; new errors must be appended at the end.
type ProgramError uint32

// Collection program errors, in code order.
const (
	// ErrAlreadyInitialized is declared for code stability; account
	// re-creation is rejected by the System Program instead.
	ErrAlreadyInitialized ProgramError = iota

	// ErrUninitialized indicates the account holds no initialized record.
	ErrUninitialized

	// ErrInvalidNFT indicates the mint is not NFT-shaped (supply 1, 0 decimals).
	ErrInvalidNFT

	// ErrNotMintAuthority indicates the signer is not the mint authority.
	ErrNotMintAuthority

	// ErrNotCollectionAuthority indicates the signer is not the collection authority.
	ErrNotCollectionAuthority

	// ErrInvalidProgramID indicates the instruction was run under a foreign program id.
	ErrInvalidProgramID

	// ErrInvalidInstructionArguments indicates an argument exceeds its size limit.
	ErrInvalidInstructionArguments

	// ErrCollectionIndexAccountMismatch indicates the provided index account
	// is not the derived address for the mint.
	ErrCollectionIndexAccountMismatch

	// ErrInvalidTreasuryAccount indicates the provided account is not the
	// derived treasury address.
	ErrInvalidTreasuryAccount

	// ErrInvalidAccountType indicates the record discriminant does not match
	// the requested operation.
	ErrInvalidAccountType

	// ErrInsufficientFunds indicates there is nothing to withdraw.
	ErrInsufficientFunds

	// ErrNotTreasuryManager is declared for code stability; Withdraw
	// currently performs no authority check (see handler).
	ErrNotTreasuryManager
)

var programErrorMessages = map[ProgramError]string{
	ErrAlreadyInitialized:             "Already initialized",
	ErrUninitialized:                  "Uninitialized",
	ErrInvalidNFT:                     "Invalid nft",
	ErrNotMintAuthority:               "You must be the mint authority and signer on this transaction",
	ErrNotCollectionAuthority:         "You must be the collection authority and signer on this transaction",
	ErrInvalidProgramID:               "Invalid program id",
	ErrInvalidInstructionArguments:    "Invalid instruction arguments",
	ErrCollectionIndexAccountMismatch: "Collection index account mismatch",
	ErrInvalidTreasuryAccount:         "Invalid treasury account",
	ErrInvalidAccountType:             "Invalid account type",
	ErrInsufficientFunds:              "Insufficient funds",
	ErrNotTreasuryManager:             "You must be the treasury manager and signer on this transaction",
}

// Error implements the error interface.
func (e ProgramError) Error() string {
	if msg, ok := programErrorMessages[e]; ok {
		return msg
	}
	return fmt.Sprintf("Collection error %d", uint32(e))
}

// Code returns the numeric error code the host relays to the client.
func (e ProgramError) Code() uint32 {
	return uint32(e)
}
