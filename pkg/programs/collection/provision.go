package collection

import (
	"github.com/MercuryProtocol-labs/collection/pkg/programs/system"
	"github.com/MercuryProtocol-labs/collection/pkg/runtime"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// requiredLamports computes the lamports still missing for the account to
// be rent exempt at the given size, never less than 1 for a fresh account.
func requiredLamports(current uint64, space int) uint64 {
	required := uint64(types.RentExemptMinimum(uint64(space)))
	if required < 1 {
		required = 1
	}
	if current >= required {
		return 0
	}
	return required - current
}

// createOwnedAccount creates a caller-signed account sized for space and
// owned by owner, funded from the from account. The new account's key
// must have signed the transaction.
func createOwnedAccount(ctx *runtime.ExecutionContext, from, newAccount *runtime.AccountInfo, space int, owner types.Pubkey) error {
	lamports := requiredLamports(*newAccount.Lamports, space)
	ctx.Log("Transfer %d lamports to the new account", lamports)
	return ctx.Invoke(system.CreateAccount(from.Pubkey, newAccount.Pubkey, lamports, uint64(space), owner))
}

// createDerivedAccount creates an account at a program-derived address in
// three steps (fund, allocate, assign), signing the last two with the
// derivation seeds. The single-step create is unavailable because a
// derived address has no private key.
func createDerivedAccount(ctx *runtime.ExecutionContext, payer, newAccount *runtime.AccountInfo, space int, signerSeeds [][]byte) error {
	lamports := requiredLamports(*newAccount.Lamports, space)
	if lamports > 0 {
		ctx.Log("Transfer %d lamports to the new account", lamports)
		if err := ctx.Invoke(system.Transfer(payer.Pubkey, newAccount.Pubkey, lamports)); err != nil {
			return err
		}
	}

	ctx.Log("Allocate space for the account")
	if err := ctx.InvokeSigned(system.Allocate(newAccount.Pubkey, uint64(space)), signerSeeds); err != nil {
		return err
	}

	ctx.Log("Assign the account to the owning program")
	return ctx.InvokeSigned(system.Assign(newAccount.Pubkey, ctx.ProgramID), signerSeeds)
}
