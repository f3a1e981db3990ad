package system

import (
	"fmt"

	"github.com/MercuryProtocol-labs/collection/pkg/runtime"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// MaxAccountDataSize is the maximum account data size allowed.
const MaxAccountDataSize = 10 * 1024 * 1024 // 10 MB

// handleCreateAccount handles the CreateAccount instruction.
// Account layout:
//
//	[0] funding account (signer, writable)
//	[1] new account (signer, writable)
func handleCreateAccount(ctx *runtime.ExecutionContext, inst *CreateAccountInstruction) error {
	if ctx.AccountCount() < 2 {
		return fmt.Errorf("%w: CreateAccount requires 2 accounts", ErrInvalidInstructionData)
	}

	fundingAcc, err := ctx.Account(0)
	if err != nil {
		return err
	}
	if !fundingAcc.IsSigner {
		return fmt.Errorf("%w: funding account", ErrAccountNotSigner)
	}
	if !fundingAcc.IsWritable {
		return fmt.Errorf("%w: funding account", ErrAccountNotWritable)
	}

	newAcc, err := ctx.Account(1)
	if err != nil {
		return err
	}
	if !newAcc.IsSigner {
		return fmt.Errorf("%w: new account", ErrAccountNotSigner)
	}
	if !newAcc.IsWritable {
		return fmt.Errorf("%w: new account", ErrAccountNotWritable)
	}

	// An account with lamports, data, or a non-system owner already exists.
	if *newAcc.Lamports > 0 || len(newAcc.Data) > 0 || newAcc.Owner != types.SystemProgramID {
		return ErrAccountAlreadyExists
	}

	if inst.Space > MaxAccountDataSize {
		return ErrAccountDataTooLarge
	}

	rentExemptMinimum := types.RentExemptMinimum(inst.Space)
	if inst.Lamports < uint64(rentExemptMinimum) {
		return fmt.Errorf("%w: need %d lamports for rent exemption", ErrAccountNotRentExempt, rentExemptMinimum)
	}

	if *fundingAcc.Lamports < inst.Lamports {
		return fmt.Errorf("%w: need %d lamports, have %d", ErrInsufficientFunds, inst.Lamports, *fundingAcc.Lamports)
	}

	*fundingAcc.Lamports -= inst.Lamports
	*newAcc.Lamports += inst.Lamports
	newAcc.Data = make([]byte, inst.Space)
	newAcc.Owner = inst.Owner

	return nil
}

// handleAssign handles the Assign instruction.
// Account layout:
//
//	[0] account to assign (signer, writable)
func handleAssign(ctx *runtime.ExecutionContext, inst *AssignInstruction) error {
	if ctx.AccountCount() < 1 {
		return fmt.Errorf("%w: Assign requires 1 account", ErrInvalidInstructionData)
	}

	acc, err := ctx.Account(0)
	if err != nil {
		return err
	}
	if !acc.IsSigner {
		return fmt.Errorf("%w: account to assign", ErrAccountNotSigner)
	}
	if !acc.IsWritable {
		return fmt.Errorf("%w: account to assign", ErrAccountNotWritable)
	}

	// Only accounts still owned by the System Program can be reassigned.
	if acc.Owner != types.SystemProgramID {
		return fmt.Errorf("%w: account must be owned by System Program", ErrInvalidAccountOwner)
	}

	acc.Owner = inst.Owner
	return nil
}

// handleTransfer handles the Transfer instruction.
// Account layout:
//
//	[0] source account (signer, writable)
//	[1] destination account (writable)
func handleTransfer(ctx *runtime.ExecutionContext, inst *TransferInstruction) error {
	if ctx.AccountCount() < 2 {
		return fmt.Errorf("%w: Transfer requires 2 accounts", ErrInvalidInstructionData)
	}

	fromAcc, err := ctx.Account(0)
	if err != nil {
		return err
	}
	if !fromAcc.IsSigner {
		return fmt.Errorf("%w: source account", ErrAccountNotSigner)
	}
	if !fromAcc.IsWritable {
		return fmt.Errorf("%w: source account", ErrAccountNotWritable)
	}
	// The source must not carry data; data-bearing accounts are drained by
	// their owning program, not by system transfers.
	if len(fromAcc.Data) > 0 {
		return fmt.Errorf("%w: source account", ErrAccountDataNotEmpty)
	}

	toAcc, err := ctx.Account(1)
	if err != nil {
		return err
	}
	if !toAcc.IsWritable {
		return fmt.Errorf("%w: destination account", ErrAccountNotWritable)
	}

	if *fromAcc.Lamports < inst.Lamports {
		return fmt.Errorf("%w: need %d lamports, have %d", ErrInsufficientFunds, inst.Lamports, *fromAcc.Lamports)
	}

	*fromAcc.Lamports -= inst.Lamports
	*toAcc.Lamports += inst.Lamports
	return nil
}

// handleAllocate handles the Allocate instruction.
// Account layout:
//
//	[0] account to allocate (signer, writable)
func handleAllocate(ctx *runtime.ExecutionContext, inst *AllocateInstruction) error {
	if ctx.AccountCount() < 1 {
		return fmt.Errorf("%w: Allocate requires 1 account", ErrInvalidInstructionData)
	}

	acc, err := ctx.Account(0)
	if err != nil {
		return err
	}
	if !acc.IsSigner {
		return fmt.Errorf("%w: account to allocate", ErrAccountNotSigner)
	}
	if !acc.IsWritable {
		return fmt.Errorf("%w: account to allocate", ErrAccountNotWritable)
	}

	if len(acc.Data) > 0 {
		return fmt.Errorf("%w: account to allocate", ErrAccountDataNotEmpty)
	}
	if acc.Owner != types.SystemProgramID {
		return fmt.Errorf("%w: account must be owned by System Program", ErrInvalidAccountOwner)
	}
	if inst.Space > MaxAccountDataSize {
		return ErrAccountDataTooLarge
	}

	acc.Data = make([]byte, inst.Space)
	return nil
}
