// Package bank executes instructions against the account store. It loads
// the accounts an instruction names, runs the owning program over them,
// and commits the resulting account state only if every instruction in
// the batch succeeds.
package bank

import (
	"errors"
	"fmt"

	"github.com/MercuryProtocol-labs/collection/pkg/accounts"
	"github.com/MercuryProtocol-labs/collection/pkg/runtime"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// Bank errors
var (
	// ErrProgramNotFound indicates the instruction names an unregistered program.
	ErrProgramNotFound = errors.New("program not found")

	// ErrEmptyTransaction indicates a transaction with no instructions.
	ErrEmptyTransaction = errors.New("transaction has no instructions")
)

// Result reports the outcome of one executed transaction.
type Result struct {
	// Err is nil on success, otherwise the error the failing
	// instruction returned.
	Err error

	// Logs are the program log lines of every executed instruction,
	// including the failing one.
	Logs []string
}

// Success reports whether the transaction committed.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Bank executes transactions against an account store.
type Bank struct {
	store accounts.Store
}

// New creates a bank over the given store.
func New(store accounts.Store) *Bank {
	return &Bank{store: store}
}

// Fund credits lamports to a system-owned account, creating it if it
// does not exist. Used to seed fee payers.
func (b *Bank) Fund(pubkey types.Pubkey, lamports types.Lamports) error {
	account, err := b.store.GetAccount(pubkey)
	if err != nil {
		return err
	}
	if account == nil {
		account = types.NewAccount(0, types.SystemProgramID)
	}
	account.Lamports += lamports
	return b.store.SetAccount(pubkey, account)
}

// Balance returns the lamport balance of an account, zero if it does
// not exist.
func (b *Bank) Balance(pubkey types.Pubkey) (types.Lamports, error) {
	account, err := b.store.GetAccount(pubkey)
	if err != nil {
		return 0, err
	}
	if account == nil {
		return 0, nil
	}
	return account.Lamports, nil
}

// ExecuteInstruction executes a single instruction as its own transaction.
func (b *Bank) ExecuteInstruction(inst types.Instruction) (*Result, error) {
	return b.ExecuteTransaction([]types.Instruction{inst})
}

// ExecuteTransaction executes the instructions in order against a private
// view of the store. All account writes commit together once the last
// instruction succeeds; any failure discards every write.
func (b *Bank) ExecuteTransaction(instructions []types.Instruction) (*Result, error) {
	if len(instructions) == 0 {
		return nil, ErrEmptyTransaction
	}

	result := &Result{}
	overlay := make(map[types.Pubkey]*types.Account)

	for i, inst := range instructions {
		program, ok := runtime.LookupNative(inst.ProgramID)
		if !ok {
			result.Err = fmt.Errorf("%w: %s", ErrProgramNotFound, inst.ProgramID.String())
			return result, nil
		}

		infos, err := b.loadInstructionAccounts(inst, overlay)
		if err != nil {
			return nil, err
		}

		ctx := runtime.NewExecutionContext(inst.ProgramID, infos, inst.Data)
		err = program(ctx, inst.Data)
		result.Logs = append(result.Logs, ctx.Logs()...)
		if err != nil {
			result.Err = fmt.Errorf("instruction %d failed: %w", i, err)
			return result, nil
		}

		// Writes become visible to the transaction's later instructions.
		for _, info := range infos {
			overlay[info.Pubkey] = info.ToAccount()
		}
	}

	if err := b.commit(overlay); err != nil {
		return nil, err
	}
	return result, nil
}

// loadInstructionAccounts materializes the instruction's account views,
// preferring the transaction overlay over the store. Accounts that do
// not exist yet load as empty system-owned accounts.
func (b *Bank) loadInstructionAccounts(inst types.Instruction, overlay map[types.Pubkey]*types.Account) ([]*runtime.AccountInfo, error) {
	infos := make([]*runtime.AccountInfo, len(inst.Accounts))
	seen := make(map[types.Pubkey]*runtime.AccountInfo)

	for i, meta := range inst.Accounts {
		// A pubkey appearing twice shares one view, with the union of
		// the granted privileges.
		if info, ok := seen[meta.Pubkey]; ok {
			info.IsSigner = info.IsSigner || meta.IsSigner
			info.IsWritable = info.IsWritable || meta.IsWritable
			infos[i] = info
			continue
		}

		account, ok := overlay[meta.Pubkey]
		if !ok {
			stored, err := b.store.GetAccount(meta.Pubkey)
			if err != nil {
				return nil, fmt.Errorf("failed to load account %s: %w", meta.Pubkey.String(), err)
			}
			account = stored
		}
		if account == nil {
			account = types.NewAccount(0, types.SystemProgramID)
		}

		info := runtime.NewAccountInfo(meta.Pubkey, account, meta.IsSigner, meta.IsWritable)
		seen[meta.Pubkey] = info
		infos[i] = info
	}

	return infos, nil
}

// commit writes the transaction's account state back to the store.
// Accounts swept to zero lamports with no data are purged, mirroring the
// host's garbage collection of dead accounts.
func (b *Bank) commit(overlay map[types.Pubkey]*types.Account) error {
	for pubkey, account := range overlay {
		if account.IsEmpty() && account.Owner.IsSystemProgram() {
			if err := b.store.DeleteAccount(pubkey); err != nil {
				return fmt.Errorf("failed to purge account %s: %w", pubkey.String(), err)
			}
			continue
		}
		if err := b.store.SetAccount(pubkey, account); err != nil {
			return fmt.Errorf("failed to store account %s: %w", pubkey.String(), err)
		}
	}
	return nil
}
