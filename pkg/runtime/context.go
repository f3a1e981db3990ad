// Package runtime provides the host-side execution environment the
// collection program runs under: positional account views, program logs,
// native-program invocation, and program-derived address math.
package runtime

import (
	"errors"
	"fmt"

	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// Context errors
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNotWritable  = errors.New("account is not writable")
	ErrAccountNotSigner    = errors.New("account is not a signer")
	ErrInvalidAccountIndex = errors.New("invalid account index")
	ErrMaxLogsExceeded     = errors.New("maximum log entries exceeded")
	ErrReadOnlyModified    = errors.New("read-only account was modified")
)

// Limits for execution
const (
	MaxLogMessages      = 64
	MaxLogMessageLength = 10000
	MaxAccountDataSize  = 10 * 1024 * 1024 // 10MB
)

// AccountInfo is the view of one account an instruction executes against.
type AccountInfo struct {
	Pubkey     types.Pubkey
	Lamports   *uint64 // Pointer allows modification detection
	Data       []byte
	Owner      types.Pubkey
	Executable bool
	IsSigner   bool
	IsWritable bool
}

// NewAccountInfo builds an AccountInfo from a stored account and the
// privileges the transaction grants it.
func NewAccountInfo(pubkey types.Pubkey, account *types.Account, isSigner, isWritable bool) *AccountInfo {
	lamports := uint64(account.Lamports)
	info := &AccountInfo{
		Pubkey:     pubkey,
		Lamports:   &lamports,
		Owner:      account.Owner,
		Executable: account.Executable,
		IsSigner:   isSigner,
		IsWritable: isWritable,
	}
	if account.Data != nil {
		info.Data = make([]byte, len(account.Data))
		copy(info.Data, account.Data)
	}
	return info
}

// Clone creates a deep copy of AccountInfo.
func (a *AccountInfo) Clone() *AccountInfo {
	if a == nil {
		return nil
	}
	lamports := *a.Lamports
	clone := &AccountInfo{
		Pubkey:     a.Pubkey,
		Lamports:   &lamports,
		Owner:      a.Owner,
		Executable: a.Executable,
		IsSigner:   a.IsSigner,
		IsWritable: a.IsWritable,
	}
	if a.Data != nil {
		clone.Data = make([]byte, len(a.Data))
		copy(clone.Data, a.Data)
	}
	return clone
}

// ToAccount converts the view back to a stored account.
func (a *AccountInfo) ToAccount() *types.Account {
	acc := &types.Account{
		Lamports:   types.Lamports(*a.Lamports),
		Owner:      a.Owner,
		Executable: a.Executable,
	}
	if a.Data != nil {
		acc.Data = make([]byte, len(a.Data))
		copy(acc.Data, a.Data)
	}
	return acc
}

// ExecutionContext holds the state one instruction executes against.
type ExecutionContext struct {
	// Program being executed
	ProgramID types.Pubkey

	// Accounts available to the instruction, in instruction order
	Accounts []*AccountInfo

	// Account index by pubkey for fast lookup
	accountIndex map[types.Pubkey]int

	// Instruction data
	InstructionData []byte

	// Execution logs
	logs []string
}

// NewExecutionContext creates a new execution context.
func NewExecutionContext(programID types.Pubkey, accounts []*AccountInfo, instructionData []byte) *ExecutionContext {
	ctx := &ExecutionContext{
		ProgramID:       programID,
		Accounts:        accounts,
		InstructionData: instructionData,
		accountIndex:    make(map[types.Pubkey]int),
		logs:            make([]string, 0, MaxLogMessages),
	}
	for i, acc := range accounts {
		ctx.accountIndex[acc.Pubkey] = i
	}
	return ctx
}

// Account returns the account at the given positional slot.
func (ctx *ExecutionContext) Account(index int) (*AccountInfo, error) {
	if index < 0 || index >= len(ctx.Accounts) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAccountIndex, index)
	}
	return ctx.Accounts[index], nil
}

// AccountByPubkey returns an account by pubkey.
func (ctx *ExecutionContext) AccountByPubkey(pubkey types.Pubkey) (*AccountInfo, error) {
	idx, ok := ctx.accountIndex[pubkey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, pubkey.String())
	}
	return ctx.Accounts[idx], nil
}

// AccountCount returns the number of accounts.
func (ctx *ExecutionContext) AccountCount() int {
	return len(ctx.Accounts)
}

// Log records a program log line, truncating once the buffer is full.
func (ctx *ExecutionContext) Log(format string, args ...any) {
	if len(ctx.logs) >= MaxLogMessages {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if len(msg) > MaxLogMessageLength {
		msg = msg[:MaxLogMessageLength]
	}
	ctx.logs = append(ctx.logs, msg)
}

// Logs returns all log messages recorded so far.
func (ctx *ExecutionContext) Logs() []string {
	logs := make([]string, len(ctx.logs))
	copy(logs, ctx.logs)
	return logs
}
