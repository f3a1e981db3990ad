package runtime

import (
	"errors"
	"fmt"

	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// Invocation errors
var (
	ErrProgramNotRegistered = errors.New("program not registered")
	ErrPrivilegeEscalation  = errors.New("signer privilege escalation")
	ErrMaxInvokeDepth       = errors.New("maximum invoke depth exceeded")
)

// MaxInvokeDepth is the maximum cross-program invocation depth.
const MaxInvokeDepth = 4

// NativeProgram executes one instruction of a native program against an
// execution context built for it.
type NativeProgram func(ctx *ExecutionContext, data []byte) error

// nativeRegistry maps program ids to their executors. Programs register
// themselves here so instructions can invoke across programs without the
// packages importing each other.
var nativeRegistry = make(map[types.Pubkey]NativeProgram)

// RegisterNative registers a native program executor under its program id.
// Re-registering an id replaces the previous executor.
func RegisterNative(programID types.Pubkey, program NativeProgram) {
	nativeRegistry[programID] = program
}

// LookupNative returns the registered executor for a program id.
func LookupNative(programID types.Pubkey) (NativeProgram, bool) {
	p, ok := nativeRegistry[programID]
	return p, ok
}

// Invoke performs a cross-program invocation signed only by the accounts
// that already signed the current instruction.
func (ctx *ExecutionContext) Invoke(inst types.Instruction) error {
	return ctx.invoke(inst, nil, 0)
}

// InvokeSigned performs a cross-program invocation in which the calling
// program additionally signs for every program-derived address produced
// by one of the given seed tuples.
func (ctx *ExecutionContext) InvokeSigned(inst types.Instruction, signerSeeds ...[][]byte) error {
	return ctx.invoke(inst, signerSeeds, 0)
}

func (ctx *ExecutionContext) invoke(inst types.Instruction, signerSeeds [][][]byte, depth int) error {
	if depth >= MaxInvokeDepth {
		return ErrMaxInvokeDepth
	}

	program, ok := nativeRegistry[inst.ProgramID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrProgramNotRegistered, inst.ProgramID.String())
	}

	// The calling program may sign for addresses derived from its own id.
	pdaSigners := make(map[types.Pubkey]bool, len(signerSeeds))
	for _, seeds := range signerSeeds {
		pda, err := CreateProgramAddress(seeds, ctx.ProgramID)
		if err != nil {
			return err
		}
		pdaSigners[pda] = true
	}

	// Build the callee's account views in instruction-meta order. Views are
	// clones; changes flow back only for writable metas after success.
	callees := make([]*AccountInfo, len(inst.Accounts))
	callers := make([]*AccountInfo, len(inst.Accounts))
	for i, meta := range inst.Accounts {
		caller, err := ctx.AccountByPubkey(meta.Pubkey)
		if err != nil {
			return err
		}
		if meta.IsSigner && !caller.IsSigner && !pdaSigners[meta.Pubkey] {
			return fmt.Errorf("%w: %s", ErrPrivilegeEscalation, meta.Pubkey.String())
		}
		callee := caller.Clone()
		callee.IsSigner = meta.IsSigner
		callee.IsWritable = meta.IsWritable
		callers[i] = caller
		callees[i] = callee
	}

	child := NewExecutionContext(inst.ProgramID, callees, inst.Data)
	child.Log("Program %s invoke [%d]", inst.ProgramID.String(), depth+1)

	err := program(child, inst.Data)
	if err != nil {
		child.Log("Program %s failed: %v", inst.ProgramID.String(), err)
	} else {
		child.Log("Program %s success", inst.ProgramID.String())
	}
	for _, line := range child.logs {
		ctx.Log("%s", line)
	}
	if err != nil {
		return err
	}

	// Propagate lamports, data, and owner back to the caller's views.
	for i, meta := range inst.Accounts {
		if !meta.IsWritable {
			continue
		}
		caller, callee := callers[i], callees[i]
		if !caller.IsWritable {
			return fmt.Errorf("%w: %s", ErrReadOnlyModified, meta.Pubkey.String())
		}
		*caller.Lamports = *callee.Lamports
		if len(callee.Data) != len(caller.Data) {
			caller.Data = make([]byte, len(callee.Data))
		}
		copy(caller.Data, callee.Data)
		caller.Owner = callee.Owner
	}
	return nil
}
