// Package collection implements the collection program: an on-chain
// registry of user-owned collections of unique tokens.
//
// A collection is a program-owned account holding metadata, a supply
// counter, and a stars counter, mutable only by its recorded authority.
// Membership of a mint in a collection is proven by a fixed-size index
// record at the address derived from the mint. Star pledges above the
// free tier pay a fee into the program's derived treasury account.
//
// Program ID: co111CrRL738X8TKrqmLcNBstgLFZjuMtZRBW2FGpbC
package collection

import (
	"github.com/MercuryProtocol-labs/collection/pkg/runtime"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// ProgramID is the canonical deployment id of the collection program.
var ProgramID = types.MustPubkeyFromBase58("co111CrRL738X8TKrqmLcNBstgLFZjuMtZRBW2FGpbC")

// Star pledge fees, in lamports.
const (
	// StarsHundredFee is the fee for a one-hundred-star pledge (0.01 SOL).
	StarsHundredFee = 10_000_000

	// StarsThousandFee is the fee for a one-thousand-star pledge (1 SOL).
	StarsThousandFee = 1_000_000_000
)

// Program implements the collection program.
type Program struct {
	// ProgramID is the id the program expects to execute under.
	ProgramID types.Pubkey
}

// New creates a new Program instance bound to the canonical id.
func New() *Program {
	return &Program{ProgramID: ProgramID}
}

// Register registers the collection program with the runtime.
func Register() {
	p := New()
	runtime.RegisterNative(p.ProgramID, p.Execute)
}

// Execute decodes a tagged instruction from the input bytes and routes it
// to its handler. Decoding errors propagate verbatim.
func (p *Program) Execute(ctx *runtime.ExecutionContext, input []byte) error {
	inst, err := DecodeInstruction(input)
	if err != nil {
		return err
	}

	switch inst.Tag {
	case TagCreateCollectionAccount:
		ctx.Log("Instruction: CreateCollectionAccount")
		return p.processCreateCollectionAccount(ctx, &inst.CreateCollectionAccount)

	case TagIncludeToken:
		ctx.Log("Instruction: IncludeToken")
		return p.processIncludeToken(ctx)

	case TagLightUpStarsOnce:
		ctx.Log("Instruction: LightUpStarsOnce")
		return p.processLightUpStarsOnce(ctx)

	case TagLightUpStarsHundred:
		ctx.Log("Instruction: LightUpStarsHundred")
		return p.processLightUpStars(ctx, StarsHundredFee, 100)

	case TagLightUpStarsThousand:
		ctx.Log("Instruction: LightUpStarsThousand")
		return p.processLightUpStars(ctx, StarsThousandFee, 1000)

	case TagCloseAccount:
		ctx.Log("Instruction: CloseAccount")
		return p.processCloseAccount(ctx, inst.CloseAccount)

	case TagWithdraw:
		ctx.Log("Instruction: Withdraw")
		return p.processWithdraw(ctx)

	default:
		return ErrInvalidInstructionArguments
	}
}
