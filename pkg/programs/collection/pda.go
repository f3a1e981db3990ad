package collection

import (
	"github.com/MercuryProtocol-labs/collection/pkg/runtime"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// treasurySeed is the second seed of the treasury address.
const treasurySeed = "treasury"

// DeriveIndexAddress computes the program-owned index address for a mint
// and the bump needed to sign as it.
//
// Seeds: ["collection", program_id, mint]
func DeriveIndexAddress(mint types.Pubkey) (types.Pubkey, uint8, error) {
	seeds := [][]byte{
		[]byte(Prefix),
		ProgramID[:],
		mint[:],
	}
	return runtime.FindProgramAddress(seeds, ProgramID)
}

// DeriveTreasuryAddress computes the single fee-collecting address of the
// program and the bump needed to sign as it.
//
// Seeds: ["collection", "treasury", program_id]
func DeriveTreasuryAddress() (types.Pubkey, uint8, error) {
	seeds := [][]byte{
		[]byte(Prefix),
		[]byte(treasurySeed),
		ProgramID[:],
	}
	return runtime.FindProgramAddress(seeds, ProgramID)
}
