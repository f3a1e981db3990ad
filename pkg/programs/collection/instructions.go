package collection

import (
	"fmt"

	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// Argument size limits for CreateCollectionAccount, in bytes of UTF-8.
const (
	MaxTitleLength            = 32
	MaxSymbolLength           = 10
	MaxURILength              = 200
	MaxDescriptionLength      = 800
	MaxShortDescriptionLength = 800
	MaxTagLength              = 20
	MaxTagsArrayLength        = 6
)

// Instruction tags, in wire order. New instructions must be appended.
const (
	TagCreateCollectionAccount uint8 = iota
	TagIncludeToken
	TagLightUpStarsOnce
	TagLightUpStarsHundred
	TagLightUpStarsThousand
	TagCloseAccount
	TagWithdraw
)

// CreateCollectionAccountArgs carries the collection metadata submitted
// at creation time.
type CreateCollectionAccountArgs struct {
	Title            string
	Symbol           string
	Description      string
	IconImage        string
	HeaderImage      *string
	ShortDescription *string
	Banner           *string
	Tags             *[]string
}

// IsValid reports whether every argument respects its size limit.
func (a *CreateCollectionAccountArgs) IsValid() bool {
	return len(a.Title) <= MaxTitleLength &&
		len(a.Symbol) <= MaxSymbolLength &&
		len(a.Description) <= MaxDescriptionLength &&
		len(a.IconImage) <= MaxURILength &&
		(a.HeaderImage == nil || len(*a.HeaderImage) <= MaxURILength) &&
		(a.ShortDescription == nil || len(*a.ShortDescription) <= MaxShortDescriptionLength) &&
		(a.Banner == nil || len(*a.Banner) <= MaxURILength) &&
		a.checkTags()
}

func (a *CreateCollectionAccountArgs) checkTags() bool {
	if a.Tags == nil {
		return true
	}
	if len(*a.Tags) > MaxTagsArrayLength {
		return false
	}
	for _, tag := range *a.Tags {
		if len(tag) >= MaxTagLength {
			return false
		}
	}
	return true
}

// Instruction is the tagged union decoded from an instruction's input
// bytes: a 1-byte tag selecting the variant, followed by the variant's
// borsh-encoded payload. Only CreateCollectionAccount and CloseAccount
// carry a payload.
type Instruction struct {
	Tag                     uint8
	CreateCollectionAccount CreateCollectionAccountArgs
	CloseAccount            AccountType
}

// DecodeInstruction decodes an instruction from its wire form. Unknown
// tags and truncated payloads are rejected.
func DecodeInstruction(data []byte) (*Instruction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty instruction data")
	}
	if data[0] > TagWithdraw {
		return nil, fmt.Errorf("unknown instruction tag %d", data[0])
	}

	inst := &Instruction{Tag: data[0]}
	r := &borshReader{data: data[1:]}
	switch inst.Tag {
	case TagCreateCollectionAccount:
		inst.CreateCollectionAccount = CreateCollectionAccountArgs{
			Title:            r.readString(),
			Symbol:           r.readString(),
			Description:      r.readString(),
			IconImage:        r.readString(),
			HeaderImage:      r.readStringOption(),
			ShortDescription: r.readStringOption(),
			Banner:           r.readStringOption(),
			Tags:             r.readStringVecOption(),
		}
	case TagCloseAccount:
		inst.CloseAccount = AccountType(r.readU8())
	}
	if err := r.err(); err != nil {
		return nil, fmt.Errorf("instruction tag %d: %w", inst.Tag, err)
	}
	return inst, nil
}

// Encode serializes the instruction to its wire form.
func (inst *Instruction) Encode() ([]byte, error) {
	if inst.Tag > TagWithdraw {
		return nil, fmt.Errorf("unknown instruction tag %d", inst.Tag)
	}

	w := &borshWriter{}
	w.writeU8(inst.Tag)
	switch inst.Tag {
	case TagCreateCollectionAccount:
		args := &inst.CreateCollectionAccount
		w.writeString(args.Title)
		w.writeString(args.Symbol)
		w.writeString(args.Description)
		w.writeString(args.IconImage)
		w.writeStringOption(args.HeaderImage)
		w.writeStringOption(args.ShortDescription)
		w.writeStringOption(args.Banner)
		w.writeStringVecOption(args.Tags)
	case TagCloseAccount:
		w.writeU8(uint8(inst.CloseAccount))
	}
	return w.buf, nil
}

func mustEncode(inst *Instruction) []byte {
	data, err := inst.Encode()
	if err != nil {
		panic(err)
	}
	return data
}

// NewCreateCollectionAccount builds a CreateCollectionAccount instruction.
//
// Accounts:
//
//	0. `[writable, signer]` new collection account
//	1. `[writable, signer]` funding account, recorded as the authority
//	2. `[]` rent sysvar
//	3. `[]` system program
func NewCreateCollectionAccount(programID, collectionAccount, fundingAccount types.Pubkey, args CreateCollectionAccountArgs) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			types.Meta(collectionAccount, true),
			types.Meta(fundingAccount, true),
			types.MetaReadonly(types.SysvarRentID, false),
			types.MetaReadonly(types.SystemProgramID, false),
		},
		Data: mustEncode(&Instruction{Tag: TagCreateCollectionAccount, CreateCollectionAccount: args}),
	}
}

// NewIncludeToken builds an IncludeToken instruction.
//
// Accounts:
//
//	0. `[writable]` collection account
//	1. `[signer]` collection authority
//	2. `[]` mint of the token asset (supply must be 1)
//	3. `[]` token account of the mint
//	4. `[writable]` collection index account (derived from the mint)
//	5. `[writable, signer]` funding account
//	6. `[]` rent sysvar
//	7. `[]` system program
func NewIncludeToken(programID, collectionAccount, authority, mint, mintTokenAccount, indexAccount, payer types.Pubkey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			types.Meta(collectionAccount, false),
			types.MetaReadonly(authority, true),
			types.MetaReadonly(mint, false),
			types.MetaReadonly(mintTokenAccount, false),
			types.Meta(indexAccount, false),
			types.Meta(payer, true),
			types.MetaReadonly(types.SysvarRentID, false),
			types.MetaReadonly(types.SystemProgramID, false),
		},
		Data: mustEncode(&Instruction{Tag: TagIncludeToken}),
	}
}

// NewLightUpStarsOnce builds a LightUpStarsOnce instruction.
//
// Accounts:
//
//	0. `[writable, signer]` collection account
func NewLightUpStarsOnce(programID, collectionAccount types.Pubkey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			types.Meta(collectionAccount, true),
		},
		Data: mustEncode(&Instruction{Tag: TagLightUpStarsOnce}),
	}
}

// NewLightUpStarsHundred builds a LightUpStarsHundred instruction.
//
// Accounts:
//
//	0. `[writable]` collection account
//	1. `[writable, signer]` fee source account
//	2. `[writable]` treasury account (derived)
//	3. `[]` system program
func NewLightUpStarsHundred(programID, collectionAccount, source, treasury types.Pubkey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts:  starsAccounts(collectionAccount, source, treasury),
		Data:      mustEncode(&Instruction{Tag: TagLightUpStarsHundred}),
	}
}

// NewLightUpStarsThousand builds a LightUpStarsThousand instruction.
// Accounts as for NewLightUpStarsHundred.
func NewLightUpStarsThousand(programID, collectionAccount, source, treasury types.Pubkey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts:  starsAccounts(collectionAccount, source, treasury),
		Data:      mustEncode(&Instruction{Tag: TagLightUpStarsThousand}),
	}
}

func starsAccounts(collectionAccount, source, treasury types.Pubkey) []types.AccountMeta {
	return []types.AccountMeta{
		types.Meta(collectionAccount, false),
		types.Meta(source, true),
		types.Meta(treasury, false),
		types.MetaReadonly(types.SystemProgramID, false),
	}
}

// NewCloseAccount builds a CloseAccount instruction.
//
// Accounts:
//
//	0. `[writable]` account to close
//	1. `[writable]` lamport recipient
//	2. `[signer]` account's authority
func NewCloseAccount(programID, stateAccount, recipient, authority types.Pubkey, accountType AccountType) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			types.Meta(stateAccount, false),
			types.Meta(recipient, false),
			types.MetaReadonly(authority, true),
		},
		Data: mustEncode(&Instruction{Tag: TagCloseAccount, CloseAccount: accountType}),
	}
}

// NewWithdraw builds a Withdraw instruction.
//
// Accounts:
//
//	0. `[writable]` treasury account (derived)
//	1. `[writable]` recipient account
func NewWithdraw(programID, treasury, recipient types.Pubkey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			types.Meta(treasury, false),
			types.Meta(recipient, false),
		},
		Data: mustEncode(&Instruction{Tag: TagWithdraw}),
	}
}
