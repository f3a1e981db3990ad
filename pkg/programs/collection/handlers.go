package collection

import (
	"fmt"

	"github.com/MercuryProtocol-labs/collection/pkg/programs/system"
	"github.com/MercuryProtocol-labs/collection/pkg/programs/token"
	"github.com/MercuryProtocol-labs/collection/pkg/runtime"
)

// CreateCollectionAccount positional accounts:
//
//	0. new collection account, signer, writable
//	1. funding account, signer, writable (debited for rent)
//	2. rent sysvar
//	3. system program
func (p *Program) processCreateCollectionAccount(ctx *runtime.ExecutionContext, args *CreateCollectionAccountArgs) error {
	if ctx.ProgramID != p.ProgramID {
		return ErrInvalidProgramID
	}
	if !args.IsValid() {
		return ErrInvalidInstructionArguments
	}

	collectionInfo, err := ctx.Account(0)
	if err != nil {
		return err
	}
	fundingInfo, err := ctx.Account(1)
	if err != nil {
		return err
	}
	if !collectionInfo.IsSigner {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotSigner, collectionInfo.Pubkey.String())
	}
	if !collectionInfo.IsWritable {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotWritable, collectionInfo.Pubkey.String())
	}
	if !fundingInfo.IsSigner {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotSigner, fundingInfo.Pubkey.String())
	}

	record := &CollectionAccount{
		AccountType:      AccountTypeCollection,
		Title:            args.Title,
		Symbol:           args.Symbol,
		Description:      args.Description,
		IconImage:        args.IconImage,
		Supply:           0,
		Stars:            0,
		Authority:        fundingInfo.Pubkey,
		HeaderImage:      args.HeaderImage,
		ShortDescription: args.ShortDescription,
		Banner:           args.Banner,
		Tags:             args.Tags,
	}

	// Serialize once to size the account, then again into it.
	data, err := record.Serialize()
	if err != nil {
		return err
	}
	if err := createOwnedAccount(ctx, fundingInfo, collectionInfo, len(data), p.ProgramID); err != nil {
		return err
	}
	copy(collectionInfo.Data, data)
	return nil
}

// IncludeToken positional accounts:
//
//	0. collection account, writable
//	1. collection authority, signer
//	2. token mint
//	3. mint's token account (declared, not inspected)
//	4. index account at the mint's derived address, writable
//	5. payer, signer, writable (debited for rent)
//	6. rent sysvar
//	7. system program
func (p *Program) processIncludeToken(ctx *runtime.ExecutionContext) error {
	if ctx.ProgramID != p.ProgramID {
		return ErrInvalidProgramID
	}

	collectionInfo, err := ctx.Account(0)
	if err != nil {
		return err
	}
	authorityInfo, err := ctx.Account(1)
	if err != nil {
		return err
	}
	mintInfo, err := ctx.Account(2)
	if err != nil {
		return err
	}
	if _, err := ctx.Account(3); err != nil {
		return err
	}
	indexInfo, err := ctx.Account(4)
	if err != nil {
		return err
	}
	payerInfo, err := ctx.Account(5)
	if err != nil {
		return err
	}
	if !collectionInfo.IsWritable {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotWritable, collectionInfo.Pubkey.String())
	}

	record, err := DeserializeCollectionAccount(collectionInfo.Data)
	if err != nil || record.AccountType != AccountTypeCollection {
		return ErrUninitialized
	}
	if record.Authority != authorityInfo.Pubkey || !authorityInfo.IsSigner {
		return ErrNotCollectionAuthority
	}

	mint, err := token.DeserializeMint(mintInfo.Data)
	if err != nil {
		return ErrInvalidNFT
	}
	if !mint.IsNFTShaped() {
		return ErrInvalidNFT
	}
	if !mint.MintAuthority.IsSome || mint.MintAuthority.Value != authorityInfo.Pubkey {
		return ErrNotMintAuthority
	}

	derived, bump, err := DeriveIndexAddress(mintInfo.Pubkey)
	if err != nil {
		return err
	}
	if derived != indexInfo.Pubkey {
		return ErrCollectionIndexAccountMismatch
	}

	signerSeeds := [][]byte{
		[]byte(Prefix),
		p.ProgramID[:],
		mintInfo.Pubkey[:],
		{bump},
	}
	if err := createDerivedAccount(ctx, payerInfo, indexInfo, CollectionIndexSize, signerSeeds); err != nil {
		return err
	}

	index := &CollectionIndex{
		AccountType: AccountTypeIndex,
		Collection:  collectionInfo.Pubkey,
		Mint:        mintInfo.Pubkey,
		Index:       record.Supply,
	}
	if err := storeRecord(indexInfo, index); err != nil {
		return err
	}

	record.Supply++
	return storeRecord(collectionInfo, record)
}

// LightUpStarsOnce takes a single account: the collection itself, which
// must co-sign. The holder of the collection keypair, not its recorded
// authority, grants the free star.
func (p *Program) processLightUpStarsOnce(ctx *runtime.ExecutionContext) error {
	if ctx.ProgramID != p.ProgramID {
		return ErrInvalidProgramID
	}

	collectionInfo, err := ctx.Account(0)
	if err != nil {
		return err
	}
	if !collectionInfo.IsSigner {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotSigner, collectionInfo.Pubkey.String())
	}
	if !collectionInfo.IsWritable {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotWritable, collectionInfo.Pubkey.String())
	}

	record, err := DeserializeCollectionAccount(collectionInfo.Data)
	if err != nil || !record.IsInitialized() {
		return ErrUninitialized
	}

	record.Stars++
	return storeRecord(collectionInfo, record)
}

// LightUpStarsHundred / LightUpStarsThousand positional accounts:
//
//	0. collection account, writable
//	1. fee source, signer, writable
//	2. treasury account at the derived treasury address, writable
//	3. system program
func (p *Program) processLightUpStars(ctx *runtime.ExecutionContext, fee uint64, delta uint64) error {
	if ctx.ProgramID != p.ProgramID {
		return ErrInvalidProgramID
	}

	collectionInfo, err := ctx.Account(0)
	if err != nil {
		return err
	}
	sourceInfo, err := ctx.Account(1)
	if err != nil {
		return err
	}
	treasuryInfo, err := ctx.Account(2)
	if err != nil {
		return err
	}
	if !collectionInfo.IsWritable {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotWritable, collectionInfo.Pubkey.String())
	}

	derived, _, err := DeriveTreasuryAddress()
	if err != nil {
		return err
	}
	if derived != treasuryInfo.Pubkey {
		return ErrInvalidTreasuryAccount
	}

	ctx.Log("Transfer %d lamports to the treasury", fee)
	if err := ctx.Invoke(system.Transfer(sourceInfo.Pubkey, treasuryInfo.Pubkey, fee)); err != nil {
		return err
	}

	record, err := DeserializeCollectionAccount(collectionInfo.Data)
	if err != nil || !record.IsInitialized() {
		return ErrUninitialized
	}

	record.Stars += delta
	return storeRecord(collectionInfo, record)
}

// CloseAccount positional accounts:
//
//	0. account to close, writable
//	1. lamport recipient, writable
//	2. authority, signer
func (p *Program) processCloseAccount(ctx *runtime.ExecutionContext, kind AccountType) error {
	if ctx.ProgramID != p.ProgramID {
		return ErrInvalidProgramID
	}

	targetInfo, err := ctx.Account(0)
	if err != nil {
		return err
	}
	recipientInfo, err := ctx.Account(1)
	if err != nil {
		return err
	}
	authorityInfo, err := ctx.Account(2)
	if err != nil {
		return err
	}
	if !targetInfo.IsWritable {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotWritable, targetInfo.Pubkey.String())
	}
	if !recipientInfo.IsWritable {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotWritable, recipientInfo.Pubkey.String())
	}

	switch kind {
	case AccountTypeCollection:
		record, err := DeserializeCollectionAccount(targetInfo.Data)
		if err != nil {
			return err
		}
		if record.AccountType != AccountTypeCollection {
			return ErrInvalidAccountType
		}
		if record.Authority != authorityInfo.Pubkey || !authorityInfo.IsSigner {
			return ErrNotCollectionAuthority
		}

	case AccountTypeIndex:
		record, err := DeserializeCollectionIndex(targetInfo.Data)
		if err != nil {
			return err
		}
		if record.AccountType != AccountTypeIndex {
			return ErrInvalidAccountType
		}

	default:
		return ErrInvalidAccountType
	}

	sweepLamports(targetInfo, recipientInfo)
	for i := range targetInfo.Data {
		targetInfo.Data[i] = 0
	}
	return nil
}

// Withdraw positional accounts:
//
//	0. treasury account at the derived treasury address, writable
//	1. recipient, writable
//
// No authority check is performed; see ErrNotTreasuryManager.
func (p *Program) processWithdraw(ctx *runtime.ExecutionContext) error {
	if ctx.ProgramID != p.ProgramID {
		return ErrInvalidProgramID
	}

	treasuryInfo, err := ctx.Account(0)
	if err != nil {
		return err
	}
	recipientInfo, err := ctx.Account(1)
	if err != nil {
		return err
	}
	if !treasuryInfo.IsWritable {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotWritable, treasuryInfo.Pubkey.String())
	}
	if !recipientInfo.IsWritable {
		return fmt.Errorf("%w: %s", runtime.ErrAccountNotWritable, recipientInfo.Pubkey.String())
	}

	derived, _, err := DeriveTreasuryAddress()
	if err != nil {
		return err
	}
	if derived != treasuryInfo.Pubkey {
		return ErrInvalidTreasuryAccount
	}
	if *treasuryInfo.Lamports == 0 {
		return ErrInsufficientFunds
	}

	ctx.Log("Withdraw %d lamports from the treasury", *treasuryInfo.Lamports)
	sweepLamports(treasuryInfo, recipientInfo)
	return nil
}

// serializable is the record side of the borsh codec.
type serializable interface {
	Serialize() ([]byte, error)
}

// storeRecord reserializes a record into its account in place. The
// account was sized at creation, so the record must still fit.
func storeRecord(info *runtime.AccountInfo, record serializable) error {
	data, err := record.Serialize()
	if err != nil {
		return err
	}
	if len(data) > len(info.Data) {
		return fmt.Errorf("record of %d bytes exceeds account data of %d bytes", len(data), len(info.Data))
	}
	copy(info.Data, data)
	return nil
}

func sweepLamports(from, to *runtime.AccountInfo) {
	*to.Lamports += *from.Lamports
	*from.Lamports = 0
}
