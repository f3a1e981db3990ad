package collection

import (
	"github.com/near/borsh-go"

	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// Prefix is the leading seed of every address this program derives.
const Prefix = "collection"

// AccountType is the 1-byte discriminant at the start of every record
// this program owns. An all-zero account reads as Uninitialized.
type AccountType uint8

// Account discriminants, in wire order.
const (
	AccountTypeUninitialized AccountType = iota
	AccountTypeCollection
	AccountTypeIndex
)

// CollectionAccount is the record describing one collection. It is
// borsh-serialized into the account the creator funds; the account is
// sized to the record at creation, so optional fields are fixed from then
// on while the counters mutate in place.
type CollectionAccount struct {
	AccountType      AccountType
	Title            string
	Symbol           string
	Description      string
	IconImage        string
	Supply           uint64
	Stars            uint64
	Authority        types.Pubkey
	HeaderImage      *string
	ShortDescription *string
	Banner           *string
	Tags             *[]string
}

// IsInitialized reports whether the record carries a live discriminant.
func (c *CollectionAccount) IsInitialized() bool {
	return c.AccountType != AccountTypeUninitialized
}

// Serialize encodes the record to its borsh wire form. The option
// fields are coded by hand: absent writes the single tag byte 0,
// present writes 1 followed by the value.
func (c *CollectionAccount) Serialize() ([]byte, error) {
	w := &borshWriter{}
	w.writeU8(uint8(c.AccountType))
	w.writeString(c.Title)
	w.writeString(c.Symbol)
	w.writeString(c.Description)
	w.writeString(c.IconImage)
	w.writeU64(c.Supply)
	w.writeU64(c.Stars)
	w.writePubkey(c.Authority)
	w.writeStringOption(c.HeaderImage)
	w.writeStringOption(c.ShortDescription)
	w.writeStringOption(c.Banner)
	w.writeStringVecOption(c.Tags)
	return w.buf, nil
}

// DeserializeCollectionAccount decodes a record from an account blob.
// An option tag of 0 decodes to nil, so a record with absent fields
// reserializes to exactly the bytes it was read from. Trailing bytes
// beyond the record's footprint are ignored, so accounts written by
// newer schema versions still read back.
func DeserializeCollectionAccount(data []byte) (*CollectionAccount, error) {
	r := &borshReader{data: data}
	record := &CollectionAccount{
		AccountType:      AccountType(r.readU8()),
		Title:            r.readString(),
		Symbol:           r.readString(),
		Description:      r.readString(),
		IconImage:        r.readString(),
		Supply:           r.readU64(),
		Stars:            r.readU64(),
		Authority:        r.readPubkey(),
		HeaderImage:      r.readStringOption(),
		ShortDescription: r.readStringOption(),
		Banner:           r.readStringOption(),
		Tags:             r.readStringVecOption(),
	}
	if err := r.err(); err != nil {
		return nil, err
	}
	return record, nil
}

// CollectionIndexSize is the fixed wire size of a CollectionIndex:
// 1-byte discriminant + 32-byte collection + 32-byte mint + 8-byte index.
const CollectionIndexSize = 73

// CollectionIndex marks one mint as a member of one collection. It lives
// at the address derived from the mint and is never mutated after
// creation.
type CollectionIndex struct {
	AccountType AccountType
	Collection  types.Pubkey
	Mint        types.Pubkey
	Index       uint64
}

// IsInitialized reports whether the record carries a live discriminant.
func (c *CollectionIndex) IsInitialized() bool {
	return c.AccountType != AccountTypeUninitialized
}

// Serialize encodes the record to its borsh wire form.
func (c *CollectionIndex) Serialize() ([]byte, error) {
	return borsh.Serialize(*c)
}

// DeserializeCollectionIndex decodes an index record from an account
// blob, ignoring trailing bytes.
func DeserializeCollectionIndex(data []byte) (*CollectionIndex, error) {
	record := &CollectionIndex{}
	if err := borsh.Deserialize(record, data); err != nil {
		return nil, err
	}
	return record, nil
}
