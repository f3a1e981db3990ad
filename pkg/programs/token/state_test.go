package token

import (
	"errors"
	"testing"

	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

func testPubkey(n byte) types.Pubkey {
	var pk types.Pubkey
	for i := range pk {
		pk[i] = n
	}
	return pk
}

func TestMintRoundTrip(t *testing.T) {
	authority := testPubkey(1)
	freeze := testPubkey(2)
	mint := &Mint{
		MintAuthority:   COption{IsSome: true, Value: authority},
		Supply:          1,
		Decimals:        0,
		IsInitialized:   true,
		FreezeAuthority: COption{IsSome: true, Value: freeze},
	}

	data := mint.Serialize()
	if len(data) != MintSize {
		t.Fatalf("serialized mint is %d bytes, want %d", len(data), MintSize)
	}

	decoded, err := DeserializeMint(data)
	if err != nil {
		t.Fatalf("DeserializeMint failed: %v", err)
	}
	if *decoded != *mint {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, mint)
	}
}

func TestMintNoAuthorities(t *testing.T) {
	mint := &Mint{Supply: 42, Decimals: 9, IsInitialized: true}

	decoded, err := DeserializeMint(mint.Serialize())
	if err != nil {
		t.Fatalf("DeserializeMint failed: %v", err)
	}
	if decoded.MintAuthority.IsSome || decoded.FreezeAuthority.IsSome {
		t.Error("expected both authorities to be none")
	}
	if decoded.Supply != 42 || decoded.Decimals != 9 {
		t.Errorf("fields lost: %+v", decoded)
	}
}

func TestMintIsNFTShaped(t *testing.T) {
	cases := []struct {
		supply   uint64
		decimals uint8
		want     bool
	}{
		{1, 0, true},
		{2, 0, false},
		{1, 1, false},
		{0, 0, false},
	}
	for _, c := range cases {
		mint := &Mint{Supply: c.supply, Decimals: c.decimals}
		if got := mint.IsNFTShaped(); got != c.want {
			t.Errorf("IsNFTShaped(supply=%d, decimals=%d) = %v, want %v", c.supply, c.decimals, got, c.want)
		}
	}
}

func TestDeserializeMintShortData(t *testing.T) {
	_, err := DeserializeMint(make([]byte, MintSize-1))
	if !errors.Is(err, ErrInvalidAccountData) {
		t.Fatalf("got %v, want ErrInvalidAccountData", err)
	}
}

func TestTokenAccountRoundTrip(t *testing.T) {
	account := NewTokenAccount(testPubkey(1), testPubkey(2))
	account.Amount = 1
	account.IsNative = COptionU64{IsSome: true, Value: 7}

	data := account.Serialize()
	if len(data) != TokenAccountSize {
		t.Fatalf("serialized token account is %d bytes, want %d", len(data), TokenAccountSize)
	}

	decoded, err := DeserializeTokenAccount(data)
	if err != nil {
		t.Fatalf("DeserializeTokenAccount failed: %v", err)
	}
	if *decoded != *account {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, account)
	}
}
