package accounts

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

func testAccount(lamports uint64, data []byte, owner types.Pubkey) *types.Account {
	return &types.Account{
		Lamports: types.Lamports(lamports),
		Data:     data,
		Owner:    owner,
	}
}

// storeUnderTest runs the shared Store contract tests against an
// implementation.
func storeUnderTest(t *testing.T, store Store) {
	t.Helper()

	pk := testPubkey(1)
	owner := testPubkey(2)

	// Missing accounts read as nil, nil.
	got, err := store.GetAccount(pk)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for missing account")
	}
	if store.HasAccount(pk) {
		t.Fatal("HasAccount true for missing account")
	}

	account := testAccount(1000, []byte{1, 2, 3}, owner)
	if err := store.SetAccount(pk, account); err != nil {
		t.Fatalf("SetAccount failed: %v", err)
	}
	if !store.HasAccount(pk) {
		t.Fatal("HasAccount false after SetAccount")
	}
	if store.Count() != 1 {
		t.Fatalf("Count = %d, want 1", store.Count())
	}

	got, err = store.GetAccount(pk)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if got.Lamports != 1000 || got.Owner != owner || len(got.Data) != 3 {
		t.Fatalf("stored account mismatch: %+v", got)
	}

	// Mutating the returned account must not affect the store.
	got.Lamports = 0
	got.Data[0] = 99
	again, err := store.GetAccount(pk)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if again.Lamports != 1000 || again.Data[0] != 1 {
		t.Fatal("store returned a shared reference")
	}

	// Overwriting does not change the count.
	if err := store.SetAccount(pk, testAccount(5, nil, owner)); err != nil {
		t.Fatalf("SetAccount failed: %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("Count = %d after overwrite, want 1", store.Count())
	}

	// Range visits every account.
	if err := store.SetAccount(testPubkey(3), testAccount(7, nil, owner)); err != nil {
		t.Fatalf("SetAccount failed: %v", err)
	}
	seen := 0
	err = store.Range(func(pubkey types.Pubkey, account *types.Account) bool {
		seen++
		return true
	})
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
	if seen != 2 {
		t.Fatalf("Range visited %d accounts, want 2", seen)
	}

	if err := store.DeleteAccount(pk); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}
	if store.HasAccount(pk) {
		t.Fatal("HasAccount true after delete")
	}
	if store.Count() != 1 {
		t.Fatalf("Count = %d after delete, want 1", store.Count())
	}

	// Deleting a missing account is not an error.
	if err := store.DeleteAccount(pk); err != nil {
		t.Fatalf("DeleteAccount of missing account failed: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	storeUnderTest(t, store)
}

func TestBadgerStore(t *testing.T) {
	store, err := NewBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}
	defer store.Close()
	storeUnderTest(t, store)
}

func TestBadgerStoreReopen(t *testing.T) {
	dir := t.TempDir()
	pk := testPubkey(1)

	store, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}
	if err := store.SetAccount(pk, testAccount(500, []byte{4, 5}, testPubkey(2))); err != nil {
		t.Fatalf("SetAccount failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewBadgerStore(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if reopened.Count() != 1 {
		t.Fatalf("Count = %d after reopen, want 1", reopened.Count())
	}
	account, err := reopened.GetAccount(pk)
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if account == nil || account.Lamports != 500 {
		t.Fatalf("account lost across reopen: %+v", account)
	}
}

func TestSerializeAccountRoundTrip(t *testing.T) {
	account := &types.Account{
		Lamports:   12345,
		Data:       []byte{1, 2, 3, 4, 5},
		Owner:      testPubkey(7),
		Executable: true,
		RentEpoch:  9,
	}

	blob, err := SerializeAccount(account)
	if err != nil {
		t.Fatalf("SerializeAccount failed: %v", err)
	}

	decoded, err := DeserializeAccount(blob)
	if err != nil {
		t.Fatalf("DeserializeAccount failed: %v", err)
	}
	if decoded.Lamports != account.Lamports ||
		decoded.Owner != account.Owner ||
		decoded.Executable != account.Executable ||
		decoded.RentEpoch != account.RentEpoch ||
		len(decoded.Data) != len(account.Data) {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, account)
	}
}

func TestDeserializeAccountTruncated(t *testing.T) {
	if _, err := DeserializeAccount([]byte{1, 2, 3}); !errors.Is(err, ErrInvalidAccountData) {
		t.Fatalf("got %v, want ErrInvalidAccountData", err)
	}

	// Claimed data length beyond the blob.
	account := testAccount(1, []byte{1, 2, 3}, testPubkey(1))
	blob, err := SerializeAccount(account)
	if err != nil {
		t.Fatalf("SerializeAccount failed: %v", err)
	}
	if _, err := DeserializeAccount(blob[:len(blob)-4]); !errors.Is(err, ErrInvalidAccountData) {
		t.Fatalf("got %v, want ErrInvalidAccountData", err)
	}
}
