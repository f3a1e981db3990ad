package snapshot

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/MercuryProtocol-labs/collection/pkg/accounts"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

func testPubkey(n byte) types.Pubkey {
	var pk types.Pubkey
	for i := range pk {
		pk[i] = n
	}
	return pk
}

func populatedStore(t *testing.T) accounts.Store {
	t.Helper()
	store := accounts.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	for i := byte(1); i <= 5; i++ {
		account := &types.Account{
			Lamports: types.Lamports(i) * 1000,
			Data:     bytes.Repeat([]byte{i}, int(i)),
			Owner:    testPubkey(100),
		}
		if err := store.SetAccount(testPubkey(i), account); err != nil {
			t.Fatalf("SetAccount failed: %v", err)
		}
	}
	return store
}

func TestWriteReadRoundTrip(t *testing.T) {
	source := populatedStore(t)

	var buf bytes.Buffer
	if err := Write(source, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	restored := accounts.NewMemoryStore()
	defer restored.Close()
	if err := Read(restored, &buf); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if restored.Count() != source.Count() {
		t.Fatalf("restored %d accounts, want %d", restored.Count(), source.Count())
	}

	err := source.Range(func(pubkey types.Pubkey, want *types.Account) bool {
		got, err := restored.GetAccount(pubkey)
		if err != nil || got == nil {
			t.Errorf("account %s missing after restore", pubkey)
			return true
		}
		if got.Lamports != want.Lamports || !bytes.Equal(got.Data, want.Data) || got.Owner != want.Owner {
			t.Errorf("account %s mismatch: %+v != %+v", pubkey, got, want)
		}
		return true
	})
	if err != nil {
		t.Fatalf("Range failed: %v", err)
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	store := accounts.NewMemoryStore()
	defer store.Close()

	err := Read(store, bytes.NewReader([]byte("not a snapshot")))
	if err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestReadRejectsTruncated(t *testing.T) {
	source := populatedStore(t)

	var buf bytes.Buffer
	if err := Write(source, &buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	restored := accounts.NewMemoryStore()
	defer restored.Close()
	truncated := buf.Bytes()[:buf.Len()/2]
	if err := Read(restored, bytes.NewReader(truncated)); err == nil {
		t.Fatal("expected error for truncated snapshot")
	}
}

func TestSaveLoad(t *testing.T) {
	source := populatedStore(t)
	path := filepath.Join(t.TempDir(), "accounts.snap")

	if err := Save(source, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	restored := accounts.NewMemoryStore()
	defer restored.Close()
	if err := Load(restored, path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if restored.Count() != source.Count() {
		t.Fatalf("restored %d accounts, want %d", restored.Count(), source.Count())
	}
}

func TestLoadMissingFile(t *testing.T) {
	store := accounts.NewMemoryStore()
	defer store.Close()

	err := Load(store, filepath.Join(t.TempDir(), "missing.snap"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, ErrInvalidSnapshot) {
		t.Fatal("missing file should not read as invalid snapshot")
	}
}
