// Package snapshot dumps and restores the account store as a single
// zstd-compressed file, so a tool run can pick up where a previous one
// left off without replaying every transaction.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/MercuryProtocol-labs/collection/pkg/accounts"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

var (
	// ErrInvalidSnapshot is returned when the snapshot stream is malformed.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Stream format (after zstd decompression):
// - magic:   8 bytes ("CLSNAP\x00\x01")
// - count:   8 bytes (little-endian uint64)
// - records: count entries of
//     pubkey:  32 bytes
//     len:     4 bytes (little-endian uint32)
//     account: len bytes in the accounts storage format
var snapshotMagic = [8]byte{'C', 'L', 'S', 'N', 'A', 'P', 0, 1}

// Write dumps every account in the store to w as one compressed stream.
func Write(store accounts.Store, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create compressor: %w", err)
	}

	if _, err := zw.Write(snapshotMagic[:]); err != nil {
		zw.Close()
		return err
	}

	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], store.Count())
	if _, err := zw.Write(countBuf[:]); err != nil {
		zw.Close()
		return err
	}

	var rangeErr error
	err = store.Range(func(pubkey types.Pubkey, account *types.Account) bool {
		blob, err := accounts.SerializeAccount(account)
		if err != nil {
			rangeErr = err
			return false
		}

		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(blob)))

		if _, err := zw.Write(pubkey[:]); err != nil {
			rangeErr = err
			return false
		}
		if _, err := zw.Write(lenBuf[:]); err != nil {
			rangeErr = err
			return false
		}
		if _, err := zw.Write(blob); err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	if err == nil {
		err = rangeErr
	}
	if err != nil {
		zw.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return zw.Close()
}

// Read restores every account in the compressed stream r into the store.
// Existing accounts under the same pubkeys are overwritten.
func Read(store accounts.Store, r io.Reader) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer zr.Close()

	var magic [8]byte
	if _, err := io.ReadFull(zr, magic[:]); err != nil {
		return fmt.Errorf("%w: missing magic: %v", ErrInvalidSnapshot, err)
	}
	if magic != snapshotMagic {
		return fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}

	var countBuf [8]byte
	if _, err := io.ReadFull(zr, countBuf[:]); err != nil {
		return fmt.Errorf("%w: missing account count: %v", ErrInvalidSnapshot, err)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])

	for i := uint64(0); i < count; i++ {
		var pubkeyBuf [32]byte
		if _, err := io.ReadFull(zr, pubkeyBuf[:]); err != nil {
			return fmt.Errorf("%w: truncated at record %d: %v", ErrInvalidSnapshot, i, err)
		}
		pubkey := types.Pubkey(pubkeyBuf)

		var lenBuf [4]byte
		if _, err := io.ReadFull(zr, lenBuf[:]); err != nil {
			return fmt.Errorf("%w: truncated at record %d: %v", ErrInvalidSnapshot, i, err)
		}

		blob := make([]byte, binary.LittleEndian.Uint32(lenBuf[:]))
		if _, err := io.ReadFull(zr, blob); err != nil {
			return fmt.Errorf("%w: truncated at record %d: %v", ErrInvalidSnapshot, i, err)
		}

		account, err := accounts.DeserializeAccount(blob)
		if err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrInvalidSnapshot, i, err)
		}

		if err := store.SetAccount(pubkey, account); err != nil {
			return fmt.Errorf("failed to restore account %s: %w", pubkey.String(), err)
		}
	}

	return nil
}

// Save writes a snapshot of the store to the given path, replacing any
// existing file atomically.
func Save(store accounts.Store, path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}

	if err := Write(store, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}

// Load restores a snapshot file into the store.
func Load(store accounts.Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	return Read(store, f)
}
