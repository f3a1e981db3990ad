package system

import (
	"errors"
	"testing"

	"github.com/MercuryProtocol-labs/collection/pkg/runtime"
	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

func testPubkey(n byte) types.Pubkey {
	var pk types.Pubkey
	for i := range pk {
		pk[i] = n
	}
	return pk
}

func newInfo(pubkey types.Pubkey, lamports uint64, data []byte, owner types.Pubkey, signer, writable bool) *runtime.AccountInfo {
	return runtime.NewAccountInfo(pubkey, &types.Account{
		Lamports: types.Lamports(lamports),
		Data:     data,
		Owner:    owner,
	}, signer, writable)
}

func execute(t *testing.T, infos []*runtime.AccountInfo, inst types.Instruction) error {
	t.Helper()
	ctx := runtime.NewExecutionContext(types.SystemProgramID, infos, inst.Data)
	return New().Execute(ctx, inst.Data)
}

func TestCreateAccount(t *testing.T) {
	from := testPubkey(1)
	newKey := testPubkey(2)
	owner := testPubkey(3)

	fromInfo := newInfo(from, 10*types.LamportsPerSol, nil, types.SystemProgramID, true, true)
	created := newInfo(newKey, 0, nil, types.SystemProgramID, true, true)

	space := uint64(100)
	lamports := uint64(types.RentExemptMinimum(space))
	err := execute(t, []*runtime.AccountInfo{fromInfo, created}, CreateAccount(from, newKey, lamports, space, owner))
	if err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if *created.Lamports != lamports {
		t.Errorf("new account lamports = %d, want %d", *created.Lamports, lamports)
	}
	if len(created.Data) != int(space) {
		t.Errorf("new account data size = %d, want %d", len(created.Data), space)
	}
	if created.Owner != owner {
		t.Errorf("new account owner = %s, want %s", created.Owner, owner)
	}
	if *fromInfo.Lamports != 10*types.LamportsPerSol-lamports {
		t.Errorf("funding account not debited: %d", *fromInfo.Lamports)
	}
}

func TestCreateAccountAlreadyExists(t *testing.T) {
	from := testPubkey(1)
	newKey := testPubkey(2)

	fromInfo := newInfo(from, 10*types.LamportsPerSol, nil, types.SystemProgramID, true, true)
	existing := newInfo(newKey, 500, nil, types.SystemProgramID, true, true)

	err := execute(t, []*runtime.AccountInfo{fromInfo, existing},
		CreateAccount(from, newKey, uint64(types.RentExemptMinimum(10)), 10, testPubkey(3)))
	if !errors.Is(err, ErrAccountAlreadyExists) {
		t.Fatalf("got %v, want ErrAccountAlreadyExists", err)
	}
}

func TestCreateAccountInsufficientFunds(t *testing.T) {
	from := testPubkey(1)
	newKey := testPubkey(2)

	fromInfo := newInfo(from, 100, nil, types.SystemProgramID, true, true)
	fresh := newInfo(newKey, 0, nil, types.SystemProgramID, true, true)

	err := execute(t, []*runtime.AccountInfo{fromInfo, fresh},
		CreateAccount(from, newKey, uint64(types.RentExemptMinimum(10)), 10, testPubkey(3)))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
}

func TestCreateAccountNotRentExempt(t *testing.T) {
	from := testPubkey(1)
	newKey := testPubkey(2)

	fromInfo := newInfo(from, 10*types.LamportsPerSol, nil, types.SystemProgramID, true, true)
	fresh := newInfo(newKey, 0, nil, types.SystemProgramID, true, true)

	err := execute(t, []*runtime.AccountInfo{fromInfo, fresh},
		CreateAccount(from, newKey, 1, 100, testPubkey(3)))
	if !errors.Is(err, ErrAccountNotRentExempt) {
		t.Fatalf("got %v, want ErrAccountNotRentExempt", err)
	}
}

func TestCreateAccountMissingSigner(t *testing.T) {
	from := testPubkey(1)
	newKey := testPubkey(2)

	fromInfo := newInfo(from, 10*types.LamportsPerSol, nil, types.SystemProgramID, false, true)
	fresh := newInfo(newKey, 0, nil, types.SystemProgramID, true, true)

	err := execute(t, []*runtime.AccountInfo{fromInfo, fresh},
		CreateAccount(from, newKey, uint64(types.RentExemptMinimum(10)), 10, testPubkey(3)))
	if !errors.Is(err, ErrAccountNotSigner) {
		t.Fatalf("got %v, want ErrAccountNotSigner", err)
	}
}

func TestTransfer(t *testing.T) {
	from := testPubkey(1)
	to := testPubkey(2)

	fromInfo := newInfo(from, 1000, nil, types.SystemProgramID, true, true)
	toInfo := newInfo(to, 50, nil, types.SystemProgramID, false, true)

	if err := execute(t, []*runtime.AccountInfo{fromInfo, toInfo}, Transfer(from, to, 400)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if *fromInfo.Lamports != 600 {
		t.Errorf("source lamports = %d, want 600", *fromInfo.Lamports)
	}
	if *toInfo.Lamports != 450 {
		t.Errorf("destination lamports = %d, want 450", *toInfo.Lamports)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	from := testPubkey(1)
	to := testPubkey(2)

	fromInfo := newInfo(from, 100, nil, types.SystemProgramID, true, true)
	toInfo := newInfo(to, 0, nil, types.SystemProgramID, false, true)

	err := execute(t, []*runtime.AccountInfo{fromInfo, toInfo}, Transfer(from, to, 400))
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
	if *fromInfo.Lamports != 100 || *toInfo.Lamports != 0 {
		t.Error("balances changed on failed transfer")
	}
}

func TestTransferFromDataAccount(t *testing.T) {
	from := testPubkey(1)
	to := testPubkey(2)

	fromInfo := newInfo(from, 1000, []byte{1, 2, 3}, testPubkey(9), true, true)
	toInfo := newInfo(to, 0, nil, types.SystemProgramID, false, true)

	err := execute(t, []*runtime.AccountInfo{fromInfo, toInfo}, Transfer(from, to, 400))
	if !errors.Is(err, ErrAccountDataNotEmpty) {
		t.Fatalf("got %v, want ErrAccountDataNotEmpty", err)
	}
}

func TestAssign(t *testing.T) {
	key := testPubkey(1)
	owner := testPubkey(7)

	info := newInfo(key, 100, nil, types.SystemProgramID, true, true)
	if err := execute(t, []*runtime.AccountInfo{info}, Assign(key, owner)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if info.Owner != owner {
		t.Errorf("owner = %s, want %s", info.Owner, owner)
	}
}

func TestAssignNonSystemOwned(t *testing.T) {
	key := testPubkey(1)

	info := newInfo(key, 100, nil, testPubkey(9), true, true)
	err := execute(t, []*runtime.AccountInfo{info}, Assign(key, testPubkey(7)))
	if !errors.Is(err, ErrInvalidAccountOwner) {
		t.Fatalf("got %v, want ErrInvalidAccountOwner", err)
	}
}

func TestAllocate(t *testing.T) {
	key := testPubkey(1)

	info := newInfo(key, 100, nil, types.SystemProgramID, true, true)
	if err := execute(t, []*runtime.AccountInfo{info}, Allocate(key, 73)); err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(info.Data) != 73 {
		t.Errorf("data size = %d, want 73", len(info.Data))
	}
}

func TestAllocateNonEmpty(t *testing.T) {
	key := testPubkey(1)

	info := newInfo(key, 100, []byte{1}, types.SystemProgramID, true, true)
	err := execute(t, []*runtime.AccountInfo{info}, Allocate(key, 73))
	if !errors.Is(err, ErrAccountDataNotEmpty) {
		t.Fatalf("got %v, want ErrAccountDataNotEmpty", err)
	}
}

func TestParseInstructionDiscriminator(t *testing.T) {
	if _, err := ParseInstructionDiscriminator([]byte{1, 2}); err == nil {
		t.Fatal("expected error for short data")
	}

	disc, err := ParseInstructionDiscriminator([]byte{2, 0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if disc != InstructionTransfer {
		t.Errorf("discriminator = %d, want %d", disc, InstructionTransfer)
	}
}
