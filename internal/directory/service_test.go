package directory

import (
	"errors"
	"testing"
)

func TestCreateAndVerify(t *testing.T) {
	svc, err := NewService(NewInMemoryStore())
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}

	if err := svc.Create("alice", "p1"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	err = svc.Create("alice", "p2")
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("expected ErrDuplicateAccount, got %v", err)
	}

	ok, err := svc.Verify("alice", "p1")
	if err != nil || !ok {
		t.Fatalf("Verify(alice, p1) = %v, %v; want true", ok, err)
	}
	ok, err = svc.Verify("alice", "p2")
	if err != nil || ok {
		t.Fatalf("Verify(alice, p2) = %v, %v; want false", ok, err)
	}
}

func TestVerifyUnknownUsernameIsFalseNotError(t *testing.T) {
	svc, err := NewService(NewInMemoryStore())
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}

	ok, err := svc.Verify("nobody", "whatever")
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected false for unknown username")
	}
}

func TestCreateRejectsEmptyUsername(t *testing.T) {
	svc, err := NewService(NewInMemoryStore())
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}

	if err := svc.Create("   ", "p"); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}

func TestResetPasskey(t *testing.T) {
	svc, err := NewService(NewInMemoryStore())
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	if err := svc.Create("bob", "old"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	ok, err := svc.ResetPasskey("bob", "new")
	if err != nil || !ok {
		t.Fatalf("ResetPasskey(bob) = %v, %v; want true", ok, err)
	}
	if ok, _ := svc.Verify("bob", "new"); !ok {
		t.Fatal("expected new passkey to verify")
	}
	if ok, _ := svc.Verify("bob", "old"); ok {
		t.Fatal("expected old passkey to stop verifying")
	}

	ok, err = svc.ResetPasskey("nobody", "x")
	if err != nil {
		t.Fatalf("ResetPasskey(nobody) unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected false for unknown username")
	}
}

func TestListReturnsUsernamesOnly(t *testing.T) {
	svc, err := NewService(NewInMemoryStore())
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	for _, u := range []string{"carol", "alice", "bob"} {
		if err := svc.Create(u, "pk"); err != nil {
			t.Fatalf("Create(%s) error: %v", u, err)
		}
	}

	got, err := svc.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"alice", "bob", "carol"}
	if len(got) != len(want) {
		t.Fatalf("expected %d usernames, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRoleOf(t *testing.T) {
	if RoleOf("admin") != RoleAdmin {
		t.Fatal("expected admin to carry RoleAdmin")
	}
	if RoleOf("Amith") != RoleStandard {
		t.Fatal("expected a regular account to carry RoleStandard")
	}
}
