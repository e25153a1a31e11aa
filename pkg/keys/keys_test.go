package keys

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	// small key size to keep the test fast
	if err := ensureBits(dir, "secretPass_", 1024); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	pair, err := Load(dir, "secretPass_")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if pair.Private == nil || pair.Public == nil {
		t.Fatal("expected both keys to be loaded")
	}
	if pair.Private.PublicKey.N.Cmp(pair.Public.N) != 0 {
		t.Fatal("public key does not match private key")
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	if err := ensureBits(dir, "pw", 1024); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	before, err := os.ReadFile(filepath.Join(dir, privateKeyFile))
	if err != nil {
		t.Fatalf("read key: %v", err)
	}

	if err := ensureBits(dir, "pw", 1024); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	after, err := os.ReadFile(filepath.Join(dir, privateKeyFile))
	if err != nil {
		t.Fatalf("read key: %v", err)
	}

	if string(before) != string(after) {
		t.Fatal("second ensure regenerated an existing keypair")
	}
}

func TestLoadWrongPassphrase(t *testing.T) {
	dir := t.TempDir()

	if err := ensureBits(dir, "right", 1024); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if _, err := Load(dir, "wrong"); err == nil {
		t.Fatal("expected error for wrong passphrase")
	}
}
