package crypto

import (
	"errors"
	"testing"
)

type memKeyring struct {
	key       string
	available bool
}

func (m *memKeyring) GetKey() (string, error) {
	if m.key == "" {
		return "", ErrKeyNotFound
	}
	return m.key, nil
}

func (m *memKeyring) SetKey(password string) error {
	m.key = password
	return nil
}

func (m *memKeyring) DeleteKey() error {
	m.key = ""
	return nil
}

func (m *memKeyring) IsAvailable() bool { return m.available }

func envWith(value string) envKeyring {
	return envKeyring{lookup: func(string) string { return value }}
}

func TestChainKeyringPrefersEnv(t *testing.T) {
	system := &memKeyring{key: "from-system", available: true}
	k := &chainKeyring{env: envWith("from-env"), system: system}

	key, err := k.GetKey()
	if err != nil {
		t.Fatalf("GetKey failed: %v", err)
	}
	if key != "from-env" {
		t.Errorf("key = %s, want from-env", key)
	}
}

func TestChainKeyringFallsBackToSystem(t *testing.T) {
	system := &memKeyring{available: true}
	k := &chainKeyring{env: envWith(""), system: system}

	if _, err := k.GetKey(); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := k.SetKey("secret"); err != nil {
		t.Fatalf("SetKey failed: %v", err)
	}
	key, err := k.GetKey()
	if err != nil || key != "secret" {
		t.Errorf("GetKey = %q, %v", key, err)
	}
}

func TestChainKeyringSetKeyWithoutSystem(t *testing.T) {
	k := &chainKeyring{env: envWith(""), system: &memKeyring{}}

	if err := k.SetKey(""); err == nil {
		t.Error("expected error for empty password")
	}
	if err := k.SetKey("secret"); err == nil {
		t.Error("expected error when no keyring is available")
	}
	if k.IsAvailable() {
		t.Error("chain should be unavailable")
	}
}
