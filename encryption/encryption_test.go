package encryption

import (
	"bytes"
	"errors"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	for _, alg := range []Algorithm{AlgorithmChaCha20, AlgorithmAESGCM} {
		t.Run(string(alg), func(t *testing.T) {
			enc, err := New("my-secret-key", WithAlgorithm(alg))
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			tests := []struct {
				name      string
				plaintext []byte
			}{
				{"simple", []byte("hello world")},
				{"empty", []byte{}},
				{"unicode", []byte("こんにちは世界")},
				{"json", []byte(`[{"name":"sid","value":"abc"}]`)},
			}
			for _, tc := range tests {
				sealed, err := enc.Seal(tc.plaintext)
				if err != nil {
					t.Fatalf("%s: Seal: %v", tc.name, err)
				}
				if len(tc.plaintext) > 0 && bytes.Contains(sealed, tc.plaintext) {
					t.Errorf("%s: ciphertext contains plaintext", tc.name)
				}
				opened, err := enc.Open(sealed)
				if err != nil {
					t.Fatalf("%s: Open: %v", tc.name, err)
				}
				if !bytes.Equal(opened, tc.plaintext) {
					t.Errorf("%s: got %q, want %q", tc.name, opened, tc.plaintext)
				}
			}
		})
	}
}

func TestSealUsesFreshNonce(t *testing.T) {
	enc, _ := New("my-key")
	a, _ := enc.Seal([]byte("same input"))
	b, _ := enc.Seal([]byte("same input"))
	if bytes.Equal(a, b) {
		t.Error("sealing twice should produce different ciphertexts")
	}
}

func TestOpenWithWrongKey(t *testing.T) {
	one, _ := New("key-one")
	two, _ := New("key-two")

	sealed, err := one.Seal([]byte("secret data"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := two.Open(sealed); err == nil {
		t.Error("expected decryption to fail with wrong key")
	}
}

func TestOpenTooShort(t *testing.T) {
	enc, _ := New("test-key")
	if _, err := enc.Open([]byte("a")); !errors.Is(err, ErrCiphertextTooShort) {
		t.Errorf("expected ErrCiphertextTooShort, got %v", err)
	}
}

func TestOpenTampered(t *testing.T) {
	enc, _ := New("test-key")
	sealed, _ := enc.Seal([]byte("payload"))
	sealed[len(sealed)-1] ^= 0xff
	if _, err := enc.Open(sealed); err == nil {
		t.Error("expected tampered ciphertext to fail")
	}
}

func TestNewUnsupportedAlgorithm(t *testing.T) {
	if _, err := New("k", WithAlgorithm("rot13")); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestAEADImplementsEncryptor(t *testing.T) {
	var _ Encryptor = (*AEAD)(nil)
}
