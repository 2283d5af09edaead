package sshserve

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// LoadOrCreateHostKey loads the host key at path, generating and saving a
// new ed25519 key when the file does not exist.
func LoadOrCreateHostKey(path string) (ssh.Signer, error) {
	keyBytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		keyBytes, err = createHostKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read host key %s: %w", path, err)
	}

	signer, err := gossh.ParsePrivateKey(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse host key %s: %w", path, err)
	}
	return signer, nil
}

func createHostKey(path string) ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	block, err := gossh.MarshalPrivateKey(priv, "simplekit host key")
	if err != nil {
		return nil, err
	}
	keyBytes := pem.EncodeToMemory(block)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}
	if err := os.WriteFile(path, keyBytes, 0o600); err != nil {
		return nil, err
	}
	return keyBytes, nil
}
