package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const pepperBytes = 32

// The pepper is a server-wide secret mixed into every password hash. It lives
// in a file next to the database so hashes survive restarts.
var pepperState struct {
	mu    sync.Mutex
	path  string
	value string
}

// SetPepperPath points the hasher at file and drops any cached pepper.
func SetPepperPath(file string) {
	pepperState.mu.Lock()
	defer pepperState.mu.Unlock()
	pepperState.path = filepath.Clean(file)
	pepperState.value = ""
}

// Pepper returns the cached pepper, reading the file or creating it with
// fresh random bytes on first use.
func Pepper() (string, error) {
	pepperState.mu.Lock()
	defer pepperState.mu.Unlock()

	if pepperState.value != "" {
		return pepperState.value, nil
	}
	if pepperState.path == "" || pepperState.path == "." {
		return "", errors.New("cryptox: pepper path not set")
	}

	v, err := loadOrCreatePepper(pepperState.path)
	if err != nil {
		return "", err
	}
	pepperState.value = v
	return v, nil
}

func loadOrCreatePepper(path string) (string, error) {
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		v := strings.TrimSpace(string(b))
		if v == "" {
			return "", fmt.Errorf("cryptox: pepper file %s is empty", path)
		}
		return v, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("cryptox: read pepper: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("cryptox: pepper dir: %w", err)
	}
	raw := make([]byte, pepperBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	v := base64.RawURLEncoding.EncodeToString(raw)

	// O_EXCL so two processes racing on first start agree on one pepper.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return loadOrCreatePepper(path)
	}
	if err != nil {
		return "", fmt.Errorf("cryptox: create pepper: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(v); err != nil {
		return "", fmt.Errorf("cryptox: write pepper: %w", err)
	}
	return v, nil
}
