package deploy

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	SecretKeyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789@#$%^&*(-_=+)"
	SecretKeyLength   = 50
)

// GenerateSecretKey draws SecretKeyLength characters of SecretKeyAlphabet from src.
func GenerateSecretKey(src io.Reader) (string, error) {
	size := big.NewInt(int64(len(SecretKeyAlphabet)))
	var b strings.Builder
	b.Grow(SecretKeyLength)
	for i := 0; i < SecretKeyLength; i++ {
		n, err := rand.Int(src, size)
		if err != nil {
			return "", fmt.Errorf("generate secret key: %w", err)
		}
		b.WriteByte(SecretKeyAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// EnsureSecretKey writes a new key to path unless the file already exists.
// It reports whether a key was written.
func EnsureSecretKey(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}

	key, err := GenerateSecretKey(rand.Reader)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(key+"\n"), 0o600); err != nil {
		return false, fmt.Errorf("write secret key: %w", err)
	}
	return true, nil
}

// EnsureLines appends every line of want that path does not contain yet and
// returns the appended lines. The file is created when missing.
func EnsureLines(path string, want []string) ([]string, error) {
	existing := make(map[string]bool)
	endsWithNewline := true

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		endsWithNewline = len(b) == 0 || b[len(b)-1] == '\n'
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	var missing []string
	for _, line := range want {
		if !existing[line] {
			missing = append(missing, line)
			existing[line] = true
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out strings.Builder
	if !endsWithNewline {
		out.WriteByte('\n')
	}
	for _, line := range missing {
		out.WriteString(line)
		out.WriteByte('\n')
	}
	if _, err := f.WriteString(out.String()); err != nil {
		return nil, fmt.Errorf("append to %s: %w", path, err)
	}
	return missing, nil
}

// Touch creates path or bumps its modification time.
func Touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	now := time.Now()
	return os.Chtimes(path, now, now)
}
