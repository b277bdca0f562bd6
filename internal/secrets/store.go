package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/argon2"
)

// PIN verifier store: a single JSON file (0600) holding an argon2id hash of
// the wallet PIN. The PIN itself never touches disk.

const (
	pinLength = 6
	saltBytes = 16
	keyBytes  = 32
)

var (
	// ErrNoPin is returned when no PIN has been stored yet.
	ErrNoPin = errors.New("secrets: no pin stored")
	// ErrBadRecord is returned when the vault file is readable but unusable.
	ErrBadRecord = errors.New("secrets: invalid vault record")
)

// KDF holds argon2id cost parameters. They are written next to the hash so
// a record stays verifiable when defaults change.
type KDF struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory_kib"`
	Threads uint8  `json:"threads"`
}

// DefaultKDF is used when PinVault.KDF is zero.
var DefaultKDF = KDF{Time: 1, Memory: 64 * 1024, Threads: 4}

// Record is the persisted verifier.
type Record struct {
	Salt              string    `json:"salt"`
	Hash              string    `json:"hash"`
	KDF               KDF       `json:"kdf"`
	BiometricsEnabled bool      `json:"biometrics_enabled"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type PinVault struct {
	Path string
	KDF  KDF
}

func NewPinVault(path string) *PinVault {
	return &PinVault{Path: path}
}

// Store replaces any existing verifier with one for pin.
func (v *PinVault) Store(pin string, biometrics bool) error {
	if err := checkPin(pin); err != nil {
		return err
	}
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("secrets: salt: %w", err)
	}
	kdf := v.kdf()
	rec := Record{
		Salt:              base64.StdEncoding.EncodeToString(salt),
		Hash:              base64.StdEncoding.EncodeToString(derive(pin, salt, kdf)),
		KDF:               kdf,
		BiometricsEnabled: biometrics,
		UpdatedAt:         time.Now().UTC().Truncate(time.Second),
	}
	return v.save(rec)
}

// Verify reports whether pin matches the stored verifier.
func (v *PinVault) Verify(pin string) (bool, error) {
	rec, err := v.Load()
	if err != nil {
		return false, err
	}
	if checkPin(pin) != nil {
		return false, nil
	}
	salt, err := base64.StdEncoding.DecodeString(rec.Salt)
	if err != nil {
		return false, fmt.Errorf("secrets: decode salt: %w", err)
	}
	want, err := base64.StdEncoding.DecodeString(rec.Hash)
	if err != nil {
		return false, fmt.Errorf("secrets: decode hash: %w", err)
	}
	got := derive(pin, salt, rec.KDF)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (v *PinVault) Load() (Record, error) {
	var rec Record
	data, err := os.ReadFile(v.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return rec, ErrNoPin
		}
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("secrets: parse %s: %w", v.Path, err)
	}
	if err := rec.validate(); err != nil {
		return Record{}, fmt.Errorf("%s: %w", v.Path, err)
	}
	return rec, nil
}

func (r Record) validate() error {
	if err := r.KDF.validate(); err != nil {
		return err
	}
	if r.Salt == "" || r.Hash == "" {
		return fmt.Errorf("%w: missing salt or hash", ErrBadRecord)
	}
	return nil
}

// validate rejects parameters argon2 cannot run with.
func (k KDF) validate() error {
	switch {
	case k.Time == 0:
		return fmt.Errorf("%w: kdf time is zero", ErrBadRecord)
	case k.Threads == 0:
		return fmt.Errorf("%w: kdf threads is zero", ErrBadRecord)
	case k.Memory < 8*uint32(k.Threads):
		return fmt.Errorf("%w: kdf memory below %d KiB", ErrBadRecord, 8*uint32(k.Threads))
	}
	return nil
}

// Delete removes the verifier. Deleting a missing file is not an error.
func (v *PinVault) Delete() error {
	if err := os.Remove(v.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (v *PinVault) kdf() KDF {
	if v.KDF == (KDF{}) {
		return DefaultKDF
	}
	return v.KDF
}

func (v *PinVault) save(rec Record) error {
	if v.Path == "" {
		return fmt.Errorf("secrets: vault path required")
	}
	if err := os.MkdirAll(filepath.Dir(v.Path), 0o700); err != nil { // restrict directory
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	tmp := v.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, v.Path)
}

func derive(pin string, salt []byte, k KDF) []byte {
	return argon2.IDKey([]byte(pin), salt, k.Time, k.Memory, k.Threads, keyBytes)
}

func checkPin(pin string) error {
	if len(pin) != pinLength {
		return fmt.Errorf("secrets: pin must have %d digits", pinLength)
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return fmt.Errorf("secrets: pin must have %d digits", pinLength)
		}
	}
	return nil
}
