package seedphrase

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// WordCount is the number of recovery words shown to the user.
const WordCount = 12

// WordSource produces the recovery words for one session.
type WordSource interface {
	Words() ([]string, error)
}

// WordSourceFunc adapts a function to WordSource.
type WordSourceFunc func() ([]string, error)

func (f WordSourceFunc) Words() ([]string, error) { return f() }

// BIP39 generates a 12-word English mnemonic from 128 bits of entropy.
type BIP39 struct{}

func (BIP39) Words() ([]string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return nil, fmt.Errorf("seed entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("seed mnemonic: %w", err)
	}
	return strings.Fields(mnemonic), nil
}

// placeholderVocabulary is not a mnemonic wordlist and carries no entropy
// worth the name. Kept for demos and tests only.
var placeholderVocabulary = []string{
	"oasis", "cristal", "satelite", "bosque", "luz",
	"atlantico", "modulo", "origen", "trueno", "vortice",
	"nexo", "aurora", "quantum", "marea", "naciente",
	"lienzo", "vector", "brisa", "mirador", "halcon",
}

// Placeholder samples WordCount distinct words from a fixed 20-word pool.
// It is NOT cryptographically sound.
type Placeholder struct {
	Rand *rand.Rand
}

func (p Placeholder) Words() ([]string, error) {
	pool := append([]string(nil), placeholderVocabulary...)
	shuffle := rand.Shuffle
	if p.Rand != nil {
		shuffle = p.Rand.Shuffle
	}
	shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:WordCount], nil
}

// NewWordSource resolves a configured generator name.
func NewWordSource(name string) (WordSource, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bip39":
		return BIP39{}, nil
	case "placeholder":
		return Placeholder{}, nil
	default:
		return nil, fmt.Errorf("unknown seed generator %q", name)
	}
}
