package members

import (
	"math/rand"
	"sync"
)

// passwordAlphabet is the fixed 69-symbol alphabet temporary passwords are
// drawn from.
const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%"

const tempPasswordLength = 12

// PasswordGenerator draws temporary passwords from a caller-supplied
// randomness source, so tests can seed it for deterministic output.
type PasswordGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewPasswordGenerator(src rand.Source) *PasswordGenerator {
	return &PasswordGenerator{rnd: rand.New(src)}
}

func (g *PasswordGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, tempPasswordLength)
	for i := range buf {
		buf[i] = passwordAlphabet[g.rnd.Intn(len(passwordAlphabet))]
	}
	return string(buf)
}
