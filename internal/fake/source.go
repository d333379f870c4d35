// Package fake is the engine's only source of randomness and synthetic
// person data. Everything random flows through the Source interface so
// ticks are reproducible in tests.
package fake

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// Source generates random numbers and synthetic identity data.
type Source interface {
	// IntN returns a uniform int in [0, n). n must be positive.
	IntN(n int) int
	// Float64 returns a uniform float64 in [0, 1).
	Float64() float64
	// Between returns a uniform float64 in [min, max).
	Between(min, max float64) float64
	// FullName returns a synthetic person name.
	FullName() string
	// Email returns a synthetic lowercase email address.
	Email() string
	// Hash returns an opaque placeholder credential hash.
	Hash() string
	// Address returns a synthetic street address.
	Address() string
	// AlphaNumeric returns n random uppercase alphanumeric characters.
	AlphaNumeric(n int) string
}

const alphaNumChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Faker is the gofakeit-backed Source used in production.
type Faker struct {
	f *gofakeit.Faker
}

// New returns a Faker seeded with seed. Seed 0 picks a random seed.
func New(seed uint64) *Faker {
	return &Faker{f: gofakeit.New(seed)}
}

func (g *Faker) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return g.f.Number(0, n-1)
}

func (g *Faker) Float64() float64 {
	return g.f.Float64Range(0, 1)
}

func (g *Faker) Between(min, max float64) float64 {
	return g.f.Float64Range(min, max)
}

func (g *Faker) FullName() string {
	return g.f.Name()
}

func (g *Faker) Email() string {
	return strings.ToLower(g.f.Email())
}

func (g *Faker) Hash() string {
	// Placeholder only; nothing in the engine authenticates with it.
	return g.f.UUID()
}

func (g *Faker) Address() string {
	return g.f.Address().Address
}

func (g *Faker) AlphaNumeric(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphaNumChars[g.f.Number(0, len(alphaNumChars)-1)])
	}
	return b.String()
}

var _ Source = (*Faker)(nil)
