// Package fakedata provides the seeded random and fake-value source the
// generator draws from. Every value, including record ids, comes from a
// single ChaCha8 stream so that a seed reproduces a dataset exactly.
package fakedata

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

type Source struct {
	stream *rand.ChaCha8
	rng    *rand.Rand
	faker  *gofakeit.Faker
}

func New(seed uint64) *Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	stream := rand.NewChaCha8(key)

	return &Source{
		stream: stream,
		rng:    rand.New(stream),
		faker:  gofakeit.NewFaker(stream, false),
	}
}

// Uniform draws a float in [min, max].
func (s *Source) Uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// Weighted returns an index into weights with probability proportional to
// its weight. Weights must be non-negative with a positive sum.
func (s *Source) Weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := s.rng.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if x < acc {
			return i
		}
	}
	// float rounding can leave x == total; fall back to the last non-zero weight
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// Bernoulli returns true with probability p.
func (s *Source) Bernoulli(p float64) bool {
	return s.rng.Float64() < p
}

// IntBetween draws an int in [min, max].
func (s *Source) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.IntN(max-min+1)
}

func (s *Source) Choice(options []string) string {
	return options[s.rng.IntN(len(options))]
}

// DateBetween draws an instant in [start, end].
func (s *Source) DateBetween(start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	return s.faker.DateRange(start, end).In(start.Location())
}

func (s *Source) CompanyName() string {
	return s.faker.Company()
}

func (s *Source) Word() string {
	return s.faker.Word()
}

// TaxID returns a formatted CNPJ (Brazilian company registry number) with
// valid check digits, e.g. 12.345.678/0001-95.
func (s *Source) TaxID() string {
	digits := make([]int, 0, 14)
	for i := 0; i < 8; i++ {
		digits = append(digits, s.rng.IntN(10))
	}
	digits = append(digits, 0, 0, 0, 1)
	digits = append(digits, cnpjCheckDigit(digits))
	digits = append(digits, cnpjCheckDigit(digits))

	var b strings.Builder
	for i, d := range digits {
		switch i {
		case 2, 5:
			b.WriteByte('.')
		case 8:
			b.WriteByte('/')
		case 12:
			b.WriteByte('-')
		}
		fmt.Fprintf(&b, "%d", d)
	}
	return b.String()
}

func cnpjCheckDigit(digits []int) int {
	weight := len(digits) - 7
	sum := 0
	for _, d := range digits {
		sum += d * weight
		weight--
		if weight < 2 {
			weight = 9
		}
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return 11 - r
}

// UUID returns a version 4 UUID read from the seeded stream.
func (s *Source) UUID() string {
	return uuid.Must(uuid.NewRandomFromReader(s.stream)).String()
}
