package fakedata

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNew_Reproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		if x, y := a.Uniform(0, 1000), b.Uniform(0, 1000); x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
		if x, y := a.UUID(), b.UUID(); x != y {
			t.Fatalf("uuid %d differs: %s != %s", i, x, y)
		}
		if x, y := a.CompanyName(), b.CompanyName(); x != y {
			t.Fatalf("company %d differs: %s != %s", i, x, y)
		}
	}
}

func TestUniform_Bounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.Uniform(5, 10)
		if v < 5 || v > 10 {
			t.Fatalf("value %v outside [5,10]", v)
		}
	}
}

func TestWeighted_SkipsZeroWeights(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		if idx := s.Weighted([]float64{0, 1, 0}); idx != 1 {
			t.Fatalf("expected index 1, got %d", idx)
		}
	}
}

func TestIntBetween_Inclusive(t *testing.T) {
	s := New(3)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := s.IntBetween(3, 20)
		if v < 3 || v > 20 {
			t.Fatalf("value %d outside [3,20]", v)
		}
		seen[v] = true
	}
	if !seen[3] || !seen[20] {
		t.Fatalf("bounds never drawn: %v", seen)
	}
}

func TestDateBetween(t *testing.T) {
	s := New(9)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	for i := 0; i < 500; i++ {
		d := s.DateBetween(start, end)
		if d.Before(start) || d.After(end) {
			t.Fatalf("date %v outside window", d)
		}
	}
	if got := s.DateBetween(end, start); !got.Equal(end) {
		t.Fatalf("inverted window should return start, got %v", got)
	}
}

var cnpjPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/0001-\d{2}$`)

func TestTaxID_Format(t *testing.T) {
	s := New(11)
	for i := 0; i < 100; i++ {
		if id := s.TaxID(); !cnpjPattern.MatchString(id) {
			t.Fatalf("malformed cnpj %q", id)
		}
	}
}

func TestCNPJCheckDigits(t *testing.T) {
	// 11.222.333/0001-81
	digits := []int{1, 1, 2, 2, 2, 3, 3, 3, 0, 0, 0, 1}
	first := cnpjCheckDigit(digits)
	second := cnpjCheckDigit(append(digits, first))
	if first != 8 || second != 1 {
		t.Fatalf("expected 81, got %d%d", first, second)
	}
}

func TestUUID_Version4(t *testing.T) {
	s := New(5)
	id, err := uuid.Parse(s.UUID())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id.Version() != 4 {
		t.Fatalf("expected v4, got %d", id.Version())
	}
}

func TestBernoulli_Extremes(t *testing.T) {
	s := New(2)
	for i := 0; i < 100; i++ {
		if s.Bernoulli(0) {
			t.Fatal("p=0 returned true")
		}
		if !s.Bernoulli(1) {
			t.Fatal("p=1 returned false")
		}
	}
}
