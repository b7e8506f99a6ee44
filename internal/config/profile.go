package config

import (
	"errors"
	"fmt"
	"math"

	"cardgen/internal/domain"
)

// Fixed dataset shape.
const (
	EntityCount  = 100
	BillsPerYear = 12
)

var ErrInvalidProfile = errors.New("invalid generator profile")

// Range is an inclusive [Min, Max] interval for uniform draws.
type Range struct {
	Min float64
	Max float64
}

// ClassProfile holds the numeric ranges tied to one social class.
type ClassProfile struct {
	Weight          float64
	Income          Range
	CreditLimit     Range
	DelinquencyRate float64
}

// Profile drives every random draw of the generator.
type Profile struct {
	Classes map[domain.SocialClass]ClassProfile

	Patrimony             Range
	IncomeShare           Range
	BillTotal             Range
	MinimumShare          Range
	TransactionAmount     Range
	TransactionsPerBill   [2]int
	OccupationCode        [2]int
	TransactionWindowDays int
}

func DefaultProfile() Profile {
	return Profile{
		Classes: map[domain.SocialClass]ClassProfile{
			domain.ClassA: {Weight: 0.05, Income: Range{20000, 50000}, CreditLimit: Range{30000, 100000}, DelinquencyRate: 0.01},
			domain.ClassB: {Weight: 0.15, Income: Range{10000, 20000}, CreditLimit: Range{15000, 30000}, DelinquencyRate: 0.02},
			domain.ClassC: {Weight: 0.20, Income: Range{5000, 10000}, CreditLimit: Range{5000, 15000}, DelinquencyRate: 0.05},
			domain.ClassD: {Weight: 0.30, Income: Range{2000, 5000}, CreditLimit: Range{1000, 5000}, DelinquencyRate: 0.10},
			domain.ClassE: {Weight: 0.30, Income: Range{0, 2000}, CreditLimit: Range{0, 1000}, DelinquencyRate: 0.15},
		},
		Patrimony:             Range{1000, 500000},
		IncomeShare:           Range{0.05, 0.2},
		BillTotal:             Range{100, 5000},
		MinimumShare:          Range{0.1, 0.5},
		TransactionAmount:     Range{10, 1000},
		TransactionsPerBill:   [2]int{3, 20},
		OccupationCode:        [2]int{1000, 9999},
		TransactionWindowDays: 30,
	}
}

// Weights returns the class weights in domain.SocialClasses order.
func (p Profile) Weights() []float64 {
	w := make([]float64, len(domain.SocialClasses))
	for i, c := range domain.SocialClasses {
		w[i] = p.Classes[c].Weight
	}
	return w
}

func (p Profile) Validate() error {
	var sum float64
	for _, c := range domain.SocialClasses {
		cp, ok := p.Classes[c]
		if !ok {
			return fmt.Errorf("%w: class %s missing", ErrInvalidProfile, c)
		}
		if cp.Weight < 0 {
			return fmt.Errorf("%w: class %s weight %v is negative", ErrInvalidProfile, c, cp.Weight)
		}
		if cp.DelinquencyRate < 0 || cp.DelinquencyRate > 1 {
			return fmt.Errorf("%w: class %s delinquency rate %v outside [0,1]", ErrInvalidProfile, c, cp.DelinquencyRate)
		}
		if err := checkRange(fmt.Sprintf("class %s income", c), cp.Income); err != nil {
			return err
		}
		if err := checkRange(fmt.Sprintf("class %s credit limit", c), cp.CreditLimit); err != nil {
			return err
		}
		if cp.CreditLimit.Min < 0 {
			return fmt.Errorf("%w: class %s credit limit below zero", ErrInvalidProfile, c)
		}
		sum += cp.Weight
	}
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("%w: class weights sum to %v", ErrInvalidProfile, sum)
	}

	for name, r := range map[string]Range{
		"patrimony":          p.Patrimony,
		"income share":       p.IncomeShare,
		"bill total":         p.BillTotal,
		"minimum share":      p.MinimumShare,
		"transaction amount": p.TransactionAmount,
	} {
		if err := checkRange(name, r); err != nil {
			return err
		}
	}
	if p.MinimumShare.Max > 1 {
		return fmt.Errorf("%w: minimum share above 1", ErrInvalidProfile)
	}
	if p.TransactionsPerBill[0] < 0 || p.TransactionsPerBill[0] > p.TransactionsPerBill[1] {
		return fmt.Errorf("%w: transactions per bill %v", ErrInvalidProfile, p.TransactionsPerBill)
	}
	if p.OccupationCode[0] > p.OccupationCode[1] {
		return fmt.Errorf("%w: occupation code %v", ErrInvalidProfile, p.OccupationCode)
	}
	if p.TransactionWindowDays < 0 {
		return fmt.Errorf("%w: negative transaction window", ErrInvalidProfile)
	}
	return nil
}

func checkRange(name string, r Range) error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %v > max %v", ErrInvalidProfile, name, r.Min, r.Max)
	}
	return nil
}
