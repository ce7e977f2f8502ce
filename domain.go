package fplot

import (
	"math/big"
	"strconv"
)

// Domain is an evenly spaced grid of x values, from Min to Max inclusive in
// steps of Step. Every grid point is exact.
type Domain struct {
	Min, Max, Step *big.Rat
}

// MaxPoints is the largest number of points a Domain may have.
const MaxPoints = 1 << 20

// DefaultDomain returns the plotting window: -10 to 10 in steps of 1/10, for
// 201 points.
func DefaultDomain() Domain {
	return Domain{
		Min:  big.NewRat(-10, 1),
		Max:  big.NewRat(10, 1),
		Step: big.NewRat(1, 10),
	}
}

// NewDomain parses a domain from decimal or fractional strings, as accepted by
// big.Rat.SetString, and validates it.
func NewDomain(min, max, step string) (Domain, error) {
	var d Domain
	for _, f := range []struct {
		p    **big.Rat
		name string
		s    string
	}{{&d.Min, "min", min}, {&d.Max, "max", max}, {&d.Step, "step", step}} {
		r, ok := new(big.Rat).SetString(f.s)
		if !ok {
			return Domain{}, &DomainSpecError{Reason: "invalid " + f.name + " " + strconv.Quote(f.s)}
		}
		*f.p = r
	}
	if err := d.Validate(); err != nil {
		return Domain{}, err
	}
	return d, nil
}

// Validate checks that Min < Max, Step > 0, and Max - Min is a whole number
// of steps.
func (d Domain) Validate() error {
	switch {
	case d.Min == nil || d.Max == nil || d.Step == nil:
		return &DomainSpecError{Reason: "missing bound or step"}
	case d.Min.Cmp(d.Max) >= 0:
		return &DomainSpecError{Reason: "min " + d.Min.RatString() + " is not less than max " + d.Max.RatString()}
	case d.Step.Sign() <= 0:
		return &DomainSpecError{Reason: "step " + d.Step.RatString() + " is not positive"}
	}
	n := d.steps()
	if !n.IsInt() {
		return &DomainSpecError{Reason: "step " + d.Step.RatString() + " does not divide the range"}
	}
	if !n.Num().IsInt64() || n.Num().Int64() >= MaxPoints {
		return &DomainSpecError{Reason: "too many points"}
	}
	return nil
}

// steps returns (Max - Min) / Step.
func (d Domain) steps() *big.Rat {
	n := new(big.Rat).Sub(d.Max, d.Min)
	return n.Quo(n, d.Step)
}

// Len returns the number of points in a valid domain.
func (d Domain) Len() int {
	return int(d.steps().Num().Int64()) + 1
}

// At returns the i'th point, Min + i*Step.
func (d Domain) At(i int) *big.Rat {
	return d.at(new(big.Rat), i)
}

func (d Domain) at(x *big.Rat, i int) *big.Rat {
	x.SetInt64(int64(i))
	x.Mul(x, d.Step)
	return x.Add(x, d.Min)
}

func (d Domain) String() string {
	if d.Min == nil || d.Max == nil || d.Step == nil {
		return "[invalid domain]"
	}
	return "[" + ratString(d.Min) + ", " + ratString(d.Max) + "] step " + ratString(d.Step)
}

// DomainSpecError is an error indicating a Domain that does not describe a
// finite, evenly spaced grid.
type DomainSpecError struct {
	Reason string
}

func (err *DomainSpecError) Error() string {
	return "invalid domain: " + err.Reason
}
