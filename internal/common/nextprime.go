package common

import (
	"github.com/privacybydesign/randomprime/big"
)

// PrimalityRounds is the number of Miller-Rabin rounds passed to ProbablyPrime.
const PrimalityRounds = 20

// sieveBound is the exclusive upper bound of the small primes used to discard
// candidates before running the probabilistic test.
const sieveBound = 1 << 12

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)

	sievePrimes = smallOddPrimes(sieveBound)
)

// NextProbablePrime returns the smallest probable prime greater than or equal
// to x. x itself is left untouched.
func NextProbablePrime(x *big.Int) *big.Int {
	if x.Cmp(bigTwo) <= 0 {
		return big.NewInt(2)
	}

	p := new(big.Int).Set(x)
	if p.Bit(0) == 0 {
		p.Add(p, bigOne)
	}

	// Below the sieve bound a candidate may itself be one of the sieve primes
	if p.BitLen() <= 16 {
		for !p.ProbablyPrime(PrimalityRounds) {
			p.Add(p, bigTwo)
		}
		return p
	}

	return nextSievedPrime(p)
}

// nextSievedPrime searches upwards from the odd value p, skipping offsets
// that are divisible by one of the sieve primes.
func nextSievedPrime(p *big.Int) *big.Int {
	residues := make([]uint64, len(sievePrimes))
	m, q := new(big.Int), new(big.Int)
	for i, sp := range sievePrimes {
		residues[i] = m.Mod(p, q.SetUint64(sp)).Uint64()
	}

	candidate, offset := new(big.Int), new(big.Int)
	for delta := uint64(0); ; delta += 2 {
		if hasSmallFactor(residues, delta) {
			continue
		}
		candidate.Add(p, offset.SetUint64(delta))
		if candidate.ProbablyPrime(PrimalityRounds) {
			return candidate
		}
	}
}

func hasSmallFactor(residues []uint64, delta uint64) bool {
	for i, sp := range sievePrimes {
		if (residues[i]+delta)%sp == 0 {
			return true
		}
	}
	return false
}

// smallOddPrimes returns the odd primes below bound.
func smallOddPrimes(bound int) []uint64 {
	composite := make([]bool, bound)
	var primes []uint64
	for i := 3; i < bound; i += 2 {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j < bound; j += 2 * i {
			composite[j] = true
		}
	}
	return primes
}
