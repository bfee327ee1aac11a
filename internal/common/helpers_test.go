package common

import (
	"github.com/privacybydesign/randomprime/big"
)

// isPrimeTrialDivision is an independent primality oracle for small values.
func isPrimeTrialDivision(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := uint64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func naiveNextPrime(n uint64) uint64 {
	for !isPrimeTrialDivision(n) {
		n++
	}
	return n
}

func mustInt(t interface{ Fatalf(string, ...interface{}) }, s string) *big.Int {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad integer %q", s)
	}
	return i
}
