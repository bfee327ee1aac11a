package common

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-errors/errors"
)

// MaxBits bounds the bit length accepted by ParseBitsStrict.
const MaxBits = 1 << 20

var ErrInvalidBits = errors.New("invalid bit length")

// ParseBits interprets arg the way C's atoi does: leading whitespace and an
// optional sign are skipped, the longest run of digits is converted, and
// anything else is ignored. Input without digits yields 0. Values outside the
// 32-bit range saturate.
func ParseBits(arg string) int {
	s := strings.TrimLeft(arg, " \t\n\v\f\r")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d := int(s[i] - '0')
		if n > (math.MaxInt32-d)/10 {
			if neg {
				return math.MinInt32
			}
			return math.MaxInt32
		}
		n = n*10 + d
	}

	if neg {
		return -n
	}
	return n
}

// ParseBitsStrict parses arg as a bit length in [1, MaxBits] and reports
// anything else as an error wrapping ErrInvalidBits.
func ParseBitsStrict(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, errors.Errorf("%w: %q is not an integer", ErrInvalidBits, arg)
	}
	if n <= 0 || n > MaxBits {
		return 0, errors.Errorf("%w: %d is outside [1, %d]", ErrInvalidBits, n, MaxBits)
	}
	return n, nil
}
