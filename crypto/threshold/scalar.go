// Package threshold implements the Lagrange-interpolation recovery and
// Shamir re-sharing that sit at the core of the relayer: reconstructing a
// full BLS signature from sidecar shares, and re-splitting a reconstructed
// exit signature for the oracle committee. Point arithmetic is delegated
// to blst; scalar (Fr) arithmetic is plain math/big, the same split of
// responsibility the original implementation uses (py_ecc for curve ops,
// a hand-rolled prime-field inverse for Lagrange coefficients).
package threshold

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

// CurveOrder is the BLS12-381 subgroup order (Fr).
var CurveOrder, _ = new(big.Int).SetString(
	"52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

// ErrDuplicateIndex is returned when a share-index set contains the same
// index twice; Lagrange interpolation requires pairwise-distinct nodes.
var ErrDuplicateIndex = errors.New("duplicate share index")

// ErrInvalidIndex is returned for a non-positive share index; indexes are
// 1-based x-coordinates.
var ErrInvalidIndex = errors.New("share index must be >= 1")

func bigFromIndex(i uint64) *big.Int {
	return new(big.Int).SetUint64(i)
}

// lagrangeCoefficient computes the Lagrange basis coefficient for index i
// evaluated at x=0 over the given set of distinct indexes, mod CurveOrder:
//
//	L_i(0) = Π_{j≠i} (-j) * (i-j)^-1
func lagrangeCoefficient(i uint64, indexes []uint64) (*big.Int, error) {
	num := big.NewInt(1)
	den := big.NewInt(1)
	for _, j := range indexes {
		if j == i {
			continue
		}
		num.Mul(num, new(big.Int).Neg(bigFromIndex(j)))
		num.Mod(num, CurveOrder)

		diff := new(big.Int).Sub(bigFromIndex(i), bigFromIndex(j))
		diff.Mod(diff, CurveOrder)
		den.Mul(den, diff)
		den.Mod(den, CurveOrder)
	}
	denInv := new(big.Int).ModInverse(den, CurveOrder)
	if denInv == nil {
		return nil, errors.New("non-invertible denominator in lagrange coefficient")
	}
	coeff := new(big.Int).Mul(num, denInv)
	coeff.Mod(coeff, CurveOrder)
	return coeff, nil
}

func validateIndexes(indexes []uint64) error {
	seen := make(map[uint64]struct{}, len(indexes))
	for _, i := range indexes {
		if i == 0 {
			return ErrInvalidIndex
		}
		if _, ok := seen[i]; ok {
			return ErrDuplicateIndex
		}
		seen[i] = struct{}{}
	}
	return nil
}

// scalarToBytes32 renders a reduced scalar as big-endian, left-padded to
// 32 bytes, the encoding blst.Scalar.FromBEndian expects.
func scalarToBytes32(s *big.Int) [32]byte {
	var out [32]byte
	b := new(big.Int).Mod(s, CurveOrder).Bytes()
	copy(out[32-len(b):], b)
	return out
}

// randomScalar returns a uniformly random element of Fr, used as a
// polynomial coefficient during Shamir splitting.
func randomScalar() (*big.Int, error) {
	for {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		v := new(big.Int).SetBytes(buf)
		if v.Cmp(CurveOrder) < 0 {
			return v, nil
		}
	}
}

// polynomialEval evaluates a degree-(len(coeffs)-1) polynomial (coeffs[0] is
// the constant term) at x, mod CurveOrder.
func polynomialEval(coeffs []*big.Int, x uint64) *big.Int {
	result := new(big.Int).Set(coeffs[len(coeffs)-1])
	xb := bigFromIndex(x)
	for i := len(coeffs) - 2; i >= 0; i-- {
		result.Mul(result, xb)
		result.Add(result, coeffs[i])
		result.Mod(result, CurveOrder)
	}
	return result
}
