package threshold

import (
	"math/big"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/stakewise/dvt-relayer/crypto/bls/common"
)

// Share is one oracle's evaluation of the re-split signature and its
// matching public-key share, produced by Reshare.
type Share struct {
	Index     uint64
	Signature common.Signature
	PublicKey common.PublicKey
}

// Reshare re-splits a reconstructed BLS signature (a G2 point) into n
// fresh shares over a random degree-(t-1) polynomial whose constant term
// is the signature itself, together with matching public-key shares in
// G1 drawn from a parallel polynomial whose constant term is pubKey —
// the validator's real public key, so that a t-subset of the outputs
// Lagrange-reconstructs back to (sigma, pubKey), not an arbitrary point.
// Because curve scalar multiplication by a plain integer exponent is
// linear, a point can be Shamir-split without ever recovering its
// discrete log: choose random curve points for the higher coefficients
// and evaluate
//
//	Q(x) = C_0 + x·C_1 + x^2·C_2 + ... + x^(t-1)·C_(t-1)
//
// directly in the group. A t-subset of the outputs Lagrange-reconstructs
// Q(0) = C_0 exactly as scalar Shamir sharing would.
func Reshare(sigma common.Signature, pubKey common.PublicKey, n, t int) ([]Share, error) {
	if t < 1 || n < t {
		return nil, errInvalidThreshold(n, t)
	}

	sigPoint := new(blst.P2Affine).Uncompress(sigma.Marshal())
	if sigPoint == nil {
		return nil, errEmptyShareSet
	}
	sigCoeffs := make([]*blst.P2, t)
	sigCoeffs[0] = new(blst.P2).FromAffine(sigPoint)
	for k := 1; k < t; k++ {
		r, err := randomScalar()
		if err != nil {
			return nil, err
		}
		sigCoeffs[k] = pointMultG2Generator(r)
	}

	pkPoint := new(blst.P1Affine).Uncompress(pubKey.Marshal())
	if pkPoint == nil {
		return nil, errEmptyShareSet
	}
	pkCoeffs := make([]*blst.P1, t)
	pkCoeffs[0] = new(blst.P1).FromAffine(pkPoint)
	for k := 1; k < t; k++ {
		r, err := randomScalar()
		if err != nil {
			return nil, err
		}
		pkCoeffs[k] = pointMultG1Generator(r)
	}

	shares := make([]Share, n)
	for idx := uint64(1); idx <= uint64(n); idx++ {
		sigEval := evalPointPolynomialG2(sigCoeffs, idx)
		pkEval := evalPointPolynomialG1(pkCoeffs, idx)

		sig, err := blstSignatureFromAffine(sigEval.ToAffine())
		if err != nil {
			return nil, err
		}
		pk, err := blstPublicKeyFromAffine(pkEval.ToAffine())
		if err != nil {
			return nil, err
		}
		shares[idx-1] = Share{Index: idx, Signature: sig, PublicKey: pk}
	}
	return shares, nil
}

func pointMultG2Generator(scalar *big.Int) *blst.P2 {
	b := scalarToBytes32(scalar)
	s := new(blst.Scalar).FromBEndian(b[:])
	return new(blst.P2).FromAffine(blst.P2Generator()).Mult(s)
}

func pointMultG1Generator(scalar *big.Int) *blst.P1 {
	b := scalarToBytes32(scalar)
	s := new(blst.Scalar).FromBEndian(b[:])
	return new(blst.P1).FromAffine(blst.P1Generator()).Mult(s)
}

// evalPointPolynomialG2 evaluates Σ coeffs[k]·x^k directly in G2.
func evalPointPolynomialG2(coeffs []*blst.P2, x uint64) *blst.P2 {
	acc := coeffs[0]
	xPow := big.NewInt(1)
	xBig := bigFromIndex(x)
	for k := 1; k < len(coeffs); k++ {
		xPow = new(big.Int).Mul(xPow, xBig)
		xPow.Mod(xPow, CurveOrder)
		b := scalarToBytes32(xPow)
		s := new(blst.Scalar).FromBEndian(b[:])
		term := new(blst.P2).Add(coeffs[k]).Mult(s)
		acc = acc.Add(term)
	}
	return acc
}

// evalPointPolynomialG1 evaluates Σ coeffs[k]·x^k directly in G1.
func evalPointPolynomialG1(coeffs []*blst.P1, x uint64) *blst.P1 {
	acc := coeffs[0]
	xPow := big.NewInt(1)
	xBig := bigFromIndex(x)
	for k := 1; k < len(coeffs); k++ {
		xPow = new(big.Int).Mul(xPow, xBig)
		xPow.Mod(xPow, CurveOrder)
		b := scalarToBytes32(xPow)
		s := new(blst.Scalar).FromBEndian(b[:])
		term := new(blst.P1).Add(coeffs[k]).Mult(s)
		acc = acc.Add(term)
	}
	return acc
}

func errInvalidThreshold(n, t int) error {
	return errThreshold{n: n, t: t}
}

type errThreshold struct{ n, t int }

func (e errThreshold) Error() string {
	return "invalid threshold parameters for reshare"
}
