package threshold

import (
	"sort"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/stakewise/dvt-relayer/crypto/bls/common"
)

// RecoverSignature reconstructs a full BLS signature (a G2 point) from a
// quorum of indexed partial signatures via Lagrange interpolation at
// x=0: σ = Σ σ_i · L_i(0).
func RecoverSignature(shares map[uint64][]byte) (common.Signature, error) {
	indexes := sortedKeys(shares)
	if err := validateIndexes(indexes); err != nil {
		return nil, err
	}

	var acc *blst.P2
	for _, i := range indexes {
		point := new(blst.P2Affine).Uncompress(shares[i])
		if point == nil {
			return nil, errInvalidSharePoint(i)
		}
		coeff, err := lagrangeCoefficient(i, indexes)
		if err != nil {
			return nil, err
		}
		scalarBytes := scalarToBytes32(coeff)
		scalar := new(blst.Scalar).FromBEndian(scalarBytes[:])
		term := new(blst.P2).FromAffine(point).Mult(scalar)
		if acc == nil {
			acc = term
		} else {
			acc = acc.Add(term)
		}
	}
	if acc == nil {
		return nil, errEmptyShareSet
	}
	affine := acc.ToAffine()
	sig, err := blstSignatureFromAffine(affine)
	if err != nil {
		return nil, err
	}
	return sig, nil
}

// RecoverPublicKey reconstructs a G1 point (a BLS public key) from a
// quorum of indexed public-key shares, the G1 analogue of
// RecoverSignature. Used by tests to confirm a committee's share
// assignment reconstructs the expected validator public key.
func RecoverPublicKey(shares map[uint64][]byte) (common.PublicKey, error) {
	indexes := sortedKeys(shares)
	if err := validateIndexes(indexes); err != nil {
		return nil, err
	}

	var acc *blst.P1
	for _, i := range indexes {
		point := new(blst.P1Affine).Uncompress(shares[i])
		if point == nil {
			return nil, errInvalidSharePoint(i)
		}
		coeff, err := lagrangeCoefficient(i, indexes)
		if err != nil {
			return nil, err
		}
		scalarBytes := scalarToBytes32(coeff)
		scalar := new(blst.Scalar).FromBEndian(scalarBytes[:])
		term := new(blst.P1).FromAffine(point).Mult(scalar)
		if acc == nil {
			acc = term
		} else {
			acc = acc.Add(term)
		}
	}
	if acc == nil {
		return nil, errEmptyShareSet
	}
	affine := acc.ToAffine()
	return blstPublicKeyFromAffine(affine)
}

func sortedKeys(m map[uint64][]byte) []uint64 {
	out := make([]uint64, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
