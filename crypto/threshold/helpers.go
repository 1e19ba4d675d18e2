package threshold

import (
	"fmt"

	blstwrap "github.com/stakewise/dvt-relayer/crypto/bls/blst"
	"github.com/stakewise/dvt-relayer/crypto/bls/common"
	blst "github.com/supranational/blst/bindings/go"
)

var errEmptyShareSet = fmt.Errorf("empty share set")

func errInvalidSharePoint(index uint64) error {
	return fmt.Errorf("invalid share point at index %d", index)
}

func blstSignatureFromAffine(p *blst.P2Affine) (common.Signature, error) {
	return blstwrap.SignatureFromBytes(p.Compress())
}

func blstPublicKeyFromAffine(p *blst.P1Affine) (common.PublicKey, error) {
	return blstwrap.PublicKeyFromBytes(p.Compress())
}
