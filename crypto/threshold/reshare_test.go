package threshold

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakewise/dvt-relayer/crypto/bls/blst"
)

func TestReshareRecoverSignatureRoundTrip(t *testing.T) {
	sk, err := blst.RandKey()
	require.NoError(t, err)
	msg := []byte("exit-signature-round-trip")
	sigma := sk.Sign(msg)
	pubKey := sk.PublicKey()

	shares, err := Reshare(sigma, pubKey, 5, 3)
	require.NoError(t, err)
	require.Len(t, shares, 5)

	sigQuorum := map[uint64][]byte{
		shares[0].Index: shares[0].Signature.Marshal(),
		shares[2].Index: shares[2].Signature.Marshal(),
		shares[4].Index: shares[4].Signature.Marshal(),
	}
	recovered, err := RecoverSignature(sigQuorum)
	require.NoError(t, err)
	require.Equal(t, sigma.Marshal(), recovered.Marshal())

	pkQuorum := map[uint64][]byte{
		shares[0].Index: shares[0].PublicKey.Marshal(),
		shares[2].Index: shares[2].PublicKey.Marshal(),
		shares[4].Index: shares[4].PublicKey.Marshal(),
	}
	recoveredPubKey, err := RecoverPublicKey(pkQuorum)
	require.NoError(t, err)
	require.Equal(t, pubKey.Marshal(), recoveredPubKey.Marshal())
}

func TestReshareRejectsInvalidThreshold(t *testing.T) {
	sk, err := blst.RandKey()
	require.NoError(t, err)
	sigma := sk.Sign([]byte("msg"))

	_, err = Reshare(sigma, sk.PublicKey(), 2, 3)
	require.Error(t, err)
}

func TestRecoverSignatureRejectsZeroIndex(t *testing.T) {
	sk, err := blst.RandKey()
	require.NoError(t, err)
	sigma := sk.Sign([]byte("msg"))
	shares, err := Reshare(sigma, sk.PublicKey(), 3, 2)
	require.NoError(t, err)

	_, err = RecoverSignature(map[uint64][]byte{
		0:              shares[0].Signature.Marshal(),
		shares[1].Index: shares[1].Signature.Marshal(),
	})
	require.ErrorIs(t, err, ErrInvalidIndex)
}
