package validators

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLog() *logrus.Entry {
	return logrus.NewEntry(logrus.New())
}

func TestGetOrCreateIndexMismatchReplace(t *testing.T) {
	r := NewRegistry(testLog())
	vault := common.HexToAddress("0x1234567890123456789012345678901234567890")
	now := time.Now().Unix()

	v := r.GetOrCreate("0xabc", 100, vault, 32_000_000_000, V1, now)
	v.DepositShares[1] = []byte("share")
	require.Equal(t, uint64(100), v.ValidatorIndex)
	require.Len(t, v.DepositShares, 1)

	replaced := r.GetOrCreate("0xabc", 50, vault, 32_000_000_000, V1, now)
	require.Equal(t, uint64(50), replaced.ValidatorIndex)
	require.Empty(t, replaced.DepositShares)
}

func TestGetOrCreateSameIndexReturnsExisting(t *testing.T) {
	r := NewRegistry(testLog())
	vault := common.HexToAddress("0x1234567890123456789012345678901234567890")
	now := time.Now().Unix()

	v := r.GetOrCreate("0xabc", 100, vault, 1, V1, now)
	v.DepositShares[1] = []byte("share")

	same := r.GetOrCreate("0xabc", 100, vault, 1, V1, now)
	require.Len(t, same.DepositShares, 1)
}

func TestEvictExpired(t *testing.T) {
	r := NewRegistry(testLog())
	vault := common.HexToAddress("0x1234567890123456789012345678901234567890")
	past := time.Now().Add(-2 * time.Hour).Unix()
	r.GetOrCreate("0xold", 1, vault, 1, V1, past)
	r.GetOrCreate("0xnew", 2, vault, 1, V1, time.Now().Unix())

	evicted := r.EvictExpired(time.Now(), time.Hour)
	require.Equal(t, 1, evicted)

	_, ok := r.Get("0xold")
	require.False(t, ok)
	_, ok = r.Get("0xnew")
	require.True(t, ok)
}

func TestShareIndexesReadyIntersection(t *testing.T) {
	r := NewRegistry(testLog())
	vault := common.HexToAddress("0x1234567890123456789012345678901234567890")
	v := r.GetOrCreate("0xabc", 1, vault, 1, V1, time.Now().Unix())
	v.ExitShares[1] = []byte("a")
	v.ExitShares[2] = []byte("b")
	v.DepositShares[2] = []byte("c")
	v.DepositShares[3] = []byte("d")

	require.Equal(t, []uint64{2}, v.ShareIndexesReady())
}
