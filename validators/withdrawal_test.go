package validators

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestWithdrawalCredentialsV1(t *testing.T) {
	vault := common.HexToAddress("0x1234567890123456789012345678901234567890")
	wc := WithdrawalCredentials(vault, V1)
	require.Len(t, wc, 32)
	require.Equal(t, byte(0x01), wc[0])
	for _, b := range wc[1:12] {
		require.Equal(t, byte(0x00), b)
	}
	require.Equal(t, vault.Bytes(), wc[12:])
}

func TestWithdrawalCredentialsV2(t *testing.T) {
	vault := common.HexToAddress("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	wc := WithdrawalCredentials(vault, V2)
	require.Equal(t, byte(0x02), wc[0])
	require.Equal(t, vault.Bytes(), wc[12:])
}
