package validators

import "github.com/ethereum/go-ethereum/common"

// WithdrawalCredentials derives the 32-byte withdrawal credentials for a
// vault-addressed validator: V1 => 0x01 || 11 zero bytes || vault; V2 =>
// 0x02 || 11 zero bytes || vault.
func WithdrawalCredentials(vault common.Address, vt ValidatorType) []byte {
	out := make([]byte, 32)
	switch vt {
	case V2:
		out[0] = 0x02
	default:
		out[0] = 0x01
	}
	copy(out[12:], vault.Bytes())
	return out
}
