package signing

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
)

// ValidatorDeposit is the per-validator leaf used in the register typed
// message: a validator that is about to be registered on-chain.
type ValidatorDeposit struct {
	PublicKey             []byte
	Signature             []byte
	WithdrawalCredentials []byte
	Amount                *big.Int
	DepositDataRoot       [32]byte
}

var domainType = apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

var validatorType = apitypes.Type{
	{Name: "publicKey", Type: "bytes"},
	{Name: "signature", Type: "bytes"},
	{Name: "withdrawalCredentials", Type: "bytes"},
	{Name: "amount", Type: "uint256"},
	{Name: "depositDataRoot", Type: "bytes32"},
}

func vaultsRegistryDomain(chainID uint64, vault common.Address) apitypes.TypedDataDomain {
	return apitypes.TypedDataDomain{
		Name:              "VaultsRegistry",
		Version:           "1",
		ChainId:           (*math.HexOrDecimal256)(new(big.Int).SetUint64(chainID)),
		VerifyingContract: vault.Hex(),
	}
}

// RegisterMessageHash builds the EIP-712 hash for the register operation:
// domain {VaultsRegistry,1,chainId,vault} over
// register(bytes32 validatorsRegistryRoot, Validator[] validators).
func RegisterMessageHash(chainID uint64, vault common.Address, validatorsRegistryRoot [32]byte, validators []ValidatorDeposit) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			"Validator":    validatorType,
			"Register": apitypes.Type{
				{Name: "validatorsRegistryRoot", Type: "bytes32"},
				{Name: "validators", Type: "Validator[]"},
			},
		},
		PrimaryType: "Register",
		Domain:      vaultsRegistryDomain(chainID, vault),
		Message: apitypes.TypedDataMessage{
			"validatorsRegistryRoot": validatorsRegistryRoot[:],
			"validators":             validatorDeposits(validators),
		},
	}
	return hashTypedData(typedData)
}

// FundMessageHash builds the EIP-712 hash for the fund operation:
// fund(uint256 nonce, Validator[] validators).
func FundMessageHash(chainID uint64, vault common.Address, nonce *big.Int, validators []ValidatorDeposit) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			"Validator":    validatorType,
			"Fund": apitypes.Type{
				{Name: "nonce", Type: "uint256"},
				{Name: "validators", Type: "Validator[]"},
			},
		},
		PrimaryType: "Fund",
		Domain:      vaultsRegistryDomain(chainID, vault),
		Message: apitypes.TypedDataMessage{
			"nonce":      (*math.HexOrDecimal256)(nonce),
			"validators": validatorDeposits(validators),
		},
	}
	return hashTypedData(typedData)
}

// WithdrawMessageHash builds the EIP-712 hash for the withdraw operation:
// withdraw(uint256 nonce, bytes[] publicKeys, uint256[] amounts).
func WithdrawMessageHash(chainID uint64, vault common.Address, nonce *big.Int, publicKeys [][]byte, amounts []*big.Int) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			"Withdraw": apitypes.Type{
				{Name: "nonce", Type: "uint256"},
				{Name: "publicKeys", Type: "bytes[]"},
				{Name: "amounts", Type: "uint256[]"},
			},
		},
		PrimaryType: "Withdraw",
		Domain:      vaultsRegistryDomain(chainID, vault),
		Message: apitypes.TypedDataMessage{
			"nonce":      (*math.HexOrDecimal256)(nonce),
			"publicKeys": byteSlices(publicKeys),
			"amounts":    bigInts(amounts),
		},
	}
	return hashTypedData(typedData)
}

// ConsolidateMessageHash builds the EIP-712 hash for the consolidate
// operation: consolidate(uint256 nonce, bytes[] sourcePublicKeys, bytes[]
// targetPublicKeys).
func ConsolidateMessageHash(chainID uint64, vault common.Address, nonce *big.Int, sourcePublicKeys, targetPublicKeys [][]byte) ([]byte, error) {
	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainType,
			"Consolidate": apitypes.Type{
				{Name: "nonce", Type: "uint256"},
				{Name: "sourcePublicKeys", Type: "bytes[]"},
				{Name: "targetPublicKeys", Type: "bytes[]"},
			},
		},
		PrimaryType: "Consolidate",
		Domain:      vaultsRegistryDomain(chainID, vault),
		Message: apitypes.TypedDataMessage{
			"nonce":            (*math.HexOrDecimal256)(nonce),
			"sourcePublicKeys": byteSlices(sourcePublicKeys),
			"targetPublicKeys": byteSlices(targetPublicKeys),
		},
	}
	return hashTypedData(typedData)
}

func hashTypedData(typedData apitypes.TypedData) ([]byte, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return nil, errors.Wrap(err, "hashing EIP-712 domain")
	}
	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, errors.Wrap(err, "hashing EIP-712 message")
	}
	rawData := fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(messageHash))
	return crypto.Keccak256([]byte(rawData)), nil
}

func validatorDeposits(validators []ValidatorDeposit) []interface{} {
	out := make([]interface{}, len(validators))
	for i, v := range validators {
		out[i] = apitypes.TypedDataMessage{
			"publicKey":             v.PublicKey,
			"signature":             v.Signature,
			"withdrawalCredentials": v.WithdrawalCredentials,
			"amount":                (*math.HexOrDecimal256)(v.Amount),
			"depositDataRoot":       v.DepositDataRoot[:],
		}
	}
	return out
}

func byteSlices(in [][]byte) []interface{} {
	out := make([]interface{}, len(in))
	for i, b := range in {
		out[i] = b
	}
	return out
}

func bigInts(in []*big.Int) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = (*math.HexOrDecimal256)(v)
	}
	return out
}
