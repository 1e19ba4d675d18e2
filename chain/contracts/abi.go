// Package contracts wraps the three on-chain contracts the relayer
// reads from: ValidatorsRegistry (deposit root + DepositEvent logs),
// Keeper (ConfigUpdated logs), and Vault (validatorsManagerNonce). Thin
// hand-written ABI wrappers over go-ethereum's accounts/abi and an
// ethclient-shaped CallerClient,
// in place of codegen'd bindings — the retrieval pack carries no
// abigen-generated contract package to adapt.
package contracts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const validatorsRegistryABIJSON = `[
	{"type":"function","name":"get_deposit_root","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bytes32"}]},
	{"type":"event","name":"DepositEvent","anonymous":false,"inputs":[
		{"name":"pubkey","type":"bytes","indexed":false},
		{"name":"withdrawal_credentials","type":"bytes","indexed":false},
		{"name":"amount","type":"bytes","indexed":false},
		{"name":"signature","type":"bytes","indexed":false},
		{"name":"index","type":"bytes","indexed":false}
	]}
]`

const keeperABIJSON = `[
	{"type":"event","name":"ConfigUpdated","anonymous":false,"inputs":[
		{"name":"configIpfsHash","type":"string","indexed":false}
	]}
]`

const vaultABIJSON = `[
	{"type":"function","name":"validatorsManagerNonce","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return parsed
}

var (
	validatorsRegistryABI = mustParseABI(validatorsRegistryABIJSON)
	keeperABI             = mustParseABI(keeperABIJSON)
	vaultABI              = mustParseABI(vaultABIJSON)
)
