// Package protocolconfig holds the cached committee roster and
// threshold parameters published by the keeper contract via IPFS.
package protocolconfig

import "github.com/ethereum/go-ethereum/common"

// Oracle is one member of the committee that receives an ECIES-encrypted
// re-share of a reconstructed exit signature.
type Oracle struct {
	Address   common.Address
	PublicKey []byte // secp256k1, uncompressed
}

// Config is the cached protocol configuration: the committee roster, the
// recovery threshold, and the execution block at which it was last
// refreshed.
type Config struct {
	Oracles                      []Oracle
	ExitSignatureRecoverThreshold int
	CheckpointBlock              uint64
}

// Threshold is a convenience accessor used by the aggregation pipeline.
func (c *Config) Threshold() int {
	return c.ExitSignatureRecoverThreshold
}
