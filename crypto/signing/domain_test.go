package signing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stakewise/dvt-relayer/config/params"
)

func TestComputeDomainPrefix(t *testing.T) {
	cfg := params.NETWORKS[params.Mainnet]
	domain, err := ComputeDomain(params.DomainVoluntaryExit, cfg.ShapellaForkVersion, cfg.GenesisValidatorsRoot)
	require.NoError(t, err)
	require.Equal(t, params.DomainVoluntaryExit[:], domain[:4])
}

func TestExitSigningRootDeterministic(t *testing.T) {
	cfg := params.NETWORKS[params.Mainnet]
	root1, err := ExitSigningRoot(cfg, 42)
	require.NoError(t, err)
	root2, err := ExitSigningRoot(cfg, 42)
	require.NoError(t, err)
	require.Equal(t, root1, root2)

	rootOther, err := ExitSigningRoot(cfg, 43)
	require.NoError(t, err)
	require.NotEqual(t, root1, rootOther)
}

func TestDepositSigningRootUsesGenesisFork(t *testing.T) {
	cfg := params.NETWORKS[params.Mainnet]
	pubKey := make([]byte, 48)
	wc := make([]byte, 32)
	root, err := DepositSigningRoot(cfg, pubKey, wc, 32_000_000_000)
	require.NoError(t, err)
	require.Len(t, root, 32)

	shapellaChanged := cfg
	shapellaChanged.ShapellaForkVersion = [4]byte{0xff, 0xff, 0xff, 0xff}
	rootSameGenesis, err := DepositSigningRoot(shapellaChanged, pubKey, wc, 32_000_000_000)
	require.NoError(t, err)
	require.Equal(t, root, rootSameGenesis)

	genesisChanged := cfg
	genesisChanged.GenesisForkVersion = [4]byte{0xff, 0xff, 0xff, 0xff}
	rootOtherGenesis, err := DepositSigningRoot(genesisChanged, pubKey, wc, 32_000_000_000)
	require.NoError(t, err)
	require.NotEqual(t, root, rootOtherGenesis)
}
