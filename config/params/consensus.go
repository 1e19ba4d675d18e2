package params

// Domain types used to compute signing domains for SSZ signing roots.
// Values match the consensus-layer spec; only the two domains this
// relayer needs to reconstruct are declared.
var (
	DomainVoluntaryExit = [4]byte{0x04, 0x00, 0x00, 0x00}
	DomainDeposit       = [4]byte{0x03, 0x00, 0x00, 0x00}
)

// FarFutureEpoch marks "no value" for epoch-typed fields, matching the
// consensus spec constant of the same name.
const FarFutureEpoch = uint64(1<<64 - 1)
