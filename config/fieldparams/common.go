// Package field_params defines the byte lengths and list limits of the
// consensus containers. Preset-dependent limits are selected with the
// `minimal` build tag.
package field_params

const (
	RootLength                = 32            // RootLength defines the byte length of a Merkle root.
	BLSSignatureLength        = 96            // BLSSignatureLength defines the byte length of a BLSSignature.
	BLSPubkeyLength           = 48            // BLSPubkeyLength defines the byte length of a BLSSignature.
	BLSSecretKeyLength        = 32            // BLSSecretKeyLength defines the byte length of a BLS secret key.
	VersionLength             = 4             // VersionLength defines the byte length of a fork version number.
	DomainTypeLength          = 4             // DomainTypeLength defines the byte length of a signature domain tag.
	GraffitiLength            = 32            // GraffitiLength defines the byte length of block graffiti.
	JustificationBitsLength   = 4             // JustificationBitsLength is the number of tracked justification epochs.
	HistoricalRootsLength     = 16777216      // HISTORICAL_ROOTS_LIMIT
	ValidatorRegistryLimit    = 1099511627776 // VALIDATOR_REGISTRY_LIMIT
	MaxValidatorsPerCommittee = 2048          // MAX_VALIDATORS_PER_COMMITTEE
	MaxProposerSlashings      = 16            // MAX_PROPOSER_SLASHINGS
	MaxAttesterSlashings      = 2             // MAX_ATTESTER_SLASHINGS
	MaxAttestations           = 128           // MAX_ATTESTATIONS
	MaxDeposits               = 16            // MAX_DEPOSITS
	MaxVoluntaryExits         = 16            // MAX_VOLUNTARY_EXITS
	DepositProofLength        = 33            // DEPOSIT_CONTRACT_TREE_DEPTH + 1
)
