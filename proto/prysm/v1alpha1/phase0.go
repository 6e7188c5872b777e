// Package eth holds the consensus containers of the beacon chain together with
// their SSZ hash tree roots. The field layout of every container matches its
// canonical SSZ definition, which is what makes the roots interoperable.
package eth

import (
	"github.com/prysmaticlabs/go-bitfield"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
)

// Fork identifies the current and previous fork versions and the epoch of the switch.
type Fork struct {
	PreviousVersion []byte      `json:"previous_version" ssz-size:"4"`
	CurrentVersion  []byte      `json:"current_version" ssz-size:"4"`
	Epoch           types.Epoch `json:"epoch"`
}

// ForkData is hashed to bind a domain to a fork and a genesis.
type ForkData struct {
	CurrentVersion        []byte `json:"current_version" ssz-size:"4"`
	GenesisValidatorsRoot []byte `json:"genesis_validators_root" ssz-size:"32"`
}

// SigningData pairs an object root with the domain it is signed under.
type SigningData struct {
	ObjectRoot []byte `json:"object_root" ssz-size:"32"`
	Domain     []byte `json:"domain" ssz-size:"32"`
}

// Checkpoint is an epoch boundary block reference.
type Checkpoint struct {
	Epoch types.Epoch `json:"epoch"`
	Root  []byte      `json:"root" ssz-size:"32"`
}

// Eth1Data is the deposit contract snapshot voted into the chain.
type Eth1Data struct {
	DepositRoot  []byte `json:"deposit_root" ssz-size:"32"`
	DepositCount uint64 `json:"deposit_count"`
	BlockHash    []byte `json:"block_hash" ssz-size:"32"`
}

// Validator is a registry entry. Its index in the registry is its identity.
type Validator struct {
	PublicKey                  []byte      `json:"public_key" ssz-size:"48"`
	WithdrawalCredentials      []byte      `json:"withdrawal_credentials" ssz-size:"32"`
	EffectiveBalance           uint64      `json:"effective_balance"`
	Slashed                    bool        `json:"slashed"`
	ActivationEligibilityEpoch types.Epoch `json:"activation_eligibility_epoch"`
	ActivationEpoch            types.Epoch `json:"activation_epoch"`
	ExitEpoch                  types.Epoch `json:"exit_epoch"`
	WithdrawableEpoch          types.Epoch `json:"withdrawable_epoch"`
}

// BeaconBlockHeader summarises a block with its body replaced by the body root.
type BeaconBlockHeader struct {
	Slot       types.Slot `json:"slot"`
	ParentRoot []byte     `json:"parent_root" ssz-size:"32"`
	StateRoot  []byte     `json:"state_root" ssz-size:"32"`
	BodyRoot   []byte     `json:"body_root" ssz-size:"32"`
	Signature  []byte     `json:"signature" ssz-size:"96"`
}

// BeaconBlock is a signed block proposal.
type BeaconBlock struct {
	Slot       types.Slot       `json:"slot"`
	ParentRoot []byte           `json:"parent_root" ssz-size:"32"`
	StateRoot  []byte           `json:"state_root" ssz-size:"32"`
	Body       *BeaconBlockBody `json:"body"`
	Signature  []byte           `json:"signature" ssz-size:"96"`
}

// BeaconBlockBody carries the block payload.
type BeaconBlockBody struct {
	RandaoReveal      []byte              `json:"randao_reveal" ssz-size:"96"`
	Eth1Data          *Eth1Data           `json:"eth1_data"`
	Graffiti          []byte              `json:"graffiti" ssz-size:"32"`
	ProposerSlashings []*ProposerSlashing `json:"proposer_slashings" ssz-max:"16"`
	AttesterSlashings []*AttesterSlashing `json:"attester_slashings" ssz-max:"2"`
	Attestations      []*Attestation      `json:"attestations" ssz-max:"128"`
	Deposits          []*Deposit          `json:"deposits" ssz-max:"16"`
	VoluntaryExits    []*VoluntaryExit    `json:"voluntary_exits" ssz-max:"16"`
}

// AttestationData is the vote carried by an attestation.
type AttestationData struct {
	Slot            types.Slot           `json:"slot"`
	CommitteeIndex  types.CommitteeIndex `json:"committee_index"`
	BeaconBlockRoot []byte               `json:"beacon_block_root" ssz-size:"32"`
	Source          *Checkpoint          `json:"source"`
	Target          *Checkpoint          `json:"target"`
}

// Attestation is an aggregated committee vote.
type Attestation struct {
	AggregationBits bitfield.Bitlist `json:"aggregation_bits" ssz-max:"2048"`
	Data            *AttestationData `json:"data"`
	Signature       []byte           `json:"signature" ssz-size:"96"`
}

// PendingAttestation is an attestation recorded in state awaiting epoch processing.
type PendingAttestation struct {
	AggregationBits bitfield.Bitlist     `json:"aggregation_bits" ssz-max:"2048"`
	Data            *AttestationData     `json:"data"`
	InclusionDelay  types.Slot           `json:"inclusion_delay"`
	ProposerIndex   types.ValidatorIndex `json:"proposer_index"`
}

// IndexedAttestation lists attesters by validator index.
type IndexedAttestation struct {
	AttestingIndices []uint64         `json:"attesting_indices" ssz-max:"2048"`
	Data             *AttestationData `json:"data"`
	Signature        []byte           `json:"signature" ssz-size:"96"`
}

// ProposerSlashing is evidence of two conflicting headers from one proposer.
type ProposerSlashing struct {
	ProposerIndex types.ValidatorIndex `json:"proposer_index"`
	Header_1      *BeaconBlockHeader   `json:"header_1"`
	Header_2      *BeaconBlockHeader   `json:"header_2"`
}

// AttesterSlashing is evidence of two conflicting attestations.
type AttesterSlashing struct {
	Attestation_1 *IndexedAttestation `json:"attestation_1"`
	Attestation_2 *IndexedAttestation `json:"attestation_2"`
}

// Deposit is a deposit receipt with its merkle branch.
type Deposit struct {
	Proof [][]byte     `json:"proof" ssz-size:"33,32"`
	Data  *DepositData `json:"data"`
}

// DepositData is the deposit contract log payload.
type DepositData struct {
	PublicKey             []byte `json:"public_key" ssz-size:"48"`
	WithdrawalCredentials []byte `json:"withdrawal_credentials" ssz-size:"32"`
	Amount                uint64 `json:"amount"`
	Signature             []byte `json:"signature" ssz-size:"96"`
}

// VoluntaryExit is a signed request to leave the validator set.
type VoluntaryExit struct {
	Epoch          types.Epoch          `json:"epoch"`
	ValidatorIndex types.ValidatorIndex `json:"validator_index"`
	Signature      []byte               `json:"signature" ssz-size:"96"`
}

// BeaconState is the full consensus state.
type BeaconState struct {
	GenesisTime                 uint64                `json:"genesis_time"`
	GenesisValidatorsRoot       []byte                `json:"genesis_validators_root" ssz-size:"32"`
	Slot                        types.Slot            `json:"slot"`
	Fork                        *Fork                 `json:"fork"`
	LatestBlockHeader           *BeaconBlockHeader    `json:"latest_block_header"`
	BlockRoots                  [][]byte              `json:"block_roots" ssz-size:"?,32"`
	StateRoots                  [][]byte              `json:"state_roots" ssz-size:"?,32"`
	HistoricalRoots             [][]byte              `json:"historical_roots" ssz-max:"16777216" ssz-size:"?,32"`
	Eth1Data                    *Eth1Data             `json:"eth1_data"`
	Eth1DataVotes               []*Eth1Data           `json:"eth1_data_votes"`
	Eth1DepositIndex            uint64                `json:"eth1_deposit_index"`
	Validators                  []*Validator          `json:"validators" ssz-max:"1099511627776"`
	Balances                    []uint64              `json:"balances" ssz-max:"1099511627776"`
	RandaoMixes                 [][]byte              `json:"randao_mixes" ssz-size:"?,32"`
	Slashings                   []uint64              `json:"slashings"`
	PreviousEpochAttestations   []*PendingAttestation `json:"previous_epoch_attestations"`
	CurrentEpochAttestations    []*PendingAttestation `json:"current_epoch_attestations"`
	JustificationBits           bitfield.Bitvector4   `json:"justification_bits" ssz-size:"1"`
	PreviousJustifiedCheckpoint *Checkpoint           `json:"previous_justified_checkpoint"`
	CurrentJustifiedCheckpoint  *Checkpoint           `json:"current_justified_checkpoint"`
	FinalizedCheckpoint         *Checkpoint           `json:"finalized_checkpoint"`
}
