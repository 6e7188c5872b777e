package eth

import (
	ssz "github.com/ferranbt/fastssz"
	fieldparams "github.com/sgryphon/cortex/config/fieldparams"
)

// HashTreeRoot ssz hashes the Fork object
func (f *Fork) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(f)
}

// HashTreeRootWith ssz hashes the Fork object with a hasher
func (f *Fork) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'PreviousVersion'
	if err = putFixedBytes(hh, f.PreviousVersion, fieldparams.VersionLength); err != nil {
		return
	}

	// Field (1) 'CurrentVersion'
	if err = putFixedBytes(hh, f.CurrentVersion, fieldparams.VersionLength); err != nil {
		return
	}

	// Field (2) 'Epoch'
	hh.PutUint64(uint64(f.Epoch))

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the ForkData object
func (f *ForkData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(f)
}

// HashTreeRootWith ssz hashes the ForkData object with a hasher
func (f *ForkData) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'CurrentVersion'
	if err = putFixedBytes(hh, f.CurrentVersion, fieldparams.VersionLength); err != nil {
		return
	}

	// Field (1) 'GenesisValidatorsRoot'
	if err = putFixedBytes(hh, f.GenesisValidatorsRoot, fieldparams.RootLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the SigningData object
func (s *SigningData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(s)
}

// HashTreeRootWith ssz hashes the SigningData object with a hasher
func (s *SigningData) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'ObjectRoot'
	if err = putFixedBytes(hh, s.ObjectRoot, fieldparams.RootLength); err != nil {
		return
	}

	// Field (1) 'Domain'
	if err = putFixedBytes(hh, s.Domain, fieldparams.RootLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the Checkpoint object
func (c *Checkpoint) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(c)
}

// HashTreeRootWith ssz hashes the Checkpoint object with a hasher
func (c *Checkpoint) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'Epoch'
	hh.PutUint64(uint64(c.Epoch))

	// Field (1) 'Root'
	if err = putFixedBytes(hh, c.Root, fieldparams.RootLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the Eth1Data object
func (e *Eth1Data) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(e)
}

// HashTreeRootWith ssz hashes the Eth1Data object with a hasher
func (e *Eth1Data) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'DepositRoot'
	if err = putFixedBytes(hh, e.DepositRoot, fieldparams.RootLength); err != nil {
		return
	}

	// Field (1) 'DepositCount'
	hh.PutUint64(e.DepositCount)

	// Field (2) 'BlockHash'
	if err = putFixedBytes(hh, e.BlockHash, fieldparams.RootLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the Validator object
func (v *Validator) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(v)
}

// HashTreeRootWith ssz hashes the Validator object with a hasher
func (v *Validator) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'PublicKey'
	if err = putFixedBytes(hh, v.PublicKey, fieldparams.BLSPubkeyLength); err != nil {
		return
	}

	// Field (1) 'WithdrawalCredentials'
	if err = putFixedBytes(hh, v.WithdrawalCredentials, fieldparams.RootLength); err != nil {
		return
	}

	// Field (2) 'EffectiveBalance'
	hh.PutUint64(v.EffectiveBalance)

	// Field (3) 'Slashed'
	hh.PutBool(v.Slashed)

	// Field (4) 'ActivationEligibilityEpoch'
	hh.PutUint64(uint64(v.ActivationEligibilityEpoch))

	// Field (5) 'ActivationEpoch'
	hh.PutUint64(uint64(v.ActivationEpoch))

	// Field (6) 'ExitEpoch'
	hh.PutUint64(uint64(v.ExitEpoch))

	// Field (7) 'WithdrawableEpoch'
	hh.PutUint64(uint64(v.WithdrawableEpoch))

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the BeaconBlockHeader object
func (b *BeaconBlockHeader) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the BeaconBlockHeader object with a hasher
func (b *BeaconBlockHeader) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()
	if err = b.putUnsignedFields(hh); err != nil {
		return
	}

	// Field (4) 'Signature'
	if err = putFixedBytes(hh, b.Signature, fieldparams.BLSSignatureLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

func (b *BeaconBlockHeader) putUnsignedFields(hh *ssz.Hasher) (err error) {
	// Field (0) 'Slot'
	hh.PutUint64(uint64(b.Slot))

	// Field (1) 'ParentRoot'
	if err = putFixedBytes(hh, b.ParentRoot, fieldparams.RootLength); err != nil {
		return
	}

	// Field (2) 'StateRoot'
	if err = putFixedBytes(hh, b.StateRoot, fieldparams.RootLength); err != nil {
		return
	}

	// Field (3) 'BodyRoot'
	return putFixedBytes(hh, b.BodyRoot, fieldparams.RootLength)
}

// HashTreeRoot ssz hashes the BeaconBlock object
func (b *BeaconBlock) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the BeaconBlock object with a hasher
func (b *BeaconBlock) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()
	if err = b.putUnsignedFields(hh); err != nil {
		return
	}

	// Field (4) 'Signature'
	if err = putFixedBytes(hh, b.Signature, fieldparams.BLSSignatureLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

func (b *BeaconBlock) putUnsignedFields(hh *ssz.Hasher) (err error) {
	// Field (0) 'Slot'
	hh.PutUint64(uint64(b.Slot))

	// Field (1) 'ParentRoot'
	if err = putFixedBytes(hh, b.ParentRoot, fieldparams.RootLength); err != nil {
		return
	}

	// Field (2) 'StateRoot'
	if err = putFixedBytes(hh, b.StateRoot, fieldparams.RootLength); err != nil {
		return
	}

	// Field (3) 'Body'
	body := b.Body
	if body == nil {
		body = new(BeaconBlockBody)
	}
	return body.HashTreeRootWith(hh)
}

// HashTreeRoot ssz hashes the BeaconBlockBody object
func (b *BeaconBlockBody) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the BeaconBlockBody object with a hasher
func (b *BeaconBlockBody) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'RandaoReveal'
	if err = putFixedBytes(hh, b.RandaoReveal, fieldparams.BLSSignatureLength); err != nil {
		return
	}

	// Field (1) 'Eth1Data'
	eth1Data := b.Eth1Data
	if eth1Data == nil {
		eth1Data = new(Eth1Data)
	}
	if err = eth1Data.HashTreeRootWith(hh); err != nil {
		return
	}

	// Field (2) 'Graffiti'
	if err = putFixedBytes(hh, b.Graffiti, fieldparams.GraffitiLength); err != nil {
		return
	}

	// Field (3) 'ProposerSlashings'
	if err = putContainerList(hh, len(b.ProposerSlashings), fieldparams.MaxProposerSlashings, func(i int) hashRootWith {
		return b.ProposerSlashings[i]
	}); err != nil {
		return
	}

	// Field (4) 'AttesterSlashings'
	if err = putContainerList(hh, len(b.AttesterSlashings), fieldparams.MaxAttesterSlashings, func(i int) hashRootWith {
		return b.AttesterSlashings[i]
	}); err != nil {
		return
	}

	// Field (5) 'Attestations'
	if err = putContainerList(hh, len(b.Attestations), fieldparams.MaxAttestations, func(i int) hashRootWith {
		return b.Attestations[i]
	}); err != nil {
		return
	}

	// Field (6) 'Deposits'
	if err = putContainerList(hh, len(b.Deposits), fieldparams.MaxDeposits, func(i int) hashRootWith {
		return b.Deposits[i]
	}); err != nil {
		return
	}

	// Field (7) 'VoluntaryExits'
	if err = putContainerList(hh, len(b.VoluntaryExits), fieldparams.MaxVoluntaryExits, func(i int) hashRootWith {
		return b.VoluntaryExits[i]
	}); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the AttestationData object
func (a *AttestationData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(a)
}

// HashTreeRootWith ssz hashes the AttestationData object with a hasher
func (a *AttestationData) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'Slot'
	hh.PutUint64(uint64(a.Slot))

	// Field (1) 'CommitteeIndex'
	hh.PutUint64(uint64(a.CommitteeIndex))

	// Field (2) 'BeaconBlockRoot'
	if err = putFixedBytes(hh, a.BeaconBlockRoot, fieldparams.RootLength); err != nil {
		return
	}

	// Field (3) 'Source'
	source := a.Source
	if source == nil {
		source = new(Checkpoint)
	}
	if err = source.HashTreeRootWith(hh); err != nil {
		return
	}

	// Field (4) 'Target'
	target := a.Target
	if target == nil {
		target = new(Checkpoint)
	}
	if err = target.HashTreeRootWith(hh); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the Attestation object
func (a *Attestation) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(a)
}

// HashTreeRootWith ssz hashes the Attestation object with a hasher
func (a *Attestation) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'AggregationBits'
	if err = putBitlist(hh, a.AggregationBits, fieldparams.MaxValidatorsPerCommittee); err != nil {
		return
	}

	// Field (1) 'Data'
	if err = dataOrEmpty(a.Data).HashTreeRootWith(hh); err != nil {
		return
	}

	// Field (2) 'Signature'
	if err = putFixedBytes(hh, a.Signature, fieldparams.BLSSignatureLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the PendingAttestation object
func (p *PendingAttestation) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(p)
}

// HashTreeRootWith ssz hashes the PendingAttestation object with a hasher
func (p *PendingAttestation) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'AggregationBits'
	if err = putBitlist(hh, p.AggregationBits, fieldparams.MaxValidatorsPerCommittee); err != nil {
		return
	}

	// Field (1) 'Data'
	if err = dataOrEmpty(p.Data).HashTreeRootWith(hh); err != nil {
		return
	}

	// Field (2) 'InclusionDelay'
	hh.PutUint64(uint64(p.InclusionDelay))

	// Field (3) 'ProposerIndex'
	hh.PutUint64(uint64(p.ProposerIndex))

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the IndexedAttestation object
func (i *IndexedAttestation) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(i)
}

// HashTreeRootWith ssz hashes the IndexedAttestation object with a hasher
func (i *IndexedAttestation) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'AttestingIndices'
	if err = putUint64List(hh, i.AttestingIndices, fieldparams.MaxValidatorsPerCommittee); err != nil {
		return
	}

	// Field (1) 'Data'
	if err = dataOrEmpty(i.Data).HashTreeRootWith(hh); err != nil {
		return
	}

	// Field (2) 'Signature'
	if err = putFixedBytes(hh, i.Signature, fieldparams.BLSSignatureLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the ProposerSlashing object
func (p *ProposerSlashing) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(p)
}

// HashTreeRootWith ssz hashes the ProposerSlashing object with a hasher
func (p *ProposerSlashing) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'ProposerIndex'
	hh.PutUint64(uint64(p.ProposerIndex))

	// Field (1) 'Header_1' and (2) 'Header_2'
	for _, h := range []*BeaconBlockHeader{p.Header_1, p.Header_2} {
		if h == nil {
			h = new(BeaconBlockHeader)
		}
		if err = h.HashTreeRootWith(hh); err != nil {
			return
		}
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the AttesterSlashing object
func (a *AttesterSlashing) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(a)
}

// HashTreeRootWith ssz hashes the AttesterSlashing object with a hasher
func (a *AttesterSlashing) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'Attestation_1' and (1) 'Attestation_2'
	for _, att := range []*IndexedAttestation{a.Attestation_1, a.Attestation_2} {
		if att == nil {
			att = new(IndexedAttestation)
		}
		if err = att.HashTreeRootWith(hh); err != nil {
			return
		}
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the Deposit object
func (d *Deposit) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(d)
}

// HashTreeRootWith ssz hashes the Deposit object with a hasher
func (d *Deposit) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'Proof'
	if len(d.Proof) != fieldparams.DepositProofLength {
		return ssz.ErrVectorLength
	}
	if err = putRootVector(hh, d.Proof); err != nil {
		return
	}

	// Field (1) 'Data'
	data := d.Data
	if data == nil {
		data = new(DepositData)
	}
	if err = data.HashTreeRootWith(hh); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the DepositData object
func (d *DepositData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(d)
}

// HashTreeRootWith ssz hashes the DepositData object with a hasher
func (d *DepositData) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'PublicKey'
	if err = putFixedBytes(hh, d.PublicKey, fieldparams.BLSPubkeyLength); err != nil {
		return
	}

	// Field (1) 'WithdrawalCredentials'
	if err = putFixedBytes(hh, d.WithdrawalCredentials, fieldparams.RootLength); err != nil {
		return
	}

	// Field (2) 'Amount'
	hh.PutUint64(d.Amount)

	// Field (3) 'Signature'
	if err = putFixedBytes(hh, d.Signature, fieldparams.BLSSignatureLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the VoluntaryExit object
func (v *VoluntaryExit) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(v)
}

// HashTreeRootWith ssz hashes the VoluntaryExit object with a hasher
func (v *VoluntaryExit) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'Epoch'
	hh.PutUint64(uint64(v.Epoch))

	// Field (1) 'ValidatorIndex'
	hh.PutUint64(uint64(v.ValidatorIndex))

	// Field (2) 'Signature'
	if err = putFixedBytes(hh, v.Signature, fieldparams.BLSSignatureLength); err != nil {
		return
	}

	hh.Merkleize(indx)
	return
}

// HashTreeRoot ssz hashes the BeaconState object
func (b *BeaconState) HashTreeRoot() ([32]byte, error) {
	return ssz.HashWithDefaultHasher(b)
}

// HashTreeRootWith ssz hashes the BeaconState object with a hasher
func (b *BeaconState) HashTreeRootWith(hh *ssz.Hasher) (err error) {
	indx := hh.Index()

	// Field (0) 'GenesisTime'
	hh.PutUint64(b.GenesisTime)

	// Field (1) 'GenesisValidatorsRoot'
	if err = putFixedBytes(hh, b.GenesisValidatorsRoot, fieldparams.RootLength); err != nil {
		return
	}

	// Field (2) 'Slot'
	hh.PutUint64(uint64(b.Slot))

	// Field (3) 'Fork'
	fork := b.Fork
	if fork == nil {
		fork = new(Fork)
	}
	if err = fork.HashTreeRootWith(hh); err != nil {
		return
	}

	// Field (4) 'LatestBlockHeader'
	header := b.LatestBlockHeader
	if header == nil {
		header = new(BeaconBlockHeader)
	}
	if err = header.HashTreeRootWith(hh); err != nil {
		return
	}

	// Field (5) 'BlockRoots'
	if err = putRootVector(hh, b.BlockRoots); err != nil {
		return
	}

	// Field (6) 'StateRoots'
	if err = putRootVector(hh, b.StateRoots); err != nil {
		return
	}

	// Field (7) 'HistoricalRoots'
	if err = putRootList(hh, b.HistoricalRoots, fieldparams.HistoricalRootsLength); err != nil {
		return
	}

	// Field (8) 'Eth1Data'
	eth1Data := b.Eth1Data
	if eth1Data == nil {
		eth1Data = new(Eth1Data)
	}
	if err = eth1Data.HashTreeRootWith(hh); err != nil {
		return
	}

	// Field (9) 'Eth1DataVotes'
	if err = putContainerList(hh, len(b.Eth1DataVotes), fieldparams.Eth1DataVotesLength, func(i int) hashRootWith {
		return b.Eth1DataVotes[i]
	}); err != nil {
		return
	}

	// Field (10) 'Eth1DepositIndex'
	hh.PutUint64(b.Eth1DepositIndex)

	// Field (11) 'Validators'
	if err = putContainerList(hh, len(b.Validators), fieldparams.ValidatorRegistryLimit, func(i int) hashRootWith {
		return b.Validators[i]
	}); err != nil {
		return
	}

	// Field (12) 'Balances'
	if err = putUint64List(hh, b.Balances, fieldparams.ValidatorRegistryLimit); err != nil {
		return
	}

	// Field (13) 'RandaoMixes'
	if err = putRootVector(hh, b.RandaoMixes); err != nil {
		return
	}

	// Field (14) 'Slashings'
	if err = putUint64Vector(hh, b.Slashings); err != nil {
		return
	}

	// Field (15) 'PreviousEpochAttestations'
	if err = putContainerList(hh, len(b.PreviousEpochAttestations), fieldparams.PreviousEpochAttestationsLength, func(i int) hashRootWith {
		return b.PreviousEpochAttestations[i]
	}); err != nil {
		return
	}

	// Field (16) 'CurrentEpochAttestations'
	if err = putContainerList(hh, len(b.CurrentEpochAttestations), fieldparams.CurrentEpochAttestationsLength, func(i int) hashRootWith {
		return b.CurrentEpochAttestations[i]
	}); err != nil {
		return
	}

	// Field (17) 'JustificationBits'
	if len(b.JustificationBits) != 1 {
		return ssz.ErrBytesLength
	}
	hh.PutBytes(b.JustificationBits)

	// Field (18) 'PreviousJustifiedCheckpoint'
	// Field (19) 'CurrentJustifiedCheckpoint'
	// Field (20) 'FinalizedCheckpoint'
	for _, cp := range []*Checkpoint{b.PreviousJustifiedCheckpoint, b.CurrentJustifiedCheckpoint, b.FinalizedCheckpoint} {
		if cp == nil {
			cp = new(Checkpoint)
		}
		if err = cp.HashTreeRootWith(hh); err != nil {
			return
		}
	}

	hh.Merkleize(indx)
	return
}

func dataOrEmpty(d *AttestationData) *AttestationData {
	if d == nil {
		return new(AttestationData)
	}
	return d
}
