package eth

import (
	"github.com/mohae/deepcopy"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/sgryphon/cortex/encoding/bytesutil"
)

// Copier is implemented by containers that can produce an independent copy of themselves.
type Copier[T any] interface {
	Copy() T
}

// Copy --
func (f *Fork) Copy() *Fork {
	if f == nil {
		return nil
	}
	return &Fork{
		PreviousVersion: bytesutil.SafeCopyBytes(f.PreviousVersion),
		CurrentVersion:  bytesutil.SafeCopyBytes(f.CurrentVersion),
		Epoch:           f.Epoch,
	}
}

// Copy --
func (c *Checkpoint) Copy() *Checkpoint {
	if c == nil {
		return nil
	}
	return &Checkpoint{
		Epoch: c.Epoch,
		Root:  bytesutil.SafeCopyBytes(c.Root),
	}
}

// Copy --
func (e *Eth1Data) Copy() *Eth1Data {
	if e == nil {
		return nil
	}
	return &Eth1Data{
		DepositRoot:  bytesutil.SafeCopyBytes(e.DepositRoot),
		DepositCount: e.DepositCount,
		BlockHash:    bytesutil.SafeCopyBytes(e.BlockHash),
	}
}

// Copy --
func (v *Validator) Copy() *Validator {
	if v == nil {
		return nil
	}
	return &Validator{
		PublicKey:                  bytesutil.SafeCopyBytes(v.PublicKey),
		WithdrawalCredentials:      bytesutil.SafeCopyBytes(v.WithdrawalCredentials),
		EffectiveBalance:           v.EffectiveBalance,
		Slashed:                    v.Slashed,
		ActivationEligibilityEpoch: v.ActivationEligibilityEpoch,
		ActivationEpoch:            v.ActivationEpoch,
		ExitEpoch:                  v.ExitEpoch,
		WithdrawableEpoch:          v.WithdrawableEpoch,
	}
}

// Copy --
func (b *BeaconBlockHeader) Copy() *BeaconBlockHeader {
	if b == nil {
		return nil
	}
	return &BeaconBlockHeader{
		Slot:       b.Slot,
		ParentRoot: bytesutil.SafeCopyBytes(b.ParentRoot),
		StateRoot:  bytesutil.SafeCopyBytes(b.StateRoot),
		BodyRoot:   bytesutil.SafeCopyBytes(b.BodyRoot),
		Signature:  bytesutil.SafeCopyBytes(b.Signature),
	}
}

// Copy --
func (a *AttestationData) Copy() *AttestationData {
	if a == nil {
		return nil
	}
	return &AttestationData{
		Slot:            a.Slot,
		CommitteeIndex:  a.CommitteeIndex,
		BeaconBlockRoot: bytesutil.SafeCopyBytes(a.BeaconBlockRoot),
		Source:          a.Source.Copy(),
		Target:          a.Target.Copy(),
	}
}

// Copy --
func (p *PendingAttestation) Copy() *PendingAttestation {
	if p == nil {
		return nil
	}
	return &PendingAttestation{
		AggregationBits: copyBitlist(p.AggregationBits),
		Data:            p.Data.Copy(),
		InclusionDelay:  p.InclusionDelay,
		ProposerIndex:   p.ProposerIndex,
	}
}

// Copy --
func (a *Attestation) Copy() *Attestation {
	if a == nil {
		return nil
	}
	return &Attestation{
		AggregationBits: copyBitlist(a.AggregationBits),
		Data:            a.Data.Copy(),
		Signature:       bytesutil.SafeCopyBytes(a.Signature),
	}
}

// Copy --
func (b *BeaconBlock) Copy() *BeaconBlock {
	if b == nil {
		return nil
	}
	return &BeaconBlock{
		Slot:       b.Slot,
		ParentRoot: bytesutil.SafeCopyBytes(b.ParentRoot),
		StateRoot:  bytesutil.SafeCopyBytes(b.StateRoot),
		Body:       b.Body.Copy(),
		Signature:  bytesutil.SafeCopyBytes(b.Signature),
	}
}

// Copy --
func (b *BeaconBlockBody) Copy() *BeaconBlockBody {
	if b == nil {
		return nil
	}
	var atts []*Attestation
	if b.Attestations != nil {
		atts = make([]*Attestation, len(b.Attestations))
		for i, a := range b.Attestations {
			atts[i] = a.Copy()
		}
	}
	return &BeaconBlockBody{
		RandaoReveal: bytesutil.SafeCopyBytes(b.RandaoReveal),
		Eth1Data:     b.Eth1Data.Copy(),
		Graffiti:     bytesutil.SafeCopyBytes(b.Graffiti),
		// Operations other than attestations are carried but never applied.
		ProposerSlashings: deepcopy.Copy(b.ProposerSlashings).([]*ProposerSlashing),
		AttesterSlashings: deepcopy.Copy(b.AttesterSlashings).([]*AttesterSlashing),
		Attestations:      atts,
		Deposits:          deepcopy.Copy(b.Deposits).([]*Deposit),
		VoluntaryExits:    deepcopy.Copy(b.VoluntaryExits).([]*VoluntaryExit),
	}
}

func copyBitlist(b bitfield.Bitlist) bitfield.Bitlist {
	if b == nil {
		return nil
	}
	cp := make(bitfield.Bitlist, len(b))
	copy(cp, b)
	return cp
}
