// Package signing computes signature domains and signing roots, and verifies
// BLS signatures over them.
package signing

import (
	ssz "github.com/ferranbt/fastssz"
	"github.com/pkg/errors"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/crypto/bls"
	ethpb "github.com/sgryphon/cortex/proto/prysm/v1alpha1"
)

// ForkVersionByteLength length of fork version byte array.
const ForkVersionByteLength = 4

// DomainByteLength length of domain byte array.
const DomainByteLength = 4

// ErrSigFailedToVerify returns when a signature of a block object(ie attestation, slashing, exit... etc)
// failed to verify.
var ErrSigFailedToVerify = errors.New("signature did not verify")

// signedContainer is implemented by objects that carry their own signature.
// Their signing root leaves the signature field out.
type signedContainer interface {
	SigningRoot() ([32]byte, error)
}

// ObjectRoot returns the root that is signed for obj.
func ObjectRoot(obj ssz.HashRoot) ([32]byte, error) {
	if s, ok := obj.(signedContainer); ok {
		return s.SigningRoot()
	}
	return obj.HashTreeRoot()
}

// ComputeSigningRoot computes the root of the object by calculating the hash tree root of the signing data with the given domain.
//
// Pseudocode definition:
//
//	def compute_signing_root(ssz_object: SSZObject, domain: Domain) -> Root:
//	   """
//	   Return the signing root for the corresponding signing data.
//	   """
//	   return hash_tree_root(SigningData(
//	       object_root=hash_tree_root(ssz_object),
//	       domain=domain,
//	   ))
func ComputeSigningRoot(object ssz.HashRoot, domain []byte) ([32]byte, error) {
	if object == nil {
		return [32]byte{}, errors.New("cannot compute signing root of nil")
	}
	objRoot, err := ObjectRoot(object)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not compute object root")
	}
	return signingData(objRoot, domain)
}

func signingData(objRoot [32]byte, domain []byte) ([32]byte, error) {
	container := &ethpb.SigningData{
		ObjectRoot: objRoot[:],
		Domain:     domain,
	}
	return container.HashTreeRoot()
}

// VerifySigningRoot verifies the signing root of an object given its public key, signature and domain.
func VerifySigningRoot(obj ssz.HashRoot, pub, signature, domain []byte) error {
	return VerifySigningRootWith(BLSVerifier{}, obj, pub, signature, domain)
}

// VerifySigningRootWith verifies the signing root of an object with the given verifier.
func VerifySigningRootWith(v Verifier, obj ssz.HashRoot, pub, signature, domain []byte) error {
	root, err := ComputeSigningRoot(obj, domain)
	if err != nil {
		return errors.Wrap(err, "could not compute signing root")
	}
	ok, err := v.Verify(pub, root, signature)
	if err != nil {
		return errors.Wrap(err, "could not verify signature")
	}
	if !ok {
		return ErrSigFailedToVerify
	}
	return nil
}

// Domain returns the domain version for BLS private key to sign and verify.
//
// Pseudocode definition:
//
//	def get_domain(state: BeaconState, domain_type: DomainType, epoch: Epoch=None) -> Domain:
//	  """
//	  Return the signature domain (fork version concatenated with domain type) of a message.
//	  """
//	  epoch = get_current_epoch(state) if epoch is None else epoch
//	  fork_version = state.fork.previous_version if epoch < state.fork.epoch else state.fork.current_version
//	  return compute_domain(domain_type, fork_version, state.genesis_validators_root)
func Domain(fork *ethpb.Fork, epoch types.Epoch, domainType types.DomainType, genesisRoot []byte) ([]byte, error) {
	if fork == nil {
		return []byte{}, errors.New("nil fork or domain type")
	}
	var forkVersion []byte
	if epoch < fork.Epoch {
		forkVersion = fork.PreviousVersion
	} else {
		forkVersion = fork.CurrentVersion
	}
	if len(forkVersion) != ForkVersionByteLength {
		return []byte{}, errors.New("fork version length is not 4 byte")
	}
	return ComputeDomain(domainType, forkVersion, genesisRoot)
}

// ComputeDomain returns the domain version for BLS private key to sign and verify with a zeroed 4-byte
// array as the fork version.
//
//	def compute_domain(domain_type: DomainType, fork_version: Version=None, genesis_validators_root: Root=None) -> Domain:
//	  """
//	  Return the domain for the ``domain_type`` and ``fork_version``.
//	  """
//	  if fork_version is None:
//	      fork_version = GENESIS_FORK_VERSION
//	  if genesis_validators_root is None:
//	      genesis_validators_root = Root()  # all bytes zero by default
//	  fork_data_root = compute_fork_data_root(fork_version, genesis_validators_root)
//	  return Domain(domain_type + fork_data_root[:28])
func ComputeDomain(domainType types.DomainType, forkVersion, genesisValidatorsRoot []byte) ([]byte, error) {
	if forkVersion == nil {
		forkVersion = make([]byte, ForkVersionByteLength)
	}
	if genesisValidatorsRoot == nil {
		genesisValidatorsRoot = make([]byte, 32)
	}
	forkRoot, err := computeForkDataRoot(forkVersion, genesisValidatorsRoot)
	if err != nil {
		return nil, err
	}
	return domain(domainType, forkRoot[:]), nil
}

// This returns the bls domain given by the domain type and fork data root.
func domain(domainType types.DomainType, forkDataRoot []byte) []byte {
	var b []byte
	b = append(b, domainType[:4]...)
	b = append(b, forkDataRoot[:28]...)
	return b
}

// this returns the 32byte fork data root for the “current_version“ and “genesis_validators_root“.
// This is used primarily in signature domains to avoid collisions across forks/chains.
//
//	def compute_fork_data_root(current_version: Version, genesis_validators_root: Root) -> Root:
//	  """
//	  Return the 32-byte fork data root for the ``current_version`` and ``genesis_validators_root``.
//	  This is used primarily in signature domains to avoid collisions across forks/chains.
//	  """
//	  return hash_tree_root(ForkData(
//	      current_version=current_version,
//	      genesis_validators_root=genesis_validators_root,
//	  ))
func computeForkDataRoot(version, root []byte) ([32]byte, error) {
	r, err := (&ethpb.ForkData{
		CurrentVersion:        version,
		GenesisValidatorsRoot: root,
	}).HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	return r, nil
}

// ComputeForkDigest returns the first four bytes of the fork data root.
func ComputeForkDigest(version, genesisValidatorsRoot []byte) ([4]byte, error) {
	dataRoot, err := computeForkDataRoot(version, genesisValidatorsRoot)
	if err != nil {
		return [4]byte{}, err
	}
	var digest [4]byte
	copy(digest[:], dataRoot[:4])
	return digest, nil
}

//go:generate mockgen -package=mock -destination=../../../testing/mock/verifier_mock.go github.com/sgryphon/cortex/beacon-chain/core/signing Verifier

// Verifier checks a BLS signature over a signing root.
type Verifier interface {
	Verify(pubKey []byte, signingRoot [32]byte, signature []byte) (bool, error)
}

// BLSVerifier verifies signatures with the BLS12-381 backend.
type BLSVerifier struct{}

// Verify decodes the public key and signature and verifies the signature over the signing root.
func (BLSVerifier) Verify(pubKey []byte, signingRoot [32]byte, signature []byte) (bool, error) {
	publicKey, err := bls.PublicKeyFromBytes(pubKey)
	if err != nil {
		return false, errors.Wrap(err, "could not convert bytes to public key")
	}
	sig, err := bls.SignatureFromBytes(signature)
	if err != nil {
		return false, errors.Wrap(err, "could not convert bytes to signature")
	}
	return sig.Verify(publicKey, signingRoot[:]), nil
}
