package bls

import "github.com/pkg/errors"

// SignatureSet refers to the defined set of
// signatures and its respective public keys and
// messages required to verify it. Descriptions label
// each entry for error reporting.
type SignatureSet struct {
	Signatures   [][]byte
	PublicKeys   []PublicKey
	Messages     [][32]byte
	Descriptions []string
}

// NewSet constructs an empty signature set object.
func NewSet() *SignatureSet {
	return &SignatureSet{
		Signatures:   [][]byte{},
		PublicKeys:   []PublicKey{},
		Messages:     [][32]byte{},
		Descriptions: []string{},
	}
}

// Add appends a single signature, its signer and the signed root.
func (s *SignatureSet) Add(sig []byte, pub PublicKey, msg [32]byte, desc string) *SignatureSet {
	s.Signatures = append(s.Signatures, sig)
	s.PublicKeys = append(s.PublicKeys, pub)
	s.Messages = append(s.Messages, msg)
	s.Descriptions = append(s.Descriptions, desc)
	return s
}

// Len returns the number of signatures in the set.
func (s *SignatureSet) Len() int {
	return len(s.Signatures)
}

// Join merges the provided signature set to out current one.
func (s *SignatureSet) Join(set *SignatureSet) *SignatureSet {
	s.Signatures = append(s.Signatures, set.Signatures...)
	s.PublicKeys = append(s.PublicKeys, set.PublicKeys...)
	s.Messages = append(s.Messages, set.Messages...)
	s.Descriptions = append(s.Descriptions, set.Descriptions...)
	return s
}

// Verify the current signature set using the batch verify algorithm.
func (s *SignatureSet) Verify() (bool, error) {
	if len(s.Signatures) == 1 {
		sig, err := SignatureFromBytes(s.Signatures[0])
		if err != nil {
			return false, errors.Wrapf(err, "could not convert %s signature from bytes", s.description(0))
		}
		return sig.Verify(s.PublicKeys[0], s.Messages[0][:]), nil
	}
	return VerifyMultipleSignatures(s.Signatures, s.Messages, s.PublicKeys)
}

func (s *SignatureSet) description(i int) string {
	if i < len(s.Descriptions) && s.Descriptions[i] != "" {
		return s.Descriptions[i]
	}
	return "unknown"
}

// Copy the attached signature set and return it
// to the caller.
func (s *SignatureSet) Copy() *SignatureSet {
	signatures := make([][]byte, len(s.Signatures))
	pubkeys := make([]PublicKey, len(s.PublicKeys))
	messages := make([][32]byte, len(s.Messages))
	descriptions := make([]string, len(s.Descriptions))
	for i := range s.Signatures {
		sig := make([]byte, len(s.Signatures[i]))
		copy(sig, s.Signatures[i])
		signatures[i] = sig
	}
	for i := range s.PublicKeys {
		pubkeys[i] = s.PublicKeys[i].Copy()
	}
	copy(messages, s.Messages)
	copy(descriptions, s.Descriptions)
	return &SignatureSet{
		Signatures:   signatures,
		PublicKeys:   pubkeys,
		Messages:     messages,
		Descriptions: descriptions,
	}
}
