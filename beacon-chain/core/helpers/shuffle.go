package helpers

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/sgryphon/cortex/config/params"
	types "github.com/sgryphon/cortex/consensus-types/primitives"
	"github.com/sgryphon/cortex/crypto/hash"
)

const (
	seedSize           = int8(32)
	roundSize          = int8(1)
	positionWindowSize = int8(4)
	pivotViewSize      = seedSize + roundSize
	totalSize          = seedSize + roundSize + positionWindowSize
)

var maxShuffleListSize uint64 = 1 << 40

// ShuffledIndex returns `p(index)` in a pseudorandom permutation `p` of `0...list_size - 1` with ``seed`` as entropy.
// We utilize 'swap or not' shuffling in this implementation; the hash input buffer holding the seed is allocated
// once and reused across rounds. This implementation is based on protolambda's eth2-shuffle,
// https://github.com/protolambda/eth2-shuffle
//
// Pseudocode definition:
//
//	def compute_shuffled_index(index: uint64, index_count: uint64, seed: Bytes32) -> uint64:
//	  """
//	  Return the shuffled index corresponding to ``seed`` (and ``index_count``).
//	  """
//	  assert index < index_count
//
//	  # Swap or not (https://link.springer.com/content/pdf/10.1007%2F978-3-642-32009-5_1.pdf)
//	  # See the 'generalized domain' algorithm on page 3
//	  for current_round in range(SHUFFLE_ROUND_COUNT):
//	      pivot = bytes_to_uint64(hash(seed + uint_to_bytes(uint8(current_round)))[0:8]) % index_count
//	      flip = (pivot + index_count - index) % index_count
//	      position = max(index, flip)
//	      source = hash(
//	          seed
//	          + uint_to_bytes(uint8(current_round))
//	          + uint_to_bytes(uint32(position // 256))
//	      )
//	      byte = uint8(source[(position % 256) // 8])
//	      bit = (byte >> (position % 8)) % 2
//	      index = flip if bit else index
//
//	  return index
func ShuffledIndex(cfg *params.BeaconChainConfig, index types.ValidatorIndex, indexCount uint64, seed [32]byte) (types.ValidatorIndex, error) {
	if indexCount == 0 {
		return 0, errors.New("index count must be positive")
	}
	if uint64(index) >= indexCount {
		return 0, errors.Errorf("input index %d out of bounds: %d", index, indexCount)
	}
	if indexCount > maxShuffleListSize {
		return 0, errors.Errorf("list size %d out of bounds", indexCount)
	}
	rounds := uint8(cfg.ShuffleRoundCount)
	hashfunc := hash.CustomSHA256Hasher()

	// Seed is always the first 32 bytes of the hash input, we just need to change the current round and the position window.
	buf := make([]byte, totalSize)
	copy(buf[:seedSize], seed[:])
	for round := uint8(0); round < rounds; round++ {
		buf[seedSize] = round
		h := hashfunc(buf[:pivotViewSize])
		pivot := binary.LittleEndian.Uint64(h[:8]) % indexCount
		flip := (pivot + indexCount - uint64(index)) % indexCount
		// Consider every pair only once by picking the highest pair index to retrieve randomness.
		position := uint64(index)
		if flip > position {
			position = flip
		}
		// Add position except its last byte to []buf for randomness,
		// it will be used later to select a bit from the resulting hash.
		binary.LittleEndian.PutUint32(buf[pivotViewSize:], uint32(position>>8))
		source := hashfunc(buf)
		// Effectively keep the first 5 bits of the byte value of the position,
		// and use it to retrieve one of the 32 (= 2^5) bytes of the hash.
		byteV := source[(position&0xff)>>3]
		// Using the last 3 bits of the position-byte, determine which bit to get from the hash-byte (note: 8 bits = 2^3)
		bitV := (byteV >> (position & 0x7)) & 0x1
		// index = flip if bit else index
		if bitV == 1 {
			index = types.ValidatorIndex(flip)
		}
	}
	return index, nil
}

// ShuffleList returns the full shuffling of indices: the element at position i
// is indices[ShuffledIndex(i)]. Rather than following every index through all
// rounds, each round swaps the whole list in place. Rounds run from last to
// first so the composition matches ShuffledIndex. Every pair (x, flip) is
// visited once from its lower position, and the source hash is reused while
// the higher position stays within the same 256 position window.
func ShuffleList(cfg *params.BeaconChainConfig, indices []types.ValidatorIndex, seed [32]byte) ([]types.ValidatorIndex, error) {
	n := uint64(len(indices))
	if n > maxShuffleListSize {
		return nil, errors.Errorf("list size %d out of bounds", n)
	}
	shuffled := make([]types.ValidatorIndex, n)
	copy(shuffled, indices)
	if n < 2 {
		return shuffled, nil
	}
	hashfunc := hash.CustomSHA256Hasher()
	buf := make([]byte, totalSize)
	copy(buf[:seedSize], seed[:])
	for round := int(cfg.ShuffleRoundCount) - 1; round >= 0; round-- {
		buf[seedSize] = uint8(round)
		h := hashfunc(buf[:pivotViewSize])
		pivot := binary.LittleEndian.Uint64(h[:8]) % n

		var source [32]byte
		window := ^uint64(0)
		for x := uint64(0); x < n; x++ {
			flip := (pivot + n - x) % n
			if flip <= x {
				continue
			}
			if flip>>8 != window {
				window = flip >> 8
				binary.LittleEndian.PutUint32(buf[pivotViewSize:], uint32(window))
				source = hashfunc(buf)
			}
			if (source[(flip&0xff)>>3]>>(flip&0x7))&0x1 == 1 {
				shuffled[x], shuffled[flip] = shuffled[flip], shuffled[x]
			}
		}
	}
	return shuffled, nil
}

// SplitOffset returns (listsize * index) / chunks
//
// Pseudocode definition:
//
//	def get_split_offset(list_size: int, chunks: int, index: int) -> int:
//	  """
//	  Returns a value such that for a list L, chunk count k and index i,
//	  split(L, k)[i] == L[get_split_offset(len(L), k, i): get_split_offset(len(L), k, i+1)]
//	  """
//	  return (list_size * index) // chunks
func SplitOffset(listSize, chunks, index uint64) uint64 {
	return (listSize * index) / chunks
}
