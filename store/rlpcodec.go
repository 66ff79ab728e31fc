package store

import "github.com/ethereum/go-ethereum/rlp"

// RLPCodec is a Codec[V] backed by github.com/ethereum/go-ethereum/rlp,
// the canonical binary codec used wherever this module needs a symmetric
// encode/decode boundary (candidate-block keys, store values). V must be a
// concrete, non-pointer type whose fields are all RLP-encodable.
type RLPCodec[V any] struct{}

func (RLPCodec[V]) Encode(v V) ([]byte, error) {
	return rlp.EncodeToBytes(v)
}

func (RLPCodec[V]) Decode(b []byte) (V, error) {
	var v V
	err := rlp.DecodeBytes(b, &v)
	return v, err
}
