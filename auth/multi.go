// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"
	"math/bits"

	"github.com/ava-labs/movesdk/codec"
	"github.com/ava-labs/movesdk/crypto/ed25519"
)

var (
	_ PublicKey = (*MultiEd25519PublicKey)(nil)
	_ Signature = (*MultiEd25519Signature)(nil)
	_ PublicKey = (*MultiKey)(nil)
	_ Signature = (*MultiKeySignature)(nil)
)

// Bitmap marks which keys of a multi-key set signed. Bit i is the i-th most
// significant bit, counting from the first byte.
type Bitmap [BitmapLen]byte

// NewBitmap sets the bits of indices, which must be below 32.
func NewBitmap(indices ...int) (Bitmap, error) {
	var b Bitmap
	for _, i := range indices {
		if i < 0 || i >= BitmapLen*8 {
			return b, fmt.Errorf("%w: index %d", ErrInvalidBitmap, i)
		}
		if b.IsSet(i) {
			return b, fmt.Errorf("%w: duplicate index %d", ErrInvalidBitmap, i)
		}
		b[i/8] |= 0x80 >> (i % 8)
	}
	return b, nil
}

func (b Bitmap) IsSet(i int) bool {
	return b[i/8]&(0x80>>(i%8)) != 0
}

// Indices returns the set bits in ascending order.
func (b Bitmap) Indices() []int {
	indices := make([]int, 0, b.Count())
	for i := 0; i < BitmapLen*8; i++ {
		if b.IsSet(i) {
			indices = append(indices, i)
		}
	}
	return indices
}

func (b Bitmap) Count() int {
	n := 0
	for _, v := range b {
		n += bits.OnesCount8(v)
	}
	return n
}

// MultiEd25519PublicKey is a k-of-n set of ed25519 keys. On the wire it is a
// single byte string holding every key followed by the threshold.
type MultiEd25519PublicKey struct {
	PublicKeys []ed25519.PublicKey
	Threshold  uint8
}

func NewMultiEd25519PublicKey(keys []ed25519.PublicKey, threshold uint8) (*MultiEd25519PublicKey, error) {
	if len(keys) > MaxMultiEd25519Keys {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyKeys, len(keys), MaxMultiEd25519Keys)
	}
	if threshold == 0 || int(threshold) > len(keys) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidThreshold, threshold, len(keys))
	}
	return &MultiEd25519PublicKey{PublicKeys: keys, Threshold: threshold}, nil
}

func (k *MultiEd25519PublicKey) Bytes() []byte {
	b := make([]byte, 0, len(k.PublicKeys)*ed25519.PublicKeyLen+1)
	for _, pk := range k.PublicKeys {
		b = append(b, pk[:]...)
	}
	return append(b, k.Threshold)
}

func (k *MultiEd25519PublicKey) String() string { return codec.ToHex(k.Bytes()) }

func (k *MultiEd25519PublicKey) Serialize(e codec.Encoder) { e.SerializeBytes(k.Bytes()) }

func (k *MultiEd25519PublicKey) AuthenticationKey() AuthenticationKey {
	return AuthenticationKeyFromSchemeAndBytes(MultiEd25519Scheme, k.Bytes())
}

// Verify checks that at least Threshold keys signed msg, and that every
// signature in sig matches the key its bitmap position names.
func (k *MultiEd25519PublicKey) Verify(msg []byte, sig Signature) bool {
	s, ok := sig.(*MultiEd25519Signature)
	if !ok {
		return false
	}
	indices := s.Bitmap.Indices()
	if len(indices) != len(s.Signatures) || len(indices) < int(k.Threshold) || len(indices) == 0 {
		return false
	}
	batch := ed25519.NewBatch(len(indices))
	for i, index := range indices {
		if index >= len(k.PublicKeys) {
			return false
		}
		batch.Add(msg, k.PublicKeys[index], s.Signatures[i])
	}
	return batch.Verify()
}

func DeserializeMultiEd25519PublicKey(d codec.Decoder) *MultiEd25519PublicKey {
	b := d.DeserializeBytes()
	if d.Err() != nil {
		return nil
	}
	n := (len(b) - 1) / ed25519.PublicKeyLen
	if len(b) == 0 || (len(b)-1)%ed25519.PublicKeyLen != 0 {
		d.AddErr(fmt.Errorf("%w: %d bytes", ErrInvalidMultiEd25519PublicKey, len(b)))
		return nil
	}
	keys := make([]ed25519.PublicKey, n)
	for i := range keys {
		copy(keys[i][:], b[i*ed25519.PublicKeyLen:])
	}
	k, err := NewMultiEd25519PublicKey(keys, b[len(b)-1])
	if err != nil {
		d.AddErr(err)
		return nil
	}
	return k
}

// MultiEd25519Signature holds the signatures of the signing subset, ordered
// by key index, followed by their bitmap.
type MultiEd25519Signature struct {
	Signatures []ed25519.Signature
	Bitmap     Bitmap
}

func (s *MultiEd25519Signature) Bytes() []byte {
	b := make([]byte, 0, len(s.Signatures)*ed25519.SignatureLen+BitmapLen)
	for _, sig := range s.Signatures {
		b = append(b, sig[:]...)
	}
	return append(b, s.Bitmap[:]...)
}

func (s *MultiEd25519Signature) Serialize(e codec.Encoder) { e.SerializeBytes(s.Bytes()) }

func DeserializeMultiEd25519Signature(d codec.Decoder) *MultiEd25519Signature {
	b := d.DeserializeBytes()
	if d.Err() != nil {
		return nil
	}
	if len(b) < BitmapLen || (len(b)-BitmapLen)%ed25519.SignatureLen != 0 {
		d.AddErr(fmt.Errorf("%w: %d bytes", ErrInvalidMultiEd25519Signature, len(b)))
		return nil
	}
	s := &MultiEd25519Signature{
		Signatures: make([]ed25519.Signature, (len(b)-BitmapLen)/ed25519.SignatureLen),
	}
	for i := range s.Signatures {
		copy(s.Signatures[i][:], b[i*ed25519.SignatureLen:])
	}
	copy(s.Bitmap[:], b[len(b)-BitmapLen:])
	return s
}

// MultiKey is a k-of-n set of keys of any single-signer scheme.
type MultiKey struct {
	PublicKeys         []*AnyPublicKey
	SignaturesRequired uint8
}

func NewMultiKey(keys []PublicKey, signaturesRequired uint8) (*MultiKey, error) {
	if len(keys) > BitmapLen*8 {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyKeys, len(keys), BitmapLen*8)
	}
	if signaturesRequired == 0 || int(signaturesRequired) > len(keys) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidThreshold, signaturesRequired, len(keys))
	}
	m := &MultiKey{
		PublicKeys:         make([]*AnyPublicKey, len(keys)),
		SignaturesRequired: signaturesRequired,
	}
	for i, k := range keys {
		anyKey, err := NewAnyPublicKey(k)
		if err != nil {
			return nil, err
		}
		m.PublicKeys[i] = anyKey
	}
	return m, nil
}

// Bytes returns the BCS encoding of the key set.
func (k *MultiKey) Bytes() []byte {
	b, _ := codec.Marshal(k)
	return b
}

func (k *MultiKey) String() string { return codec.ToHex(k.Bytes()) }

func (k *MultiKey) Serialize(e codec.Encoder) {
	codec.SerializeSequence(e, k.PublicKeys)
	e.SerializeU8(k.SignaturesRequired)
}

func (k *MultiKey) AuthenticationKey() AuthenticationKey {
	return AuthenticationKeyFromSchemeAndBytes(MultiKeyScheme, k.Bytes())
}

// Verify checks that at least SignaturesRequired keys signed msg.
func (k *MultiKey) Verify(msg []byte, sig Signature) bool {
	s, ok := sig.(*MultiKeySignature)
	if !ok {
		return false
	}
	indices := s.Bitmap.Indices()
	if len(indices) != len(s.Signatures) || len(indices) < int(k.SignaturesRequired) || len(indices) == 0 {
		return false
	}
	for i, index := range indices {
		if index >= len(k.PublicKeys) || !k.PublicKeys[index].Verify(msg, s.Signatures[i]) {
			return false
		}
	}
	return true
}

func DeserializeMultiKey(d codec.Decoder) *MultiKey {
	k := &MultiKey{
		PublicKeys:         codec.DeserializeSequence(d, DeserializeAnyPublicKey),
		SignaturesRequired: d.DeserializeU8(),
	}
	if d.Err() != nil {
		return nil
	}
	return k
}

// MultiKeySignature holds the signatures of the signing subset, ordered by
// key index. The bitmap is written as a length-prefixed byte string.
type MultiKeySignature struct {
	Signatures []*AnySignature
	Bitmap     Bitmap
}

func (s *MultiKeySignature) Bytes() []byte {
	b, _ := codec.Marshal(s)
	return b
}

func (s *MultiKeySignature) Serialize(e codec.Encoder) {
	codec.SerializeSequence(e, s.Signatures)
	e.SerializeBytes(s.Bitmap[:])
}

func DeserializeMultiKeySignature(d codec.Decoder) *MultiKeySignature {
	s := &MultiKeySignature{
		Signatures: codec.DeserializeSequence(d, DeserializeAnySignature),
	}
	bitmap := d.DeserializeBytes()
	if d.Err() != nil {
		return nil
	}
	if len(bitmap) != BitmapLen {
		d.AddErr(fmt.Errorf("%w: %d bytes", ErrInvalidBitmap, len(bitmap)))
		return nil
	}
	copy(s.Bitmap[:], bitmap)
	return s
}
