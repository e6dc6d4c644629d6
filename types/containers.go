// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"fmt"

	"github.com/ava-labs/movesdk/codec"
)

// Vector is a Move vector<T>.
type Vector[T codec.Serializable] struct {
	Values []T
}

func NewVector[T codec.Serializable](values ...T) Vector[T] {
	return Vector[T]{Values: values}
}

// Items returns the values without their static type.
func (v Vector[T]) Items() []any {
	items := make([]any, len(v.Values))
	for i, value := range v.Values {
		items[i] = value
	}
	return items
}

func (v Vector[T]) Serialize(e codec.Encoder) {
	codec.SerializeSequence(e, v.Values)
}

func (v Vector[T]) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, v) }

func DeserializeVector[T codec.Serializable](d codec.Decoder, f func(codec.Decoder) T) Vector[T] {
	return Vector[T]{Values: codec.DeserializeSequence(d, f)}
}

// Option is a Move 0x1::option::Option<T>. On the wire it is a vector holding
// zero or one value.
type Option[T codec.Serializable] struct {
	value T
	some  bool
}

func Some[T codec.Serializable](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

func None[T codec.Serializable]() Option[T] {
	return Option[T]{}
}

// Get returns the held value and whether there is one.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

func (o Option[T]) IsSome() bool { return o.some }

// Item is [Option.Get] without the static type.
func (o Option[T]) Item() (any, bool) {
	if !o.some {
		return nil, false
	}
	return o.value, true
}

func (o Option[T]) Serialize(e codec.Encoder) {
	e.EnterContainer()
	defer e.ExitContainer()

	if !o.some {
		e.SerializeLength(0)
		return
	}
	e.SerializeLength(1)
	o.value.Serialize(e)
}

func (o Option[T]) SerializeForEntryFunction(e codec.Encoder) { serializeEntryArgument(e, o) }

func DeserializeOption[T codec.Serializable](d codec.Decoder, f func(codec.Decoder) T) Option[T] {
	d.EnterContainer()
	defer d.ExitContainer()

	switch n := d.DeserializeLength(); {
	case d.Err() != nil:
		return None[T]()
	case n == 0:
		return None[T]()
	case n == 1:
		v := f(d)
		if d.Err() != nil {
			return None[T]()
		}
		return Some(v)
	default:
		d.AddErr(fmt.Errorf("%w: got %d", ErrInvalidOptionLength, n))
		return None[T]()
	}
}
