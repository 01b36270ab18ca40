// Package rpc holds the scheduler.v1 messages, their protobuf wire encoding
// and the gRPC service descriptors.
package rpc

import (
	"errors"
	"time"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Message is implemented by every request and response type.
type Message interface {
	AppendWire(b []byte) []byte
	UnmarshalWire(b []byte) error
}

var (
	errWireType = errors.New("rpc: unexpected wire type")
	errUTF8     = errors.New("rpc: string field is not valid UTF-8")
)

// Marshal encodes m in the protobuf binary format.
func Marshal(m Message) []byte {
	return m.AppendWire(nil)
}

// walk calls fn for every field in b. fn returns how many bytes of the value
// it consumed; 0 skips the field.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}
	return nil
}

// encoders; proto3 semantics, zero values are omitted unless optional

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendOptString(b []byte, num protowire.Number, v *string) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *v)
}

func appendInt(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendOptBool(b []byte, num protowire.Number, v *bool) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(*v))
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	return appendOptTime(b, num, &t)
}

func appendOptTime(b []byte, num protowire.Number, t *time.Time) []byte {
	if t == nil {
		return b
	}
	// Timestamp has no nested messages, Marshal cannot fail
	raw, _ := proto.Marshal(timestamppb.New(*t))
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, raw)
}

// decoders

func readBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, errWireType
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func readString(typ protowire.Type, b []byte, dst *string) (int, error) {
	v, n, err := readBytes(typ, b)
	if err != nil {
		return 0, err
	}
	if !utf8.Valid(v) {
		return 0, errUTF8
	}
	*dst = string(v)
	return n, nil
}

func readOptString(typ protowire.Type, b []byte, dst **string) (int, error) {
	var s string
	n, err := readString(typ, b, &s)
	if err != nil {
		return 0, err
	}
	*dst = &s
	return n, nil
}

func readInt(typ protowire.Type, b []byte, dst *int64) (int, error) {
	if typ != protowire.VarintType {
		return 0, errWireType
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*dst = int64(v)
	return n, nil
}

func readInt32(typ protowire.Type, b []byte, dst *int32) (int, error) {
	var v int64
	n, err := readInt(typ, b, &v)
	*dst = int32(v)
	return n, err
}

func readBool(typ protowire.Type, b []byte, dst *bool) (int, error) {
	var v int64
	n, err := readInt(typ, b, &v)
	*dst = v != 0
	return n, err
}

func readOptBool(typ protowire.Type, b []byte, dst **bool) (int, error) {
	var v bool
	n, err := readBool(typ, b, &v)
	if err != nil {
		return 0, err
	}
	*dst = &v
	return n, nil
}

func readMessage(typ protowire.Type, b []byte, m Message) (int, error) {
	v, n, err := readBytes(typ, b)
	if err != nil {
		return 0, err
	}
	return n, m.UnmarshalWire(v)
}

func readTime(typ protowire.Type, b []byte, dst *time.Time) (int, error) {
	v, n, err := readBytes(typ, b)
	if err != nil {
		return 0, err
	}
	ts := &timestamppb.Timestamp{}
	if err := proto.Unmarshal(v, ts); err != nil {
		return 0, err
	}
	if err := ts.CheckValid(); err != nil {
		return 0, err
	}
	*dst = ts.AsTime()
	return n, nil
}

func readOptTime(typ protowire.Type, b []byte, dst **time.Time) (int, error) {
	var t time.Time
	n, err := readTime(typ, b, &t)
	if err != nil {
		return 0, err
	}
	*dst = &t
	return n, nil
}
