package mtg

import (
	"bytes"
	"encoding"
	"fmt"

	"github.com/fox-one/msgpack"
	"github.com/gofrs/uuid"
)

// RawMessage bytes kept as is
type RawMessage []byte

// Encode pack values one after another. uuids and binary marshalers are
// written as byte strings.
func Encode(values ...interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	for idx, v := range values {
		var err error
		switch v := v.(type) {
		case RawMessage:
			err = enc.EncodeBytes(v)
		case uuid.UUID:
			err = enc.EncodeBytes(v.Bytes())
		case encoding.BinaryMarshaler:
			var b []byte
			if b, err = v.MarshalBinary(); err == nil {
				err = enc.EncodeBytes(b)
			}
		default:
			err = enc.Encode(v)
		}

		if err != nil {
			return nil, fmt.Errorf("encode value %d: %w", idx, err)
		}
	}

	return buf.Bytes(), nil
}

// Scan read values in the order they were encoded and return the bytes
// left over
func Scan(data []byte, dest ...interface{}) ([]byte, error) {
	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)

	for idx, v := range dest {
		var err error
		switch v := v.(type) {
		case *RawMessage:
			var b []byte
			if b, err = dec.DecodeBytes(); err == nil {
				*v = b
			}
		case *uuid.UUID:
			var b []byte
			if b, err = dec.DecodeBytes(); err == nil {
				*v, err = uuid.FromBytes(b)
			}
		case encoding.BinaryUnmarshaler:
			var b []byte
			if b, err = dec.DecodeBytes(); err == nil {
				err = v.UnmarshalBinary(b)
			}
		default:
			err = dec.Decode(v)
		}

		if err != nil {
			return nil, fmt.Errorf("scan value %d: %w", idx, err)
		}
	}

	return data[len(data)-r.Len():], nil
}
