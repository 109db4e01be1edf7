package transport

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/indicator-service/internal/domain"
)

// Floats is a numeric array decoded from a request body. A null element is
// rejected instead of silently becoming 0.
type Floats []float64

func (f *Floats) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = nil
		return nil
	}
	var elems []*float64
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	return f.fill(elems)
}

func (f *Floats) DecodeMsgpack(dec *msgpack.Decoder) error {
	var elems []*float64
	if err := dec.Decode(&elems); err != nil {
		return err
	}
	return f.fill(elems)
}

func (f *Floats) fill(elems []*float64) error {
	if elems == nil {
		*f = nil
		return nil
	}
	out := make(Floats, len(elems))
	for i, v := range elems {
		if v == nil {
			return &domain.InvalidInputError{Reason: fmt.Sprintf("array element %d is null; values must be numbers", i)}
		}
		out[i] = *v
	}
	*f = out
	return nil
}
