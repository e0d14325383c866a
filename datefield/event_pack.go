package datefield

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteEventsMsgpack writes events in MessagePack format as an array stream.
func WriteEventsMsgpack(w io.Writer, events []Event) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.EncodeArrayLen(len(events)); err != nil {
		return err
	}
	for i := range events {
		if err := enc.Encode(&events[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadEventsMsgpack reads events encoded as an array.
func ReadEventsMsgpack(r io.Reader, fn func(Event) error) error {
	dec := msgpack.NewDecoder(r)
	n, err := dec.DecodeArrayLen()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	for i := 0; i < n; i++ {
		var e Event
		if err := dec.Decode(&e); err != nil {
			return err
		}
		if err := checkEvent(e); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}
