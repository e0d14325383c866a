package datefield

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteEventsJSONL writes events as JSON lines.
func WriteEventsJSONL(w io.Writer, events []Event) error {
	enc := json.NewEncoder(w)
	for i := range events {
		if err := enc.Encode(&events[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadEventsJSONL reads events from a JSON lines stream.
func ReadEventsJSONL(r io.Reader, fn func(Event) error) error {
	dec := json.NewDecoder(bufio.NewReader(r))
	for {
		var e Event
		if err := dec.Decode(&e); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := checkEvent(e); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
}

// ReadEventsYAML reads a YAML script: a sequence of events, e.g.
//
//	- {type: text, text: "07/1"}
//	- {type: open}
//	- {type: month, value: 3}
func ReadEventsYAML(r io.Reader, fn func(Event) error) error {
	var events []Event
	if err := yaml.NewDecoder(r).Decode(&events); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	for _, e := range events {
		if err := checkEvent(e); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteEventsYAML writes events as a YAML sequence.
func WriteEventsYAML(w io.Writer, events []Event) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(events)
}

// CollectEvents drains a reader function into a slice.
func CollectEvents(read func(io.Reader, func(Event) error) error, r io.Reader) ([]Event, error) {
	var out []Event
	err := read(r, func(e Event) error {
		out = append(out, e)
		return nil
	})
	return out, err
}

func checkEvent(e Event) error {
	switch e.Type {
	case EventText, EventOpen, EventMonth, EventDay, EventYear, EventConfirm, EventCancel:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
}
