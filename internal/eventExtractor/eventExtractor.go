package eventExtractor

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// LogDecoder matches a raw log against a known event schema.
// It returns an error for logs that match none.
type LogDecoder interface {
	DecodeLog(log types.Log) (name string, fields map[string]any, err error)
}

type Event struct {
	Name   string
	Index  uint
	Fields map[string]any
}

func (e Event) Address(field string) (common.Address, bool) {
	v, ok := e.Fields[field].(common.Address)
	return v, ok
}

func (e Event) BigInt(field string) (*big.Int, bool) {
	v, ok := e.Fields[field].(*big.Int)
	return v, ok
}

func (e Event) Bytes32(field string) ([32]byte, bool) {
	v, ok := e.Fields[field].([32]byte)
	return v, ok
}

type Extractor struct {
	decoder LogDecoder
}

func New(decoder LogDecoder) *Extractor {
	return &Extractor{decoder: decoder}
}

// Find returns the first event with the given name. Undecodable logs are skipped.
func (x *Extractor) Find(receipt *types.Receipt, name string) (Event, bool) {
	if receipt == nil {
		return Event{}, false
	}
	for _, lg := range receipt.Logs {
		if ev, ok := x.decode(lg); ok && ev.Name == name {
			return ev, true
		}
	}
	return Event{}, false
}

func (x *Extractor) FindAll(receipt *types.Receipt, name string) []Event {
	if receipt == nil {
		return nil
	}
	var events []Event
	for _, lg := range receipt.Logs {
		if ev, ok := x.decode(lg); ok && ev.Name == name {
			events = append(events, ev)
		}
	}
	return events
}

func (x *Extractor) decode(lg *types.Log) (Event, bool) {
	if lg == nil {
		return Event{}, false
	}
	name, fields, err := x.decoder.DecodeLog(*lg)
	if err != nil {
		return Event{}, false
	}
	return Event{Name: name, Index: lg.Index, Fields: fields}, true
}
