package explorerModel

import "encoding/json"

// RawTransaction is the subset of a Blockscout v2 transaction we read.
type RawTransaction struct {
	Hash   string `json:"hash"`
	Status string `json:"status"`
	Result string `json:"result"`
	// either a plain string or {"raw": "0x..."} depending on the explorer version
	RevertReason json.RawMessage `json:"revert_reason"`
}

type Transaction struct {
	Hash   string
	Status string
	Result string
	// RevertData is the hex encoded revert payload when the explorer has it.
	RevertData string
	// RevertMessage is a human readable reason when the explorer decoded one.
	RevertMessage string
}
