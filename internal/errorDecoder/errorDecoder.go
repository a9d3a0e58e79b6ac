package errorDecoder

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

// known launchpad custom error selectors
var selectors = map[string]string{
	"0xe450d38c": "InvalidTokenSale()",
	"0x9ebda18b": "InvalidTokenSale()",
	"0x340dabef": "InvalidInputAmount()",
	"0xa0fa7c8f": "InvalidTokenSaleFee()",
	"0x3ee5aeb5": "ReentrancyGuardReentrantCall()",
}

type Revert struct {
	// Selector is the 0x-prefixed first four bytes, empty when the payload is shorter.
	Selector string
	Name     string
	Raw      []byte
}

func (r Revert) Known() bool {
	return r.Name != ""
}

func (r Revert) String() string {
	switch {
	case r.Known():
		return r.Name
	case r.Selector != "":
		return "unknown error " + r.Selector
	default:
		return ""
	}
}

func Decode(data []byte) Revert {
	r := Revert{Raw: data}
	if len(data) < 4 {
		return r
	}
	r.Selector = "0x" + hex.EncodeToString(data[:4])
	r.Name = selectors[r.Selector]
	return r
}

func DecodeHex(s string) Revert {
	s = strings.TrimSpace(s)
	if s == "" {
		return Revert{}
	}
	return Decode(common.FromHex(s))
}

// FromError pulls revert data out of a JSON-RPC error, if the node attached any.
func FromError(err error) (Revert, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return Revert{}, false
	}

	switch data := dataErr.ErrorData().(type) {
	case string:
		return DecodeHex(data), true
	case []byte:
		return Decode(data), true
	default:
		return Revert{}, false
	}
}
