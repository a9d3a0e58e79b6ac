package launchpadApi

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
)

var errAnonymousLog = errors.New("log has no topics")

// DecodeLog matches a receipt log against the launchpad events.
func (a *LaunchpadApi) DecodeLog(lg types.Log) (string, map[string]any, error) {
	if len(lg.Topics) == 0 {
		return "", nil, errAnonymousLog
	}

	event, err := a.abi.EventByID(lg.Topics[0])
	if err != nil {
		return "", nil, err
	}

	fields := make(map[string]any, len(event.Inputs))

	if len(event.Inputs.NonIndexed()) > 0 {
		if err := a.abi.UnpackIntoMap(fields, event.Name, lg.Data); err != nil {
			return "", nil, fmt.Errorf("unpack %s data: %w", event.Name, err)
		}
	}

	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, lg.Topics[1:]); err != nil {
		return "", nil, fmt.Errorf("parse %s topics: %w", event.Name, err)
	}

	return event.Name, fields, nil
}
