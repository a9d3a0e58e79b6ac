package explorerApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/internal/externalApi"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model/explorerModel"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"
)

type ExplorerApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *ExplorerApi {
	client := resty.New().
		SetDebug(cfg.Explorer.Debug).
		SetTimeout(cfg.Explorer.Timeout).
		SetBaseURL(cfg.Explorer.ApiURL)
	return &ExplorerApi{client: client}
}

func (a *ExplorerApi) GetTransaction(ctx context.Context, hash common.Hash) (explorerModel.Transaction, error) {
	rqId := utils.GetRequestIDFromCtx(ctx)
	url := "/api/v2/transactions/" + hash.Hex()

	slog.Debug("start ExplorerApi.GetTransaction request", slog.String("rqID", rqId), slog.String("hash", hash.Hex()))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)

	if err != nil {
		slog.Error("error while dialing ExplorerApi", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return explorerModel.Transaction{}, err
	}

	if resp.StatusCode() == http.StatusNotFound {
		return explorerModel.Transaction{}, externalApi.ErrNotFound
	}

	if resp.IsError() {
		slog.Error("ExplorerApi returned error status", slog.Int("status", resp.StatusCode()), slog.String("rqID", rqId))
		return explorerModel.Transaction{}, fmt.Errorf("explorer responded with status %d", resp.StatusCode())
	}

	raw := explorerModel.RawTransaction{}
	err = json.Unmarshal(resp.Body(), &raw)
	if err != nil {
		slog.Error("can't unmarshall response into explorerModel.RawTransaction", slog.String("err", err.Error()), slog.String("rqID", rqId))
		return explorerModel.Transaction{}, err
	}

	slog.Debug("ExplorerApi.GetTransaction request complete", slog.String("rqID", rqId))

	return parseRawTransaction(raw), nil
}

func parseRawTransaction(raw explorerModel.RawTransaction) explorerModel.Transaction {
	tx := explorerModel.Transaction{Hash: raw.Hash, Status: raw.Status, Result: raw.Result}

	if len(raw.RevertReason) == 0 || string(raw.RevertReason) == "null" {
		return tx
	}

	var plain string
	if err := json.Unmarshal(raw.RevertReason, &plain); err == nil {
		if strings.HasPrefix(plain, "0x") {
			tx.RevertData = plain
		} else {
			tx.RevertMessage = plain
		}
		return tx
	}

	var obj struct {
		Raw        string `json:"raw"`
		MethodCall string `json:"method_call"`
	}
	if err := json.Unmarshal(raw.RevertReason, &obj); err == nil {
		tx.RevertData = obj.Raw
		tx.RevertMessage = obj.MethodCall
	}

	return tx
}
