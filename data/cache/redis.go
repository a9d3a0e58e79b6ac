package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/KotFed0t/meme_launchpad_bot/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

func contractAddressesKey(contract common.Address) string {
	return "launchpad:addresses:" + contract.Hex()
}

func (r *RedisCache) SetContractAddresses(ctx context.Context, contract common.Address, addrs model.ContractAddresses) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("SetContractAddresses start", slog.String("rqID", rqID))

	addrsJson, err := json.Marshal(addrs)
	if err != nil {
		slog.Error("can't marshall contract addresses", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return errors.New("can't marshall contract addresses")
	}

	err = r.redis.Set(ctx, contractAddressesKey(contract), addrsJson, r.cfg.Cache.ContractExpiration).Err()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("SetContractAddresses completed", slog.String("rqID", rqID))

	return nil
}

func (r *RedisCache) GetContractAddresses(ctx context.Context, contract common.Address) (model.ContractAddresses, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("GetContractAddresses start", slog.String("rqID", rqID))

	key := contractAddressesKey(contract)
	res, err := r.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return model.ContractAddresses{}, ErrNotFound
	}
	if err != nil {
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("key", key))
		return model.ContractAddresses{}, err
	}

	addrs := model.ContractAddresses{}
	err = json.Unmarshal([]byte(res), &addrs)
	if err != nil {
		slog.Error(
			"can't unmarshall contract addresses",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("resultFromRedis", res),
		)
		return model.ContractAddresses{}, errors.New("can't unmarshall contract addresses")
	}

	slog.Debug("GetContractAddresses finished", slog.String("rqID", rqID))

	return addrs, nil
}
