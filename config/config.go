package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	Telegram          Telegram
	Chain             Chain
	Explorer          Explorer
	Redis             Redis
	Cache             Cache
	Jobs              Jobs
	SessionExpiration time.Duration `env:"SESSION_EXPIRATION" envDefault:"30m"`
}

type Telegram struct {
	Token      string        `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	UpdTimeout time.Duration `env:"TELEGRAM_UPD_TIMEOUT" envDefault:"10s"`
}

type Chain struct {
	RPCURL          string `env:"NEON_RPC" envDefault:"https://devnet.neonevm.org"`
	ChainID         int64  `env:"CHAIN_ID" envDefault:"245022926"`
	ContractAddress string `env:"CONTRACT_ADDRESS"`
	PrivateKey      string `env:"PRIVATE_KEY_OWNER"`
	// path to a compiled artifact ({"abi": [...]}) or a bare ABI array; empty means the built-in ABI
	ABIPath string `env:"LAUNCHPAD_ABI_PATH" envDefault:""`
}

type Explorer struct {
	URL     string        `env:"EXPLORER_URL" envDefault:"https://neon-devnet.blockscout.com"`
	ApiURL  string        `env:"EXPLORER_API_URL" envDefault:""`
	Debug   bool          `env:"EXPLORER_API_DEBUG" envDefault:"false"`
	Timeout time.Duration `env:"EXPLORER_API_TIMEOUT" envDefault:"10s"`
}

type Redis struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Cache struct {
	ContractExpiration time.Duration `env:"CACHE_CONTRACT_EXPIRATION" envDefault:"1h"`
}

type Jobs struct {
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_JOB_INTERVAL" envDefault:"5m"`
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
