package keyConverter

import (
	"github.com/gagliardetto/solana-go"
)

// Base58 renders a 32-byte Solana account key (payer, pool id, neon address) the way Solana tooling shows it.
func Base58(key [32]byte) string {
	return solana.PublicKeyFromBytes(key[:]).String()
}
