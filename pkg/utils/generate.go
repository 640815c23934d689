package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== REFERENCES ====================

// GenerateRef builds a reference like PREFIX_<unix-ms>_<8 hex chars>.
// Uniqueness is still enforced at the store, this only makes collisions
// negligible.
func GenerateRef(prefix string) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	suffix := strings.ToUpper(hex.EncodeToString(buf))
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}

// GenerateTransactionRef creates the ledger-facing transaction reference.
func GenerateTransactionRef() string {
	return GenerateRef("TXN")
}
