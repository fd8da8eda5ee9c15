package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ImportKey is the deterministic fingerprint of an external transaction row.
// Two rows that normalize to the same key describe the same source record,
// so at most one of them is ever ingested.
func ImportKey(source, counterpart, note string, date time.Time, signedAmount decimal.Decimal) string {
	h := sha256.New()
	h.Write([]byte(NormalizeImportField(source)))
	h.Write([]byte{0})
	h.Write([]byte(date.UTC().Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(signedAmount.String()))
	h.Write([]byte{0})
	h.Write([]byte(NormalizeImportField(counterpart)))
	h.Write([]byte{0})
	h.Write([]byte(NormalizeImportField(note)))

	return hex.EncodeToString(h.Sum(nil))
}

// NormalizeImportField lower-cases a source field and collapses runs of
// whitespace to single spaces so cosmetic differences between exports of the
// same record do not change the fingerprint.
func NormalizeImportField(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
