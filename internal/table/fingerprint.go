package table

import (
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a stable hex digest of the column names and every cell.
// Two tables with the same fingerprint hold the same data in the same order.
func (t *Table) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(strconv.Itoa(len(t.columns))))
	for _, c := range t.columns {
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(len(c))))
		h.Write([]byte{':'})
		h.Write([]byte(c))
	}
	for _, row := range t.rows {
		h.Write([]byte{'\n'})
		h.Write([]byte(rowKey(row)))
	}
	return hex.EncodeToString(h.Sum(nil))
}
