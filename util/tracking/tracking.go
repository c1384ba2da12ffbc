package tracking

import (
	"crypto/rand"
	"fmt"
	"time"
)

// New returns a parcel tracking identifier of the form
// PRCL-<UTC yyyymmdd>-<6 uppercase hex chars>.
//
// The suffix is drawn from crypto/rand, so collisions are unlikely but not
// impossible; the payments table's unique constraints stay authoritative.
func New() string {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return fmt.Sprintf("PRCL-%s-%02X%02X%02X", time.Now().UTC().Format("20060102"), b[0], b[1], b[2])
}
