package util

import (
	"github.com/rs/xid"
)

// GenRunID generates a comparison run ID string.
// IDs are globally unique and sortable by creation time.
func GenRunID() string {
	id := xid.New()
	return id.String()
}
