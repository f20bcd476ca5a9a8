package transport

import (
	"strconv"
)

// IDResponse is returned after a row is created
type IDResponse struct {
	ID int64 `json:"id"`
}

// SuccessResponse acknowledges an operation with no payload
type SuccessResponse struct {
	Success bool `json:"success"`
}

// parseID reports ok=false for identifiers that cannot name a stored row
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
