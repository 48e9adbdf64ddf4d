package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewFolio generates a request folio: a millisecond timestamp plus a short
// random suffix. The folio is fixed for the lifetime of one draft and only
// rotates after a server-confirmed success.
func NewFolio() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("MAT-%d-%s", time.Now().UnixMilli(), suffix)
}
