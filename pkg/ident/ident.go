package ident

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// New builds a record id from a type prefix, the current millisecond
// timestamp and a random suffix. Uniqueness is probabilistic, matching the
// ids the web clients generate.
func New(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
