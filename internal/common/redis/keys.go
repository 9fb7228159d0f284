package redis

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

const completionKeyPrefix = "completion:"

// CompletionKey returns the cache key of a completion for model and prompt.
// Format: completion:{xxhash64 as 16 hex digits}
func CompletionKey(model, prompt string) string {
	d := xxhash.New()
	_, _ = d.WriteString(model)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(prompt)
	return fmt.Sprintf("%s%016x", completionKeyPrefix, d.Sum64())
}
