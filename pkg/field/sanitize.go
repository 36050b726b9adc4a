package field

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicyOnce sync.Once
	richPolicy     *bluemonday.Policy
)

// SanitizeRich strips unsafe markup from long-text values before they reach a
// renderer. Hosts paste from word processors; the policy keeps basic inline
// formatting and drops everything else.
func SanitizeRich(value string) string {
	richPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "i", "em", "br", "p")
		richPolicy = policy
	})
	return richPolicy.Sanitize(value)
}
