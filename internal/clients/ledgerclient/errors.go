package ledgerclient

import (
	"strings"
)

// alreadyProcessedPatterns are the known transport error texts the ledger
// emits when a transaction it receives was already applied. Matching them is
// inherently best-effort: it stands in for a structured fault code the remote
// interface does not provide, so a hit means "may have succeeded", never
// "succeeded".
var alreadyProcessedPatterns = []string{
	"already been processed",
	"already processed",
	"alreadyprocessed",
}

// IsAlreadyProcessedError reports whether err belongs to the send-level fault
// class where the operation may have actually landed.
func IsAlreadyProcessedError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range alreadyProcessedPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
