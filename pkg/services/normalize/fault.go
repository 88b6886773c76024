package normalize

import (
	"strings"

	"github.com/de-tools/tally-gateway/pkg/models/domain"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
)

var faultPaths = []Accessor{
	At("envelope", "body", "data", "lineerror"),
	At("envelope", "body", "lineerror"),
	At("envelope", "lineerror"),
	At("response", "lineerror"),
}

// RemoteFault reports a business error embedded in a reply Tally served with HTTP
// 200: a LINEERROR element, or the bare RESPONSE Tally sends for requests it does not
// understand. It returns nil for ordinary data replies.
func RemoteFault(root envelope.Node) error {
	if msg := First(root, faultPaths...).String(); msg != "" {
		return &domain.RemoteError{Message: msg}
	}

	if msg := root.Get("response").String(); strings.Contains(strings.ToLower(msg), "unknown request") {
		return &domain.RemoteError{Message: msg}
	}
	return nil
}
