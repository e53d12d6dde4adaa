// Package chat implements the room connection registry and the per-connection
// broadcast/persistence pipeline: history replay, inbound line handling,
// store-then-fan-out delivery.
package chat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Utkarsh4517/fast-chat/internal/models"
)

// ErrMalformedLine is returned by ParseLine when an inbound payload does not
// follow the "<sender>: <content>" wire format.
var ErrMalformedLine = errors.New("malformed chat line")

const lineSeparator = ": "

// ParseLine splits a raw chat line into sender name and content. The split is
// on the first ": " only; the content is kept verbatim and may itself contain
// ": ".
func ParseLine(raw string) (sender, content string, err error) {
	sender, content, found := strings.Cut(raw, lineSeparator)
	if !found || sender == "" {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedLine, raw)
	}
	return sender, content, nil
}

// FormatLine renders the wire representation of one chat line.
func FormatLine(sender, content string) string {
	return sender + lineSeparator + content
}

// MessageLine renders a stored message in the same format used for live
// traffic, so replayed history is indistinguishable from a broadcast.
func MessageLine(m models.Message) string {
	return FormatLine(m.SenderName, m.Content)
}
