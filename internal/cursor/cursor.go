// Package cursor implements the opaque continuation token used for list
// pagination. A token is the base64 encoding of a small JSON document holding
// the (addedAt, contentId) position of the last row the caller has seen.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reelist/reelist/internal/domain"
)

// timeFormat always carries milliseconds so that equal positions serialize
// to identical strings.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Payload is the decoded form of a pagination token. Both fields must be
// present and non-empty for the payload to be valid.
type Payload struct {
	AddedAt   string `json:"addedAt"`
	ContentID string `json:"contentId"`

	addedAt time.Time
}

// New builds a payload from a row position.
func New(pos domain.ListPosition) Payload {
	return Payload{
		AddedAt:   pos.AddedAt.UTC().Format(timeFormat),
		ContentID: pos.ContentID,
		addedAt:   pos.AddedAt.UTC(),
	}
}

// Position returns the row position the payload points at. Only valid on
// payloads produced by New or Decode.
func (p Payload) Position() domain.ListPosition {
	return domain.ListPosition{AddedAt: p.addedAt, ContentID: p.ContentID}
}

// Encode serializes the payload into an opaque token. Encoding is
// deterministic and reversible; nothing beyond the two fields is embedded.
func Encode(p Payload) string {
	raw, _ := json.Marshal(p) // two string fields, cannot fail
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode parses an opaque token back into a payload. Any malformed input is
// rejected with domain.ErrInvalidCursor before it can reach the query layer:
// undecodable base64, JSON that is not a payload, missing or empty fields,
// and an addedAt that does not parse as a timestamp.
func Decode(token string) (Payload, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: not base64", domain.ErrInvalidCursor)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: not a cursor payload", domain.ErrInvalidCursor)
	}
	if p.AddedAt == "" || p.ContentID == "" {
		return Payload{}, fmt.Errorf("%w: missing field", domain.ErrInvalidCursor)
	}

	ts, err := time.Parse(time.RFC3339Nano, p.AddedAt)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: bad timestamp", domain.ErrInvalidCursor)
	}
	p.addedAt = ts.UTC()

	return p, nil
}
