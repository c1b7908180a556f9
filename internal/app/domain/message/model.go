// Package message defines the message entity.
package message

// MaxTextLen is the upper bound, in runes, for message text.
const MaxTextLen = 255

// Message is a short text post attributed to an account. ID and PostedBy
// are immutable after creation; only Text may be replaced in place.
type Message struct {
	ID            int64  `json:"message_id"`
	PostedBy      int64  `json:"posted_by"`
	Text          string `json:"message_text"`
	PostedAtEpoch int64  `json:"time_posted_epoch"`
}
