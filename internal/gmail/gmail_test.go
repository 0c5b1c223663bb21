package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	gm "google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestDecodeHeaders(t *testing.T) {
	msg := &gm.Message{
		Id: "m1",
		Payload: &gm.MessagePart{
			Headers: []*gm.MessagePartHeader{
				{Name: "From", Value: "hr@acme.io"},
				{Name: "Subject", Value: "Interview Invitation"},
				{Name: "Subject", Value: "Duplicate, should be ignored"},
				{Name: "Date", Value: "Mon, 3 Aug 2026 10:00:00 -0700"},
				{Name: "X-Mailer", Value: "irrelevant"},
			},
		},
	}

	email := Decode(msg)

	assert.Equal(t, "m1", email.ID)
	assert.Equal(t, "Interview Invitation", email.Subject)
	assert.Equal(t, "hr@acme.io", email.From)
	assert.Equal(t, "Mon, 3 Aug 2026 10:00:00 -0700", email.Date)
}

func TestDecodeMissingHeadersAreEmpty(t *testing.T) {
	msg := &gm.Message{
		Id:      "m2",
		Payload: &gm.MessagePart{},
	}

	email := Decode(msg)

	assert.Equal(t, "", email.Subject)
	assert.Equal(t, "", email.From)
	assert.Equal(t, "", email.Date)
	assert.Equal(t, "", email.Body)
}

func TestDecodeInlineBody(t *testing.T) {
	msg := &gm.Message{
		Id: "m3",
		Payload: &gm.MessagePart{
			Body: &gm.MessagePartBody{Data: b64("We'd like to schedule a call")},
		},
	}

	assert.Equal(t, "We'd like to schedule a call", Decode(msg).Body)
}

func TestDecodeUnpaddedInlineBody(t *testing.T) {
	msg := &gm.Message{
		Id: "m4",
		Payload: &gm.MessagePart{
			Body: &gm.MessagePartBody{
				Data: base64.RawURLEncoding.EncodeToString([]byte("no padding here")),
			},
		},
	}

	assert.Equal(t, "no padding here", Decode(msg).Body)
}

func TestDecodeFirstPlainTextPartWins(t *testing.T) {
	msg := &gm.Message{
		Id: "m5",
		Payload: &gm.MessagePart{
			Parts: []*gm.MessagePart{
				{MimeType: "text/html", Body: &gm.MessagePartBody{Data: b64("<p>html</p>")}},
				{MimeType: "text/plain", Body: &gm.MessagePartBody{Data: b64("first plain part")}},
				{MimeType: "text/plain", Body: &gm.MessagePartBody{Data: b64("second plain part")}},
			},
		},
	}

	assert.Equal(t, "first plain part", Decode(msg).Body)
}

func TestDecodeSkipsPlainPartsWithoutData(t *testing.T) {
	msg := &gm.Message{
		Id: "m6",
		Payload: &gm.MessagePart{
			Parts: []*gm.MessagePart{
				{MimeType: "text/plain"},
				{MimeType: "text/plain", Body: &gm.MessagePartBody{}},
				{MimeType: "text/plain", Body: &gm.MessagePartBody{Data: b64("has data")}},
			},
		},
	}

	assert.Equal(t, "has data", Decode(msg).Body)
}

func TestDecodeNoDecodableBody(t *testing.T) {
	msg := &gm.Message{
		Id: "m7",
		Payload: &gm.MessagePart{
			Parts: []*gm.MessagePart{
				{MimeType: "text/html", Body: &gm.MessagePartBody{Data: b64("<p>html only</p>")}},
				{MimeType: "application/pdf", Body: &gm.MessagePartBody{Data: b64("%PDF")}},
			},
		},
	}

	assert.Equal(t, "", Decode(msg).Body)
}

func TestDecodeBadInlineDataLeavesBodyEmpty(t *testing.T) {
	msg := &gm.Message{
		Id: "m8",
		Payload: &gm.MessagePart{
			Body: &gm.MessagePartBody{Data: "!!! not base64 !!!"},
			Parts: []*gm.MessagePart{
				// Not reached: an inline payload wins even when it fails
				// to decode.
				{MimeType: "text/plain", Body: &gm.MessagePartBody{Data: b64("fallback")}},
			},
		},
	}

	assert.Equal(t, "", Decode(msg).Body)
}

func TestDecodeNilPayload(t *testing.T) {
	email := Decode(&gm.Message{Id: "m9"})

	assert.Equal(t, "m9", email.ID)
	assert.Equal(t, "", email.Body)
}
