// Package gmail wraps the two Gmail API reads jobtrack depends on:
// listing message IDs for a query and fetching one full message.
package gmail

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/daviddao/jobtrack/internal/types"
	gm "google.golang.org/api/gmail/v1"
)

// List returns the IDs of messages matching a Gmail query. Only the first
// page is considered; there is no pagination.
func List(svc *gm.Service, query string, maxResults int64) ([]string, error) {
	call := svc.Users.Messages.List("me").Q(query)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}
	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, msg := range resp.Messages {
		ids = append(ids, msg.Id)
	}
	return ids, nil
}

// Fetch retrieves one message in full format and decodes it.
func Fetch(svc *gm.Service, messageID string) (*types.Email, error) {
	msg, err := svc.Users.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("get message %s: %w", messageID, err)
	}
	return Decode(msg), nil
}

// Decode extracts the three tracked headers and the plain-text body from a
// raw message. It never fails: missing headers and undecodable bodies come
// back as empty strings, with decode problems reported on stderr.
func Decode(msg *gm.Message) *types.Email {
	email := &types.Email{ID: msg.Id}
	if msg.Payload == nil {
		return email
	}

	// Single pass over headers, first occurrence wins. Names are matched
	// case-sensitively, as the upstream API canonicalizes them.
	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "Subject":
			if email.Subject == "" {
				email.Subject = h.Value
			}
		case "From":
			if email.From == "" {
				email.From = h.Value
			}
		case "Date":
			if email.Date == "" {
				email.Date = h.Value
			}
		}
	}

	email.Body = extractBody(msg.Payload)
	return email
}

// extractBody applies the body policy: an inline payload wins outright,
// otherwise the first top-level text/plain part that decodes. Anything
// else leaves the body empty, which is absent content rather than an
// error.
func extractBody(payload *gm.MessagePart) string {
	if payload.Body != nil && payload.Body.Data != "" {
		decoded, err := decodeBase64URL(payload.Body.Data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not decode message body: %v\n", err)
			return ""
		}
		return decoded
	}

	for _, part := range payload.Parts {
		if part.MimeType != "text/plain" || part.Body == nil || part.Body.Data == "" {
			continue
		}
		decoded, err := decodeBase64URL(part.Body.Data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not decode message part: %v\n", err)
			continue
		}
		return decoded
	}

	return ""
}

// decodeBase64URL decodes Gmail's URL-safe base64 content, which may
// arrive with or without padding.
func decodeBase64URL(data string) (string, error) {
	if b, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(b), nil
	}
	b, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
