package message

import (
	"net/url"
	"strings"
)

// WhatsAppURL builds the wa.me deep link for a composed message. It returns
// an empty string when the message has no destination handle; callers must
// not open or copy anything in that case.
func WhatsAppURL(msg ComposedMessage) string {
	if msg.Handle == "" {
		return ""
	}
	// QueryEscape encodes spaces as "+", which WhatsApp renders literally.
	text := strings.ReplaceAll(url.QueryEscape(msg.Text), "+", "%20")
	return "https://wa.me/" + msg.Handle + "?text=" + text
}
