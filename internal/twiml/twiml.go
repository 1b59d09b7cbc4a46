// Package twiml renders messaging-markup responses for the inbound webhook.
package twiml

import (
	"encoding/xml"
)

// Response is the markup document returned to the messaging provider: one
// message with a body and zero or one media URL.
type Response struct {
	XMLName xml.Name `xml:"Response"`
	Message Message  `xml:"Message"`
}

// Message is the single outbound message of a webhook response.
type Message struct {
	Body  string `xml:"Body"`
	Media string `xml:"Media,omitempty"`
}

// Render serializes a reply body and optional media URL into a markup
// document, including the XML header.
func Render(body, mediaURL string) ([]byte, error) {
	doc := Response{Message: Message{Body: body, Media: mediaURL}}
	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
