package cart

import (
	"log"
	"net/url"
)

// Sink receives the formatted order text. Delivery is one-way: callers do
// not wait for or act on the outcome.
type Sink interface {
	Send(message string) error
}

// Linker is implemented by sinks whose channel is opened through a URL the
// client navigates to, such as a prefilled chat link.
type Linker interface {
	Link(message string) string
}

// WhatsAppSink hands orders off as wa.me links with the message prefilled.
// Sending never fails; the actual conversation is opened by the customer's
// browser, not the server.
type WhatsAppSink struct {
	Phone string
}

func NewWhatsAppSink(phone string) *WhatsAppSink {
	return &WhatsAppSink{Phone: phone}
}

// Link builds the https://wa.me/<phone>?text=... URL for the message.
func (s *WhatsAppSink) Link(message string) string {
	return "https://wa.me/" + s.Phone + "?text=" + url.QueryEscape(message)
}

func (s *WhatsAppSink) Send(message string) error {
	log.Printf("Order handed to WhatsApp (%d chars) for %s", len(message), s.Phone)
	return nil
}
