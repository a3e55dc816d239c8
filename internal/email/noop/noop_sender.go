package noop

import (
	"context"
	"log"

	"docgen/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs download links to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendGeneratedDocuments(_ context.Context, toEmail, templateName string, links []port.DocumentLink) error {
	log.Printf("[NOOP EMAIL] %d generated document(s) from %q for %s", len(links), templateName, toEmail)
	for _, l := range links {
		log.Printf("[NOOP EMAIL]   %s (%s): %s", l.Filename, l.ClientName, l.URL)
	}
	return nil
}
