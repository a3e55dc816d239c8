package port

import "context"

// DocumentLink is a generated document offered for download in a delivery email.
type DocumentLink struct {
	ClientName string
	Filename   string
	URL        string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendGeneratedDocuments(ctx context.Context, toEmail, templateName string, links []DocumentLink) error
}
