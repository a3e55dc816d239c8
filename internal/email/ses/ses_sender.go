package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"docgen/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendGeneratedDocuments(ctx context.Context, toEmail, templateName string, links []port.DocumentLink) error {
	subject := fmt.Sprintf("Generated documents: %s", templateName)
	htmlBody := BuildDocumentsHTML(templateName, links)
	textBody := BuildDocumentsText(templateName, links)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// BuildDocumentsText renders the plain-text delivery body.
func BuildDocumentsText(templateName string, links []port.DocumentLink) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Documents generated from template %q:\n\n", templateName)
	for _, l := range links {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", l.Filename, l.ClientName, l.URL)
	}
	sb.WriteString("\nDownload links expire after a limited time.\n")
	return sb.String()
}

// BuildDocumentsHTML renders the HTML delivery body.
func BuildDocumentsHTML(templateName string, links []port.DocumentLink) string {
	var items strings.Builder
	for _, l := range links {
		fmt.Fprintf(&items, `    <li><a href="%s">%s</a> &mdash; %s</li>`+"\n",
			html.EscapeString(l.URL), html.EscapeString(l.Filename), html.EscapeString(l.ClientName))
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your documents are ready</h2>
  <p>Documents generated from template <strong>%s</strong>:</p>
  <ul>
%s  </ul>
  <p style="color: #999; font-size: 12px;">Download links expire after a limited time.</p>
</body>
</html>`, html.EscapeString(templateName), items.String())
}
