package utils

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Mailer is the outbound-notification seam; services depend on it so tests
// can substitute a stub.
type Mailer interface {
	Send(to, subject, body string) error
}

type SESMailer struct {
	client *ses.Client
	sender string
}

func NewSESMailer(region, sender string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("AWS config load failed: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

func (m *SESMailer) Send(to, subject, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(m.sender),
	}

	_, err := m.client.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return Upstream(fmt.Sprintf("email send failed: %v", err))
	}
	return nil
}
