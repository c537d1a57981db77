package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

var sesClient *ses.Client

// InitMailer must be called once at startup (e.g. in main.go).
func InitMailer() {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}
	sesClient = ses.NewFromConfig(cfg)
}

// generic SES sender
func sendEmail(to string, subject string, body string) error {
	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
		Source: aws.String(os.Getenv("SES_EMAIL")),
	}

	_, err := sesClient.SendEmail(context.TODO(), input)
	if err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %v", err)
	}
	return nil
}

// SendClinicianSummaryEmail sends the weekly highlight sentences as a
// plain-text summary for the patient's care team.
func SendClinicianSummaryEmail(to, patientName string, highlights []string) error {
	subject := fmt.Sprintf("Weekly flare summary for %s", patientName)
	var b strings.Builder
	fmt.Fprintf(&b, "Weekly summary for %s:\n\n", patientName)
	for _, h := range highlights {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	b.WriteString("\nGenerated by FlareGuard.")
	return sendEmail(to, subject, b.String())
}
