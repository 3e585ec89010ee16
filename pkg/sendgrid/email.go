package sendgrid

import (
	"context"
	"fmt"

	"github.com/ovenfresh/bakery-platform/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendOrderDecision tells the customer whether their order was accepted or
// rejected, including the rejection comment when one was left.
func (e *EmailService) SendOrderDecision(ctx context.Context, toEmail, toName string, order *models.Order) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(toName, toEmail)

	var subject, body string

	switch order.Status {
	case models.OrderStatusAccepted:
		subject = "Your order has been accepted"
		body = fmt.Sprintf(
			"Hi %s,\n\nYour order placed for delivery on %s has been accepted.\n\nTotal: %.2f\nPaid upfront: %.2f\nDue on delivery: %.2f\n",
			toName, order.DeliveryTime.Format("Mon, 02 Jan 2006 15:04"),
			order.TotalPrice, order.UpfrontPaid, order.TotalPrice-order.UpfrontPaid)
	case models.OrderStatusRejected:
		subject = "Your order could not be accepted"
		body = fmt.Sprintf("Hi %s,\n\nUnfortunately we could not accept your order.\n", toName)

		if order.RejectionComment != "" {
			body += "\nReason: " + order.RejectionComment + "\n"
		}
	default:
		return fmt.Errorf("no decision email for status %q", order.Status)
	}

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", body))

	response, err := e.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
