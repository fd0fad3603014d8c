package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"device-rental-manager/internal/domain"
	"device-rental-manager/internal/schedule"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendBookingConfirmation(_ context.Context, customer *domain.Customer, device *domain.Device, rental *domain.Rental) error {
	subject := fmt.Sprintf("Booking confirmed: %s", device.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental of %s is confirmed from %s through %s.\n",
		customer.Name, device.Name,
		schedule.FormatDate(rental.Start), schedule.FormatDate(rental.End))
	if rental.Address != "" {
		body += fmt.Sprintf("\nDelivery address: %s\n", rental.Address)
	}
	body += "\nBest regards,\nThe Rental Desk"
	return s.send(customer.Email, subject, body)
}

func (s *emailService) SendSettlementSummary(_ context.Context, customer *domain.Customer, device *domain.Device, rental *domain.Rental) error {
	subject := fmt.Sprintf("Return settled: %s", device.Name)
	var fee int64
	if rental.FeeCents != nil {
		fee = *rental.FeeCents
	}
	body := fmt.Sprintf(
		"Hello %s,\n\nThanks for returning %s on %s.\nTotal charge: %.2f.\n\nBest regards,\nThe Rental Desk",
		customer.Name, device.Name, schedule.FormatDate(rental.End), float64(fee)/100)
	return s.send(customer.Email, subject, body)
}

func (s *emailService) SendReturnReminder(_ context.Context, customer *domain.Customer, device *domain.Device, rental *domain.Rental) error {
	subject := fmt.Sprintf("Return reminder: %s", device.Name)
	body := fmt.Sprintf(
		"Hello %s,\n\nA reminder that %s is due back on %s.\n\nBest regards,\nThe Rental Desk",
		customer.Name, device.Name, schedule.FormatDate(rental.End))
	return s.send(customer.Email, subject, body)
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}
