package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrQueueFull is returned when the async send queue cannot take more mail.
var ErrQueueFull = errors.New("email queue full")

const templateReservationConfirmed = "reservation_confirmed"

// ReservationEmail is the data rendered into the confirmation email.
type ReservationEmail struct {
	CustomerName  string
	ReservationID string
	RoomNumber    string
	RoomType      string
	ArrivalDate   string
	DepartureDate string
	Nights        int
	PartySize     int
	TotalAmount   string
	PaymentMethod string
	TransactionID string
}

// Service renders templated mail and sends it through SendGrid from a background worker.
type Service struct {
	client       *SendGridClient
	templates    map[string]*template.Template
	baseTemplate *template.Template
	queue        chan *QueuedEmail
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

// QueuedEmail represents an email in the send queue
type QueuedEmail struct {
	To           string
	ToName       string
	Subject      string
	TemplateName string
	Data         interface{}
}

// NewService creates email service and starts its worker.
func NewService(config SendGridConfig) *Service {
	s := &Service{
		client:       NewSendGridClient(config),
		templates:    make(map[string]*template.Template),
		baseTemplate: template.Must(template.New("base").Parse(BaseTemplate)),
		queue:        make(chan *QueuedEmail, 100),
	}

	s.templates[templateReservationConfirmed] = template.Must(
		template.New(templateReservationConfirmed).Parse(ReservationConfirmedTemplate),
	)

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		if err := s.send(context.Background(), email); err != nil {
			log.Error().Err(err).
				Str("to", email.To).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
	}
}

func (s *Service) send(ctx context.Context, email *QueuedEmail) error {
	tmpl, ok := s.templates[email.TemplateName]
	if !ok {
		return fmt.Errorf("template %s not found", email.TemplateName)
	}

	var contentBuf bytes.Buffer
	if err := tmpl.Execute(&contentBuf, email.Data); err != nil {
		return fmt.Errorf("render %s: %w", email.TemplateName, err)
	}

	var htmlBuf bytes.Buffer
	if err := s.baseTemplate.Execute(&htmlBuf, map[string]interface{}{
		"Content": template.HTML(contentBuf.String()),
	}); err != nil {
		return fmt.Errorf("render base: %w", err)
	}

	return s.client.Send(ctx, &EmailMessage{
		To:          email.To,
		ToName:      email.ToName,
		Subject:     email.Subject,
		HTMLContent: htmlBuf.String(),
	})
}

// Queue adds an email to the async send queue without blocking.
func (s *Service) Queue(email *QueuedEmail) error {
	select {
	case s.queue <- email:
		return nil
	default:
		log.Warn().Str("to", email.To).Msg("Email queue full, dropping email")
		return ErrQueueFull
	}
}

// SendSync sends an email synchronously (blocking)
func (s *Service) SendSync(ctx context.Context, email *QueuedEmail) error {
	return s.send(ctx, email)
}

// Close drains the queue and stops the worker.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.queue)
		s.wg.Wait()
	})
}

// QueueReservationConfirmed queues the confirmation mail for a completed booking.
func (s *Service) QueueReservationConfirmed(to, toName string, data ReservationEmail) error {
	return s.Queue(&QueuedEmail{
		To:           to,
		ToName:       toName,
		Subject:      "Confirmation de réservation " + data.ReservationID,
		TemplateName: templateReservationConfirmed,
		Data:         data,
	})
}
