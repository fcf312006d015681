package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/obveznik/obveznik_backend/internal/core/ports"
)

// pdfTask is the payload for a PDF generation request.
type pdfTask struct {
	InvoiceID   string    `json:"invoiceID"`
	RequestedAt time.Time `json:"requestedAt"`
}

// emailTask is the payload for an invoice email delivery request.
type emailTask struct {
	InvoiceID   string    `json:"invoiceID"`
	Recipient   string    `json:"recipient"`
	CC          string    `json:"cc,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Body        string    `json:"body,omitempty"`
	RequestedAt time.Time `json:"requestedAt"`
}

// KafkaDispatcher hands PDF and email tasks to the external worker fleet.
// Messages are keyed by invoice ID so retries for one document stay ordered.
type KafkaDispatcher struct {
	writer     *kafka.Writer
	pdfTopic   string
	emailTopic string
}

// NewKafkaDispatcher creates a dispatcher writing to the given brokers.
func NewKafkaDispatcher(brokers []string, pdfTopic, emailTopic string) (*KafkaDispatcher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka dispatcher requires at least one broker")
	}
	return &KafkaDispatcher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
		},
		pdfTopic:   pdfTopic,
		emailTopic: emailTopic,
	}, nil
}

var _ ports.TaskDispatcher = (*KafkaDispatcher)(nil)

// EnqueuePDF requests PDF generation for an invoice.
func (d *KafkaDispatcher) EnqueuePDF(ctx context.Context, invoiceID string) error {
	payload, err := json.Marshal(pdfTask{InvoiceID: invoiceID, RequestedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal pdf task: %w", err)
	}
	return d.writer.WriteMessages(ctx, kafka.Message{
		Topic: d.pdfTopic,
		Key:   []byte(invoiceID),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

// EnqueueEmail requests email delivery of an invoice's PDF.
func (d *KafkaDispatcher) EnqueueEmail(ctx context.Context, invoiceID, recipient, cc, subject, body string) error {
	payload, err := json.Marshal(emailTask{
		InvoiceID:   invoiceID,
		Recipient:   recipient,
		CC:          cc,
		Subject:     subject,
		Body:        body,
		RequestedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal email task: %w", err)
	}
	return d.writer.WriteMessages(ctx, kafka.Message{
		Topic: d.emailTopic,
		Key:   []byte(invoiceID),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

// Close flushes and closes the underlying writer.
func (d *KafkaDispatcher) Close() error {
	return d.writer.Close()
}
