package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Farhatmahi/dentist-spa-server/pkg/logger"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaPublisher builds a publisher writing to a single booking topic.
// Messages are keyed by booking ID so events for one booking stay ordered
// within a partition.
func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  compress.Snappy,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf("kafka: "+msg, args...))
		}),
	}

	return &kafkaPublisher{writer: writer, log: log}, nil
}

func (p *kafkaPublisher) PublishBookingCreated(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, booking.ID, TypeBookingCreated, BookingCreated{
		BookingID:       booking.ID,
		Email:           booking.Email,
		Treatment:       booking.Treatment,
		AppointmentDate: booking.AppointmentDate,
		Slot:            booking.Slot,
	})
}

func (p *kafkaPublisher) PublishBookingPaid(ctx context.Context, bookingID, transactionID string, amount int64) error {
	return p.publish(ctx, bookingID, TypeBookingPaid, BookingPaid{
		BookingID:     bookingID,
		TransactionID: transactionID,
		Amount:        amount,
	})
}

func (p *kafkaPublisher) publish(ctx context.Context, key, eventType string, payload any) error {
	value, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}
