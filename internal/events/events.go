package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CampusHub/campushub-roster-services/models"
	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog/log"
)

// Notifier publishes roster change events for downstream consumers.
type Notifier interface {
	Publish(event models.RosterEvent) error
	Close()
}

// EventPublisher sends roster events to a Pulsar topic.
type EventPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewEventPublisher initializes the Pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &EventPublisher{client: client, producer: producer}, nil
}

// Publish serializes the event and sends it to Pulsar. Messages are keyed by
// course so consumers see changes to one course in order.
func (p *EventPublisher) Publish(event models.RosterEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize roster event: %w", err)
	}

	_, err = p.producer.Send(context.Background(), &pulsar.ProducerMessage{
		Payload: message,
		Key:     event.CourseID.String(),
	})
	if err != nil {
		return fmt.Errorf("could not send roster event to Pulsar: %w", err)
	}

	log.Debug().Str("type", event.Type).Str("course_id", event.CourseID.String()).Msg("Roster event published")
	return nil
}

// Close shuts down the Pulsar producer and client.
func (p *EventPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}
