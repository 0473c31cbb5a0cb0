package kafka

import (
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Producer publishes order lifecycle events (order.created, order.paid,
// order.payment_failed, order.fulfillment_updated). Publishing is
// best-effort: a broker failure is logged, never surfaced to the request.
type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(broker string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	var producer sarama.SyncProducer
	var err error

	for i := 1; i <= 5; i++ {
		producer, err = sarama.NewSyncProducer([]string{broker}, config)
		if err == nil {
			log.Println("Kafka producer initialized")
			return &Producer{producer: producer}, nil
		}
		log.Printf("Waiting for Kafka... (%d/5) Error: %v", i, err)
		time.Sleep(3 * time.Second)
	}
	return nil, err
}

func (p *Producer) Publish(topic string, event map[string]interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now(),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Printf("Failed to send Kafka message: %v", err)
		return
	}
	log.Printf("Published %s: %s", topic, string(data))
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
