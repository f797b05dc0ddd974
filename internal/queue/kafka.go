package queue

import (
	"context"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/sirupsen/logrus"
)

const kafkaFlushTimeout = 5 * time.Second

var _ EventQueue = (*KafkaQueue)(nil)

// KafkaQueue produces events to a kafka topic keyed by item id, so the events
// of one item stay ordered within their partition.
type KafkaQueue struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaQueue(brokers, topic string) (*KafkaQueue, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  brokers,
		"acks":               "all",
		"enable.idempotence": true,
	})
	if err != nil {
		return nil, err
	}

	return &KafkaQueue{producer: producer, topic: topic}, nil
}

func (k *KafkaQueue) Publish(ctx context.Context, event *Event) error {
	payload, err := event.Marshal()
	if err != nil {
		return err
	}

	delivery := make(chan kafka.Event, 1)
	err = k.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.ItemID),
		Value:          payload,
		Headers:        []kafka.Header{{Key: "type", Value: []byte(event.Type)}},
	}, delivery)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-delivery:
		msg, ok := e.(*kafka.Message)
		if ok && msg.TopicPartition.Error != nil {
			return msg.TopicPartition.Error
		}
		return nil
	}
}

func (k *KafkaQueue) Close() error {
	remaining := k.producer.Flush(int(kafkaFlushTimeout.Milliseconds()))
	if remaining > 0 {
		logrus.Warnf("kafka queue closed with %d undelivered events", remaining)
	}
	k.producer.Close()
	return nil
}
