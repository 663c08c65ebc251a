package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Guizzs26/ballot_register/internal/model"
	"github.com/segmentio/kafka-go"
)

type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, topic, groupID string) (*KafkaConsumer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka consumer needs at least one broker")
	}
	rCfg := kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10kb
		MaxBytes: 10e6, // 10mb
		MaxWait:  1 * time.Second,
		// The register lives in memory, so a fresh group replays the topic
		// from the start to rebuild the tallies.
		StartOffset: kafka.FirstOffset,
	}
	r := kafka.NewReader(rCfg)

	return &KafkaConsumer{reader: r}, nil
}

func (kc *KafkaConsumer) ReadMessage(ctx context.Context) (model.Vote, error) {
	// blocks until a message arrives or ctx is canceled
	msg, err := kc.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
			return model.Vote{}, err
		}
		log.Printf("error reading message from Kafka: %v", err)
		return model.Vote{}, err
	}

	vote, err := decodeVote(msg.Value)
	if err != nil {
		log.Printf("error deserializing vote at offset %d: %v", msg.Offset, err)
		return model.Vote{}, err
	}

	return vote, nil
}

func (kc *KafkaConsumer) Close() error {
	if err := kc.reader.Close(); err != nil {
		return fmt.Errorf("failed to close kafka reader: %w", err)
	}
	return nil
}
