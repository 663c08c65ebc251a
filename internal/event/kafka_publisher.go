package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Guizzs26/ballot_register/internal/model"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

/*
Balancer: &kafka.Hash{} sends every message with the same key to the
same partition. Votes are keyed by voter ID, so a voter's repeated
attempts stay ordered and the first one is the one the register keeps.

RequiredAcks: kafka.RequireAll waits for every in-sync replica. A vote
acknowledged to the producer survives a leader failure.

Compression: kafka.Snappy. Votes are small JSON documents and compress well.
*/
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka publisher needs at least one broker")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  5,
		Compression:  kafka.Snappy,
	}

	return &KafkaPublisher{writer: w}, nil
}

func (kp *KafkaPublisher) PublishMessage(ctx context.Context, vote model.Vote, key string) error {
	vb, err := encodeVote(vote)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key), // VoterID
		Value: vb,
		Time:  vote.Timestamp,
	}

	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

func (kp *KafkaPublisher) Close() error {
	if err := kp.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}
	return nil
}
