package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/alexanderramin/ecocafe/internal/domain"
	"github.com/redis/go-redis/v9"
)

// defaultStreamLen caps the submitted-results stream (approximate trim).
const defaultStreamLen = 1000

// SubmittedEvent is one entry of the submitted-results stream.
type SubmittedEvent struct {
	StreamID string
	ResultID string
	CafeName string
	Stars    int
	Payload  domain.ResultRecord
}

// ResultStream publishes submitted results to a Redis stream for
// downstream consumers.
type ResultStream struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewResultStream(client redis.Cmdable) *ResultStream {
	return &ResultStream{client: client, stream: StreamName(), maxLen: defaultStreamLen}
}

// StreamName is the Redis key of the submitted-results stream.
func StreamName() string { return key("results", "submitted") }

// PublishSubmitted appends rec to the stream.
func (s *ResultStream) PublishSubmitted(ctx context.Context, rec *domain.ResultRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding result event: %w", err)
	}
	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]any{
			"result_id": rec.ID,
			"cafe_name": rec.SubjectName,
			"stars":     rec.Grade.Stars,
			"payload":   string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publishing result event: %w", err)
	}
	return nil
}

// Recent returns up to n events, newest first.
func (s *ResultStream) Recent(ctx context.Context, n int64) ([]SubmittedEvent, error) {
	msgs, err := s.client.XRevRangeN(ctx, s.stream, "+", "-", n).Result()
	if err != nil {
		return nil, fmt.Errorf("reading result events: %w", err)
	}
	out := make([]SubmittedEvent, 0, len(msgs))
	for _, m := range msgs {
		ev, err := decodeEvent(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func decodeEvent(m redis.XMessage) (SubmittedEvent, error) {
	ev := SubmittedEvent{StreamID: m.ID}
	ev.ResultID, _ = m.Values["result_id"].(string)
	ev.CafeName, _ = m.Values["cafe_name"].(string)
	if s, ok := m.Values["stars"].(string); ok {
		ev.Stars, _ = strconv.Atoi(s)
	}
	if p, ok := m.Values["payload"].(string); ok && p != "" {
		if err := json.Unmarshal([]byte(p), &ev.Payload); err != nil {
			return ev, fmt.Errorf("decoding result event %s: %w", m.ID, err)
		}
	}
	return ev, nil
}
