// Package history keeps a log of committed configurations in an embedded
// NATS JetStream stream, one subject per profile.
package history

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/gosimple/slug"
	"github.com/mark3labs/confwiz/internal/logger"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/xid"
)

const streamName = "confwiz_history"

// Entry is one committed configuration.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Profile   string    `json:"profile"`
	Format    string    `json:"format"`
	Path      string    `json:"path"`
	Content   string    `json:"content"`
	Sequence  uint64    `json:"sequence,omitempty"`
}

// SubjectForProfile returns the commit subject of a profile.
// Example: "confwiz.prod-east.commit"
func SubjectForProfile(profile string) string {
	return fmt.Sprintf("confwiz.%s.commit", profileToken(profile))
}

func profileToken(profile string) string {
	if s := slug.Make(profile); s != "" {
		return s
	}
	return "default"
}

// SetupStream creates or updates the history stream.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"confwiz.*.commit"},
		Storage:  jetstream.FileStorage,
		MaxAge:   365 * 24 * time.Hour,
	})
}

// Store records and lists history entries.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream

	// set by Open; nil when the caller owns the connection
	srv *embedded
}

// NewStore wraps an existing JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// Open starts an embedded server under dataDir and returns a Store that
// owns it. Close releases it.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	srv, err := startEmbedded(dataDir)
	if err != nil {
		return nil, fmt.Errorf("starting history server: %w", err)
	}
	js, err := jetstream.New(srv.nc)
	if err != nil {
		_ = srv.close()
		return nil, fmt.Errorf("creating jetstream: %w", err)
	}
	stream, err := SetupStream(ctx, js)
	if err != nil {
		_ = srv.close()
		return nil, fmt.Errorf("setting up history stream: %w", err)
	}
	s := NewStore(js, stream)
	s.srv = srv
	return s, nil
}

// Close shuts down the embedded server if this Store owns one.
func (s *Store) Close() error {
	if s.srv == nil {
		return nil
	}
	err := s.srv.close()
	s.srv = nil
	return err
}

// Record appends an entry. ID and Timestamp are filled in when empty.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = xid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal history entry: %w", err)
	}

	ack, err := s.js.Publish(ctx, SubjectForProfile(e.Profile), data)
	if err != nil {
		logger.Error("Failed to publish history entry for %s: %v", e.Profile, err)
		return Entry{}, fmt.Errorf("failed to publish history entry: %w", err)
	}
	e.Sequence = ack.Sequence

	logger.Debug("History entry recorded: profile=%s seq=%d", e.Profile, ack.Sequence)
	return e, nil
}

// List returns the entries for profile, oldest first. An empty profile lists
// every profile.
func (s *Store) List(ctx context.Context, profile string) ([]Entry, error) {
	filter := "confwiz.*.commit"
	if profile != "" {
		filter = SubjectForProfile(profile)
	}

	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: filter,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}
	defer func() {
		_ = s.stream.DeleteConsumer(context.WithoutCancel(ctx), consumer.CachedInfo().Name)
	}()

	const batchSize = 256
	var entries []Entry
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var seq uint64
			if meta, err := msg.Metadata(); err == nil {
				seq = meta.Sequence.Stream
			}
			var e Entry
			if err := json.Unmarshal(msg.Data(), &e); err != nil {
				logger.Warn("Skipping malformed history entry (seq=%d): %v", seq, err)
				_ = msg.Ack()
				continue
			}
			e.Sequence = seq
			entries = append(entries, e)
			_ = msg.Ack()
		}
		if count < batchSize {
			break
		}
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Sequence < entries[j].Sequence })
	return entries, nil
}

// Latest returns the newest entry for profile, or false when there is none.
func (s *Store) Latest(ctx context.Context, profile string) (Entry, bool, error) {
	entries, err := s.List(ctx, profile)
	if err != nil || len(entries) == 0 {
		return Entry{}, false, err
	}
	return entries[len(entries)-1], true, nil
}
