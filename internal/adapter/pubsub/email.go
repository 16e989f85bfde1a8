// Package pubsub hands workflow emails to the mail service over Pub/Sub.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/heartmarshall/hrwallet-backend/internal/config"
	"github.com/heartmarshall/hrwallet-backend/internal/domain"
	"github.com/heartmarshall/hrwallet-backend/pkg/ctxutil"
)

// publishFunc sends one message and waits for the server id.
type publishFunc func(ctx context.Context, msg *pubsub.Message) (string, error)

// EmailPublisher publishes one message per workflow email.
type EmailPublisher struct {
	publish publishFunc
	client  *pubsub.Client
	topic   *pubsub.Topic
}

type emailMessage struct {
	Kind       string         `json:"kind"`
	Recipients []string       `json:"recipients"`
	Payload    map[string]any `json:"payload"`
}

// New connects to Pub/Sub and binds the email topic.
func New(ctx context.Context, cfg config.PubSubConfig) (*EmailPublisher, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}
	client, err := pubsub.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	topic := client.Topic(cfg.EmailTopic)
	p := newPublisher(func(ctx context.Context, msg *pubsub.Message) (string, error) {
		return topic.Publish(ctx, msg).Get(ctx)
	})
	p.client = client
	p.topic = topic
	return p, nil
}

func newPublisher(publish publishFunc) *EmailPublisher {
	return &EmailPublisher{publish: publish}
}

// SendWorkflowEmail publishes the email as JSON. The kind is also set as an
// attribute so subscribers can filter without decoding.
func (p *EmailPublisher) SendWorkflowEmail(ctx context.Context, email domain.WorkflowEmail) error {
	data, err := json.Marshal(emailMessage{
		Kind:       string(email.Kind),
		Recipients: email.Recipients,
		Payload:    email.Payload,
	})
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	attrs := map[string]string{"kind": string(email.Kind)}
	if rid := ctxutil.RequestIDFromCtx(ctx); rid != "" {
		attrs["request_id"] = rid
	}

	if _, err := p.publish(ctx, &pubsub.Message{Data: data, Attributes: attrs}); err != nil {
		return fmt.Errorf("publish email %s: %w", email.Kind, err)
	}
	return nil
}

// Ping checks that the email topic exists.
func (p *EmailPublisher) Ping(ctx context.Context) error {
	if p.topic == nil {
		return nil
	}
	ok, err := p.topic.Exists(ctx)
	if err != nil {
		return fmt.Errorf("topic %s: %w", p.topic.ID(), err)
	}
	if !ok {
		return fmt.Errorf("topic %s does not exist", p.topic.ID())
	}
	return nil
}

// Close flushes pending messages and closes the client.
func (p *EmailPublisher) Close() error {
	if p.topic != nil {
		p.topic.Stop()
	}
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
