package ws

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace-server/entities"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MessageStore persists a draft and returns the stored record.
type MessageStore interface {
	Create(ctx context.Context, draft entities.MessageDraft) (*entities.Message, error)
}

// Forwarder delivers a payload to the open channels of one user.
type Forwarder interface {
	Forward(userID string, payload []byte) int
}

// Relay turns inbound chat payloads into stored messages and pushes the
// stored record to the sender and the receiver.
type Relay struct {
	store    MessageStore
	fwd      Forwarder
	validate *validator.Validate
	log      *zap.Logger
}

func NewRelay(store MessageStore, fwd Forwarder, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{
		store:    store,
		fwd:      fwd,
		validate: validator.New(),
		log:      log,
	}
}

// Handle processes one raw payload read from a channel. Failures are logged
// here and returned for the caller's information; the channel stays usable.
func (r *Relay) Handle(ctx context.Context, payload []byte) (*entities.Message, error) {
	draft, err := r.Decode(payload)
	if err != nil {
		r.log.Warn("dropping inbound message", zap.Error(err))
		return nil, err
	}
	msg, err := r.Submit(ctx, draft)
	if err != nil {
		r.log.Error("message not relayed",
			zap.String("sender", draft.Sender),
			zap.String("receiver", draft.Receiver),
			zap.Error(err))
		return nil, err
	}
	return msg, nil
}

// Decode parses and validates a raw payload into a draft.
func (r *Relay) Decode(payload []byte) (entities.MessageDraft, error) {
	var draft entities.MessageDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return entities.MessageDraft{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := r.validate.Struct(draft); err != nil {
		return entities.MessageDraft{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return draft, nil
}

// Submit persists an already decoded draft and, only if that succeeds,
// forwards the stored record to both participants.
func (r *Relay) Submit(ctx context.Context, draft entities.MessageDraft) (*entities.Message, error) {
	if err := r.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	msg, err := r.store.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if err := r.Deliver(msg); err != nil {
		// The message is stored; only realtime delivery is lost
		r.log.Error("encode stored message", zap.String("message_id", msg.ID), zap.Error(err))
	}
	return msg, nil
}

// Deliver forwards the canonical encoding of a stored message to its
// sender and receiver.
func (r *Relay) Deliver(msg *entities.Message) error {
	out, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	senderID, receiverID := participants(msg)
	delivered := r.fwd.Forward(senderID, out)
	if receiverID != senderID {
		delivered += r.fwd.Forward(receiverID, out)
	}
	r.log.Debug("message relayed",
		zap.String("message_id", msg.ID),
		zap.Int("deliveries", delivered))
	return nil
}

func participants(msg *entities.Message) (string, string) {
	sender, receiver := msg.SenderID, msg.ReceiverID
	if sender == "" {
		sender = msg.Sender.ID
	}
	if receiver == "" {
		receiver = msg.Receiver.ID
	}
	return sender, receiver
}
