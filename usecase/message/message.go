package message

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/planner/domain"
	"github.com/fastygo/planner/repository"
	"github.com/fastygo/planner/usecase"
)

// SessionReader exposes the acting session identity.
type SessionReader interface {
	CurrentUser() *domain.SessionUser
}

// Directory resolves user ids against the team directory, skipping unknown ids.
type Directory interface {
	ResolveUsers(ctx context.Context, ids []string) ([]domain.User, error)
}

type Option func(*UseCase)

func WithPublisher(p usecase.ChangePublisher) Option {
	return func(uc *UseCase) { uc.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(uc *UseCase) {
		if fn != nil {
			uc.idGenerator = fn
		}
	}
}

// UseCase is the messaging store, scoped to the current session user.
type UseCase struct {
	conversations repository.ConversationRepository
	session       SessionReader
	directory     Directory

	publisher   usecase.ChangePublisher
	logger      *zap.Logger
	now         func() time.Time
	idGenerator func() string

	mu     sync.RWMutex
	active string
}

func New(conversations repository.ConversationRepository, session SessionReader, directory Directory, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		conversations: conversations,
		session:       session,
		directory:     directory,
		logger:        logger,
		now:           time.Now,
		idGenerator:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// StartConversation opens a conversation between the session user and
// participantIDs, reusing an existing 1:1 conversation with the same pair.
// The conversation becomes active and its id is returned.
func (uc *UseCase) StartConversation(ctx context.Context, participantIDs []string, name string) (string, error) {
	current := uc.session.CurrentUser()
	if current == nil {
		return "", domain.ErrUnauthorized
	}

	ids := dedupe(append(append([]string(nil), participantIDs...), current.ID))
	users, err := uc.directory.ResolveUsers(ctx, ids)
	if err != nil {
		return "", err
	}
	participants := make([]domain.Participant, 0, len(users))
	for _, u := range users {
		participants = append(participants, domain.Participant{ID: u.ID, Name: u.Name})
	}

	uc.mu.Lock()
	if len(participants) == 2 {
		existing, err := uc.findIndividual(ctx, current.ID, participants)
		if err != nil {
			uc.mu.Unlock()
			return "", err
		}
		if existing != "" {
			uc.active = existing
			uc.mu.Unlock()
			uc.logger.Debug("conversation reused", zap.String("conversation_id", existing))
			return existing, nil
		}
	}

	conv := domain.Conversation{
		ID:                   "conv-" + uc.idGenerator(),
		Type:                 domain.ConversationIndividual,
		Participants:         participants,
		Messages:             []domain.Message{},
		Name:                 name,
		LastMessageTimestamp: uc.now(),
	}
	if len(participants) > 2 {
		conv.Type = domain.ConversationGroup
	}
	if conv.Name == "" {
		conv.Name = ConversationName(participants, current.ID)
	}
	if err := uc.conversations.Create(ctx, &conv); err != nil {
		uc.mu.Unlock()
		return "", err
	}
	uc.active = conv.ID
	uc.mu.Unlock()

	uc.logger.Debug("conversation started", zap.String("conversation_id", conv.ID), zap.String("type", string(conv.Type)))
	usecase.Publish(ctx, uc.publisher, domain.StoreMessage, domain.EntityConv, domain.OperationCreate, conv.ID, conv)
	return conv.ID, nil
}

// findIndividual looks for an individual conversation whose participants are
// exactly the session user and the other member of pair.
func (uc *UseCase) findIndividual(ctx context.Context, currentID string, pair []domain.Participant) (string, error) {
	var otherID string
	for _, p := range pair {
		if p.ID != currentID {
			otherID = p.ID
		}
	}
	convs, err := uc.conversations.List(ctx)
	if err != nil {
		return "", err
	}
	for _, conv := range convs {
		if conv.Type != domain.ConversationIndividual || len(conv.Participants) != 2 {
			continue
		}
		if conv.HasParticipant(currentID) && conv.HasParticipant(otherID) {
			return conv.ID, nil
		}
	}
	return "", nil
}

// SendMessage appends a message from the session user and moves the
// conversation to the front. Blank text, a missing session or an unknown
// conversation make it a no-op returning nil.
func (uc *UseCase) SendMessage(ctx context.Context, conversationID, text string) (*domain.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	current := uc.session.CurrentUser()
	if current == nil {
		return nil, nil
	}

	uc.mu.Lock()
	conv, err := uc.conversations.GetByID(ctx, conversationID)
	if err != nil {
		uc.mu.Unlock()
		if errors.Is(err, domain.ErrConversationNotFound) {
			return nil, nil
		}
		return nil, err
	}

	msg := domain.Message{
		ID:             "msg-" + uc.idGenerator(),
		ConversationID: conv.ID,
		SenderID:       current.ID,
		Text:           text,
		Timestamp:      uc.now(),
		Type:           domain.MessageSent,
	}
	conv.Messages = append(conv.Messages, msg)
	conv.LastMessageTimestamp = msg.Timestamp
	if err := uc.conversations.Update(ctx, conv); err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	if err := uc.resort(ctx, conv.ID); err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	uc.mu.Unlock()

	usecase.Publish(ctx, uc.publisher, domain.StoreMessage, domain.EntityConv, domain.OperationUpdate, conv.ID, msg)
	return &msg, nil
}

// resort orders conversations by most recent activity, touched first among ties.
func (uc *UseCase) resort(ctx context.Context, touched string) error {
	convs, err := uc.conversations.List(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(convs, func(i, j int) bool {
		a, b := convs[i], convs[j]
		if !a.LastMessageTimestamp.Equal(b.LastMessageTimestamp) {
			return a.LastMessageTimestamp.After(b.LastMessageTimestamp)
		}
		return a.ID == touched && b.ID != touched
	})
	ids := make([]string, 0, len(convs))
	for _, c := range convs {
		ids = append(ids, c.ID)
	}
	return uc.conversations.Reorder(ctx, ids)
}

// AddParticipants grows a group conversation and renames it. Individual
// conversations are returned unchanged; unknown ids yield nil.
func (uc *UseCase) AddParticipants(ctx context.Context, conversationID string, participantIDs []string) (*domain.Conversation, error) {
	uc.mu.Lock()
	conv, err := uc.conversations.GetByID(ctx, conversationID)
	if err != nil {
		uc.mu.Unlock()
		if errors.Is(err, domain.ErrConversationNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if conv.Type != domain.ConversationGroup {
		uc.mu.Unlock()
		return conv, nil
	}

	fresh := make([]string, 0, len(participantIDs))
	for _, id := range dedupe(participantIDs) {
		if !conv.HasParticipant(id) {
			fresh = append(fresh, id)
		}
	}
	users, err := uc.directory.ResolveUsers(ctx, fresh)
	if err != nil {
		uc.mu.Unlock()
		return nil, err
	}
	if len(users) == 0 {
		uc.mu.Unlock()
		return conv, nil
	}

	for _, u := range users {
		conv.Participants = append(conv.Participants, domain.Participant{ID: u.ID, Name: u.Name})
	}
	var currentID string
	if current := uc.session.CurrentUser(); current != nil {
		currentID = current.ID
	}
	conv.Name = ConversationName(conv.Participants, currentID)
	err = uc.conversations.Update(ctx, conv)
	uc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	usecase.Publish(ctx, uc.publisher, domain.StoreMessage, domain.EntityConv, domain.OperationUpdate, conv.ID, conv.Participants)
	return conv, nil
}

// Conversations lists conversations, most recently active first once
// messages have been sent.
func (uc *UseCase) Conversations(ctx context.Context) ([]domain.Conversation, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.conversations.List(ctx)
}

// Conversation returns nil without error for unknown ids.
func (uc *UseCase) Conversation(ctx context.Context, id string) (*domain.Conversation, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	conv, err := uc.conversations.GetByID(ctx, id)
	if errors.Is(err, domain.ErrConversationNotFound) {
		return nil, nil
	}
	return conv, err
}

// ConversationMessages is empty for unknown ids.
func (uc *UseCase) ConversationMessages(ctx context.Context, id string) ([]domain.Message, error) {
	conv, err := uc.Conversation(ctx, id)
	if err != nil || conv == nil {
		return []domain.Message{}, err
	}
	return append([]domain.Message{}, conv.Messages...), nil
}

// ConversationParticipants is empty for unknown ids.
func (uc *UseCase) ConversationParticipants(ctx context.Context, id string) ([]domain.Participant, error) {
	conv, err := uc.Conversation(ctx, id)
	if err != nil || conv == nil {
		return []domain.Participant{}, err
	}
	return append([]domain.Participant{}, conv.Participants...), nil
}

func (uc *UseCase) ActiveConversationID() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.active
}

// SetActiveConversation selects a conversation; an empty id clears the selection.
func (uc *UseCase) SetActiveConversation(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if id != "" {
		if _, err := uc.conversations.GetByID(ctx, id); err != nil {
			return err
		}
	}
	uc.active = id
	return nil
}

// ConversationName labels a conversation from its participants: a lone
// participant's name, else the names of everyone but the session user.
func ConversationName(participants []domain.Participant, currentUserID string) string {
	if len(participants) == 1 {
		return participants[0].Name
	}
	others := make([]string, 0, len(participants))
	for _, p := range participants {
		if p.ID != currentUserID {
			others = append(others, p.Name)
		}
	}
	return strings.Join(others, ", ")
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
