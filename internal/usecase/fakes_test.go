package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"elitepainters/internal/entity"
	"elitepainters/internal/repository"
)

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []entity.Message
	seq      int
	clock    time.Time
	err      error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{clock: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (r *fakeMessageRepo) Create(_ context.Context, message entity.Message) (entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return entity.Message{}, r.err
	}
	r.seq++
	r.clock = r.clock.Add(time.Millisecond)
	message.Id = fmt.Sprintf("m%04d", r.seq)
	message.CreatedAt = r.clock
	message.Read = false
	r.messages = append(r.messages, message)
	return message, nil
}

func (r *fakeMessageRepo) GetByConversation(_ context.Context, filter entity.MessageIndexFilter) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	out := make([]entity.Message, 0)
	for _, m := range r.messages {
		if m.ConversationId == filter.ConversationId {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Id < out[j].Id
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeMessageRepo) CountUnread(_ context.Context, toId string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, m := range r.messages {
		if m.ToId == toId && !m.Read {
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, conversationId, toId string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.ConversationId == conversationId && m.ToId == toId && !m.Read {
			m.Read = true
			n++
		}
	}
	return n, nil
}

func (r *fakeMessageRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

type published struct {
	Room  string
	Event string
	Data  json.RawMessage
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *fakePublisher) PublishToRoom(room string, message []byte) {
	var envelope struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	_ = json.Unmarshal(message, &envelope)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{Room: room, Event: envelope.Event, Data: envelope.Data})
}

func (p *fakePublisher) all() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]published(nil), p.events...)
}

type fakeResolver struct {
	id  string
	err error
}

func (r fakeResolver) AdminId(context.Context) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if r.id == "" {
		return "", ErrUnresolvedRecipient
	}
	return r.id, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users []entity.User
	seq   int
}

func (r *fakeUserRepo) Get(_ context.Context, userId string) (entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Id == userId {
			return u, nil
		}
	}
	return entity.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return entity.User{}, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetFirst(context.Context) (entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.users) == 0 {
		return entity.User{}, repository.ErrUserNotFound
	}
	return r.users[0], nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user entity.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	user.Id = fmt.Sprintf("u%d", r.seq)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users = append(r.users, user)
	return user.Id, nil
}

func (r *fakeUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func customer(id string) *entity.TokenClaims {
	return &entity.TokenClaims{UserId: id, Role: entity.RoleCustomer}
}

func admin(id string) *entity.TokenClaims {
	return &entity.TokenClaims{UserId: id, Role: entity.RoleAdmin}
}
