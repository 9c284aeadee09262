package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/KhinMyintMyatThu/you-app-backend/internal/models"
	"github.com/KhinMyintMyatThu/you-app-backend/internal/repository"
)

type fakeDirectory struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by username
	err   error
}

func newFakeDirectory(users ...*models.User) *fakeDirectory {
	d := &fakeDirectory{users: make(map[string]*models.User)}
	for _, u := range users {
		d.users[u.Username] = u
	}
	return d
}

func (d *fakeDirectory) Create(_ context.Context, u *models.User) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.Username] = u
	return u, nil
}

func (d *fakeDirectory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	if u, ok := d.users[username]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (d *fakeDirectory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	for _, u := range d.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (d *fakeDirectory) UpdateProfile(_ context.Context, email string, p *models.Profile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, u := range d.users {
		if u.Email == email {
			u.Profile = p
			return nil
		}
	}
	return repository.ErrUserNotFound
}

type fakeStore struct {
	mu        sync.Mutex
	msgs      []*models.Message
	insertErr error
	findErr   error
}

func (s *fakeStore) Insert(_ context.Context, m *models.Message) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	if m.ID == "" {
		m.ID = fmt.Sprintf("msg-%d", len(s.msgs)+1)
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	s.msgs = append(s.msgs, m)
	return m, nil
}

func (s *fakeStore) FindConversation(_ context.Context, a, b string) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	out := []*models.Message{}
	for _, m := range s.msgs {
		if (m.Sender == a && m.Receiver == b) || (m.Sender == b && m.Receiver == a) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

type published struct {
	channel string
	event   string
	payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, channel, event string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, published{channel: channel, event: event, payload: payload})
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
