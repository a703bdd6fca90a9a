// Package memstore keeps every aggregate in process memory. It backs the
// "memory" driver for local runs and the service tests.
package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/Abraxas-365/hrms/pkg/iam/user"
	"github.com/Abraxas-365/hrms/pkg/kernel"
	"github.com/Abraxas-365/hrms/pkg/recruitment/application"
	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
	"github.com/Abraxas-365/hrms/pkg/recruitment/job"
	"github.com/Abraxas-365/hrms/pkg/recruitment/letter"
	"github.com/Abraxas-365/hrms/pkg/recruitment/onboarding"
)

type txKey struct{}

// Store holds the data. Transactions are serialized and roll back by
// restoring a snapshot; reads and writes outside a transaction wait for it to
// finish.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data tables
}

type tables struct {
	users       map[kernel.UserID]user.User
	jobs        map[kernel.JobID]job.Job
	apps        map[kernel.ApplicationID]application.Application
	rounds      map[kernel.RoundID]interview.Round
	sessions    map[kernel.SessionID]interview.Session
	onboardings map[kernel.ApplicationID]onboarding.Onboarding
	letters     map[kernel.LetterID]letter.Letter
}

func New() *Store {
	return &Store{data: tables{
		users:       map[kernel.UserID]user.User{},
		jobs:        map[kernel.JobID]job.Job{},
		apps:        map[kernel.ApplicationID]application.Application{},
		rounds:      map[kernel.RoundID]interview.Round{},
		sessions:    map[kernel.SessionID]interview.Session{},
		onboardings: map[kernel.ApplicationID]onboarding.Onboarding{},
		letters:     map[kernel.LetterID]letter.Letter{},
	}}
}

func (t tables) clone() tables {
	c := tables{
		users:       make(map[kernel.UserID]user.User, len(t.users)),
		jobs:        make(map[kernel.JobID]job.Job, len(t.jobs)),
		apps:        make(map[kernel.ApplicationID]application.Application, len(t.apps)),
		rounds:      make(map[kernel.RoundID]interview.Round, len(t.rounds)),
		sessions:    make(map[kernel.SessionID]interview.Session, len(t.sessions)),
		onboardings: make(map[kernel.ApplicationID]onboarding.Onboarding, len(t.onboardings)),
		letters:     make(map[kernel.LetterID]letter.Letter, len(t.letters)),
	}
	for k, v := range t.users {
		c.users[k] = copyUser(v)
	}
	for k, v := range t.jobs {
		c.jobs[k] = v
	}
	for k, v := range t.apps {
		c.apps[k] = v
	}
	for k, v := range t.rounds {
		c.rounds[k] = v
	}
	for k, v := range t.sessions {
		c.sessions[k] = v
	}
	for k, v := range t.onboardings {
		c.onboardings[k] = copyOnboarding(v)
	}
	for k, v := range t.letters {
		c.letters[k] = copyLetter(v)
	}
	return c
}

// WithinTx implements dbx.TxRunner.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write runs fn under the write lock, waiting for any open transaction unless
// ctx belongs to it.
func (s *Store) write(ctx context.Context, fn func(t *tables) error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

// read runs fn under the read lock. Outside a transaction it also waits for
// any open one, so callers never see rows a rollback is about to undo.
func (s *Store) read(ctx context.Context, fn func(t *tables)) {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

func copyUser(u user.User) user.User {
	u.Scopes = slices.Clone(u.Scopes)
	if u.LastLoginAt != nil {
		t := *u.LastLoginAt
		u.LastLoginAt = &t
	}
	return u
}

func copyOnboarding(o onboarding.Onboarding) onboarding.Onboarding {
	o.InterviewSessionIDs = slices.Clone(o.InterviewSessionIDs)
	return o
}

func copyLetter(l letter.Letter) letter.Letter {
	if l.SentAt != nil {
		t := *l.SentAt
		l.SentAt = &t
	}
	return l
}

// Repository accessors.

func (s *Store) Users() *UserRepository               { return &UserRepository{s} }
func (s *Store) Jobs() *JobRepository                 { return &JobRepository{s} }
func (s *Store) Applications() *ApplicationRepository { return &ApplicationRepository{s} }
func (s *Store) Rounds() *RoundRepository             { return &RoundRepository{s} }
func (s *Store) Sessions() *SessionRepository         { return &SessionRepository{s} }
func (s *Store) Onboardings() *OnboardingRepository   { return &OnboardingRepository{s} }
func (s *Store) Letters() *LetterRepository           { return &LetterRepository{s} }
