package fakeuserrepo

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-ukci-client/internal/errors"
	"github.com/jrsteele09/go-ukci-client/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

// FakeUserRepo keeps accounts in memory, keyed by ID with a normalised email index.
// Reads hand back copies so handlers cannot mutate stored accounts.
type FakeUserRepo struct {
	users   map[users.ID]*users.User
	byEmail map[string]users.ID
	nowFunc func() time.Time
	lock    sync.RWMutex
}

type Option func(*FakeUserRepo)

func WithNowFunc(nowFunc func() time.Time) Option {
	return func(ur *FakeUserRepo) {
		ur.nowFunc = nowFunc
	}
}

func NewFakeUserRepo(opts ...Option) *FakeUserRepo {
	ur := &FakeUserRepo{
		users:   make(map[users.ID]*users.User),
		byEmail: make(map[string]users.ID),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(ur)
	}
	return ur
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	if emailKey(user.Email) == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "[FakeUserRepo.Upsert] email required")
	}
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = users.ID(uuid.New().String())
	}
	if previous, ok := ur.users[user.ID]; ok {
		delete(ur.byEmail, emailKey(previous.Email))
	}
	stored := *user
	ur.users[user.ID] = &stored
	ur.byEmail[emailKey(user.Email)] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	id, ok := ur.byEmail[emailKey(email)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "[FakeUserRepo.GetByEmail] %s", email)
	}
	copied := *ur.users[id]
	return &copied, nil
}

func (ur *FakeUserRepo) GetByID(id users.ID) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "[FakeUserRepo.GetByID] %s", id)
	}
	copied := *user
	return &copied, nil
}

func (ur *FakeUserRepo) SetLastLogin(email string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	id, ok := ur.byEmail[emailKey(email)]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "[FakeUserRepo.SetLastLogin] %s", email)
	}
	ur.users[id].LastLogin = ur.nowFunc()
	return nil
}
