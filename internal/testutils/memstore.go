package testutils

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/constants"
	"github.com/AlenaMolokova/gamehub/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// MemStore is an in-memory models.TxStore. Inside RunInTx, LockUser and
// LockPendingRequest hold a per-row mutex until the transaction ends, and
// every write is undone when fn returns an error. Calls made outside RunInTx
// autocommit and take no row locks.
type MemStore struct {
	*memTx

	mu       sync.Mutex
	users    map[int64]models.User
	requests map[uuid.UUID]models.Request
	seq      map[uuid.UUID]int64
	messages []models.SupportMessage
	nextSeq  int64
	rowLocks map[string]*sync.Mutex

	Now func() time.Time
}

var _ models.TxStore = (*MemStore)(nil)

func NewMemStore() *MemStore {
	s := &MemStore{
		users:    make(map[int64]models.User),
		requests: make(map[uuid.UUID]models.Request),
		seq:      make(map[uuid.UUID]int64),
		rowLocks: make(map[string]*sync.Mutex),
		Now:      time.Now,
	}
	s.memTx = &memTx{s: s}
	return s
}

// AddUser seeds a user row. A zero CreatedAt is filled from Now.
func (s *MemStore) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !u.CreatedAt.Valid {
		u.CreatedAt = pgtype.Timestamptz{Time: s.Now(), Valid: true}
	}
	s.users[u.ID] = u
}

func (s *MemStore) User(id int64) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *MemStore) Request(id uuid.UUID) (models.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	return r, ok
}

func (s *MemStore) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *MemStore) RunInTx(ctx context.Context, fn func(store models.Store) error) error {
	tx := &memTx{s: s, held: make(map[string]*sync.Mutex)}
	defer tx.release()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

type memTx struct {
	s    *MemStore
	held map[string]*sync.Mutex
	undo []func()
}

func (t *memTx) lock(key string) {
	if t.held == nil {
		return
	}
	if _, ok := t.held[key]; ok {
		return
	}
	t.s.mu.Lock()
	m, ok := t.s.rowLocks[key]
	if !ok {
		m = &sync.Mutex{}
		t.s.rowLocks[key] = m
	}
	t.s.mu.Unlock()

	m.Lock()
	t.held[key] = m
}

func (t *memTx) release() {
	for _, m := range t.held {
		m.Unlock()
	}
	t.held = nil
}

func (t *memTx) rollback() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// onRollback must be called with s.mu held.
func (t *memTx) onRollback(fn func()) {
	if t.held != nil {
		t.undo = append(t.undo, fn)
	}
}

func (t *memTx) updateUser(id int64, apply func(u *models.User)) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	prev, ok := t.s.users[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	next := prev
	apply(&next)
	t.s.users[id] = next
	t.onRollback(func() { t.s.users[id] = prev })
	return nil
}

func (t *memTx) GetUser(_ context.Context, id int64) (models.User, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	u, ok := t.s.users[id]
	if !ok {
		return models.User{}, models.ErrRecordNotFound
	}
	return u, nil
}

func (t *memTx) LockUser(ctx context.Context, id int64) (models.User, error) {
	t.lock(fmt.Sprintf("user:%d", id))
	return t.GetUser(ctx, id)
}

func (t *memTx) ListUsers(_ context.Context) ([]models.User, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	users := make([]models.User, 0, len(t.s.users))
	for _, u := range t.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Time.Equal(users[j].CreatedAt.Time) {
			return users[i].CreatedAt.Time.After(users[j].CreatedAt.Time)
		}
		return users[i].ID > users[j].ID
	})
	return users, nil
}

func (t *memTx) UpdateUser(_ context.Context, update models.UserUpdate) error {
	return t.updateUser(update.ID, func(u *models.User) {
		u.Balance = update.Balance
		u.ReferralCount = update.ReferralCount
	})
}

func (t *memTx) SetBan(_ context.Context, id int64, banned bool, reason string) error {
	return t.updateUser(id, func(u *models.User) {
		u.IsBanned = banned
		u.BanReason = pgtype.Text{String: reason, Valid: banned}
	})
}

func (t *memTx) DeleteUser(_ context.Context, id int64) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	prev, ok := t.s.users[id]
	if !ok {
		return models.ErrRecordNotFound
	}
	delete(t.s.users, id)
	t.onRollback(func() { t.s.users[id] = prev })
	return nil
}

func (t *memTx) DebitBalance(_ context.Context, id int64, amount decimal.Decimal) error {
	return t.updateUser(id, func(u *models.User) {
		u.Balance = u.Balance.Sub(amount)
	})
}

func (t *memTx) GrantVIP(_ context.Context, id int64, expiresAt time.Time) error {
	return t.updateUser(id, func(u *models.User) {
		u.IsVIP = true
		u.VIPExpiresAt = pgtype.Timestamptz{Time: expiresAt, Valid: true}
	})
}

func (t *memTx) ExpireVIP(_ context.Context, now time.Time) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	var n int64
	for id, u := range t.s.users {
		if !u.IsVIP || !u.VIPExpiresAt.Valid || u.VIPExpiresAt.Time.After(now) {
			continue
		}
		prev := u
		u.IsVIP = false
		t.s.users[id] = u
		t.onRollback(func() { t.s.users[id] = prev })
		n++
	}
	return n, nil
}

func (t *memTx) CreateRequest(_ context.Context, req models.Request) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.requests[req.ID]; ok {
		return models.ErrDuplicate
	}
	if req.Kind == constants.KindVIP && req.Status == constants.StatusPending {
		for _, r := range t.s.requests {
			if r.Kind == constants.KindVIP && r.Status == constants.StatusPending && r.UserID == req.UserID {
				return models.ErrDuplicate
			}
		}
	}
	t.s.nextSeq++
	t.s.requests[req.ID] = req
	t.s.seq[req.ID] = t.s.nextSeq
	t.onRollback(func() {
		delete(t.s.requests, req.ID)
		delete(t.s.seq, req.ID)
	})
	return nil
}

func (t *memTx) GetRequest(_ context.Context, kind string, id uuid.UUID) (models.Request, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	r, ok := t.s.requests[id]
	if !ok || r.Kind != kind {
		return models.Request{}, models.ErrRecordNotFound
	}
	return r, nil
}

// LockPendingRequest waits for the row lock first and checks the status
// afterwards, the way FOR UPDATE re-evaluates its predicate.
func (t *memTx) LockPendingRequest(ctx context.Context, kind string, id uuid.UUID) (models.Request, error) {
	t.lock("request:" + id.String())
	r, err := t.GetRequest(ctx, kind, id)
	if err != nil {
		return models.Request{}, err
	}
	if r.Status != constants.StatusPending {
		return models.Request{}, models.ErrRecordNotFound
	}
	return r, nil
}

func (t *memTx) ResolveRequest(_ context.Context, params models.ResolveRequestParams) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	prev, ok := t.s.requests[params.ID]
	if !ok || prev.Kind != params.Kind || prev.Status != constants.StatusPending {
		return models.ErrRecordNotFound
	}
	next := prev
	next.Status = params.Status
	next.ProcessedAt = pgtype.Timestamptz{Time: params.ProcessedAt, Valid: true}
	next.ProcessedByAdminID = pgtype.Int8{Int64: params.AdminID, Valid: true}
	next.AdminNote = pgtype.Text{String: params.AdminNote, Valid: params.AdminNote != ""}
	t.s.requests[params.ID] = next
	t.onRollback(func() { t.s.requests[params.ID] = prev })
	return nil
}

func (t *memTx) ListRequests(_ context.Context, filter models.RequestFilter) ([]models.Request, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	requests := []models.Request{}
	for _, r := range t.s.requests {
		if r.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.UserID != 0 && r.UserID != filter.UserID {
			continue
		}
		requests = append(requests, r)
	}
	sort.Slice(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if !a.CreatedAt.Time.Equal(b.CreatedAt.Time) {
			return a.CreatedAt.Time.After(b.CreatedAt.Time)
		}
		return t.s.seq[a.ID] > t.s.seq[b.ID]
	})
	return requests, nil
}

func (t *memTx) DeleteRequest(_ context.Context, kind string, id uuid.UUID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	prev, ok := t.s.requests[id]
	if !ok || prev.Kind != kind {
		return models.ErrRecordNotFound
	}
	prevSeq := t.s.seq[id]
	delete(t.s.requests, id)
	delete(t.s.seq, id)
	t.onRollback(func() {
		t.s.requests[id] = prev
		t.s.seq[id] = prevSeq
	})
	return nil
}

func (t *memTx) HasPendingRequest(_ context.Context, kind string, userID int64) (bool, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for _, r := range t.s.requests {
		if r.Kind == kind && r.UserID == userID && r.Status == constants.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) SumLockedAmount(_ context.Context, kind string, userID int64) (decimal.Decimal, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	sum := decimal.Zero
	for _, r := range t.s.requests {
		if r.Kind != kind || r.UserID != userID || r.Status == constants.StatusRejected {
			continue
		}
		if r.Amount.Valid {
			sum = sum.Add(r.Amount.Decimal)
		}
	}
	return sum, nil
}

func (t *memTx) IncrementReferralClicks(_ context.Context, referrerID int64) (bool, error) {
	err := t.updateUser(referrerID, func(u *models.User) { u.ReferralClicks++ })
	if errors.Is(err, models.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (t *memTx) IncrementReferralRegistrations(_ context.Context, referrerID int64) error {
	return t.updateUser(referrerID, func(u *models.User) {
		u.ReferralRegistrations++
		u.ReferralCount++
	})
}

func (t *memTx) SetReferredBy(_ context.Context, userID, referrerID int64) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	prev, ok := t.s.users[userID]
	if !ok || prev.ReferredBy.Valid {
		return models.ErrDuplicate
	}
	next := prev
	next.ReferredBy = pgtype.Int8{Int64: referrerID, Valid: true}
	t.s.users[userID] = next
	t.onRollback(func() { t.s.users[userID] = prev })
	return nil
}

func (t *memTx) CreateSupportMessage(_ context.Context, msg models.SupportMessage) (models.SupportMessage, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	msg.ID = int64(len(t.s.messages) + 1)
	msg.CreatedAt = pgtype.Timestamptz{Time: t.s.Now(), Valid: true}
	t.s.messages = append(t.s.messages, msg)
	n := len(t.s.messages) - 1
	t.onRollback(func() { t.s.messages = t.s.messages[:n] })
	return msg, nil
}

func (t *memTx) GetSupportThread(_ context.Context, userID int64) ([]models.SupportMessage, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	thread := []models.SupportMessage{}
	for _, m := range t.s.messages {
		if m.UserID == userID {
			thread = append(thread, m)
		}
	}
	return thread, nil
}

func (t *memTx) markRead(userID int64, adminReplies bool) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i, m := range t.s.messages {
		if m.UserID != userID || m.IsAdminReply != adminReplies || m.IsRead {
			continue
		}
		i := i
		t.s.messages[i].IsRead = true
		t.onRollback(func() { t.s.messages[i].IsRead = false })
	}
}

func (t *memTx) MarkAdminRepliesRead(_ context.Context, userID int64) error {
	t.markRead(userID, true)
	return nil
}

func (t *memTx) MarkUserMessagesRead(_ context.Context, userID int64) error {
	t.markRead(userID, false)
	return nil
}

func (t *memTx) ListSupportChats(_ context.Context) ([]models.ChatSummary, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	byUser := make(map[int64]*models.ChatSummary)
	for _, m := range t.s.messages {
		c, ok := byUser[m.UserID]
		if !ok {
			c = &models.ChatSummary{UserID: m.UserID}
			byUser[m.UserID] = c
		}
		c.Username = m.Username
		c.LastMessage = m.Message
		c.LastMessageTime = m.CreatedAt
		if !m.IsAdminReply && !m.IsRead {
			c.UnreadCount++
		}
	}
	chats := make([]models.ChatSummary, 0, len(byUser))
	for _, c := range byUser {
		chats = append(chats, *c)
	}
	sort.Slice(chats, func(i, j int) bool {
		if !chats[i].LastMessageTime.Time.Equal(chats[j].LastMessageTime.Time) {
			return chats[i].LastMessageTime.Time.After(chats[j].LastMessageTime.Time)
		}
		return chats[i].UserID > chats[j].UserID
	})
	return chats, nil
}
