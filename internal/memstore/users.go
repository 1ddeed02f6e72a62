package memstore

import (
	"context"
	"strings"

	"github.com/foody-app/foody-api/internal/user"
)

// Users implements user.Repository.
type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u *user.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.users {
		if v.Email == u.Email {
			return user.ErrAlreadyExist
		}
	}
	now := s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := *u
	s.users[u.ID] = &cp
	s.userIDs = append(s.userIDs, u.ID)
	return nil
}

func (r *Users) GetByID(_ context.Context, id string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Users) find(match func(*user.User) bool) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

func (r *Users) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return r.find(func(u *user.User) bool { return u.Email == email })
}

func (r *Users) GetByResetToken(_ context.Context, hash string) (*user.User, error) {
	now := r.s.now()
	return r.find(func(u *user.User) bool {
		return hash != "" && u.ResetTokenHash == hash && u.ResetExpiresAt != nil && u.ResetExpiresAt.After(now)
	})
}

func (r *Users) List(_ context.Context, q user.Query) ([]user.User, int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := []user.User{}
	for i := len(s.userIDs) - 1; i >= 0; i-- {
		u := s.users[s.userIDs[i]]
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) && !strings.Contains(u.Email, search) {
			continue
		}
		if q.Role != "" && string(u.Role) != q.Role {
			continue
		}
		out = append(out, *u)
	}
	return page(out, q.Limit, q.Offset), int64(len(out)), nil
}

func (r *Users) Update(_ context.Context, u *user.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return user.ErrNotFound
	}
	u.UpdatedAt = s.now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (r *Users) Delete(_ context.Context, id string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	for _, o := range s.orders {
		if o.UserID == id {
			return false, user.ErrHasOrders
		}
	}
	delete(s.users, id)
	delete(s.carts, id)
	s.userIDs = remove(s.userIDs, id)
	return true, nil
}
