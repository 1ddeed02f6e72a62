package memstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foody-app/foody-api/internal/announcement"
)

// Announcements implements announcement.Repository.
type Announcements struct{ s *Store }

func (r *Announcements) Create(_ context.Context, a *announcement.Announcement) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	a.ID = primitive.NewObjectID()
	a.CreatedAt, a.UpdatedAt = now, now
	cp := *a
	id := a.ID.Hex()
	s.announcements[id] = &cp
	s.announcementIDs = append(s.announcementIDs, id)
	return nil
}

func (r *Announcements) GetByID(_ context.Context, id string) (*announcement.Announcement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.announcements[id]
	if !ok {
		return nil, announcement.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *Announcements) List(_ context.Context, q announcement.Query) ([]announcement.Announcement, int64, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []announcement.Announcement{}
	for i := len(s.announcementIDs) - 1; i >= 0; i-- {
		a := s.announcements[s.announcementIDs[i]]
		if q.Public && !a.Visible(q.Now) {
			continue
		}
		out = append(out, *a)
	}
	return page(out, q.Limit, q.Offset), int64(len(out)), nil
}

func (r *Announcements) Update(_ context.Context, a *announcement.Announcement) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	id := a.ID.Hex()
	if _, ok := s.announcements[id]; !ok {
		return announcement.ErrNotFound
	}
	a.UpdatedAt = s.now()
	cp := *a
	s.announcements[id] = &cp
	return nil
}

func (r *Announcements) Delete(_ context.Context, id string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.announcements[id]; !ok {
		return false, nil
	}
	delete(s.announcements, id)
	s.announcementIDs = remove(s.announcementIDs, id)
	return true, nil
}
