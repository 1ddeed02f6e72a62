package announcement

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service { return &Service{repo: repo, now: time.Now} }

func (s *Service) Create(ctx context.Context, authorID string, in CreateRequest) (*Announcement, error) {
	a := &Announcement{
		Title:     strings.TrimSpace(in.Title),
		Body:      strings.TrimSpace(in.Body),
		Priority:  PriorityNormal,
		Active:    in.Active == nil || *in.Active,
		ExpiresAt: in.ExpiresAt,
		CreatedBy: authorID,
	}
	if in.Priority != "" {
		a.Priority = Priority(in.Priority)
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListPublic returns active, unexpired announcements, newest first.
func (s *Service) ListPublic(ctx context.Context) ([]Announcement, error) {
	out, _, err := s.repo.List(ctx, Query{Public: true, Now: s.now().UTC()})
	return out, err
}

// ListAll returns every announcement, including inactive and expired ones.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Announcement, int64, error) {
	return s.repo.List(ctx, Query{Limit: limit, Offset: offset})
}

func (s *Service) Get(ctx context.Context, id string) (*Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateRequest) (*Announcement, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		a.Title = strings.TrimSpace(*in.Title)
	}
	if in.Body != nil {
		a.Body = strings.TrimSpace(*in.Body)
	}
	if in.Priority != nil {
		a.Priority = Priority(*in.Priority)
	}
	if in.Active != nil {
		a.Active = *in.Active
	}
	if in.ExpiresAt != nil {
		a.ExpiresAt = in.ExpiresAt
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
