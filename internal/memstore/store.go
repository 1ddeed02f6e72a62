// Package memstore keeps every repository in process memory. It backs
// STORE_DRIVER=memory and the handler tests.
package memstore

import (
	"sync"
	"time"

	"github.com/foody-app/foody-api/internal/announcement"
	"github.com/foody-app/foody-api/internal/bill"
	"github.com/foody-app/foody-api/internal/cart"
	"github.com/foody-app/foody-api/internal/category"
	"github.com/foody-app/foody-api/internal/order"
	"github.com/foody-app/foody-api/internal/product"
	"github.com/foody-app/foody-api/internal/review"
	"github.com/foody-app/foody-api/internal/stats"
	"github.com/foody-app/foody-api/internal/user"
)

var (
	_ user.Repository         = (*Users)(nil)
	_ category.Repository     = (*Categories)(nil)
	_ product.Repository      = (*Products)(nil)
	_ cart.Repository         = (*Carts)(nil)
	_ order.Repository        = (*Orders)(nil)
	_ bill.Repository         = (*Bills)(nil)
	_ review.Repository       = (*Reviews)(nil)
	_ announcement.Repository = (*Announcements)(nil)
	_ stats.Store             = (*Stats)(nil)
)

type cartLine struct {
	productID string
	qty       int
}

type cartRec struct {
	id      string
	lines   []cartLine
	updated time.Time
}

// Store owns all tables behind one lock, so cross-entity writes (order
// creation clearing the cart, bill payment flagging the order) are atomic.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users         map[string]*user.User
	categories    map[string]*category.Category
	products      map[string]*product.Product
	carts         map[string]*cartRec // by user id
	orders        map[string]*order.Order
	bills         map[string]*bill.Bill
	reviews       map[string]*review.Review
	announcements map[string]*announcement.Announcement

	// insertion order, oldest first
	userIDs, productIDs, orderIDs, billIDs, reviewIDs, announcementIDs []string
}

func New() *Store {
	return &Store{
		now:           func() time.Time { return time.Now().UTC() },
		users:         map[string]*user.User{},
		categories:    map[string]*category.Category{},
		products:      map[string]*product.Product{},
		carts:         map[string]*cartRec{},
		orders:        map[string]*order.Order{},
		bills:         map[string]*bill.Bill{},
		reviews:       map[string]*review.Review{},
		announcements: map[string]*announcement.Announcement{},
	}
}

func (s *Store) Users() *Users                 { return &Users{s} }
func (s *Store) Categories() *Categories       { return &Categories{s} }
func (s *Store) Products() *Products           { return &Products{s} }
func (s *Store) Carts() *Carts                 { return &Carts{s} }
func (s *Store) Orders() *Orders               { return &Orders{s} }
func (s *Store) Bills() *Bills                 { return &Bills{s} }
func (s *Store) Reviews() *Reviews             { return &Reviews{s} }
func (s *Store) Announcements() *Announcements { return &Announcements{s} }
func (s *Store) Stats() *Stats                 { return &Stats{s} }

// page applies offset and limit to items; a non-positive limit keeps everything after offset.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
