package cart

import (
	"context"
	"sync"
	"time"

	"madaba-market-be/internal/logger"
	"madaba-market-be/internal/product"

	"go.uber.org/zap"
)

const defaultDebounce = time.Second

// Engine holds one session's cart and enforces the single-seller invariant:
// all items belong to the seller that locked the cart, and the lock clears
// when the last item is removed. Engines are created per session, never
// shared between users.
type Engine struct {
	mu        sync.Mutex
	namespace string
	owner     string
	items     []Item
	sellerID  *string

	store    Store
	mirror   Mirror
	debounce time.Duration
	timer    *time.Timer
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewEngine builds an engine for one owner. mirror may be nil for guest
// sessions; the cart then lives in the local store only.
func NewEngine(namespace, owner string, store Store, mirror Mirror) *Engine {
	e := &Engine{
		namespace: namespace,
		owner:     owner,
		store:     store,
		mirror:    mirror,
		debounce:  defaultDebounce,
		stopCh:    make(chan struct{}),
	}

	if snap, ok, err := store.Load(namespace, owner); err == nil && ok {
		e.items = snap.Items
		e.sellerID = snap.SellerID
	}

	if mirror != nil && owner != GuestOwner {
		go e.watchRemote()
	}

	return e
}

// Add inserts a product or increments its line. An add from a different
// seller is rejected without mutating the cart unless replace is set, which
// discards the current cart and starts a fresh one under the new seller.
func (e *Engine) Add(ctx context.Context, p product.Product, replace bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sellerID != nil && *e.sellerID != p.SellerID {
		if !replace {
			return ErrSellerConflict
		}
		e.items = nil
		e.sellerID = nil
	}

	if e.sellerID == nil {
		sellerID := p.SellerID
		e.sellerID = &sellerID
	}

	for i := range e.items {
		if e.items[i].Product.ID == p.ID {
			e.items[i].Quantity++
			e.persist(ctx)
			return nil
		}
	}

	e.items = append(e.items, Item{Product: p, Quantity: 1})
	e.persist(ctx)
	return nil
}

// UpdateQuantity sets a line's quantity; zero or negative removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return e.Remove(ctx, productID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].Product.ID == productID {
			e.items[i].Quantity = qty
			e.persist(ctx)
			return nil
		}
	}
	return ErrItemNotFound
}

func (e *Engine) Remove(ctx context.Context, productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].Product.ID == productID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			if len(e.items) == 0 {
				e.sellerID = nil
			}
			e.persist(ctx)
			return nil
		}
	}
	return ErrItemNotFound
}

func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.sellerID = nil
	e.persist(ctx)
	return nil
}

// Snapshot returns a copy of the current cart state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	items := make([]Item, len(e.items))
	copy(items, e.items)

	var sellerID *string
	if e.sellerID != nil {
		s := *e.sellerID
		sellerID = &s
	}
	return Snapshot{Items: items, SellerID: sellerID}
}

// Close stops the debounce timer and the remote watcher.
func (e *Engine) Close() {
	e.stopOnce.Do(func() {
		close(e.stopCh)
		e.mu.Lock()
		if e.timer != nil {
			e.timer.Stop()
		}
		e.mu.Unlock()
	})
}

// persist writes the snapshot to the local store synchronously and schedules
// the debounced remote upsert. Callers hold e.mu.
func (e *Engine) persist(ctx context.Context) {
	snap := e.snapshotLocked()

	if err := e.store.Save(e.namespace, e.owner, snap); err != nil {
		logger.FromCtx(ctx).Error("failed to save cart locally",
			zap.String("owner", e.owner),
			zap.Error(err),
		)
	}

	if e.mirror == nil || e.owner == GuestOwner {
		return
	}

	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		e.syncRemote()
	})
}

// syncRemote pushes the current snapshot to the remote row. Last writer
// wins; failures are logged and swallowed, the local cart stays usable.
func (e *Engine) syncRemote() {
	select {
	case <-e.stopCh:
		return
	default:
	}

	snap := e.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.mirror.Upsert(ctx, e.owner, snap); err != nil {
		logger.L().Warn("cart remote sync failed",
			zap.String("owner", e.owner),
			zap.Error(err),
		)
	}
}

// watchRemote applies out-of-band changes to the remote row (for example a
// second device editing the same cart) back into local state.
func (e *Engine) watchRemote() {
	var lastSeen time.Time

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		snap, updatedAt, err := e.mirror.Fetch(ctx, e.owner)
		cancel()
		if err != nil {
			continue
		}
		if snap == nil || !updatedAt.After(lastSeen) {
			continue
		}
		lastSeen = updatedAt

		e.mu.Lock()
		e.items = snap.Items
		e.sellerID = snap.SellerID
		_ = e.store.Save(e.namespace, e.owner, *snap)
		e.mu.Unlock()
	}
}
