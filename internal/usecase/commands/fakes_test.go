//go:build unit

package commands_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"marketcart/internal/domain/cart"
	"marketcart/internal/domain/inventory"
	"marketcart/internal/domain/order"
	"marketcart/internal/domain/session"
	"marketcart/internal/infra"
	"marketcart/internal/pkg/errs"
	"marketcart/internal/usecase/commands"
	"marketcart/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory stand-in for the Postgres unit of work. Each Within call runs
// against a copy of the state and commits by swapping it in, so a failing
// transaction leaves no partial writes, the same all-or-nothing contract
// the real implementation provides. The mutex serializes transactions the
// way row locks do.
type fakeUoW struct {
	mu              sync.Mutex
	state           *fakeState
	failOrderInsert bool
}

type stockRow struct {
	available int
	reserved  int
}

type fakeState struct {
	stock    map[string]*stockRow
	sessions map[uuid.UUID]shared.SessionSnapshot
	lines    map[uuid.UUID]map[string]shared.CartLineSnapshot
	orders   []*order.Order
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{
		state: &fakeState{
			stock:    map[string]*stockRow{},
			sessions: map[uuid.UUID]shared.SessionSnapshot{},
			lines:    map[uuid.UUID]map[string]shared.CartLineSnapshot{},
		},
	}
}

func (s *fakeState) clone() *fakeState {
	next := &fakeState{
		stock:    make(map[string]*stockRow, len(s.stock)),
		sessions: make(map[uuid.UUID]shared.SessionSnapshot, len(s.sessions)),
		lines:    make(map[uuid.UUID]map[string]shared.CartLineSnapshot, len(s.lines)),
		orders:   append([]*order.Order(nil), s.orders...),
	}
	for sku, row := range s.stock {
		copied := *row
		next.stock[sku] = &copied
	}
	for id, snap := range s.sessions {
		next.sessions[id] = snap
	}
	for id, bySKU := range s.lines {
		copied := make(map[string]shared.CartLineSnapshot, len(bySKU))
		for sku, line := range bySKU {
			copied[sku] = line
		}
		next.lines[id] = copied
	}
	return next
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	work := u.state.clone()
	tx := &fakeTx{state: work, failOrderInsert: u.failOrderInsert}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	u.state = work
	return nil
}

func (u *fakeUoW) seedStock(sku string, available int) {
	u.state.stock[sku] = &stockRow{available: available}
}

func (u *fakeUoW) seedSession(id uuid.UUID, status session.Status) {
	now := time.Now()
	u.state.sessions[id] = shared.SessionSnapshot{ID: id, Status: status.String(), CreatedAt: now, UpdatedAt: now}
}

func (u *fakeUoW) stockRow(sku string) stockRow {
	u.mu.Lock()
	defer u.mu.Unlock()
	return *u.state.stock[sku]
}

func (u *fakeUoW) sessionStatus(id uuid.UUID) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state.sessions[id].Status
}

func (u *fakeUoW) cartLines(sessionID uuid.UUID) map[string]shared.CartLineSnapshot {
	u.mu.Lock()
	defer u.mu.Unlock()
	copied := make(map[string]shared.CartLineSnapshot, len(u.state.lines[sessionID]))
	for sku, line := range u.state.lines[sessionID] {
		copied[sku] = line
	}
	return copied
}

func (u *fakeUoW) insertedOrders() []*order.Order {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]*order.Order(nil), u.state.orders...)
}

type fakeTx struct {
	state           *fakeState
	failOrderInsert bool
}

func (t *fakeTx) Stock() shared.StockRepository      { return &fakeStockRepo{state: t.state} }
func (t *fakeTx) Carts() shared.CartRepository       { return &fakeCartRepo{state: t.state} }
func (t *fakeTx) Sessions() shared.SessionRepository { return &fakeSessionRepo{state: t.state} }
func (t *fakeTx) Orders() shared.OrderRepository {
	return &fakeOrderRepo{state: t.state, fail: t.failOrderInsert}
}

type fakeStockRepo struct {
	state *fakeState
}

func (r *fakeStockRepo) Reserve(_ context.Context, sku string, qty int) (int, error) {
	row, ok := r.state.stock[sku]
	if !ok {
		return 0, infra.WrapRepoErr(infra.KindNotFound, "unknown sku "+sku, nil)
	}
	if row.available < qty {
		return 0, &inventory.InsufficientStockError{SKU: sku, Requested: qty, Available: row.available}
	}
	row.available -= qty
	row.reserved += qty
	return row.available, nil
}

func (r *fakeStockRepo) Release(_ context.Context, sku string, qty int) (int, error) {
	row, ok := r.state.stock[sku]
	if !ok {
		return 0, infra.WrapRepoErr(infra.KindNotFound, "unknown sku "+sku, nil)
	}
	if row.reserved < qty {
		return 0, errs.Mark(errs.New("release of "+sku+" exceeds reserved quantity"), errs.ErrOverRelease)
	}
	row.available += qty
	row.reserved -= qty
	return row.available, nil
}

func (r *fakeStockRepo) CommitReserved(_ context.Context, sku string, qty int) error {
	row, ok := r.state.stock[sku]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "unknown sku "+sku, nil)
	}
	if row.reserved < qty {
		return errs.Mark(errs.New("commit of "+sku+" exceeds reserved quantity"), errs.ErrOverRelease)
	}
	row.reserved -= qty
	return nil
}

type fakeCartRepo struct {
	state *fakeState
}

func (r *fakeCartRepo) UpsertLine(_ context.Context, line *cart.Line) (int, error) {
	bySKU := r.state.lines[line.SessionID()]
	if bySKU == nil {
		bySKU = map[string]shared.CartLineSnapshot{}
		r.state.lines[line.SessionID()] = bySKU
	}
	sku := line.SKU().String()
	if existing, ok := bySKU[sku]; ok {
		// Conflict update grows quantity only; the first add's price snapshot
		// and added_at stay.
		existing.Quantity += line.Quantity().Value()
		bySKU[sku] = existing
		return existing.Quantity, nil
	}
	bySKU[sku] = shared.CartLineSnapshot{
		SessionID:  line.SessionID(),
		ProductSKU: sku,
		Quantity:   line.Quantity().Value(),
		UnitPrice:  line.UnitPrice().Amount(),
		VendorRef:  line.VendorRef().String(),
		AddedAt:    line.AddedAt(),
	}
	return line.Quantity().Value(), nil
}

func (r *fakeCartRepo) FindLine(_ context.Context, sessionID uuid.UUID, sku string) (*shared.CartLineSnapshot, error) {
	line, ok := r.state.lines[sessionID][sku]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "cart item not found", nil)
	}
	return &line, nil
}

func (r *fakeCartRepo) DeleteLine(_ context.Context, sessionID uuid.UUID, sku string) error {
	if _, ok := r.state.lines[sessionID][sku]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "cart item not found", nil)
	}
	delete(r.state.lines[sessionID], sku)
	return nil
}

func (r *fakeCartRepo) Clear(_ context.Context, sessionID uuid.UUID) error {
	delete(r.state.lines, sessionID)
	return nil
}

func (r *fakeCartRepo) ListForUpdate(_ context.Context, sessionID uuid.UUID) ([]shared.CartLineSnapshot, error) {
	lines := make([]shared.CartLineSnapshot, 0, len(r.state.lines[sessionID]))
	for _, line := range r.state.lines[sessionID] {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].AddedAt.Equal(lines[j].AddedAt) {
			return lines[i].ProductSKU < lines[j].ProductSKU
		}
		return lines[i].AddedAt.Before(lines[j].AddedAt)
	})
	return lines, nil
}

type fakeOrderRepo struct {
	state *fakeState
	fail  bool
}

func (r *fakeOrderRepo) InsertAll(_ context.Context, orders []*order.Order) error {
	if r.fail {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert order records", nil)
	}
	r.state.orders = append(r.state.orders, orders...)
	return nil
}

type fakeSessionRepo struct {
	state *fakeState
}

func (r *fakeSessionRepo) Create(_ context.Context, s *session.Session) error {
	r.state.sessions[s.ID()] = shared.SessionSnapshot{
		ID:        s.ID(),
		Status:    s.Status().String(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
	return nil
}

func (r *fakeSessionRepo) FindForUpdate(_ context.Context, id uuid.UUID) (*shared.SessionSnapshot, error) {
	snap, ok := r.state.sessions[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "session not found", nil)
	}
	return &snap, nil
}

func (r *fakeSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status session.Status, now time.Time) error {
	snap, ok := r.state.sessions[id]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "session not found", nil)
	}
	snap.Status = status.String()
	snap.UpdatedAt = now
	r.state.sessions[id] = snap
	return nil
}

type stockChange struct {
	sku            string
	unitsAvailable int
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []stockChange
}

func (n *recordingNotifier) StockChanged(_ context.Context, sku string, unitsAvailable int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, stockChange{sku: sku, unitsAvailable: unitsAvailable})
	return nil
}

func (n *recordingNotifier) changes() []stockChange {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]stockChange(nil), n.calls...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []commands.OrderCreatedEvent
	err    error
}

func (p *recordingPublisher) OrdersCreated(_ context.Context, events []commands.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) published() []commands.OrderCreatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]commands.OrderCreatedEvent(nil), p.events...)
}
