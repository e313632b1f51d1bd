//go:build unit

package commands_test

import (
	"context"
	"errors"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/order"
	"storefront/internal/infra"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errBoom = errors.New("boom")

func newNotFoundErr() error {
	return infra.WrapRepoErr("not found", errBoom, infra.KindNotFound)
}

// ---- unit of work ----

type stubUoW struct {
	orders   *stubOrderRepo
	products *stubProductRepo
	beginErr error
}

func newStubUoW() *stubUoW {
	return &stubUoW{
		orders:   newStubOrderRepo(),
		products: newStubProductRepo(),
	}
}

// Within mimics transaction semantics: when fn errors, every write made
// through the tx is rolled back.
func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx commands.Tx) error) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	ordersBefore := u.orders.snapshot()
	productsBefore := u.products.snapshot()
	if err := fn(ctx, stubTx{u}); err != nil {
		u.orders.restore(ordersBefore)
		u.products.restore(productsBefore)
		return err
	}
	return nil
}

type stubTx struct{ uow *stubUoW }

func (t stubTx) Orders() commands.OrderRepository     { return t.uow.orders }
func (t stubTx) Products() commands.ProductRepository { return t.uow.products }

// ---- order repository ----

type createdOrder struct {
	ID    int64
	Order *order.Order
}

type stubOrderRepo struct {
	nextID  int64
	created []createdOrder
	items   map[int64][]order.Line
	// payment references by order id
	payments map[int64]string
	statuses map[int64]order.Status
	deleted  []int64

	createErr    error
	addItemErr   error
	setPayErr    error
	setStatusErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		nextID:   1,
		items:    make(map[int64][]order.Line),
		payments: make(map[int64]string),
		statuses: make(map[int64]order.Status),
	}
}

func (r *stubOrderRepo) snapshot() stubOrderRepo {
	cp := stubOrderRepo{
		nextID:   r.nextID,
		created:  append([]createdOrder(nil), r.created...),
		items:    make(map[int64][]order.Line, len(r.items)),
		payments: make(map[int64]string, len(r.payments)),
		statuses: make(map[int64]order.Status, len(r.statuses)),
		deleted:  append([]int64(nil), r.deleted...),
	}
	for id, lines := range r.items {
		cp.items[id] = append([]order.Line(nil), lines...)
	}
	for id, ref := range r.payments {
		cp.payments[id] = ref
	}
	for id, st := range r.statuses {
		cp.statuses[id] = st
	}
	return cp
}

func (r *stubOrderRepo) restore(snap stubOrderRepo) {
	r.nextID = snap.nextID
	r.created = snap.created
	r.items = snap.items
	r.payments = snap.payments
	r.statuses = snap.statuses
	r.deleted = snap.deleted
}

func (r *stubOrderRepo) Create(_ context.Context, o *order.Order) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	id := r.nextID
	r.nextID++
	r.created = append(r.created, createdOrder{ID: id, Order: o})
	r.statuses[id] = o.Status()
	return id, nil
}

func (r *stubOrderRepo) AddItem(_ context.Context, orderID int64, line order.Line) error {
	if r.addItemErr != nil {
		return r.addItemErr
	}
	r.items[orderID] = append(r.items[orderID], line)
	return nil
}

func (r *stubOrderRepo) SetPayment(_ context.Context, orderID int64, _, reference string) error {
	if r.setPayErr != nil {
		return r.setPayErr
	}
	r.payments[orderID] = reference
	return nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, orderID int64, status order.Status) error {
	if r.setStatusErr != nil {
		return r.setStatusErr
	}
	r.statuses[orderID] = status
	return nil
}

func (r *stubOrderRepo) Delete(_ context.Context, orderID int64) error {
	r.deleted = append(r.deleted, orderID)
	return nil
}

// ---- product repository ----

type stubProductRepo struct {
	stock    map[int64]int32
	names    map[int64]string
	prices   map[int64]decimal.Decimal
	restored map[int64]int32
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		stock:    make(map[int64]int32),
		names:    make(map[int64]string),
		prices:   make(map[int64]decimal.Decimal),
		restored: make(map[int64]int32),
	}
}

func (r *stubProductRepo) snapshot() stubProductRepo {
	cp := stubProductRepo{
		stock:    make(map[int64]int32, len(r.stock)),
		names:    r.names,
		prices:   r.prices,
		restored: make(map[int64]int32, len(r.restored)),
	}
	for id, s := range r.stock {
		cp.stock[id] = s
	}
	for id, q := range r.restored {
		cp.restored[id] = q
	}
	return cp
}

func (r *stubProductRepo) restore(snap stubProductRepo) {
	r.stock = snap.stock
	r.restored = snap.restored
}

func (r *stubProductRepo) seed(id int64, name string, price string, stock int32) {
	r.stock[id] = stock
	r.names[id] = name
	r.prices[id] = decimal.RequireFromString(price)
}

func (r *stubProductRepo) DecrementStock(_ context.Context, productID int64, quantity int32) (*commands.ProductCharge, error) {
	stock, ok := r.stock[productID]
	if !ok {
		return nil, infra.WrapRepoErr("product not found", errBoom, infra.KindNotFound)
	}
	if stock < quantity {
		return nil, infra.WrapRepoErr("insufficient stock", errBoom, infra.KindInsufficientStock)
	}
	r.stock[productID] = stock - quantity
	return &commands.ProductCharge{Name: r.names[productID], UnitPrice: r.prices[productID]}, nil
}

func (r *stubProductRepo) RestoreStock(_ context.Context, productID int64, quantity int32) error {
	r.stock[productID] += quantity
	r.restored[productID] += quantity
	return nil
}

// ---- cart store ----

type stubCartStore struct {
	snap        cart.Snapshot
	saved       *cart.Snapshot
	cleared     int
	snapshotErr error
	clearErr    error
}

func (s *stubCartStore) Snapshot(_ context.Context, _ uuid.UUID) (cart.Snapshot, error) {
	if s.snapshotErr != nil {
		return cart.Snapshot{}, s.snapshotErr
	}
	return s.snap, nil
}

func (s *stubCartStore) Save(_ context.Context, _ uuid.UUID, snap cart.Snapshot) error {
	s.saved = &snap
	return nil
}

func (s *stubCartStore) Clear(_ context.Context, _ uuid.UUID) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.cleared++
	return nil
}

// ---- user read store ----

type stubUserStore struct {
	payer *commands.Payer
	err   error
}

func (s *stubUserStore) PayerByID(_ context.Context, _ uuid.UUID) (*commands.Payer, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payer, nil
}

// ---- payment gateway ----

type stubGateway struct {
	pref      *commands.Preference
	prefErr   error
	prefCalls []commands.PreferenceRequest

	payment    *commands.Payment
	paymentErr error
	paymentIDs []string
}

func (g *stubGateway) CreatePreference(_ context.Context, req commands.PreferenceRequest) (*commands.Preference, error) {
	g.prefCalls = append(g.prefCalls, req)
	if g.prefErr != nil {
		return nil, g.prefErr
	}
	return g.pref, nil
}

func (g *stubGateway) GetPayment(_ context.Context, paymentID string) (*commands.Payment, error) {
	g.paymentIDs = append(g.paymentIDs, paymentID)
	if paymentID == "" {
		return nil, nil
	}
	if g.paymentErr != nil {
		return nil, g.paymentErr
	}
	return g.payment, nil
}

// ---- notifier ----

type stubNotifier struct {
	calls []int64
	err   error
}

func (n *stubNotifier) OrderCreated(_ context.Context, view *queries.OrderView, _ commands.Payer) error {
	n.calls = append(n.calls, view.ID)
	return n.err
}

// ---- order queries ----

type stubOrderQueries struct {
	views map[int64]*queries.OrderView
}

func newStubOrderQueries() *stubOrderQueries {
	return &stubOrderQueries{views: make(map[int64]*queries.OrderView)}
}

func (q *stubOrderQueries) GetByID(_ context.Context, userID uuid.UUID, id int64) (*queries.OrderView, error) {
	view, ok := q.views[id]
	if !ok || view.UserID != userID {
		return nil, queries.ErrOrderNotFound
	}
	return view, nil
}

func (q *stubOrderQueries) GetByIDSystem(_ context.Context, id int64) (*queries.OrderView, error) {
	view, ok := q.views[id]
	if !ok {
		return nil, queries.ErrOrderNotFound
	}
	return view, nil
}

func (q *stubOrderQueries) ListByUser(_ context.Context, userID uuid.UUID) ([]*queries.OrderListItem, error) {
	var out []*queries.OrderListItem
	for _, view := range q.views {
		if view.UserID == userID {
			out = append(out, &queries.OrderListItem{ID: view.ID, Status: view.Status})
		}
	}
	return out, nil
}

// ---- catalog queries ----

type stubCatalogQueries struct {
	products map[string]*queries.ProductView
}

func (q *stubCatalogQueries) ListProducts(_ context.Context, _ queries.ProductFilter) ([]*queries.ProductView, error) {
	var out []*queries.ProductView
	for _, p := range q.products {
		out = append(out, p)
	}
	return out, nil
}

func (q *stubCatalogQueries) GetProductBySlug(_ context.Context, slug string) (*queries.ProductView, error) {
	p, ok := q.products[slug]
	if !ok {
		return nil, queries.ErrProductNotFound
	}
	return p, nil
}

func (q *stubCatalogQueries) ListCategories(_ context.Context) ([]*queries.CategoryView, error) {
	return nil, nil
}
