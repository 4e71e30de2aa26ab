package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/repository"
)

// In-memory fakes for the store interfaces. The transaction fakes support
// failure injection so the atomicity guarantees can be exercised without a
// database.

type fakeCatalog struct {
	products map[int]*models.Product
}

func (f *fakeCatalog) GetByID(id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

type fakeMirror struct {
	mu    sync.Mutex
	carts map[string]models.Cart
	err   error
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{carts: map[string]models.Cart{}}
}

func (f *fakeMirror) Get(ctx context.Context, cartKey string) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append(models.Cart{}, f.carts[cartKey]...), nil
}

func (f *fakeMirror) Set(ctx context.Context, cartKey string, cart models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.carts[cartKey] = append(models.Cart{}, cart...)
	return nil
}

func (f *fakeMirror) Delete(ctx context.Context, cartKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, cartKey)
	return nil
}

type fakeCartStore struct {
	mu      sync.Mutex
	carts   map[int]models.Cart
	saveErr error
	saves   int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[int]models.Cart{}}
}

func (f *fakeCartStore) Get(accountID int) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(models.Cart{}, f.carts[accountID]...), nil
}

func (f *fakeCartStore) Save(accountID int, cart models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.carts[accountID] = append(models.Cart{}, cart...)
	return nil
}

func (f *fakeCartStore) Delete(accountID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, accountID)
	return nil
}

type fakeCouponStore struct {
	coupons map[string]*models.Coupon
}

func (f *fakeCouponStore) GetByCode(code string) (*models.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeCouponStore) Create(c *models.Coupon) error {
	f.coupons[c.Code] = c
	return nil
}

func (f *fakeCouponStore) List() ([]models.Coupon, error) {
	var out []models.Coupon
	for _, c := range f.coupons {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeCouponStore) Delete(code string) error {
	if _, ok := f.coupons[code]; !ok {
		return sql.ErrNoRows
	}
	delete(f.coupons, code)
	return nil
}

// fakeOrderTx records every write and can fail on the Nth line insert or
// refuse a stock decrement.
type fakeOrderTx struct {
	store *fakeOrderStore

	order *models.Order
	lines []models.OrderLine

	committed  bool
	rolledBack bool
}

func (t *fakeOrderTx) InsertOrder(order *models.Order) (int, error) {
	if t.store.headerErr != nil {
		return 0, t.store.headerErr
	}
	t.store.nextID++
	copied := *order
	copied.ID = t.store.nextID
	t.order = &copied
	return copied.ID, nil
}

func (t *fakeOrderTx) InsertLine(line *models.OrderLine) error {
	if t.store.failLineAt > 0 && len(t.lines)+1 == t.store.failLineAt {
		return errors.New("insert failed")
	}
	t.lines = append(t.lines, *line)
	return nil
}

func (t *fakeOrderTx) DecrementProductStock(productID, quantity int) (bool, error) {
	have := t.store.productStock[productID]
	if have < quantity {
		return false, nil
	}
	t.store.productStock[productID] = have - quantity
	return true, nil
}

func (t *fakeOrderTx) DecrementVariationStock(variationID, quantity int) (bool, error) {
	have := t.store.variationStock[variationID]
	if have < quantity {
		return false, nil
	}
	t.store.variationStock[variationID] = have - quantity
	return true, nil
}

func (t *fakeOrderTx) Commit() error {
	if t.store.commitErr != nil {
		return t.store.commitErr
	}
	t.committed = true
	t.store.orders = append(t.store.orders, *t.order)
	t.store.orderLines = append(t.store.orderLines, t.lines...)
	return nil
}

func (t *fakeOrderTx) Rollback() error {
	if t.committed {
		return nil
	}
	t.rolledBack = true
	return nil
}

type fakeOrderStore struct {
	nextID         int
	orders         []models.Order
	orderLines     []models.OrderLine
	productStock   map[int]int
	variationStock map[int]int

	failLineAt int
	headerErr  error
	commitErr  error

	lastTx *fakeOrderTx
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		productStock:   map[int]int{},
		variationStock: map[int]int{},
	}
}

func (f *fakeOrderStore) Begin(ctx context.Context) (repository.OrderTx, error) {
	tx := &fakeOrderTx{store: f}
	f.lastTx = tx
	return tx, nil
}

func (f *fakeOrderStore) findOrder(id int) (*models.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			return &o, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeOrderStore) GetWithLines(id int) (*models.Order, error) {
	o, err := f.findOrder(id)
	if err != nil {
		return nil, err
	}
	for _, l := range f.orderLines {
		if l.OrderID == id {
			o.Lines = append(o.Lines, l)
		}
	}
	return o, nil
}

func (f *fakeOrderStore) ListByAccount(accountID int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.AccountID == accountID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAdmin(filter *repository.OrderFilter) (*repository.OrderListResult, error) {
	return &repository.OrderListResult{
		Orders:     f.orders,
		TotalItems: len(f.orders),
		TotalPages: 1,
		Page:       1,
		Limit:      50,
	}, nil
}

func (f *fakeOrderStore) UpdateStatus(id int, status models.OrderStatus) error {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeOrderStore) GetStats() (*repository.OrderStats, error) {
	return &repository.OrderStats{TotalOrders: len(f.orders)}, nil
}

// fakeReviewTx runs moderation against the store's review map.
type fakeReviewTx struct {
	store *fakeReviewStore

	pendingApprove int
	pendingDelete  int
	aggregates     *RecomputeResult

	committed  bool
	rolledBack bool
}

func (t *fakeReviewTx) GetReview(id int) (*models.Review, error) {
	r, ok := t.store.reviews[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *r
	return &copied, nil
}

func (t *fakeReviewTx) MarkApproved(id int) error {
	t.pendingApprove = id
	return nil
}

func (t *fakeReviewTx) DeleteReview(id int) error {
	t.pendingDelete = id
	return nil
}

func (t *fakeReviewTx) ApprovedStats(productID int) (int, float64, error) {
	count := 0
	sum := 0
	for id, r := range t.store.reviews {
		if r.ProductID != productID || id == t.pendingDelete {
			continue
		}
		if r.Approved || id == t.pendingApprove {
			count++
			sum += r.Stars
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, float64(sum) / float64(count), nil
}

func (t *fakeReviewTx) UpdateProductAggregates(productID, rating, reviewCount int) error {
	t.aggregates = &RecomputeResult{ProductID: productID, Rating: rating, ReviewCount: reviewCount}
	return nil
}

func (t *fakeReviewTx) Commit() error {
	if t.store.commitErr != nil {
		return t.store.commitErr
	}
	t.committed = true
	if t.pendingApprove != 0 {
		t.store.reviews[t.pendingApprove].Approved = true
	}
	if t.pendingDelete != 0 {
		delete(t.store.reviews, t.pendingDelete)
	}
	if t.aggregates != nil {
		t.store.aggregates[t.aggregates.ProductID] = *t.aggregates
	}
	return nil
}

func (t *fakeReviewTx) Rollback() error {
	if t.committed {
		return nil
	}
	t.rolledBack = true
	return nil
}

type fakeReviewStore struct {
	nextID     int
	reviews    map[int]*models.Review
	aggregates map[int]RecomputeResult
	commitErr  error

	lastTx *fakeReviewTx
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{
		reviews:    map[int]*models.Review{},
		aggregates: map[int]RecomputeResult{},
	}
}

func (f *fakeReviewStore) Create(review *models.Review) error {
	f.nextID++
	review.ID = f.nextID
	copied := *review
	f.reviews[review.ID] = &copied
	return nil
}

func (f *fakeReviewStore) ListApprovedByProduct(productID int) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.ProductID == productID && r.Approved {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReviewStore) ListModeration() ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReviewStore) Begin(ctx context.Context) (repository.ReviewTx, error) {
	tx := &fakeReviewTx{store: f}
	f.lastTx = tx
	return tx, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages chan string
	err      error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{messages: make(chan string, 1)}
}

func (f *fakeNotifier) Send(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.messages <- text
	return nil
}

func intPtr(n int) *int { return &n }
