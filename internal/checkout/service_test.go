package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/blissmahlathi/campusmarket-backend/internal/cart"
	"github.com/blissmahlathi/campusmarket-backend/internal/notifications"
	"github.com/blissmahlathi/campusmarket-backend/internal/orders"
	"github.com/blissmahlathi/campusmarket-backend/pkg/db/models"
	"github.com/blissmahlathi/campusmarket-backend/pkg/enums"
	pkgerrors "github.com/blissmahlathi/campusmarket-backend/pkg/errors"
	"github.com/blissmahlathi/campusmarket-backend/pkg/logger"
	"github.com/blissmahlathi/campusmarket-backend/pkg/pagination"
)

type stubCartStore struct {
	lines    []cart.Line
	linesErr error
	cleared  bool
	clearErr error
}

func (s *stubCartStore) Lines(ctx context.Context, userID uuid.UUID) ([]cart.Line, error) {
	return s.lines, s.linesErr
}

func (s *stubCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	s.cleared = true
	return s.clearErr
}

type stubProducts struct {
	products []models.Product
}

func (s *stubProducts) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	return s.products, nil
}

type stubUsers struct {
	user *models.User
}

func (s *stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

// stubOrderRepo persists into memory and can fail after N successful creates.
type stubOrderRepo struct {
	created   []*models.Order
	items     [][]models.OrderItem
	failAfter int
	fail      bool
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if s.fail && len(s.created) >= s.failAfter {
		return nil, errors.New("insert failed")
	}
	order.ID = uuid.New()
	s.created = append(s.created, order)
	return order, nil
}

func (s *stubOrderRepo) CreateItems(ctx context.Context, items []models.OrderItem) error {
	s.items = append(s.items, items)
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) ListForCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters orders.ListFilters) ([]models.Order, string, error) {
	return nil, "", nil
}

func (s *stubOrderRepo) ListForVendor(ctx context.Context, vendorID uuid.UUID, params pagination.Params, filters orders.ListFilters) ([]models.Order, string, error) {
	return nil, "", nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context, params pagination.Params, filters orders.ListFilters) ([]models.Order, string, error) {
	return nil, "", nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

type recordingNotifier struct {
	inputs []notifications.DispatchInput
}

func (r *recordingNotifier) Notify(ctx context.Context, input notifications.DispatchInput) {
	r.inputs = append(r.inputs, input)
}

type fixture struct {
	carts    *stubCartStore
	repo     *stubOrderRepo
	notifier *recordingNotifier
	svc      Service
}

func price(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func testVendor(name, contact string) *models.Vendor {
	return &models.Vendor{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		BusinessName:  name,
		ContactNumber: contact,
		Status:        enums.VendorStatusApproved,
	}
}

func testProduct(vendor *models.Vendor, name, unitPrice string) models.Product {
	return models.Product{
		ID:       uuid.New(),
		VendorID: vendor.ID,
		Name:     name,
		Price:    price(unitPrice),
		Vendor:   vendor,
	}
}

func newFixture(t *testing.T, products []models.Product, lines []cart.Line) *fixture {
	t.Helper()

	carts := &stubCartStore{lines: lines}
	repo := &stubOrderRepo{}
	notifier := &recordingNotifier{}

	svc, err := NewService(ServiceParams{
		CartStore:   carts,
		ProductRepo: &stubProducts{products: products},
		UserRepo:    &stubUsers{user: &models.User{ID: uuid.New(), Name: "Thabo M"}},
		OrderRepo:   repo,
		TxRunner:    stubTx{},
		Notifier:    notifier,
		Logger:      logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &fixture{carts: carts, repo: repo, notifier: notifier, svc: svc}
}

func validRequest() Request {
	return Request{
		BuyerName:       "Thabo M",
		BuyerPhone:      "0721234567",
		DeliveryAddress: "Res Block B, Room 14",
		PaymentMethod:   enums.PaymentMethodCard,
	}
}

func line(productID uuid.UUID, qty int, addedAt time.Time) cart.Line {
	return cart.Line{ProductID: productID, Quantity: qty, AddedAt: addedAt}
}

func TestExecuteCreatesOneOrderPerVendor(t *testing.T) {
	vendorA := testVendor("Mama's Kitchen", "0711111111")
	vendorB := testVendor("Campus Grill", "0722222222")
	pA1 := testProduct(vendorA, "Kota", "35.00")
	pB1 := testProduct(vendorB, "Wrap", "50.00")
	pA2 := testProduct(vendorA, "Chips", "15.00")

	base := time.Now()
	f := newFixture(t,
		[]models.Product{pA1, pB1, pA2},
		[]cart.Line{
			line(pA1.ID, 2, base),
			line(pB1.ID, 1, base.Add(time.Second)),
			line(pA2.ID, 3, base.Add(2*time.Second)),
		},
	)

	summary, err := f.svc.Execute(context.Background(), uuid.New(), validRequest())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(summary.Orders) != 2 {
		t.Fatalf("expected 2 vendor orders, got %d", len(summary.Orders))
	}
	// vendor groups follow first appearance in the cart
	if summary.Orders[0].VendorID != vendorA.ID || summary.Orders[1].VendorID != vendorB.ID {
		t.Fatalf("unexpected vendor order: %+v", summary.Orders)
	}
	if !summary.Orders[0].Total.Equal(price("115.00")) {
		t.Fatalf("vendor A total expected 115.00, got %s", summary.Orders[0].Total)
	}
	if !summary.Orders[1].Total.Equal(price("50.00")) {
		t.Fatalf("vendor B total expected 50.00, got %s", summary.Orders[1].Total)
	}
	if !summary.GrandTotal.Equal(price("165.00")) {
		t.Fatalf("grand total expected 165.00, got %s", summary.GrandTotal)
	}

	if len(f.repo.created) != 2 {
		t.Fatalf("expected 2 persisted orders, got %d", len(f.repo.created))
	}
	first := f.repo.created[0]
	if first.BuyerName != "Thabo M" || first.Status != enums.OrderStatusPending {
		t.Fatalf("unexpected persisted order: %+v", first)
	}
	if !first.TotalAmount.Equal(price("115.00")) {
		t.Fatalf("persisted total expected 115.00, got %s", first.TotalAmount)
	}
	// no explicit amount given, so each order defaults to its own total
	if !first.PaymentAmount.Equal(price("115.00")) {
		t.Fatalf("payment amount expected 115.00, got %s", first.PaymentAmount)
	}

	if len(f.notifier.inputs) != 2 {
		t.Fatalf("expected 2 order_received notifications, got %d", len(f.notifier.inputs))
	}
	for _, input := range f.notifier.inputs {
		if input.Type != enums.NotificationTypeOrderReceived {
			t.Fatalf("unexpected notification type %s", input.Type)
		}
	}

	if !f.carts.cleared {
		t.Fatal("expected cart cleared after checkout")
	}

	if !strings.HasPrefix(summary.Orders[0].WhatsAppLink, "https://wa.me/27711111111?text=") {
		t.Fatalf("unexpected whatsapp link: %s", summary.Orders[0].WhatsAppLink)
	}
}

func TestExecuteValidatesRequiredFields(t *testing.T) {
	f := newFixture(t, nil, nil)

	cases := []Request{
		{BuyerPhone: "072", DeliveryAddress: "x", PaymentMethod: enums.PaymentMethodCard},
		{BuyerName: "a", DeliveryAddress: "x", PaymentMethod: enums.PaymentMethodCard},
		{BuyerName: "a", BuyerPhone: "072", PaymentMethod: enums.PaymentMethodCard},
		{BuyerName: "a", BuyerPhone: "072", DeliveryAddress: "x", PaymentMethod: enums.PaymentMethod("EFT")},
	}
	for i, req := range cases {
		_, err := f.svc.Execute(context.Background(), uuid.New(), req)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestExecuteEmptyCart(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, err := f.svc.Execute(context.Background(), uuid.New(), validRequest())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty cart, got %v", err)
	}
}

func TestExecuteCashRequiresAmountCoveringGrandTotal(t *testing.T) {
	vendor := testVendor("Mama's Kitchen", "0711111111")
	product := testProduct(vendor, "Kota", "35.00")
	f := newFixture(t, []models.Product{product}, []cart.Line{line(product.ID, 2, time.Now())})

	req := validRequest()
	req.PaymentMethod = enums.PaymentMethodCash

	_, err := f.svc.Execute(context.Background(), uuid.New(), req)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing cash amount, got %v", err)
	}

	short := price("50.00")
	req.PaymentAmount = &short
	_, err = f.svc.Execute(context.Background(), uuid.New(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for short cash, got %v", err)
	}
	if !strings.Contains(typed.Message(), "R20.00 short") {
		t.Fatalf("expected shortfall in message, got %q", typed.Message())
	}

	exact := price("70.00")
	req.PaymentAmount = &exact
	summary, err := f.svc.Execute(context.Background(), uuid.New(), req)
	if err != nil {
		t.Fatalf("exact cash should pass: %v", err)
	}
	if !f.repo.created[0].PaymentAmount.Equal(exact) {
		t.Fatalf("expected supplied cash amount persisted, got %s", f.repo.created[0].PaymentAmount)
	}
	if len(summary.Orders) != 1 {
		t.Fatalf("expected one order, got %d", len(summary.Orders))
	}
}

func TestExecutePartialFailureKeepsEarlierOrders(t *testing.T) {
	vendorA := testVendor("Mama's Kitchen", "0711111111")
	vendorB := testVendor("Campus Grill", "0722222222")
	pA := testProduct(vendorA, "Kota", "35.00")
	pB := testProduct(vendorB, "Wrap", "50.00")

	base := time.Now()
	f := newFixture(t, []models.Product{pA, pB}, []cart.Line{
		line(pA.ID, 1, base),
		line(pB.ID, 1, base.Add(time.Second)),
	})
	f.repo.fail = true
	f.repo.failAfter = 1

	_, err := f.svc.Execute(context.Background(), uuid.New(), validRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if !strings.Contains(typed.Message(), "vendor 2 of 2") {
		t.Fatalf("expected progress in error, got %q", typed.Message())
	}
	// the first vendor's order stays committed
	if len(f.repo.created) != 1 {
		t.Fatalf("expected 1 committed order, got %d", len(f.repo.created))
	}
	if f.carts.cleared {
		t.Fatal("cart must not be cleared after a failed checkout")
	}
}

func TestExecuteClearFailureDoesNotFailCheckout(t *testing.T) {
	vendor := testVendor("Mama's Kitchen", "0711111111")
	product := testProduct(vendor, "Kota", "35.00")
	f := newFixture(t, []models.Product{product}, []cart.Line{line(product.ID, 1, time.Now())})
	f.carts.clearErr = errors.New("redis down")

	summary, err := f.svc.Execute(context.Background(), uuid.New(), validRequest())
	if err != nil {
		t.Fatalf("checkout should survive cart clear failure: %v", err)
	}
	if len(summary.Orders) != 1 {
		t.Fatalf("expected one order, got %d", len(summary.Orders))
	}
}

func TestExecuteSkipsVanishedProducts(t *testing.T) {
	vendor := testVendor("Mama's Kitchen", "0711111111")
	product := testProduct(vendor, "Kota", "35.00")
	f := newFixture(t, []models.Product{product}, []cart.Line{
		line(product.ID, 1, time.Now()),
		line(uuid.New(), 4, time.Now().Add(time.Second)),
	})

	summary, err := f.svc.Execute(context.Background(), uuid.New(), validRequest())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(summary.Orders) != 1 {
		t.Fatalf("expected one order, got %d", len(summary.Orders))
	}
	if !summary.GrandTotal.Equal(price("35.00")) {
		t.Fatalf("vanished product must not count, got %s", summary.GrandTotal)
	}
}
