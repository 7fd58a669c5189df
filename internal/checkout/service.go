package checkout

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/blissmahlathi/campusmarket-backend/pkg/whatsapp"
)

type cartStore interface {
	Lines(ctx context.Context, userID uuid.UUID) ([]cart.Line, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type productFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type notifier interface {
	Notify(ctx context.Context, input notifications.DispatchInput)
}

// Service turns a buyer's cart into one persisted order per vendor.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, req Request) (*Summary, error)
}

type service struct {
	carts    cartStore
	products productFinder
	users    userFinder
	orders   orders.Repository
	tx       txRunner
	notifier notifier
	logg     *logger.Logger
}

// ServiceParams bundles the checkout dependencies.
type ServiceParams struct {
	CartStore   cartStore
	ProductRepo productFinder
	UserRepo    userFinder
	OrderRepo   orders.Repository
	TxRunner    txRunner
	Notifier    notifier
	Logger      *logger.Logger
}

// NewService constructs the checkout orchestrator.
func NewService(params ServiceParams) (Service, error) {
	if params.CartStore == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{
		carts:    params.CartStore,
		products: params.ProductRepo,
		users:    params.UserRepo,
		orders:   params.OrderRepo,
		tx:       params.TxRunner,
		notifier: params.Notifier,
		logg:     params.Logger,
	}, nil
}

// vendorGroup collects one vendor's cart lines in first-appearance order.
type vendorGroup struct {
	vendor *models.Vendor
	items  []groupItem
	total  decimal.Decimal
}

type groupItem struct {
	product  *models.Product
	quantity int
}

func (s *service) Execute(ctx context.Context, userID uuid.UUID, req Request) (*Summary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	groups, grandTotal, err := s.partition(ctx, lines)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if req.PaymentMethod == enums.PaymentMethodCash {
		if req.PaymentAmount == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount is required for cash orders")
		}
		if req.PaymentAmount.LessThan(grandTotal) {
			shortfall := grandTotal.Sub(*req.PaymentAmount)
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("cash amount is R%s short of the order total", shortfall.StringFixed(2)))
		}
	}

	summary := &Summary{
		Orders:          make([]VendorOrderSummary, 0, len(groups)),
		BuyerName:       req.BuyerName,
		BuyerPhone:      req.BuyerPhone,
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		GrandTotal:      grandTotal,
	}

	// One transaction per vendor group. A later failure leaves earlier
	// groups committed; the error reports how far checkout got.
	for i, group := range groups {
		order, err := s.createVendorOrder(ctx, userID, req, group)
		if err != nil {
			s.logg.Error(s.logg.WithFields(ctx, map[string]any{
				"vendor_id":        group.vendor.ID.String(),
				"committed_orders": len(summary.Orders),
			}), "checkout failed mid-way", err)
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("create order for vendor %d of %d", i+1, len(groups)))
		}

		s.notifier.Notify(ctx, notifications.DispatchInput{
			Order: order,
			Type:  enums.NotificationTypeOrderReceived,
		})

		orderSummary := VendorOrderSummary{
			OrderID:    order.ID,
			VendorID:   group.vendor.ID,
			VendorName: group.vendor.BusinessName,
			Total:      group.total,
			Items:      make([]orders.ItemDTO, 0, len(order.Items)),
		}
		for _, item := range order.Items {
			orderSummary.Items = append(orderSummary.Items, orders.ItemDTO{
				ID:          item.ID,
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				UnitPrice:   item.UnitPrice,
				Quantity:    item.Quantity,
			})
		}
		orderSummary.WhatsAppLink = whatsapp.Link(group.vendor.ContactNumber, vendorMessage(req, orderSummary))
		summary.Orders = append(summary.Orders, orderSummary)
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// Orders committed; a stale cart is an annoyance, not a failure.
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"user_id": userID.String()}),
			"clearing cart after checkout failed: "+err.Error())
	}

	return summary, nil
}

func (s *service) createVendorOrder(ctx context.Context, userID uuid.UUID, req Request, group vendorGroup) (*models.Order, error) {
	paymentAmount := group.total
	if req.PaymentAmount != nil {
		paymentAmount = *req.PaymentAmount
	}

	order := &models.Order{
		CustomerID:      userID,
		VendorID:        group.vendor.ID,
		Status:          enums.OrderStatusPending,
		TotalAmount:     group.total,
		PaymentMethod:   req.PaymentMethod,
		PaymentAmount:   paymentAmount,
		BuyerName:       req.BuyerName,
		DeliveryAddress: req.DeliveryAddress,
		PhoneNumber:     req.BuyerPhone,
		Notes:           req.Notes,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.orders.WithTx(tx)
		if _, err := repo.Create(ctx, order); err != nil {
			return err
		}
		items := make([]models.OrderItem, 0, len(group.items))
		for _, item := range group.items {
			items = append(items, models.OrderItem{
				OrderID:     order.ID,
				ProductID:   item.product.ID,
				ProductName: item.product.Name,
				UnitPrice:   item.product.Price,
				Quantity:    item.quantity,
			})
		}
		if err := repo.CreateItems(ctx, items); err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Vendor = group.vendor
	if customer, err := s.users.FindByID(ctx, userID); err == nil {
		order.Customer = customer
	}
	return order, nil
}

// partition splits hydrated cart lines into per-vendor groups preserving the
// order vendors first appear in the cart.
func (s *service) partition(ctx context.Context, lines []cart.Line) ([]vendorGroup, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart products")
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var ordered []uuid.UUID
	grouped := make(map[uuid.UUID]*vendorGroup)
	grandTotal := decimal.Zero

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		if product.Vendor == nil {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeInternal,
				fmt.Sprintf("product %s has no vendor", product.ID))
		}

		group, ok := grouped[product.VendorID]
		if !ok {
			group = &vendorGroup{vendor: product.Vendor, total: decimal.Zero}
			grouped[product.VendorID] = group
			ordered = append(ordered, product.VendorID)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		group.items = append(group.items, groupItem{product: product, quantity: line.Quantity})
		group.total = group.total.Add(lineTotal)
		grandTotal = grandTotal.Add(lineTotal)
	}

	groups := make([]vendorGroup, 0, len(ordered))
	for _, vendorID := range ordered {
		groups = append(groups, *grouped[vendorID])
	}
	return groups, grandTotal, nil
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.BuyerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer name is required")
	}
	if strings.TrimSpace(req.BuyerPhone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "buyer phone is required")
	}
	if strings.TrimSpace(req.DeliveryAddress) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}
	if !req.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", req.PaymentMethod))
	}
	return nil
}
