package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-commerce/internal/model"
	"campus-commerce/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestedItem is one cart line as submitted by the caller. Insertion
// order is preserved through pricing and onto the persisted order.
type RequestedItem struct {
	ProductID string
	Quantity  int
}

type CheckoutRequest struct {
	CatalogID     string
	SchoolID      string
	AccountID     string // staff or student; empty for anonymous POS sales
	CustomerName  string
	Items         []RequestedItem
	PaymentMethod model.PaymentMethod
	// PointOfSale sales are fulfilled at the counter and commit as
	// DELIVERED; remote orders commit as PENDING.
	PointOfSale bool
}

// StagedOrder is a fully priced and authorized order waiting for its
// atomic commit. For PIN-gated methods it is parked on the challenge
// session until the PIN verifies.
type StagedOrder struct {
	Order *model.Order
	Items []*model.OrderItem
	// Rounded breakdown shown to the operator; the order itself only
	// stores the folded-in final amount.
	Pricing Pricing
}

type CheckoutResult struct {
	Pricing     Pricing
	PinRequired bool
	ChallengeID string
	// Order is set once the sale has committed.
	Order *model.Order
	Items []*model.OrderItem
}

type CheckoutService interface {
	Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error)
	VerifyPin(ctx context.Context, challengeID string, pin string) (*CheckoutResult, error)
}

type checkoutServiceImpl struct {
	db          *gorm.DB
	catalogRepo repository.CatalogRepository
	productRepo repository.ProductRepository
	provRepo    repository.ProviderRepository
	accountRepo repository.AccountRepository
	orderRepo   repository.OrderRepository
	pinSessions *PinSessionManager
	now         func() time.Time
}

func NewCheckoutService(
	db *gorm.DB,
	catalogRepo repository.CatalogRepository,
	productRepo repository.ProductRepository,
	provRepo repository.ProviderRepository,
	accountRepo repository.AccountRepository,
	orderRepo repository.OrderRepository,
	pinSessions *PinSessionManager,
) CheckoutService {
	return &checkoutServiceImpl{
		db:          db,
		catalogRepo: catalogRepo,
		productRepo: productRepo,
		provRepo:    provRepo,
		accountRepo: accountRepo,
		orderRepo:   orderRepo,
		pinSessions: pinSessions,
		now:         time.Now,
	}
}

// Checkout runs the admission pipeline: visibility, pricing, subsidy,
// payment authorization. Methods drawing on an account return a PIN
// challenge instead of committing; everything else commits immediately.
// No shared state is mutated before the commit step.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error) {
	now := s.now()

	catalog, err := s.catalogRepo.Get(ctx, req.CatalogID)
	if err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	if !CatalogVisible(catalog, req.SchoolID, now) {
		return nil, &VisibilityError{CatalogID: catalog.ID, Reason: "outside visibility window or school scope"}
	}

	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	if len(products) != len(req.Items) {
		return nil, fmt.Errorf("some products not found")
	}

	productByID := make(map[string]*model.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	cart := make([]CartItem, len(req.Items))
	for i, item := range req.Items {
		product := productByID[item.ProductID]
		cart[i] = CartItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
		}
	}

	provider, err := s.provRepo.Get(ctx, catalog.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("get provider: %w", err)
	}

	var account *model.Account
	var subsidy *Subsidy
	if req.AccountID != "" {
		account, err = s.accountRepo.Get(ctx, nil, req.AccountID)
		if err != nil {
			return nil, fmt.Errorf("get account: %w", err)
		}
		if account.Kind == model.AccountStaff && account.BenefitID != nil {
			benefit, err := s.accountRepo.GetBenefit(ctx, *account.BenefitID)
			if err != nil {
				return nil, fmt.Errorf("get benefit: %w", err)
			}
			subsidy = &Subsidy{Percentage: benefit.Percentage, FixedAmount: benefit.FixedOff}
		}
	}

	pricing, err := Price(cart, provider.TaxRate, subsidy)
	if err != nil {
		return nil, err
	}
	rounded := pricing.Rounded()

	if err := AuthorizePayment(req.PaymentMethod, rounded.FinalAmount, account, catalog.AcceptedMethods); err != nil {
		return nil, err
	}

	staged := s.stageOrder(req, catalog, account, cart, rounded, now)

	if req.PaymentMethod.RequiresPin() {
		challengeID := s.pinSessions.Challenge(account.ID, account.PinHash, staged)
		return &CheckoutResult{
			Pricing:     rounded,
			PinRequired: true,
			ChallengeID: challengeID,
		}, nil
	}

	if err := s.commit(ctx, staged); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Pricing: rounded,
		Order:   staged.Order,
		Items:   staged.Items,
	}, nil
}

// VerifyPin resolves an outstanding challenge. A verified PIN consumes
// the session and commits the staged order; mismatches and lockouts
// surface as their own error kinds.
func (s *checkoutServiceImpl) VerifyPin(ctx context.Context, challengeID string, pin string) (*CheckoutResult, error) {
	staged, err := s.pinSessions.Verify(ctx, challengeID, pin)
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, staged); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Pricing: staged.Pricing,
		Order:   staged.Order,
		Items:   staged.Items,
	}, nil
}

func (s *checkoutServiceImpl) stageOrder(req *CheckoutRequest, catalog *model.Catalog, account *model.Account, cart []CartItem, pricing Pricing, now time.Time) *StagedOrder {
	status := model.OrderPending
	if req.PointOfSale {
		status = model.OrderDelivered
	}

	customerName := req.CustomerName
	var studentID, staffID string
	if account != nil {
		if customerName == "" {
			customerName = account.DisplayName
		}
		switch account.Kind {
		case model.AccountStudent:
			studentID = account.ID
		case model.AccountStaff:
			staffID = account.ID
		}
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		ProviderID:    catalog.ProviderID,
		SchoolID:      req.SchoolID,
		StudentID:     studentID,
		StaffID:       staffID,
		CustomerName:  customerName,
		Subtotal:      pricing.Subtotal,
		TaxAmount:     pricing.TaxAmount,
		FinalAmount:   pricing.FinalAmount,
		PaymentMethod: req.PaymentMethod,
		Status:        status,
		CreatedAt:     now,
	}

	items := make([]*model.OrderItem, len(cart))
	for i, line := range cart {
		items[i] = &model.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Position:    i,
		}
	}

	return &StagedOrder{Order: order, Items: items, Pricing: pricing}
}

// commit is the single atomic step of a checkout: stock decrements,
// the account mutation, and the order insert either all land or none
// do. Compare-and-set guards catch races lost to concurrent sales and
// roll the whole transaction back.
func (s *checkoutServiceImpl) commit(ctx context.Context, staged *StagedOrder) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range staged.Items {
			err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if errors.Is(err, repository.ErrStockConflict) {
				available, stockErr := s.productRepo.GetStock(ctx, tx, item.ProductID)
				if stockErr != nil {
					return fmt.Errorf("get stock after conflict: %w", stockErr)
				}
				return &InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: available,
				}
			}
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		order := staged.Order
		switch order.PaymentMethod {
		case model.PaymentStudentBalance:
			err := s.accountRepo.DebitBalance(ctx, tx, order.StudentID, order.FinalAmount)
			if errors.Is(err, repository.ErrBalanceConflict) {
				return s.balanceConflict(ctx, tx, order.StudentID, order)
			}
			if err != nil {
				return fmt.Errorf("debit balance: %w", err)
			}
		case model.PaymentCorporateCredit:
			err := s.accountRepo.AddCorporateDebt(ctx, tx, order.StaffID, order.FinalAmount)
			if errors.Is(err, repository.ErrCreditConflict) {
				return s.creditConflict(ctx, tx, order.StaffID, order)
			}
			if err != nil {
				return fmt.Errorf("add corporate debt: %w", err)
			}
		}

		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order: %w", err)
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, staged.Items); err != nil {
			return fmt.Errorf("store order items: %w", err)
		}

		return nil
	})
}

// The post-conflict re-reads stay on the open commit transaction; a
// fresh connection would block behind it on single-writer stores.
func (s *checkoutServiceImpl) balanceConflict(ctx context.Context, tx *gorm.DB, accountID string, order *model.Order) error {
	account, err := s.accountRepo.Get(ctx, tx, accountID)
	if err != nil {
		return fmt.Errorf("get account after conflict: %w", err)
	}
	return &InsufficientBalanceError{
		Balance:   account.Balance,
		Requested: order.FinalAmount,
		Shortfall: order.FinalAmount.Sub(account.Balance),
	}
}

func (s *checkoutServiceImpl) creditConflict(ctx context.Context, tx *gorm.DB, accountID string, order *model.Order) error {
	account, err := s.accountRepo.Get(ctx, tx, accountID)
	if err != nil {
		return fmt.Errorf("get account after conflict: %w", err)
	}
	projected := account.CorporateDebt.Add(order.FinalAmount)
	return &CreditLimitExceededError{
		CreditLimit:   account.CreditLimit,
		CorporateDebt: account.CorporateDebt,
		Requested:     order.FinalAmount,
		Shortfall:     projected.Sub(account.CreditLimit),
	}
}
