package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"campus-commerce/internal/model"
	"campus-commerce/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPin = "4821"

type checkoutFixture struct {
	db       *gorm.DB
	svc      CheckoutService
	sessions *PinSessionManager
	notifier *recordingNotifier
	accounts repository.AccountRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func setupCheckout(t *testing.T) *checkoutFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Provider{},
		&model.Product{},
		&model.Catalog{},
		&model.Account{},
		&model.Benefit{},
		&model.Order{},
		&model.OrderItem{},
	))

	pinHash, err := HashPin(testPin)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Provider{
		ID: "prov-1", Name: "Cafeteria", TaxRate: dec("10"),
	}).Error)

	require.NoError(t, db.Create([]*model.Product{
		{ID: "sandwich", ProviderID: "prov-1", Name: "Sandwich", Price: dec("3.50"), Stock: 10},
		{ID: "juice", ProviderID: "prov-1", Name: "Juice", Price: dec("1.75"), Stock: 5},
		{ID: "last-unit", ProviderID: "prov-1", Name: "Last Cookie", Price: dec("1.00"), Stock: 1},
	}).Error)

	require.NoError(t, db.Create(&model.Catalog{
		ID:         "cat-1",
		ProviderID: "prov-1",
		Name:       "Lunch",
		Visibility: model.VisibilityPermanent,
		ProductIDs: []string{"sandwich", "juice", "last-unit"},
		AcceptedMethods: []model.PaymentMethod{
			model.PaymentCash,
			model.PaymentStudentBalance,
			model.PaymentCorporateCredit,
		},
	}).Error)

	benefitID := "benefit-1"
	require.NoError(t, db.Create(&model.Benefit{
		ID: benefitID, Name: "Staff meal plan", Percentage: dec("10"), FixedOff: dec("1.00"),
	}).Error)

	require.NoError(t, db.Create([]*model.Account{
		{ID: "student-1", Kind: model.AccountStudent, SchoolID: "school-1", DisplayName: "Dana", Balance: dec("20.00"), PinHash: pinHash},
		{ID: "staff-1", Kind: model.AccountStaff, SchoolID: "school-1", DisplayName: "Sam", CreditLimit: dec("100.00"), CorporateDebt: dec("80.00"), PinHash: pinHash, BenefitID: &benefitID},
	}).Error)

	notifier := &recordingNotifier{}
	sessions := NewPinSessionManager(3, time.Minute, notifier)

	accounts := repository.NewAccountRepository(db)
	products := repository.NewProductRepository(db)
	orders := repository.NewOrderRepository(db)

	svc := NewCheckoutService(
		db,
		repository.NewCatalogRepository(db),
		products,
		repository.NewProviderRepository(db),
		accounts,
		orders,
		sessions,
	)

	return &checkoutFixture{
		db:       db,
		svc:      svc,
		sessions: sessions,
		notifier: notifier,
		accounts: accounts,
		products: products,
		orders:   orders,
	}
}

func (f *checkoutFixture) stockOf(t *testing.T, productID string) int {
	t.Helper()
	var product model.Product
	require.NoError(t, f.db.Where("id = ?", productID).First(&product).Error)
	return product.Stock
}

func (f *checkoutFixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&count).Error)
	return count
}

func TestCheckoutCashCommitsImmediately(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	result, err := f.svc.Checkout(ctx, &CheckoutRequest{
		CatalogID:    "cat-1",
		SchoolID:     "school-1",
		CustomerName: "Walk-in",
		Items: []RequestedItem{
			{ProductID: "juice", Quantity: 1},
			{ProductID: "sandwich", Quantity: 2},
		},
		PaymentMethod: model.PaymentCash,
		PointOfSale:   true,
	})
	require.NoError(t, err)

	assert.False(t, result.PinRequired)
	require.NotNil(t, result.Order)
	assert.Equal(t, model.OrderDelivered, result.Order.Status)

	// subtotal 8.75, 10% tax -> 9.63 rounded
	assert.Equal(t, "9.63", result.Pricing.FinalAmount.StringFixed(2))

	assert.Equal(t, 8, f.stockOf(t, "sandwich"))
	assert.Equal(t, 4, f.stockOf(t, "juice"))

	items, err := f.orders.GetOrderItems(ctx, result.Order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "juice", items[0].ProductID, "cart insertion order survives commit")
	assert.Equal(t, "sandwich", items[1].ProductID)
}

func TestCheckoutRemoteOrderCommitsPending(t *testing.T) {
	f := setupCheckout(t)

	result, err := f.svc.Checkout(context.Background(), &CheckoutRequest{
		CatalogID:     "cat-1",
		SchoolID:      "school-1",
		Items:         []RequestedItem{{ProductID: "sandwich", Quantity: 1}},
		PaymentMethod: model.PaymentCash,
		PointOfSale:   false,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, result.Order.Status)
}

func TestCheckoutStudentBalancePinFlow(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	result, err := f.svc.Checkout(ctx, &CheckoutRequest{
		CatalogID:     "cat-1",
		SchoolID:      "school-1",
		AccountID:     "student-1",
		Items:         []RequestedItem{{ProductID: "sandwich", Quantity: 1}},
		PaymentMethod: model.PaymentStudentBalance,
		PointOfSale:   true,
	})
	require.NoError(t, err)

	assert.True(t, result.PinRequired)
	assert.NotEmpty(t, result.ChallengeID)
	assert.Nil(t, result.Order)

	// Nothing is debited or decremented until the PIN verifies.
	account, err := f.accounts.Get(ctx, nil, "student-1")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("20.00")))
	assert.Equal(t, 10, f.stockOf(t, "sandwich"))

	var mismatch *PinMismatchError
	_, err = f.svc.VerifyPin(ctx, result.ChallengeID, "9999")
	require.True(t, errors.As(err, &mismatch))

	committed, err := f.svc.VerifyPin(ctx, result.ChallengeID, testPin)
	require.NoError(t, err)
	require.NotNil(t, committed.Order)
	assert.Equal(t, model.OrderDelivered, committed.Order.Status)
	assert.Equal(t, "student-1", committed.Order.StudentID)

	// 3.50 + 10% tax = 3.85
	account, err = f.accounts.Get(ctx, nil, "student-1")
	require.NoError(t, err)
	assert.Equal(t, "16.15", account.Balance.StringFixed(2))
	assert.Equal(t, 9, f.stockOf(t, "sandwich"))
}

func TestCheckoutCorporateCreditAppliesSubsidyAndDebt(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	result, err := f.svc.Checkout(ctx, &CheckoutRequest{
		CatalogID:     "cat-1",
		SchoolID:      "school-1",
		AccountID:     "staff-1",
		Items:         []RequestedItem{{ProductID: "sandwich", Quantity: 2}},
		PaymentMethod: model.PaymentCorporateCredit,
		PointOfSale:   true,
	})
	require.NoError(t, err)
	require.True(t, result.PinRequired)

	// subtotal 7.00 + tax 0.70 = 7.70; subsidy 10% + 1.00 = 1.77; final 5.93
	assert.Equal(t, "1.77", result.Pricing.SubsidyValue.StringFixed(2))
	assert.Equal(t, "5.93", result.Pricing.FinalAmount.StringFixed(2))

	committed, err := f.svc.VerifyPin(ctx, result.ChallengeID, testPin)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", committed.Order.StaffID)

	// The committed breakdown matches what the challenge quoted.
	assert.Equal(t, "1.77", committed.Pricing.SubsidyValue.StringFixed(2))
	assert.Equal(t, "5.93", committed.Pricing.FinalAmount.StringFixed(2))

	account, err := f.accounts.Get(ctx, nil, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, "85.93", account.CorporateDebt.StringFixed(2))
}

func TestCheckoutCreditLimitDeniedBeforeChallenge(t *testing.T) {
	f := setupCheckout(t)

	// staff-1 has 20 headroom; 10 sandwiches cost well past it
	_, err := f.svc.Checkout(context.Background(), &CheckoutRequest{
		CatalogID:     "cat-1",
		SchoolID:      "school-1",
		AccountID:     "staff-1",
		Items:         []RequestedItem{{ProductID: "sandwich", Quantity: 10}},
		PaymentMethod: model.PaymentCorporateCredit,
		PointOfSale:   true,
	})

	var exceeded *CreditLimitExceededError
	require.True(t, errors.As(err, &exceeded))
	assert.True(t, exceeded.Shortfall.IsPositive())
	assert.Equal(t, int64(0), f.orderCount(t))
}

func TestCheckoutVisibilityDenied(t *testing.T) {
	f := setupCheckout(t)

	endDate := time.Now().AddDate(0, 0, -1)
	require.NoError(t, f.db.Create(&model.Catalog{
		ID:         "expired",
		ProviderID: "prov-1",
		Name:       "Last week's fair",
		Visibility: model.VisibilityDateRange,
		EndDate:    &endDate,
		ProductIDs: []string{"sandwich"},
		AcceptedMethods: []model.PaymentMethod{
			model.PaymentCash,
		},
	}).Error)

	_, err := f.svc.Checkout(context.Background(), &CheckoutRequest{
		CatalogID:     "expired",
		SchoolID:      "school-1",
		Items:         []RequestedItem{{ProductID: "sandwich", Quantity: 1}},
		PaymentMethod: model.PaymentCash,
		PointOfSale:   true,
	})

	var visibility *VisibilityError
	require.True(t, errors.As(err, &visibility))
	assert.Equal(t, "expired", visibility.CatalogID)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	f := setupCheckout(t)

	_, err := f.svc.Checkout(context.Background(), &CheckoutRequest{
		CatalogID:     "cat-1",
		SchoolID:      "school-1",
		PaymentMethod: model.PaymentCash,
	})

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCommitRollsBackOnStockConflict(t *testing.T) {
	f := setupCheckout(t)
	ctx := context.Background()

	// First line decrements fine, second line wants 2 of the last unit.
	_, err := f.svc.Checkout(ctx, &CheckoutRequest{
		CatalogID: "cat-1",
		SchoolID:  "school-1",
		Items: []RequestedItem{
			{ProductID: "sandwich", Quantity: 1},
			{ProductID: "last-unit", Quantity: 2},
		},
		PaymentMethod: model.PaymentCash,
		PointOfSale:   true,
	})

	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "last-unit", insufficient.ProductID)
	assert.Equal(t, 2, insufficient.Requested)
	assert.Equal(t, 1, insufficient.Available)

	// All-or-nothing: the sandwich decrement rolled back too.
	assert.Equal(t, 10, f.stockOf(t, "sandwich"))
	assert.Equal(t, 1, f.stockOf(t, "last-unit"))
	assert.Equal(t, int64(0), f.orderCount(t))
}
