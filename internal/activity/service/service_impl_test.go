package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/pvlabs/riskwatch/internal/activity/domain"
	"github.com/pvlabs/riskwatch/internal/activity/repository"
	customerdomain "github.com/pvlabs/riskwatch/internal/customer/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&customerdomain.Customer{}, &domain.SalesOrder{}))

	node, err := snowflake.NewNode(6)
	require.NoError(t, err)
	return db, node
}

func seedCustomer(t *testing.T, db *gorm.DB, node *snowflake.Node, companyID, commercialID snowflake.ID) customerdomain.Customer {
	t.Helper()
	customer := customerdomain.Customer{
		ID:           node.Generate(),
		CompanyID:    companyID,
		Name:         "Customer",
		CustomerRank: 1,
	}
	if commercialID == 0 {
		commercialID = customer.ID
	}
	customer.CommercialCustomerID = commercialID
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedOrder(t *testing.T, db *gorm.DB, node *snowflake.Node, companyID, customerID snowflake.ID, state domain.OrderState, orderDate time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&domain.SalesOrder{
		ID:         node.Generate(),
		CompanyID:  companyID,
		CustomerID: customerID,
		Name:       "SO",
		State:      state,
		OrderDate:  orderDate,
	}).Error)
}

func TestCountOrdersWindowAndState(t *testing.T) {
	db, node := newTestDB(t)
	svc := New(Params{DB: db, Log: zap.NewNop(), Repo: repository.Provide()})

	companyID := node.Generate()
	customer := seedCustomer(t, db, node, companyID, 0)
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	seedOrder(t, db, node, companyID, customer.ID, domain.OrderStateSale, now.AddDate(0, 0, -10))
	seedOrder(t, db, node, companyID, customer.ID, domain.OrderStateDone, now.AddDate(0, 0, -89))
	// Outside the window, wrong states, or other companies: not counted.
	seedOrder(t, db, node, companyID, customer.ID, domain.OrderStateSale, now.AddDate(0, 0, -91))
	seedOrder(t, db, node, companyID, customer.ID, domain.OrderStateDraft, now.AddDate(0, 0, -1))
	seedOrder(t, db, node, companyID, customer.ID, domain.OrderStateCancel, now.AddDate(0, 0, -1))
	otherCompany := node.Generate()
	other := seedCustomer(t, db, node, otherCompany, 0)
	seedOrder(t, db, node, otherCompany, other.ID, domain.OrderStateSale, now.AddDate(0, 0, -1))

	count, err := svc.CountOrders(context.Background(), companyID, customer.ID, 90, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCountOrdersRollsUpChildContacts(t *testing.T) {
	db, node := newTestDB(t)
	svc := New(Params{DB: db, Log: zap.NewNop(), Repo: repository.Provide()})

	companyID := node.Generate()
	parent := seedCustomer(t, db, node, companyID, 0)
	child := seedCustomer(t, db, node, companyID, parent.ID)
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)

	seedOrder(t, db, node, companyID, parent.ID, domain.OrderStateSale, now.AddDate(0, 0, -5))
	seedOrder(t, db, node, companyID, child.ID, domain.OrderStateSale, now.AddDate(0, 0, -5))

	count, err := svc.CountOrders(context.Background(), companyID, parent.ID, 90, now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCountOrdersEmpty(t *testing.T) {
	db, node := newTestDB(t)
	svc := New(Params{DB: db, Log: zap.NewNop(), Repo: repository.Provide()})

	companyID := node.Generate()
	customer := seedCustomer(t, db, node, companyID, 0)

	count, err := svc.CountOrders(context.Background(), companyID, customer.ID, 90, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
