package shipmentrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/postgres/shipmentrepo"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ShipmentRepositoryIntegrationTestSuite verifies shipment persistence
// against a real PostgreSQL instance.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&shipmentrepo.ShipmentDTO{}))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments").Error)
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) makeShipment(orderID kernel.UUID) *shipment.Shipment {
	cost, err := kernel.NewMoney(399)
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(
		kernel.NewUUID(), orderID,
		"TRK123456789", "royal-mail", "Tracked 24",
		cost, nil,
		time.Now().UTC().Truncate(time.Millisecond),
	)
	suite.Require().NoError(err)
	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAddAndGetByOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, suite.makeShipment(orderID)))

	loaded, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal("TRK123456789", loaded.TrackingNumber())
	suite.Equal("royal-mail", loaded.Carrier())
	suite.Equal(shipment.LabelCreated, loaded.Status())
	suite.Equal(int64(399), loaded.Cost().Pence())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetByOrder_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetByOrder(ctx, kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_PersistsTrackingProgress() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	s := suite.makeShipment(orderID)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(s.ApplyTracking(shipment.InTransit, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	loaded, err := suite.repository.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(shipment.InTransit, loaded.Status())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesDelivered() {
	ctx := context.Background()

	active := suite.makeShipment(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, active))

	delivered := suite.makeShipment(kernel.NewUUID())
	now := time.Now().UTC()
	suite.Require().NoError(delivered.ApplyTracking(shipment.InTransit, now))
	suite.Require().NoError(delivered.ApplyTracking(shipment.TrackingDelivered, now))
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	shipments, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(shipments, 1)
	suite.True(shipments[0].ID().IsEqual(active.ID()))
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
