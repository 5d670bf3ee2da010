package cmd

import (
	"log/slog"

	httpadapter "github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/in/http"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/carrier"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/catalog"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/mailer"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/notify"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/postgres"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/postgres/eventrepo"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/postgres/shipmentrepo"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/queries"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/services"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/jobs"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/realtime"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, application services and jobs together.
// Everything is constructed once at startup and shared.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	hub      *realtime.Hub
	eventLog ports.OrderEventRepository

	transitionHandler commands.RequestTransitionCommandHandler
	shipments         ports.ShipmentRepository
	carrierClient     ports.Carrier
}

// NewCompositionRoot builds the full object graph from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		hub:        realtime.NewHub(logger),
		// Rejection audit events and hook outcomes are appended outside the
		// transition transaction so they survive its rollback.
		eventLog:      eventrepo.NewGormOrderEventRepository(gormDB),
		shipments:     shipmentrepo.NewGormShipmentRepository(gormDB),
		carrierClient: carrier.NewClient(config.CarrierBaseURL),
	}

	root.transitionHandler = commands.NewRequestTransitionCommandHandler(
		root.transitionUoWFactory(),
		root.eventLog,
		root.hookRunner(config),
		logger,
	)

	return root
}

// hookRunner assembles every post-commit side effect of a transition.
func (c *CompositionRoot) hookRunner(config Config) *commands.HookRunner {
	var smsSender ports.MessageSender
	if config.SMSEnabled && config.SMSGatewayURL != "" {
		smsSender = mailer.NewClient(config.SMSGatewayURL)
	}

	dispatcher := notify.NewDispatcher(
		mailer.NewClient(config.MailServiceURL),
		smsSender,
		c.hub,
		c.eventLog,
		config.AdminEmail,
		c.logger,
	)

	return commands.NewHookRunner(
		c.logger,
		commands.NewStockCompensationHook(catalog.NewClient(config.CatalogBaseURL), c.eventLog),
		commands.NewFulfillmentHook(services.NewFulfillmentPlanner(), c.eventLog),
		commands.NewShippingHook(c.shipments, c.carrierClient, c.eventLog),
		commands.NewDeliveryHook(c.eventLog),
		dispatcher,
		realtime.NewStatusBroadcastHook(c.hub),
	)
}

func (c *CompositionRoot) transitionUoWFactory() commands.TransitionUoWFactory {
	return FuncTransitionUoWFactory(func() commands.TransitionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() *commands.RequestTransitionCommandHandler {
	return &c.transitionHandler
}

func (c *CompositionRoot) CreateBulkTransitionCommandHandler() commands.BulkTransitionCommandHandler {
	return commands.NewBulkTransitionCommandHandler(&c.transitionHandler)
}

func (c *CompositionRoot) CreateRecordTrackingUpdateCommandHandler() commands.RecordTrackingUpdateCommandHandler {
	return commands.NewRecordTrackingUpdateCommandHandler(
		c.transitionUoWFactory(),
		&c.transitionHandler,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEventHistoryQueryHandler() queries.GetEventHistoryQueryHandler {
	return queries.NewGetEventHistoryQueryHandler(c.eventLog)
}

func (c *CompositionRoot) CreateGetCriticalEventsQueryHandler() queries.GetCriticalEventsQueryHandler {
	return queries.NewGetCriticalEventsQueryHandler(c.eventLog)
}

// CreateHTTPServer builds the HTTP adapter over the application layer.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	bulk := c.CreateBulkTransitionCommandHandler()
	openOrders := c.CreateGetOpenOrdersQueryHandler()
	history := c.CreateGetEventHistoryQueryHandler()
	critical := c.CreateGetCriticalEventsQueryHandler()

	return httpadapter.NewServer(
		&createOrder,
		&c.transitionHandler,
		&bulk,
		openOrders,
		history,
		critical,
		c.hub,
	)
}

// CreateJobManager builds the background jobs.
func (c *CompositionRoot) CreateJobManager(config Config) *jobs.JobManager {
	recorder := c.CreateRecordTrackingUpdateCommandHandler()
	pollJob := jobs.NewTrackingPollJob(
		c.shipments,
		c.carrierClient,
		&recorder,
		config.TrackingPollSchedule,
		c.logger,
	)
	return jobs.NewJobManager(pollJob)
}

type FuncTransitionUoWFactory func() commands.TransitionUoW

func (f FuncTransitionUoWFactory) Create() commands.TransitionUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
