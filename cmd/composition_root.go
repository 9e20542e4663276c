package cmd

import (
	httpin "deliveryhub/internal/adapters/in/http"
	"deliveryhub/internal/adapters/out/postgres"
	"deliveryhub/internal/adapters/out/postgres/productrepo"
	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, productrepo.NewGormCatalogService(c.gormDB))
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateProvisionDeliveriesCommandHandler() commands.ProvisionDeliveriesCommandHandler {
	return commands.NewProvisionDeliveriesCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceStatusCommandHandler() commands.AdvanceStatusCommandHandler {
	return commands.NewAdvanceStatusCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateRescheduleDeliveryCommandHandler() commands.RescheduleDeliveryCommandHandler {
	return commands.NewRescheduleDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateAddCommentCommandHandler() commands.AddCommentCommandHandler {
	return commands.NewAddCommentCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateSendCourierPingCommandHandler() commands.SendCourierPingCommandHandler {
	return commands.NewSendCourierPingCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateMarkNotificationReadCommandHandler() commands.MarkNotificationReadCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkNotificationReadCommandHandler(f)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryBoardQueryHandler() queries.GetDeliveryBoardQueryHandler {
	return queries.NewGetDeliveryBoardQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every command and query handler into the API server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCheckoutCommandHandler(),
		c.CreateConfirmPaymentCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateAdvanceStatusCommandHandler(),
		c.CreateRescheduleDeliveryCommandHandler(),
		c.CreateAddCommentCommandHandler(),
		c.CreateSendCourierPingCommandHandler(),
		c.CreateMarkNotificationReadCommandHandler(),
		c.CreateGetDeliveryQueryHandler(),
		c.CreateListNotificationsQueryHandler(),
		c.CreateGetDeliveryBoardQueryHandler(),
	)
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
