// Package jobs provides scheduled background tasks for the delivery service.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through
// JobManager, which provides a unified interface to start and stop them.
package jobs

import (
	"context"
	"log/slog"

	"deliveryhub/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DeliveryProvisionJob periodically provisions deliveries for paid orders
// that have none. Payment confirmations normally trigger provisioning
// synchronously; this job is the safety net for confirmations that never
// reached the endpoint.
type DeliveryProvisionJob struct {
	handler commands.ProvisionDeliveriesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDeliveryProvisionJob creates a job that sweeps for unprovisioned
// paid orders once a minute.
func NewDeliveryProvisionJob(handler commands.ProvisionDeliveriesCommandHandler, logger *slog.Logger) *DeliveryProvisionJob {
	return &DeliveryProvisionJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "delivery_provision_job"),
	}
}

// Start begins the provisioning sweep, running every minute.
func (j *DeliveryProvisionJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewProvisionDeliveriesCommand()

		provisioned, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Delivery provisioning sweep failed", "error", err)
			return
		}

		if provisioned > 0 {
			j.logger.InfoContext(ctx, "Provisioned deliveries for paid orders", "count", provisioned)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delivery provision job started (running every minute)")
	return nil
}

// Stop stops the provisioning sweep.
func (j *DeliveryProvisionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delivery provision job stopped")
}
