package jobs

import (
	"context"
	"log/slog"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/application/usecases/commands"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/shipment"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// TrackingRecorder feeds one carrier milestone into the shipment tracking
// state machine.
type TrackingRecorder interface {
	Handle(ctx context.Context, cmd commands.RecordTrackingUpdateCommand) error
}

// TrackingPollJob polls the carrier for every shipment that has not reached
// a terminal tracking status and records the reported milestones. Repeated
// milestones are dropped downstream, so the poll interval only affects
// freshness, not correctness.
type TrackingPollJob struct {
	shipments ports.ShipmentRepository
	carrier   ports.Carrier
	recorder  TrackingRecorder
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewTrackingPollJob creates the poll job with a six-field cron schedule.
func NewTrackingPollJob(
	shipments ports.ShipmentRepository,
	carrier ports.Carrier,
	recorder TrackingRecorder,
	schedule string,
	logger *slog.Logger,
) *TrackingPollJob {
	return &TrackingPollJob{
		shipments: shipments,
		carrier:   carrier,
		recorder:  recorder,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "tracking_poll_job"),
	}
}

// Start schedules the poll job.
func (j *TrackingPollJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.poll(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Tracking poll job started", "schedule", j.schedule)
	return nil
}

// Stop stops the poll job.
func (j *TrackingPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Tracking poll job stopped")
}

// poll runs one sweep. A failing shipment never stops the sweep: the next
// poll retries it anyway.
func (j *TrackingPollJob) poll(ctx context.Context) {
	active, err := j.shipments.GetAllActive(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Loading active shipments failed", "error", err)
		return
	}

	for _, consignment := range active {
		if err := j.pollOne(ctx, consignment); err != nil {
			j.logger.WarnContext(ctx, "Tracking poll failed for shipment",
				"orderId", consignment.OrderID().String(),
				"trackingNumber", consignment.TrackingNumber(),
				"error", err)
		}
	}
}

func (j *TrackingPollJob) pollOne(ctx context.Context, consignment *shipment.Shipment) error {
	update, err := j.carrier.Track(ctx, consignment.TrackingNumber(), consignment.Carrier())
	if err != nil {
		return err
	}

	status, err := shipment.TrackingStatusFromString(update.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRecordTrackingUpdateCommand(
		consignment.OrderID(), status, update.Description, update.OccurredAt,
	)
	if err != nil {
		return err
	}

	return j.recorder.Handle(ctx, cmd)
}
