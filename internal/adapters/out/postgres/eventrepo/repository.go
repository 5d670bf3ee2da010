package eventrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/orderevent"

	"gorm.io/gorm"
)

// GormOrderEventRepository implements OrderEventRepository using GORM.
type GormOrderEventRepository struct {
	db *gorm.DB
}

// NewGormOrderEventRepository creates a new GORM event log repository.
func NewGormOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

// Append writes one event to the log. When the event is of a critical kind,
// a NOTIFICATION_SENT marker is appended alongside it recording that the
// operations channel was alerted; the marker is advisory bookkeeping and a
// failure to write it does not fail the append.
func (r *GormOrderEventRepository) Append(ctx context.Context, event *orderevent.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(event)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if event.Kind().IsCritical() {
		r.appendCriticalMarker(ctx, event)
	}

	return nil
}

func (r *GormOrderEventRepository) appendCriticalMarker(ctx context.Context, cause *orderevent.Event) {
	marker, err := orderevent.NewEvent(
		kernel.NewUUID(),
		cause.OrderID(),
		orderevent.KindNotificationSent,
		fmt.Sprintf("ops alerted: %s", cause.Kind()),
		orderevent.RawPayload{"alertFor": cause.Kind().String()},
		time.Now().UTC(),
	)
	if err != nil {
		return
	}

	dto, err := fromDomain(marker)
	if err != nil {
		return
	}

	_ = r.db.WithContext(ctx).Create(&dto).Error
}

// HistoryByOrder retrieves the full history for one order, most recent
// first, for the order timeline.
func (r *GormOrderEventRepository) HistoryByOrder(ctx context.Context, orderID kernel.UUID) ([]*orderevent.Event, error) {
	return r.historyByOrder(ctx, orderID, "created_at DESC, id")
}

// HistoryChronological retrieves the full history for one order in
// chronological order, for replay.
func (r *GormOrderEventRepository) HistoryChronological(ctx context.Context, orderID kernel.UUID) ([]*orderevent.Event, error) {
	return r.historyByOrder(ctx, orderID, "created_at, id")
}

func (r *GormOrderEventRepository) historyByOrder(
	ctx context.Context,
	orderID kernel.UUID,
	ordering string,
) ([]*orderevent.Event, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order(ordering).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// CriticalSince retrieves events of critical kinds recorded after the given
// instant, across all orders, most recent first.
func (r *GormOrderEventRepository) CriticalSince(ctx context.Context, since time.Time) ([]*orderevent.Event, error) {
	kinds := orderevent.CriticalKinds()
	kindStrings := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		kindStrings = append(kindStrings, kind.String())
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("kind IN ? AND created_at > ?", kindStrings, since).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []EventDTO) ([]*orderevent.Event, error) {
	events := make([]*orderevent.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
