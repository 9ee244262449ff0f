package usecase

import (
	"context"
	"log/slog"

	"ContentAgent/internal/domain"
	"ContentAgent/internal/ports"
)

// NotificationDispatcher sends a draft to each destination independently.
type NotificationDispatcher struct {
	destinations []ports.Destination
	logger       *slog.Logger
}

var _ ports.Dispatcher = (*NotificationDispatcher)(nil)

// NewNotificationDispatcher keeps destinations in the given order.
func NewNotificationDispatcher(log *slog.Logger, destinations ...ports.Destination) *NotificationDispatcher {
	return &NotificationDispatcher{destinations: destinations, logger: log}
}

// Dispatch never fails: unconfigured destinations are skipped silently and
// send errors are logged per destination.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, draft domain.Draft) domain.DispatchReport {
	var report domain.DispatchReport
	for _, dest := range d.destinations {
		if dest == nil || !dest.Enabled() {
			continue
		}

		logInfo(d.logger, "sending draft", "destination", dest.Name(), "link", draft.Link)
		if err := dest.Send(ctx, draft); err != nil {
			logError(d.logger, "failed to send draft", "destination", dest.Name(), "error", err)
			report.Failed = append(report.Failed, dest.Name())
			continue
		}
		logInfo(d.logger, "draft sent", "destination", dest.Name())
		report.Delivered = append(report.Delivered, dest.Name())
	}
	return report
}
