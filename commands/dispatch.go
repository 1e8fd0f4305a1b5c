package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"civiclens/config"
	"civiclens/events"
	"civiclens/utils"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func dispatchCmd() *cobra.Command {
	var group, consumer string

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Follow the issue event stream and log each hand-off to a department",
		Long: `Follow the issue event stream and log each hand-off to a department.

Reads issue.reported, issue.status_updated and issue.deleted events from the Redis stream
named by EVENT_STREAM through a consumer group, acknowledging each one once logged.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDispatch(cmd.Context(), group, consumer)
		},
	}

	hostname, _ := os.Hostname()
	cmd.Flags().StringVar(&group, "group", "dispatch", "consumer group name")
	cmd.Flags().StringVar(&consumer, "consumer", hostname, "consumer name within the group")

	return cmd
}

func runDispatch(ctx context.Context, group, consumer string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.RedisAddress == "" {
		return errors.New("dispatch needs REDIS_ADDRESS")
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	defer func() { _ = logger.Sync() }()

	client, err := config.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisPassword)
	if err != nil {
		return err
	}
	defer client.Close()

	stream := events.NewRedisStreamPublisher(client, cfg.EventStream, logger)

	logger.Info("dispatch consumer started",
		zap.String("stream", cfg.EventStream),
		zap.String("group", group),
		zap.String("consumer", consumer))

	err = stream.Consume(ctx, group, consumer, dispatchHandler(logger))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func dispatchHandler(logger *zap.Logger) func(*events.Event) error {
	return func(event *events.Event) error {
		switch event.EventType {
		case events.IssueReported:
			var payload events.IssueReportedPayload
			if err := event.ParsePayload(&payload); err != nil {
				return err
			}
			logger.Info("issue dispatched",
				zap.String("issue_id", payload.IssueID),
				zap.String("title", payload.Title),
				zap.String("severity", string(payload.Severity)),
				zap.String("department", payload.AssignedDepartment),
				zap.String("district", payload.District))

		case events.IssueStatusUpdated:
			var payload events.IssueStatusUpdatedPayload
			if err := event.ParsePayload(&payload); err != nil {
				return err
			}
			logger.Info("issue status changed",
				zap.String("issue_id", payload.IssueID),
				zap.String("from", string(payload.OldStatus)),
				zap.String("to", string(payload.NewStatus)))

		case events.IssueDeleted:
			logger.Info("issue withdrawn", zap.String("issue_id", event.IssueID))

		default:
			logger.Warn("unknown event type", zap.String("event_type", event.EventType))
		}
		return nil
	}
}
