package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/frahmantamala/edumaster/internal/core/events"
	"github.com/frahmantamala/edumaster/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish domain events by hand, e.g. to backfill the activity log.`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish an event",
	Long:  `Publish an event on a bus wired to the activity log. The payload is a JSON object.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := publishEvent(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

var (
	eventData  string
	eventActor int64
)

func publishEvent(eventType string) error {
	if !slices.Contains(events.AllEventTypes, eventType) {
		return fmt.Errorf("unknown event type %q, expected one of %v", eventType, events.AllEventTypes)
	}
	data, err := buildEventData(eventData, eventActor)
	if err != nil {
		return err
	}

	config, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.LoggerWrapper()

	db, gdb, err := initDB(config.Database, config.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	event := events.BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}

	log.Info("publishing event", "event_type", eventType, "event_id", event.ID)
	if err := newEventBus(gdb, log).PublishSync(context.Background(), event); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	log.Info("event published", "event_id", event.ID)
	return nil
}

// buildEventData decodes the JSON payload and stamps the actor as int64, the
// type the activity log expects.
func buildEventData(raw string, actor int64) (map[string]interface{}, error) {
	data := map[string]interface{}{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("invalid --data: %w", err)
		}
		if data == nil {
			data = map[string]interface{}{}
		}
	}
	data["source"] = "cli"
	if actor > 0 {
		data["actor_id"] = actor
	} else {
		delete(data, "actor_id")
	}
	return data, nil
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "{}", "event payload as a JSON object")
	publishEventCmd.Flags().Int64Var(&eventActor, "actor", 0, "user id recorded as the actor")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
