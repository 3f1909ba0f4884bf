package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FilesChangedChannel is notified once per statement touching parquet_files.
const FilesChangedChannel = "parquet_files_changed"

// Watch calls onChange once and then again after every notification on
// channel, until ctx is done. A failing callback is logged and watching goes on.
func Watch(ctx context.Context, db *pgxpool.Pool, channel string, onChange func(context.Context) error) error {
	if err := onChange(ctx); err != nil {
		return fmt.Errorf("processing initial state: %w", err)
	}

	conn, err := db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db conn: %w", err)
	}

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel}.Sanitize()); err != nil {
		conn.Release()
		return fmt.Errorf("listening on %s: %w", channel, err)
	}

	go func() {
		defer conn.Release()

		for {
			notification, err := conn.Conn().WaitForNotification(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}

				slog.ErrorContext(ctx, "error waiting for notification", "channel", channel, "error", err)
				continue
			}

			slog.DebugContext(ctx, "postgres notification", "channel", notification.Channel, "payload", notification.Payload)
			if err := onChange(ctx); err != nil {
				slog.ErrorContext(ctx, "error processing notification", "channel", channel, "error", err)
			}
		}
	}()

	return nil
}
