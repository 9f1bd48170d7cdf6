package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// LastProcessedHeight returns the scan resume point for the network, zero
// when the network has never been scanned. The cursor is read as max over all
// persisted heights, so it is monotonic even across replayed writes.
func (r *Repository) LastProcessedHeight(ctx context.Context) (uint64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("last_processed_height", r.network, err, start)
	}()

	const query = `
SELECT coalesce(max(height), toUInt64(0)) AS last_height
FROM scanner_cursor
WHERE network = ?`

	rows, err := r.conn.Query(ctx, query, string(r.network))
	if err != nil {
		return 0, fmt.Errorf("query last processed height: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var height uint64
	if !rows.Next() {
		return 0, fmt.Errorf("last processed height not found")
	}
	if err = rows.Scan(&height); err != nil {
		return 0, fmt.Errorf("scan last processed height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate last processed height: %w", err)
	}
	return height, nil
}

// SetLastProcessedHeight advances the scan cursor.
func (r *Repository) SetLastProcessedHeight(ctx context.Context, height uint64) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("set_last_processed_height", r.network, err, start)
	}()

	const query = `
INSERT INTO scanner_cursor (network, height, updated_at) VALUES (?, ?, ?)`

	if err = r.conn.Exec(ctx, query, string(r.network), height, time.Now().UTC()); err != nil {
		return fmt.Errorf("set last processed height %d: %w", height, err)
	}
	return nil
}
