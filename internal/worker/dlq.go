package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed job with the failure reason and timestamp.
type DLQEntry struct {
	Queue    string          `json:"queue"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	FailedAt time.Time       `json:"failed_at"`
}

// SendToDLQ stores a job that could not be processed so it can be
// inspected and replayed by hand.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, payload json.RawMessage, errMsg string) error {
	entry := DLQEntry{
		Queue:    queue,
		Payload:  payload,
		Error:    errMsg,
		FailedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, DLQPrefix+queue, data).Err()
}

// DLQLength returns how many failed jobs sit in a queue's DLQ.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
