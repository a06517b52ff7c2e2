package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time measures one named operation, logging its duration and recording it
// in the OperationDuration histogram with an ok/error outcome label.
// Call it at the top of the operation and defer the returned func with a
// pointer to the named error result:
//
//	defer obs.Time(ctx, "osrm.GetRoute")(&err)
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		outcome := "ok"
		if errp != nil && *errp != nil {
			outcome = "error"
		}
		OperationDuration.WithLabelValues(op, outcome).Observe(dur.Seconds())

		if outcome == "error" {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, op, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, op, dur.Milliseconds())
	}
}
