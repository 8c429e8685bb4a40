// Package workers runs the daemon's background jobs. Each job implements
// [Worker]; [Workers] starts them together and stops them in reverse order.
package workers

import "context"

// Worker is a background job with an explicit lifecycle. Start must not
// block; Stop must wait for the job to exit and be safe to call twice.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
