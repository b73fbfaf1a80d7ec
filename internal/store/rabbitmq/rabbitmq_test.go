package rabbitmq

import (
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suPer8Hu/goldsmith-storefront/internal/notify"
)

var _ notify.Enqueuer = (*Publisher)(nil)

func TestJobPublishing(t *testing.T) {
	job, err := notify.NewJob(notify.Notification{Kind: "contact", Ref: "AB12CD34", ChatText: "hi"})
	require.NoError(t, err)

	msg, err := jobPublishing(job, 0)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, job.ID, msg.MessageId)
	assert.Equal(t, 0, Attempt(msg.Headers))

	back, err := notify.DecodeJob(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, job.ID, back.ID)
	assert.Equal(t, "AB12CD34", back.Notification.Ref)
}

func TestAttempt(t *testing.T) {
	assert.Equal(t, 0, Attempt(nil))
	assert.Equal(t, 0, Attempt(amqp.Table{HeaderAttempt: "x"}))
	assert.Equal(t, 3, Attempt(amqp.Table{HeaderAttempt: int32(3)}))
	assert.Equal(t, 4, Attempt(amqp.Table{HeaderAttempt: int64(4)}))
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 5*time.Second, RetryDelay(0))
	assert.Equal(t, 10*time.Second, RetryDelay(1))
	assert.Equal(t, 40*time.Second, RetryDelay(3))
	assert.Equal(t, 5*time.Minute, RetryDelay(20))
}

func TestQueueNames(t *testing.T) {
	assert.Equal(t, "notify_jobs.retry", RetryQueue("notify_jobs"))
	assert.Equal(t, "notify_jobs.dlq", DeadQueue("notify_jobs"))
}
