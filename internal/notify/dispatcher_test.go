package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	name string
	err  error
	boom bool

	mu   sync.Mutex
	sent []Notification
}

func (f *fakeSender) Name() string { return f.name }

func (f *fakeSender) Send(ctx context.Context, n Notification) error {
	if f.boom {
		panic("sender exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeQueue struct {
	err  error
	jobs []Notification
}

func (q *fakeQueue) Enqueue(ctx context.Context, n Notification) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, n)
	return nil
}

func TestDeliver_BothChannels(t *testing.T) {
	chat := &fakeSender{name: "chat"}
	mail := &fakeSender{name: "mail"}
	d := NewDispatcher(chat, mail, nil)

	res := d.Deliver(context.Background(), Notification{Ref: "A1"})
	assert.Equal(t, Result{ChatOps: true, Email: true}, res)
	assert.Equal(t, 1, chat.count())
	assert.Equal(t, 1, mail.count())
}

func TestDeliver_FailuresAreIndependent(t *testing.T) {
	chat := &fakeSender{name: "chat", err: errors.New("connection refused")}
	mail := &fakeSender{name: "mail"}
	d := NewDispatcher(chat, mail, nil)

	res := d.Deliver(context.Background(), Notification{Ref: "A2"})
	assert.False(t, res.ChatOps)
	assert.True(t, res.Email)
	assert.True(t, res.Failed)
}

func TestDeliver_UnconfiguredAndPanics(t *testing.T) {
	d := NewDispatcher(nil, &fakeSender{name: "mail", boom: true}, nil)

	res := d.Deliver(context.Background(), Notification{Ref: "A3"})
	assert.Equal(t, Result{Failed: true}, res)
}

func TestDeliver_SkippedIsNotFailure(t *testing.T) {
	d := NewDispatcher(&fakeSender{name: "chat", err: ErrNotConfigured}, &fakeSender{name: "mail", err: ErrNothingToSend}, nil)

	res := d.Deliver(context.Background(), Notification{Ref: "A4"})
	assert.Equal(t, Result{}, res)
}

func TestDispatch_InProcess(t *testing.T) {
	chat := &fakeSender{name: "chat"}
	mail := &fakeSender{name: "mail", err: ErrNotConfigured}
	d := NewDispatcher(chat, mail, nil)

	ctx, cancel := context.WithCancel(context.Background())
	d.Dispatch(ctx, Notification{Ref: "B1"})
	cancel() // request finished; delivery must still run
	d.Wait()

	assert.Equal(t, 1, chat.count())
}

func TestDispatch_PrefersQueue(t *testing.T) {
	chat := &fakeSender{name: "chat"}
	q := &fakeQueue{}
	d := NewDispatcher(chat, nil, nil, WithQueue(q))

	d.Dispatch(context.Background(), Notification{Ref: "C1"})
	d.Wait()

	require.Len(t, q.jobs, 1)
	assert.Equal(t, "C1", q.jobs[0].Ref)
	assert.Zero(t, chat.count())
}

func TestDispatch_QueueFailureFallsBack(t *testing.T) {
	chat := &fakeSender{name: "chat"}
	d := NewDispatcher(chat, nil, nil, WithQueue(&fakeQueue{err: errors.New("channel closed")}))

	d.Dispatch(context.Background(), Notification{Ref: "C2"})
	d.Wait()

	assert.Equal(t, 1, chat.count())
}

func TestNewJob_AndDecodeRejects(t *testing.T) {
	j, err := NewJob(Notification{Kind: "contact", Ref: "ABCD1234", ChatText: "hi"})
	require.NoError(t, err)
	assert.Len(t, j.ID, 26)

	_, err = DecodeJob([]byte(`{"notification":{"ref":"x"}}`))
	assert.Error(t, err)
	_, err = DecodeJob([]byte(`not json`))
	assert.Error(t, err)
}
