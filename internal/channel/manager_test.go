// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package channel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-form-coach/internal/clock"
	"github.com/MKhiriev/go-form-coach/internal/logger"
	"github.com/MKhiriev/go-form-coach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

func newTestManager(d Dialer, sched clock.Scheduler) *Manager {
	return NewManager(Config{
		URL:         "ws://coach.test/ws",
		BaseDelay:   time.Second,
		MaxAttempts: 5,
		DialTimeout: time.Second,
	}, d, sched, logger.Nop())
}

type stateRecorder struct {
	mu     sync.Mutex
	states []models.ConnectionState
	errs   []error
}

func (r *stateRecorder) handle(s models.ConnectionState, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
	r.errs = append(r.errs, err)
}

func (r *stateRecorder) States() []models.ConnectionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ConnectionState(nil), r.states...)
}

func (r *stateRecorder) LastErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return r.errs[len(r.errs)-1]
}

func TestManager_ConnectOpens(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: conn})
	m := newTestManager(d, clock.NewFake())
	rec := &stateRecorder{}
	m.OnStateChange(rec.handle)

	require.NoError(t, m.Connect(context.Background()))

	assert.True(t, m.IsConnected())
	assert.Equal(t, []models.ConnectionState{models.Connecting, models.Open}, rec.States())

	// already open: no second dial
	require.NoError(t, m.Connect(context.Background()))
	assert.Equal(t, 1, d.Dials())
}

func TestManager_ConnectFailureLeavesDisconnected(t *testing.T) {
	d := &fakeDialer{}
	d.push(dialResult{err: errRefused})
	fake := clock.NewFake()
	m := newTestManager(d, fake)

	err := m.Connect(context.Background())

	var cerr *ConnectionError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, errRefused)
	assert.Equal(t, "ws://coach.test/ws", cerr.URL)
	assert.Equal(t, models.Disconnected, m.State())
	assert.Zero(t, fake.Pending(), "a failed manual connect must not schedule a retry")
}

func TestManager_ConnectEmptyURL(t *testing.T) {
	m := NewManager(Config{}, &fakeDialer{}, clock.NewFake(), logger.Nop())

	err := m.Connect(context.Background())

	assert.ErrorIs(t, err, ErrEmptyURL)
	assert.Equal(t, models.Disconnected, m.State())
}

func TestManager_ConcurrentConnectSharesAttempt(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{gate: make(chan struct{})}
	d.push(dialResult{conn: conn})
	m := newTestManager(d, clock.NewFake())

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.Connect(context.Background())
		}(i)
	}

	require.Eventually(t, func() bool { return m.State() == models.Connecting }, waitFor, tick)
	// let every caller reach the in-flight attempt before it completes
	time.Sleep(20 * time.Millisecond)
	close(d.gate)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, d.Dials())
	assert.True(t, m.IsConnected())
}

func TestManager_ConnectContextCancelled(t *testing.T) {
	d := &fakeDialer{gate: make(chan struct{})}
	d.push(dialResult{conn: newFakeConn()})
	m := newTestManager(d, clock.NewFake())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Connect(ctx), context.Canceled)
	close(d.gate)
	require.Eventually(t, m.IsConnected, waitFor, tick)
}

func TestManager_BackoffThenGivenUp(t *testing.T) {
	first := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: first})
	fake := clock.NewFake()
	m := newTestManager(d, fake)
	rec := &stateRecorder{}
	m.OnStateChange(rec.handle)

	require.NoError(t, m.Connect(context.Background()))
	first.drop(errors.New("peer reset"))
	require.Eventually(t, func() bool { return m.State() == models.Reconnecting }, waitFor, tick)
	assert.Equal(t, 1, m.Attempt())

	// every retry fails: 1s, 2s, 4s, 8s, 16s, then give up
	for i := 0; i < 5; i++ {
		fake.Advance(time.Duration(1<<i) * time.Second)
	}

	assert.Equal(t, []time.Duration{
		1000 * time.Millisecond,
		2000 * time.Millisecond,
		4000 * time.Millisecond,
		8000 * time.Millisecond,
		16000 * time.Millisecond,
	}, fake.Delays())
	assert.Equal(t, models.GivenUp, m.State())
	assert.ErrorIs(t, rec.LastErr(), ErrGivenUp)
	assert.Equal(t, 6, d.Dials())
	assert.Zero(t, fake.Pending())

	// GivenUp is terminal: nothing else is scheduled
	fake.Advance(time.Hour)
	assert.Equal(t, 6, d.Dials())
}

func TestManager_ConnectJoiningRetryFailsToDisconnected(t *testing.T) {
	first := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: first})
	fake := clock.NewFake()
	m := newTestManager(d, fake)

	require.NoError(t, m.Connect(context.Background()))
	first.drop(nil)
	require.Eventually(t, func() bool { return m.State() == models.Reconnecting }, waitFor, tick)

	// следующая попытка переподключения зависает на гейте
	gate := make(chan struct{})
	d.mu.Lock()
	d.gate = gate
	d.mu.Unlock()

	advanced := make(chan struct{})
	go func() {
		defer close(advanced)
		fake.Advance(time.Second)
	}()
	require.Eventually(t, func() bool { return m.State() == models.Connecting }, waitFor, tick)

	errc := make(chan error, 1)
	go func() { errc <- m.Connect(context.Background()) }()
	// let Connect join the in-flight retry before it fails
	time.Sleep(20 * time.Millisecond)
	close(gate)

	var cerr *ConnectionError
	require.ErrorAs(t, <-errc, &cerr)
	<-advanced

	assert.Equal(t, models.Disconnected, m.State())
	assert.Zero(t, fake.Pending())
	assert.Zero(t, m.Attempt())
	assert.Equal(t, 2, d.Dials())
}

func TestManager_ConnectAfterGivenUp(t *testing.T) {
	first := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: first})
	fake := clock.NewFake()
	m := newTestManager(d, fake)

	require.NoError(t, m.Connect(context.Background()))
	first.drop(nil)
	require.Eventually(t, func() bool { return m.State() == models.Reconnecting }, waitFor, tick)
	fake.Advance(time.Minute)
	require.Equal(t, models.GivenUp, m.State())

	d.push(dialResult{conn: newFakeConn()})
	require.NoError(t, m.Connect(context.Background()))

	assert.True(t, m.IsConnected())
	assert.Zero(t, m.Attempt())
}

func TestManager_SuccessfulRetryResetsAttempt(t *testing.T) {
	first, second, third := newFakeConn(), newFakeConn(), newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: first})
	fake := clock.NewFake()
	m := newTestManager(d, fake)

	require.NoError(t, m.Connect(context.Background()))
	first.drop(nil)
	require.Eventually(t, func() bool { return m.State() == models.Reconnecting }, waitFor, tick)

	// first retry fails, second succeeds
	d.push(dialResult{err: errRefused}, dialResult{conn: second})
	fake.Advance(time.Second)
	assert.Equal(t, 2, m.Attempt())
	fake.Advance(2 * time.Second)
	require.True(t, m.IsConnected())
	assert.Zero(t, m.Attempt())

	// the next drop starts again from the base delay
	d.push(dialResult{conn: third})
	second.drop(nil)
	require.Eventually(t, func() bool { return m.State() == models.Reconnecting }, waitFor, tick)
	assert.Equal(t, 1, m.Attempt())

	delays := fake.Delays()
	assert.Equal(t, time.Second, delays[len(delays)-1])
	fake.Advance(time.Second)
	assert.True(t, m.IsConnected())
}

func TestManager_OnlyOneRetryScheduled(t *testing.T) {
	first := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: first})
	fake := clock.NewFake()
	m := newTestManager(d, fake)

	require.NoError(t, m.Connect(context.Background()))
	first.drop(nil)
	require.Eventually(t, func() bool { return m.State() == models.Reconnecting }, waitFor, tick)

	assert.Equal(t, 1, fake.Pending())
	fake.Advance(time.Second)
	assert.Equal(t, 1, fake.Pending())
}

func TestManager_DisconnectCancelsRetry(t *testing.T) {
	first := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: first})
	fake := clock.NewFake()
	m := newTestManager(d, fake)

	require.NoError(t, m.Connect(context.Background()))
	first.drop(nil)
	require.Eventually(t, func() bool { return m.State() == models.Reconnecting }, waitFor, tick)

	m.Disconnect()

	assert.Equal(t, models.Disconnected, m.State())
	assert.Zero(t, fake.Pending())
	assert.Zero(t, m.Attempt())
	fake.Advance(time.Minute)
	assert.Equal(t, 1, d.Dials())
}

func TestManager_DisconnectDoesNotReconnect(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: conn})
	fake := clock.NewFake()
	m := newTestManager(d, fake)
	rec := &stateRecorder{}
	m.OnStateChange(rec.handle)

	require.NoError(t, m.Connect(context.Background()))
	m.Disconnect()

	// give the read loop time to observe the close
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, models.Disconnected, m.State())
	assert.Zero(t, fake.Pending())
	assert.Equal(t, []models.ConnectionState{
		models.Connecting, models.Open, models.Closing, models.Disconnected,
	}, rec.States())
}

func TestManager_Send(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: conn})
	m := newTestManager(d, clock.NewFake())
	m.now = func() time.Time { return time.UnixMilli(1_700_000_000_500) }

	assert.False(t, m.Send(models.CommandPause, nil), "send while disconnected")

	require.NoError(t, m.Connect(context.Background()))
	require.True(t, m.Send(models.CommandSelectExercise, models.SelectExerciseRequest{Index: 2}))

	written := conn.Written()
	require.Len(t, written, 1)
	var got map[string]any
	require.NoError(t, json.Unmarshal(written[0], &got))
	assert.Equal(t, "select_exercise", got["type"])
	assert.Equal(t, map[string]any{"index": float64(2)}, got["data"])
	assert.InDelta(t, 1_700_000_000.5, got["timestamp"], 1e-6)

	m.Disconnect()
	assert.False(t, m.Send(models.CommandPause, nil), "send after disconnect")
	assert.Len(t, conn.Written(), 1, "nothing is queued")
}

func TestManager_DeliversMessagesInOrder(t *testing.T) {
	conn := newFakeConn()
	d := &fakeDialer{}
	d.push(dialResult{conn: conn})
	m := newTestManager(d, clock.NewFake())

	var mu sync.Mutex
	var got []string
	m.OnMessage(func(raw []byte) {
		mu.Lock()
		got = append(got, string(raw))
		mu.Unlock()
	})

	require.NoError(t, m.Connect(context.Background()))
	for _, msg := range []string{"a", "b", "c"} {
		conn.in <- []byte(msg)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 3
	}, waitFor, tick)
	mu.Lock()
	assert.Equal(t, []string{"a", "b", "c"}, got)
	mu.Unlock()
}
