package pomodoro

import (
	"sync"
	"time"

	"study_assistant/pkg/logger"

	"go.uber.org/zap"
)

type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type Clock interface {
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

type realTicker struct{ t *time.Ticker }

func (realClock) NewTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// SystemClock 基于 time.Ticker 的时钟
var SystemClock Clock = realClock{}

const eventBuffer = 8

type RunnerOption func(*Runner)

// WithTickHandler 每次推进后以最新快照回调，回调在锁外执行
func WithTickHandler(fn func(State)) RunnerOption {
	return func(r *Runner) { r.onTick = fn }
}

// Runner 在计时运行期间持有唯一的一秒定时器
type Runner struct {
	mu     sync.Mutex
	timer  *Timer
	clock  Clock
	ticker Ticker
	stop   chan struct{}
	events chan Transition
	onTick func(State)
	closed bool
}

func NewRunner(timer *Timer, clock Clock, opts ...RunnerOption) *Runner {
	if clock == nil {
		clock = SystemClock
	}
	r := &Runner{
		timer:  timer,
		clock:  clock,
		events: make(chan Transition, eventBuffer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Events 完成转换事件，Close 后关闭
func (r *Runner) Events() <-chan Transition {
	return r.events
}

func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.timer.Start()
	if r.ticker != nil {
		return
	}
	r.ticker = r.clock.NewTicker(time.Second)
	r.stop = make(chan struct{})
	go r.loop(r.ticker, r.stop)
}

func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timer.Pause()
	r.stopTickerLocked()
}

func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timer.Reset()
	r.stopTickerLocked()
}

func (r *Runner) Skip() Transition {
	r.mu.Lock()
	tr := r.timer.Skip()
	r.stopTickerLocked()
	r.publishLocked(tr)
	state := r.timer.Snapshot()
	r.mu.Unlock()

	r.notifyTick(state)
	return tr
}

func (r *Runner) Configure(s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Configure(s)
}

func (r *Runner) SetNotifications(enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.SetNotifications(enabled)
}

func (r *Runner) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Snapshot()
}

// Running 定时器是否存在
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticker != nil
}

// Close 停止定时器并关闭事件通道，可重复调用
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.timer.Pause()
	r.stopTickerLocked()
	r.closed = true
	close(r.events)
}

func (r *Runner) loop(t Ticker, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-t.C():
		}

		r.mu.Lock()
		select {
		case <-stop:
			// 已被暂停或重置，丢弃滞后的 tick
			r.mu.Unlock()
			return
		default:
		}
		tr := r.timer.Tick()
		if tr != nil {
			r.stopTickerLocked()
			r.publishLocked(*tr)
		}
		state := r.timer.Snapshot()
		r.mu.Unlock()

		r.notifyTick(state)
		if tr != nil {
			return
		}
	}
}

func (r *Runner) stopTickerLocked() {
	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	close(r.stop)
	r.ticker = nil
	r.stop = nil
}

func (r *Runner) publishLocked(tr Transition) {
	if r.closed {
		return
	}
	select {
	case r.events <- tr:
	default:
		logger.Log.Warn("Pomodoro event dropped",
			zap.String("from", string(tr.From)),
			zap.String("to", string(tr.To)))
	}
}

func (r *Runner) notifyTick(state State) {
	if r.onTick != nil {
		r.onTick(state)
	}
}
