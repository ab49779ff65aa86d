package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/fitdash/internal/telemetry/metrics"
	"github.com/2beens/fitdash/internal/telemetry/tracing"
	"github.com/2beens/fitdash/internal/userdata"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=dashboard

type Source interface {
	GetUser(ctx context.Context, userID int) (*userdata.User, error)
	GetActivity(ctx context.Context, userID int) (*userdata.Activity, error)
	GetAverageSessions(ctx context.Context, userID int) (*userdata.AverageSessions, error)
	GetPerformance(ctx context.Context, userID int) (*userdata.Performance, error)
	Invalidate(ctx context.Context, userID int)
}

// Board holds the four independent fetch slots of one user's dashboard.
type Board struct {
	UserID      int
	User        *Slot[*userdata.User]
	Activity    *Slot[*userdata.Activity]
	Sessions    *Slot[*userdata.AverageSessions]
	Performance *Slot[*userdata.Performance]
}

func NewBoard(userID int, metricsManager *metrics.Manager) *Board {
	discard := func(chartKind ChartKind) func() {
		return func() {
			log.Debugf("discarding stale %s response for user %d", chartKind, userID)
			if metricsManager != nil {
				metricsManager.CounterStaleResponses.WithLabelValues(string(chartKind)).Inc()
			}
		}
	}
	return &Board{
		UserID:      userID,
		User:        NewSlot[*userdata.User](discard(ChartScore)),
		Activity:    NewSlot[*userdata.Activity](discard(ChartActivity)),
		Sessions:    NewSlot[*userdata.AverageSessions](discard(ChartSessions)),
		Performance: NewSlot[*userdata.Performance](discard(ChartPerformance)),
	}
}

// Records returns the values of all ready slots.
func (b *Board) Records() userdata.Records {
	var rec userdata.Records
	if s := b.User.Snapshot(); s.Ready() {
		rec.User = s.Value
	}
	if s := b.Activity.Snapshot(); s.Ready() {
		rec.Activity = s.Value
	}
	if s := b.Sessions.Snapshot(); s.Ready() {
		rec.AverageSessions = s.Value
	}
	if s := b.Performance.Snapshot(); s.Ready() {
		rec.Performance = s.Value
	}
	return rec
}

// Status reports the fetch state behind a chart kind.
func (b *Board) Status(kind ChartKind) (loading bool, err error) {
	switch kind {
	case ChartActivity:
		s := b.Activity.Snapshot()
		return s.Loading, s.Err
	case ChartSessions:
		s := b.Sessions.Snapshot()
		return s.Loading, s.Err
	case ChartPerformance:
		s := b.Performance.Snapshot()
		return s.Loading, s.Err
	case ChartScore:
		s := b.User.Snapshot()
		return s.Loading, s.Err
	default:
		return false, fmt.Errorf("%q: %w", kind, ErrUnknownChart)
	}
}

type sharedBoard struct {
	board *Board
	users int
}

type Loader struct {
	source         Source
	timeout        time.Duration
	metricsManager *metrics.Manager

	mu     sync.Mutex
	boards map[int]*sharedBoard
}

func NewLoader(source Source, timeout time.Duration, metricsManager *metrics.Manager) *Loader {
	return &Loader{
		source:         source,
		timeout:        timeout,
		metricsManager: metricsManager,
		boards:         make(map[int]*sharedBoard),
	}
}

// Acquire returns the board shared by all in-flight requests of the user, so
// a refresh started by one request supersedes the older ones. The board is
// forgotten once every holder has called release.
func (l *Loader) Acquire(userID int) (*Board, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sb, ok := l.boards[userID]
	if !ok {
		sb = &sharedBoard{board: NewBoard(userID, l.metricsManager)}
		l.boards[userID] = sb
	}
	sb.users++

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			sb.users--
			if sb.users == 0 {
				delete(l.boards, userID)
			}
		})
	}
	return sb.board, release
}

// Load refreshes the user's shared board. The caller must release it.
func (l *Loader) Load(ctx context.Context, userID int) (*Board, func()) {
	board, release := l.Acquire(userID)
	l.Refresh(ctx, board)
	return board, release
}

// Invalidate drops whatever the source has cached for the user.
func (l *Loader) Invalidate(ctx context.Context, userID int) {
	log.Debugf("invalidating cached data of user %d", userID)
	l.source.Invalidate(ctx, userID)
}

// Refresh fetches the four records concurrently. A failed fetch is stored in
// its own slot and never cancels the others.
func (l *Loader) Refresh(ctx context.Context, board *Board) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "dashboard.refresh")
	span.SetAttributes(attribute.Int("user", board.UserID))
	defer span.End()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var g errgroup.Group
	g.Go(func() error {
		fill(ctx, board.User, board.UserID, l.source.GetUser)
		return nil
	})
	g.Go(func() error {
		fill(ctx, board.Activity, board.UserID, l.source.GetActivity)
		return nil
	})
	g.Go(func() error {
		fill(ctx, board.Sessions, board.UserID, l.source.GetAverageSessions)
		return nil
	})
	g.Go(func() error {
		fill(ctx, board.Performance, board.UserID, l.source.GetPerformance)
		return nil
	})
	// goroutines never return an error
	_ = g.Wait()
}

// LoadChart fills only the slot the chart kind is drawn from.
func (l *Loader) LoadChart(ctx context.Context, userID int, kind ChartKind) (*Board, error) {
	board := NewBoard(userID, l.metricsManager)
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	switch kind {
	case ChartActivity:
		fill(ctx, board.Activity, userID, l.source.GetActivity)
	case ChartSessions:
		fill(ctx, board.Sessions, userID, l.source.GetAverageSessions)
	case ChartPerformance:
		fill(ctx, board.Performance, userID, l.source.GetPerformance)
	case ChartScore:
		fill(ctx, board.User, userID, l.source.GetUser)
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownChart)
	}
	return board, nil
}

func fill[T any](ctx context.Context, slot *Slot[T], userID int, fetch func(context.Context, int) (T, error)) {
	ticket := slot.Begin()
	value, err := fetch(ctx, userID)
	if err != nil {
		log.Errorf("fetch for user %d: %s", userID, err)
	}
	slot.Complete(ticket, value, err)
}
