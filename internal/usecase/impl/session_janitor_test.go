package impl

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestJanitor(factory *fakeFactory) *sessionJanitor {
	return &sessionJanitor{
		txManager: &fakeTxManager{factory: factory},
		interval:  time.Hour,
		logger:    testLogger(),
	}
}

func TestSessionJanitor_PurgesExpiredSessions(t *testing.T) {
	factory := newFakeFactory(t)
	janitor := newTestJanitor(factory)

	var cutoff time.Time
	factory.sessions.On("DeleteExpiredBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			cutoff = args.Get(1).(time.Time)
		}).
		Return(int64(4), nil)

	janitor.purgeOnce(context.Background())

	assert.WithinDuration(t, time.Now(), cutoff, time.Minute)
}

func TestSessionJanitor_SurvivesPurgeFailure(t *testing.T) {
	factory := newFakeFactory(t)
	janitor := newTestJanitor(factory)

	factory.sessions.On("DeleteExpiredBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(0), errors.New("connection reset"))

	// A failed purge round is logged and must not panic; the next tick
	// simply tries again.
	janitor.purgeOnce(context.Background())
}
