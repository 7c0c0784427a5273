package marksync

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	stripego "github.com/stripe/stripe-go/v81"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/thetop36/internal/domain"
	"github.com/GlebRadaev/thetop36/pkg/stripe"
)

var (
	testNow   = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	processed = map[string]string{stripe.MetadataProcessed: "true"}
)

type mocks struct {
	repo    *MockRepo
	updater *MockMetadataUpdater
	pool    *MockWorkerPoolI
	sleeps  []time.Duration
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		repo:    NewMockRepo(ctrl),
		updater: NewMockMetadataUpdater(ctrl),
		pool:    NewMockWorkerPoolI(ctrl),
	}
	service := New(Config{Retention: 720 * time.Hour, Limit: 10, Workers: 1}, m.repo, m.updater)
	service.workerPool.Close()
	service.workerPool = m.pool
	service.now = func() time.Time { return testNow }
	service.sleep = func(_ context.Context, d time.Duration) error {
		m.sleeps = append(m.sleeps, d)
		return nil
	}
	return service, m
}

func runInline(m *mocks) {
	m.pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, task Task) error {
			_ = task()
			return nil
		}).AnyTimes()
}

func TestSyncPending(t *testing.T) {
	service, m := NewMock(t)
	runInline(m)

	payments := []domain.ProcessedPayment{
		{ID: 1, SessionID: "cs_1"},
		{ID: 2, SessionID: "cs_2"},
	}
	m.repo.EXPECT().FindUnsynced(gomock.Any(), uint32(10)).Return(payments, nil)
	m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_1", processed).Return(nil)
	m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_2", processed).Return(nil)
	m.repo.EXPECT().MarkSynced(gomock.Any(), 1).Return(nil)
	m.repo.EXPECT().MarkSynced(gomock.Any(), 2).Return(nil)

	service.SyncPending(context.Background())

	_, busy := service.inFlight.Load(1)
	assert.False(t, busy)
}

func TestSyncPendingSkipsInFlight(t *testing.T) {
	service, m := NewMock(t)
	runInline(m)
	service.inFlight.Store(1, struct{}{})

	m.repo.EXPECT().FindUnsynced(gomock.Any(), uint32(10)).
		Return([]domain.ProcessedPayment{{ID: 1, SessionID: "cs_1"}, {ID: 2, SessionID: "cs_2"}}, nil)
	m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_2", processed).Return(nil)
	m.repo.EXPECT().MarkSynced(gomock.Any(), 2).Return(nil)

	service.SyncPending(context.Background())
}

func TestSyncPendingFetchError(t *testing.T) {
	service, m := NewMock(t)
	m.repo.EXPECT().FindUnsynced(gomock.Any(), uint32(10)).Return(nil, errors.New("db down"))

	service.SyncPending(context.Background())
}

func TestSyncPendingDispatchError(t *testing.T) {
	service, m := NewMock(t)
	m.repo.EXPECT().FindUnsynced(gomock.Any(), uint32(10)).
		Return([]domain.ProcessedPayment{{ID: 3, SessionID: "cs_3"}}, nil)
	m.pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(context.Canceled)

	service.SyncPending(context.Background())

	_, busy := service.inFlight.Load(3)
	assert.False(t, busy)
}

func TestSyncPayment(t *testing.T) {
	payment := domain.ProcessedPayment{ID: 7, SessionID: "cs_7"}

	tests := []struct {
		name           string
		prepareMock    func(m *mocks)
		expectedSleeps []time.Duration
		expectError    bool
	}{
		{
			name: "Marker written",
			prepareMock: func(m *mocks) {
				m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).Return(nil)
				m.repo.EXPECT().MarkSynced(gomock.Any(), 7).Return(nil)
			},
		},
		{
			name: "Session gone at provider",
			prepareMock: func(m *mocks) {
				m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).
					Return(&stripego.Error{HTTPStatusCode: http.StatusNotFound})
				m.repo.EXPECT().MarkSynced(gomock.Any(), 7).Return(nil)
			},
		},
		{
			name: "Rate limited then written",
			prepareMock: func(m *mocks) {
				gomock.InOrder(
					m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).
						Return(&stripego.Error{HTTPStatusCode: http.StatusTooManyRequests}),
					m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).Return(nil),
				)
				m.repo.EXPECT().MarkSynced(gomock.Any(), 7).Return(nil)
			},
			expectedSleeps: []time.Duration{time.Second},
		},
		{
			name: "Provider keeps failing",
			prepareMock: func(m *mocks) {
				m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).
					Return(&stripego.Error{HTTPStatusCode: http.StatusBadGateway}).Times(maxRetries)
			},
			expectedSleeps: []time.Duration{time.Second, 2 * time.Second},
			expectError:    true,
		},
		{
			name: "Network errors are retried",
			prepareMock: func(m *mocks) {
				gomock.InOrder(
					m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).Return(errors.New("connection reset")),
					m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).Return(nil),
				)
				m.repo.EXPECT().MarkSynced(gomock.Any(), 7).Return(nil)
			},
			expectedSleeps: []time.Duration{time.Second},
		},
		{
			name: "Rejected request is recorded and not retried",
			prepareMock: func(m *mocks) {
				m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).
					Return(&stripego.Error{HTTPStatusCode: http.StatusBadRequest, Msg: "Metadata is invalid"})
				m.repo.EXPECT().MarkSynced(gomock.Any(), 7).Return(nil)
			},
		},
		{
			name: "Stripe not configured",
			prepareMock: func(m *mocks) {
				m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).Return(stripe.ErrNotConfigured)
			},
			expectError: true,
		},
		{
			name: "Marking synced fails",
			prepareMock: func(m *mocks) {
				m.updater.EXPECT().UpdateSessionMetadata(gomock.Any(), "cs_7", processed).Return(nil)
				m.repo.EXPECT().MarkSynced(gomock.Any(), 7).Return(errors.New("db down"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := NewMock(t)
			tt.prepareMock(m)

			err := service.syncPayment(context.Background(), payment)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedSleeps, m.sleeps)
		})
	}
}

func TestPrune(t *testing.T) {
	service, m := NewMock(t)

	m.repo.EXPECT().PruneSynced(gomock.Any(), testNow.Add(-720*time.Hour)).Return(int64(3), nil)
	service.Prune(context.Background())

	m.repo.EXPECT().PruneSynced(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
	service.Prune(context.Background())

	service.retention = 0
	service.Prune(context.Background())
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
