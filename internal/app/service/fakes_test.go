package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/repository"
	"github.com/jangheelee880707/wooahhan/internal/db"
	"github.com/jangheelee880707/wooahhan/pkg/gemini"
	"github.com/jangheelee880707/wooahhan/pkg/payment/simpay"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type storefrontFixture struct {
	db       *gorm.DB
	sessions SessionService
	products ProductService
	orders   repository.OrderRepository
	notifier *recordingNotifier
}

func setupStorefront(t *testing.T) *storefrontFixture {
	testDB, err := db.SetupSeededTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return &storefrontFixture{
		db:       testDB,
		sessions: NewSessionService(repository.NewMemorySessionRepository()),
		products: NewProductService(repository.NewProductRepository(testDB)),
		orders:   repository.NewOrderRepository(testDB),
		notifier: &recordingNotifier{},
	}
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices map[string][]model.Notice
}

func (n *recordingNotifier) Notify(sessionID string, notice model.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.notices == nil {
		n.notices = map[string][]model.Notice{}
	}
	n.notices[sessionID] = append(n.notices[sessionID], notice)
}

func (n *recordingNotifier) For(sessionID string) []model.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Notice(nil), n.notices[sessionID]...)
}

// fakeGenerativeClient answers from canned values and records what it was sent.
type fakeGenerativeClient struct {
	mu       sync.Mutex
	reply    string
	image    *gemini.Image
	err      error
	system   string
	turns    []gemini.Turn
	prompts  []string
	block    chan struct{}
	started  chan struct{}
	textHits int
}

func (f *fakeGenerativeClient) GenerateText(ctx context.Context, system string, turns []gemini.Turn) (string, error) {
	f.mu.Lock()
	f.system = system
	f.turns = append([]gemini.Turn(nil), turns...)
	f.textHits++
	block, started := f.block, f.started
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeGenerativeClient) GenerateImage(ctx context.Context, prompt string) (*gemini.Image, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.image == nil {
		return nil, gemini.ErrNoImage
	}
	return f.image, nil
}

type fakePayments struct {
	mu       sync.Mutex
	requests []simpay.ApproveRequest
	err      error
	started  chan struct{}
	block    chan struct{}
}

func (f *fakePayments) Approve(ctx context.Context, req simpay.ApproveRequest) (*simpay.ApproveResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &simpay.ApproveResponse{
		TID:         "T0000000000000000001",
		OrderNumber: req.OrderNumber,
		Method:      req.Method,
		Amount:      req.Amount,
		ApprovedAt:  time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}, nil
}

type fakeImageStore struct {
	err   error
	saved int
}

func (f *fakeImageStore) Save(_ context.Context, namespace string, data []byte, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved++
	return "https://cdn.example.com/" + namespace + "/" + string(rune('a'+f.saved)) + ".png", nil
}

var errGatewayDown = errors.New("gateway unavailable")

func fixedNow() time.Time {
	return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
}

var errStoreDown = errors.New("session store unavailable")

// failingSaveRepository rejects every Save while fail is set.
type failingSaveRepository struct {
	repository.SessionRepository
	fail atomic.Bool
}

func (r *failingSaveRepository) Save(ctx context.Context, session *model.Session) error {
	if r.fail.Load() {
		return errStoreDown
	}
	return r.SessionRepository.Save(ctx, session)
}
