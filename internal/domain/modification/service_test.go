package modification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offerstock/internal/core/apperror"
	"offerstock/internal/core/id"
	"offerstock/internal/domain/quantity"
)

type fakeRepo struct {
	stored  map[id.ID]*quantity.Record
	saves   int
	saveErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: make(map[id.ID]*quantity.Record)}
}

func (f *fakeRepo) GetQuantity(_ context.Context, modificationID id.ID) (*quantity.Record, error) {
	return f.stored[modificationID], nil
}

func (f *fakeRepo) SaveQuantity(_ context.Context, modificationID id.ID, rec *quantity.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.stored[modificationID] = rec
	return nil
}

type auditCall struct {
	created       bool
	before, after map[string]any
}

type fakeAudit struct {
	calls     []auditCall
	err       error
	history   []Change
	lastLimit int
}

func (f *fakeAudit) LogQuantityChange(_ context.Context, _ id.ID, created bool, before, after map[string]any) error {
	f.calls = append(f.calls, auditCall{created, before, after})
	return f.err
}

func (f *fakeAudit) QuantityHistory(_ context.Context, _ id.ID, limit int) ([]Change, error) {
	f.lastLimit = limit
	return f.history, f.err
}

func intPtr(v int) *int { return &v }

func TestService_EditQuantity_CreatesRecord(t *testing.T) {
	repo := newFakeRepo()
	audit := &fakeAudit{}
	svc := NewService(repo, audit)
	modID := id.New()

	rec, err := svc.EditQuantity(context.Background(), modID, quantity.Input{Quantity: intPtr(5), Reserve: intPtr(2)})
	require.NoError(t, err)

	assert.Equal(t, 5, rec.Quantity())
	assert.Equal(t, 2, rec.Reserve())
	assert.Equal(t, 1, repo.saves)

	require.Len(t, audit.calls, 1)
	assert.True(t, audit.calls[0].created)
	assert.Equal(t, map[string]any{"quantity": 0, "reserve": 0}, audit.calls[0].before)
	assert.Equal(t, map[string]any{"quantity": 5, "reserve": 2}, audit.calls[0].after)
}

func TestService_EditQuantity_UpdatesExisting(t *testing.T) {
	repo := newFakeRepo()
	audit := &fakeAudit{}
	modID := id.New()
	repo.stored[modID] = quantity.FromStored(intPtr(10), intPtr(-4))
	svc := NewService(repo, audit)

	rec, err := svc.EditQuantity(context.Background(), modID, quantity.Input{Quantity: intPtr(7), Reserve: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 7, rec.Quantity())

	require.Len(t, audit.calls, 1)
	assert.False(t, audit.calls[0].created)
	assert.Equal(t, map[string]any{"quantity": 10, "reserve": 0}, audit.calls[0].before)
}

func TestService_EditQuantity_UnchangedSkipsAudit(t *testing.T) {
	repo := newFakeRepo()
	audit := &fakeAudit{}
	modID := id.New()
	repo.stored[modID] = quantity.FromStored(intPtr(3), intPtr(1))
	svc := NewService(repo, audit)

	_, err := svc.EditQuantity(context.Background(), modID, quantity.Input{Quantity: intPtr(3), Reserve: intPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.saves)
	assert.Empty(t, audit.calls)
}

func TestService_EditQuantity_RejectsInvalidInput(t *testing.T) {
	repo := newFakeRepo()
	audit := &fakeAudit{}
	modID := id.New()
	existing := quantity.FromStored(intPtr(3), intPtr(1))
	repo.stored[modID] = existing
	svc := NewService(repo, audit)

	for _, in := range []quantity.Input{
		{Quantity: intPtr(-1), Reserve: intPtr(0)},
		{Quantity: nil, Reserve: intPtr(0)},
		{Quantity: intPtr(1), Reserve: nil},
	} {
		_, err := svc.EditQuantity(context.Background(), modID, in)
		assert.True(t, apperror.IsValidation(err))
	}

	assert.Zero(t, repo.saves)
	assert.Empty(t, audit.calls)
	assert.Equal(t, 3, existing.Quantity())
}

func TestService_EditQuantity_AuditFailureDoesNotFailEdit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeAudit{err: errors.New("audit table missing")})

	rec, err := svc.EditQuantity(context.Background(), id.New(), quantity.Input{Quantity: intPtr(1), Reserve: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Quantity())
}

func TestService_EditQuantity_SaveError(t *testing.T) {
	repo := newFakeRepo()
	boom := errors.New("write failed")
	repo.saveErr = boom
	audit := &fakeAudit{}
	svc := NewService(repo, audit)

	_, err := svc.EditQuantity(context.Background(), id.New(), quantity.Input{Quantity: intPtr(1), Reserve: intPtr(0)})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, audit.calls)
}

func TestService_GetQuantity(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	modID := id.New()

	rec, err := svc.GetQuantity(context.Background(), modID)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Quantity())
	assert.Equal(t, 0, rec.Reserve())

	repo.stored[modID] = quantity.FromStored(intPtr(-2), intPtr(6))
	rec, err = svc.GetQuantity(context.Background(), modID)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Quantity())
	assert.Equal(t, 6, rec.Reserve())

	_, err = svc.GetQuantity(context.Background(), id.ID{})
	assert.True(t, apperror.IsValidation(err))
}

func TestService_History(t *testing.T) {
	audit := &fakeAudit{history: []Change{{ID: id.New(), Action: "update"}}}
	svc := NewService(newFakeRepo(), audit)

	changes, err := svc.History(context.Background(), id.New(), 0)
	require.NoError(t, err)
	assert.Len(t, changes, 1)
	assert.Equal(t, DefaultHistoryLimit, audit.lastLimit)

	_, err = svc.History(context.Background(), id.New(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, audit.lastLimit)

	_, err = svc.History(context.Background(), id.ID{}, 5)
	assert.True(t, apperror.IsValidation(err))
}

func TestService_History_CapsLimit(t *testing.T) {
	audit := &fakeAudit{}
	svc := NewService(newFakeRepo(), audit)

	_, err := svc.History(context.Background(), id.New(), 1<<40)
	require.NoError(t, err)
	assert.Equal(t, MaxHistoryLimit, audit.lastLimit)

	_, err = svc.History(context.Background(), id.New(), MaxHistoryLimit)
	require.NoError(t, err)
	assert.Equal(t, MaxHistoryLimit, audit.lastLimit)
}

func TestService_History_WithoutAudit(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	changes, err := svc.History(context.Background(), id.New(), 10)
	require.NoError(t, err)
	assert.Empty(t, changes)
}
