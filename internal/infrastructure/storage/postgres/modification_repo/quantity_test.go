package modification_repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offerstock/internal/core/id"
	"offerstock/internal/domain/modification"
	"offerstock/internal/domain/quantity"
	"offerstock/internal/infrastructure/storage/postgres"
)

type execCall struct {
	sql  string
	args []any
}

// recordingQuerier captures statements and fails every read.
type recordingQuerier struct {
	execs []execCall
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("reads are not recorded")
}

func (q *recordingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("unexpected QueryRow")
}

func intPtr(v int) *int { return &v }

func TestGetQuery(t *testing.T) {
	modID := id.New()

	sql, args, err := getQuery(modID).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT quantity, reserve FROM product_modification_quantity WHERE modification = $1 LIMIT 1", sql)
	assert.Equal(t, []any{modID}, args)
}

func TestSaveQuantity_WritesNormalizedCounters(t *testing.T) {
	q := &recordingQuerier{}
	repo := NewQuantityRepo(q)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return at }
	modID := id.New()

	err := repo.SaveQuantity(context.Background(), modID, quantity.FromStored(intPtr(-3), intPtr(4)))
	require.NoError(t, err)

	require.Len(t, q.execs, 1)
	assert.Equal(t,
		"INSERT INTO product_modification_quantity (modification,quantity,reserve,updated_at) "+
			"VALUES ($1,$2,$3,$4) "+upsertSuffix,
		q.execs[0].sql)
	assert.Equal(t, []any{modID, 0, 4, at}, q.execs[0].args)
}

func TestAuditAdapter_LogQuantityChange(t *testing.T) {
	q := &recordingQuerier{}
	svc, err := postgres.NewAuditService(q, 0)
	require.NoError(t, err)
	adapter := NewAuditAdapter(svc)
	modID := id.New()

	err = adapter.LogQuantityChange(context.Background(), modID, false,
		map[string]any{"quantity": 3, "reserve": 1},
		map[string]any{"quantity": 5, "reserve": 1},
	)
	require.NoError(t, err)

	require.Len(t, q.execs, 1)
	args := q.execs[0].args
	assert.Equal(t, modification.EntityType, args[1])
	assert.Equal(t, modID, args[2])
	assert.Equal(t, postgres.AuditActionUpdate, args[3])

	var changes map[string]map[string]int
	require.NoError(t, json.Unmarshal(args[5].(json.RawMessage), &changes))
	assert.Equal(t, map[string]map[string]int{"quantity": {"old": 3, "new": 5}}, changes)
}

func TestAuditAdapter_LogQuantityChange_Created(t *testing.T) {
	q := &recordingQuerier{}
	svc, err := postgres.NewAuditService(q, 0)
	require.NoError(t, err)

	err = NewAuditAdapter(svc).LogQuantityChange(context.Background(), id.New(), true,
		map[string]any{"quantity": 0, "reserve": 0},
		map[string]any{"quantity": 2, "reserve": 0},
	)
	require.NoError(t, err)

	require.Len(t, q.execs, 1)
	assert.Equal(t, postgres.AuditActionCreate, q.execs[0].args[3])
}

func TestAuditAdapter_QuantityHistory_Error(t *testing.T) {
	svc, err := postgres.NewAuditService(&recordingQuerier{}, 0)
	require.NoError(t, err)

	_, err = NewAuditAdapter(svc).QuantityHistory(context.Background(), id.New(), 10)
	assert.Error(t, err)
}
