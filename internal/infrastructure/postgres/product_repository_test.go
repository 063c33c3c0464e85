package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Querier fake que captura el SQL emitido: los contratos de orden y filtrado
// viven en la cadena de la consulta, así que se verifican sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type recordingQuerier struct {
	lastSQL  string
	lastArgs []any
}

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.lastSQL, q.lastArgs = sql, args
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.lastSQL, q.lastArgs = sql, args
	return emptyRows{}, nil
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL, q.lastArgs = sql, args
	return emptyRows{}
}

// emptyRows es un pgx.Rows sin filas (Next siempre false).
type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return pgx.ErrNoRows }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProductList_OrdenaPorNombreAscendente(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewProductRepository(q)

	_, err := repo.List(brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}}, 20, 0)
	require.NoError(t, err)

	assert.Contains(t, q.lastSQL, "ORDER BY name ASC",
		"el catálogo se ordena alfabéticamente, no por fecha de alta")
	assert.NotContains(t, q.lastSQL, "created_at DESC")
}

func TestProductList_ScopeNoAdminFiltraPorMarca(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewProductRepository(q)

	_, err := repo.List(brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB", "SP"}}, 20, 0)
	require.NoError(t, err)

	assert.Contains(t, q.lastSQL, "brand_id = ANY($1)")
	require.Len(t, q.lastArgs, 3, "marcas + limit + offset")
	assert.Equal(t, []string{"LB", "SP"}, q.lastArgs[0])
}

func TestProductList_AdminSinPredicadoDeMarca(t *testing.T) {
	q := &recordingQuerier{}
	repo := postgres.NewProductRepository(q)

	_, err := repo.List(brand.Scope{Role: entity.RoleAdmin}, 20, 0)
	require.NoError(t, err)

	assert.NotContains(t, q.lastSQL, "brand_id",
		"Admin lista el catálogo completo sin filtro de marca")
}
