package usecase_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novuscrm/novus-api/internal/application/dto"
	"github.com/novuscrm/novus-api/internal/application/usecase"
	"github.com/novuscrm/novus-api/internal/domain"
	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLeadRepo struct {
	leads map[string]*entity.Lead
	// updateErr simula un fallo de persistencia dentro de la transacción.
	updateErr error
}

func newFakeLeadRepo(leads ...*entity.Lead) *fakeLeadRepo {
	r := &fakeLeadRepo{leads: map[string]*entity.Lead{}}
	for _, l := range leads {
		cp := *l
		r.leads[l.ID] = &cp
	}
	return r
}

func (r *fakeLeadRepo) Create(lead *entity.Lead) error {
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) GetByScope(id string, scope brand.Scope) (*entity.Lead, error) {
	l, ok := r.leads[id]
	if !ok || !scope.CanAccess(l.BrandID) {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLeadRepo) GetForUpdate(id string, scope brand.Scope) (*entity.Lead, error) {
	return r.GetByScope(id, scope)
}

func (r *fakeLeadRepo) GetByEmail(email string) (*entity.Lead, error) {
	for _, l := range r.leads {
		if l.Email == email {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeLeadRepo) List(scope brand.Scope, filter repository.LeadFilter) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, l := range r.leads {
		if !scope.CanAccess(l.BrandID) {
			continue
		}
		if filter.Stage != "" && l.QualificationStage != filter.Stage {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortByHeat {
			return out[i].HeatScore() > out[j].HeatScore()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeLeadRepo) Count(scope brand.Scope, stage string) (int, error) {
	n := 0
	for _, l := range r.leads {
		if !scope.CanAccess(l.BrandID) {
			continue
		}
		if stage != "" && l.QualificationStage != stage {
			continue
		}
		n++
	}
	return n, nil
}

func (r *fakeLeadRepo) UpdateFields(lead *entity.Lead) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *lead
	r.leads[lead.ID] = &cp
	return nil
}

func (r *fakeLeadRepo) UpdateStage(id, stage string) error {
	if l, ok := r.leads[id]; ok {
		l.QualificationStage = stage
	}
	return nil
}

func (r *fakeLeadRepo) IncrementEngagement(id string, delta int) error {
	if l, ok := r.leads[id]; ok {
		l.EngagementScore += delta
		if l.EngagementScore > entity.MaxScore {
			l.EngagementScore = entity.MaxScore
		}
	}
	return nil
}

type fakeActivityRepo struct {
	activities []*entity.Activity
}

func (r *fakeActivityRepo) Create(a *entity.Activity) error {
	cp := *a
	r.activities = append(r.activities, &cp)
	return nil
}

func (r *fakeActivityRepo) ListByLead(leadID string) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for _, a := range r.activities {
		if a.LeadID == leadID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeDealRepo struct {
	deals []*entity.Deal
}

func (r *fakeDealRepo) Create(d *entity.Deal) error {
	cp := *d
	r.deals = append(r.deals, &cp)
	return nil
}

func (r *fakeDealRepo) ListByLead(leadID string) ([]*entity.Deal, error) {
	var out []*entity.Deal
	for _, d := range r.deals {
		if d.LeadID == leadID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(l *entity.AuditLog) error {
	cp := *l
	r.logs = append(r.logs, &cp)
	return nil
}

// fakeLeadTxRunner ejecuta el closure contra los mismos fakes; si el closure
// falla, descarta los audit logs agregados (simula el rollback).
type fakeLeadTxRunner struct {
	leadRepo  *fakeLeadRepo
	auditRepo *fakeAuditRepo
}

func (tx *fakeLeadTxRunner) RunLeadUpdate(_ context.Context, fn func(repository.LeadRepository, repository.AuditLogRepository) error) error {
	savedLogs := len(tx.auditRepo.logs)
	if err := fn(tx.leadRepo, tx.auditRepo); err != nil {
		tx.auditRepo.logs = tx.auditRepo.logs[:savedLogs]
		return err
	}
	return nil
}

func buildLeadUC(leadRepo *fakeLeadRepo) (*usecase.LeadUseCase, *fakeAuditRepo) {
	auditRepo := &fakeAuditRepo{}
	uc := usecase.NewLeadUseCase(
		leadRepo,
		&fakeActivityRepo{},
		&fakeDealRepo{},
		&fakeLeadTxRunner{leadRepo: leadRepo, auditRepo: auditRepo},
	)
	return uc, auditRepo
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func leadFixture(id, brandID string) *entity.Lead {
	return &entity.Lead{
		ID:                 id,
		BrandID:            brandID,
		Name:               "Priya Sharma",
		Mobile:             "+919876543210",
		Email:              "priya@example.com",
		QualificationStage: entity.StageMQL,
		EngagementScore:    10,
		FitScore:           20,
		CreatedAt:          time.Now().Add(-time.Hour),
		UpdatedAt:          time.Now().Add(-time.Hour),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado — aislamiento por marca
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadList_SoloMarcasDelCaller(t *testing.T) {
	repo := newFakeLeadRepo(leadFixture("l1", "LB"), leadFixture("l2", "SP"), leadFixture("l3", "LB"))
	uc, _ := buildLeadUC(repo)

	out, err := uc.List(brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}}, "", false, 1, 20)
	require.NoError(t, err)

	assert.Len(t, out.Data, 2, "solo deben volver los leads de las marcas del caller")
	for _, l := range out.Data {
		assert.Equal(t, "LB", l.BrandID)
	}
	assert.Equal(t, 2, out.Meta.Total)
}

func TestLeadList_AdminVeTodo(t *testing.T) {
	repo := newFakeLeadRepo(leadFixture("l1", "LB"), leadFixture("l2", "SP"))
	uc, _ := buildLeadUC(repo)

	out, err := uc.List(brand.Scope{Role: entity.RoleAdmin}, "", false, 1, 20)
	require.NoError(t, err)

	assert.Len(t, out.Data, 2, "Admin ve todas las marcas sin importar su lista")
}

func TestLeadList_ScopeVacioDevuelveVacioSinError(t *testing.T) {
	repo := newFakeLeadRepo(leadFixture("l1", "LB"))
	uc, _ := buildLeadUC(repo)

	out, err := uc.List(brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{}}, "", false, 1, 20)
	require.NoError(t, err, "un caller sin marcas recibe lista vacía, nunca error")

	assert.Empty(t, out.Data)
	assert.Equal(t, 0, out.Meta.Total)
}

func TestLeadList_OrdenPorHeatScore(t *testing.T) {
	frio := leadFixture("frio", "LB")
	frio.EngagementScore, frio.FitScore = 1, 1
	caliente := leadFixture("caliente", "LB")
	caliente.EngagementScore, caliente.FitScore = 40, 45
	repo := newFakeLeadRepo(frio, caliente)
	uc, _ := buildLeadUC(repo)

	out, err := uc.List(brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}}, "", true, 1, 20)
	require.NoError(t, err)

	require.Len(t, out.Data, 2)
	assert.Equal(t, "caliente", out.Data[0].ID, "sort=heat debe poner primero el lead más caliente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Detalle — 404 como conflación de inexistente y fuera de marca
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadGet_FueraDeMarcaEsNotFound(t *testing.T) {
	repo := newFakeLeadRepo(leadFixture("l1", "SP"))
	uc, _ := buildLeadUC(repo)

	_, err := uc.Get("l1", brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"un lead de otra marca debe ser indistinguible de uno inexistente")

	_, err = uc.Get("no-existe", brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Patch — diff auditado y corto-circuito sin cambios
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadPatch_SinCambios_NoEscribeNiAudita(t *testing.T) {
	l := leadFixture("l1", "LB")
	repo := newFakeLeadRepo(l)
	uc, auditRepo := buildLeadUC(repo)
	scope := brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}}

	// Payload idéntico al estado actual.
	out, err := uc.Patch(context.Background(), scope, "actor", "l1", dto.UpdateLeadRequest{
		Name:   strPtr(l.Name),
		Mobile: strPtr(l.Mobile),
	})
	require.NoError(t, err)

	assert.Equal(t, "No changes detected", out.Message)
	assert.Empty(t, out.Changes)
	assert.Empty(t, auditRepo.logs, "sin diff no debe haber audit log")
}

func TestLeadPatch_SoloElCampoCambiadoEntraAlDiff(t *testing.T) {
	l := leadFixture("l1", "LB")
	repo := newFakeLeadRepo(l)
	uc, auditRepo := buildLeadUC(repo)
	scope := brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}}

	// Mobile nuevo, name idéntico: el diff debe tener solo mobile.
	out, err := uc.Patch(context.Background(), scope, "actor", "l1", dto.UpdateLeadRequest{
		Name:   strPtr(l.Name),
		Mobile: strPtr("+910000000000"),
	})
	require.NoError(t, err)

	assert.Len(t, out.Changes, 1)
	assert.Contains(t, out.Changes, "mobile")
	require.Len(t, auditRepo.logs, 1, "un patch con cambios produce exactamente un audit log")
	assert.Equal(t, entity.AuditUpdate, auditRepo.logs[0].Action)
	assert.Equal(t, "leads", auditRepo.logs[0].TableName)
	assert.Equal(t, "actor", auditRepo.logs[0].PerformedBy)
	assert.Contains(t, string(auditRepo.logs[0].Changes), `"old":"+919876543210"`)
	assert.Contains(t, string(auditRepo.logs[0].Changes), `"new":"+910000000000"`)
}

func TestLeadPatch_EtapaInvalidaRechazada(t *testing.T) {
	repo := newFakeLeadRepo(leadFixture("l1", "LB"))
	uc, auditRepo := buildLeadUC(repo)
	scope := brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}}

	_, err := uc.Patch(context.Background(), scope, "actor", "l1", dto.UpdateLeadRequest{
		QualificationStage: strPtr("Frozen"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, auditRepo.logs, "una validación fallida no debe persistir nada")
}

func TestLeadPatch_ScoreFueraDeRangoRechazado(t *testing.T) {
	repo := newFakeLeadRepo(leadFixture("l1", "LB"))
	uc, _ := buildLeadUC(repo)
	scope := brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}}

	_, err := uc.Patch(context.Background(), scope, "actor", "l1", dto.UpdateLeadRequest{
		EngagementScore: intPtr(entity.MaxScore + 1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Patch(context.Background(), scope, "actor", "l1", dto.UpdateLeadRequest{
		FitScore: intPtr(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLeadPatch_FueraDeMarcaEsNotFound(t *testing.T) {
	repo := newFakeLeadRepo(leadFixture("l1", "SP"))
	uc, _ := buildLeadUC(repo)

	_, err := uc.Patch(context.Background(), brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}},
		"actor", "l1", dto.UpdateLeadRequest{Name: strPtr("Otro")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLeadPatch_FalloDePersistencia_SinAuditHuerfano(t *testing.T) {
	repo := newFakeLeadRepo(leadFixture("l1", "LB"))
	repo.updateErr = errors.New("disco lleno")
	uc, auditRepo := buildLeadUC(repo)
	scope := brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}}

	_, err := uc.Patch(context.Background(), scope, "actor", "l1", dto.UpdateLeadRequest{
		Name: strPtr("Otro"),
	})
	require.Error(t, err)
	assert.Empty(t, auditRepo.logs, "si el update falla, el rollback descarta el audit log")
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta manual
// ──────────────────────────────────────────────────────────────────────────────

func TestLeadCreate_MarcaFueraDeEntitlement_Forbidden(t *testing.T) {
	repo := newFakeLeadRepo()
	uc, auditRepo := buildLeadUC(repo)

	_, err := uc.Create(context.Background(), brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}},
		"actor", dto.CreateLeadRequest{BrandID: "SP", Name: "X", Mobile: "+91"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, auditRepo.logs)
}

func TestLeadCreate_EntraEnRawYAudita(t *testing.T) {
	repo := newFakeLeadRepo()
	uc, auditRepo := buildLeadUC(repo)

	out, err := uc.Create(context.Background(), brand.Scope{Role: entity.RoleAgent, BrandIDs: []string{"LB"}},
		"actor", dto.CreateLeadRequest{BrandID: "LB", Name: "Nuevo", Mobile: "+911111111111"})
	require.NoError(t, err)

	assert.Equal(t, entity.StageRaw, out.QualificationStage, "un lead nuevo entra en etapa Raw")
	assert.Equal(t, 0, out.EngagementScore)
	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, entity.AuditCreate, auditRepo.logs[0].Action)
	assert.Equal(t, out.ID, auditRepo.logs[0].RecordID)
}
