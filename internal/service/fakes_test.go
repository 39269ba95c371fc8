package service

// fakes_test.go — in-memory repository fakes shared by the service tests.
// Each test injects fresh instances; no global state, no database.

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Jizar07/cabradapeste-sub002/internal/dto"
	"github.com/Jizar07/cabradapeste-sub002/internal/model"

	"github.com/google/uuid"
)

// ── LancamentoRepository fake ────────────────────────────────────────────────

type fakeLancamentoRepo struct {
	mu       sync.Mutex
	entries  []model.Lancamento
	failNext error
}

func newFakeLancamentoRepo() *fakeLancamentoRepo { return &fakeLancamentoRepo{} }

func (r *fakeLancamentoRepo) Append(_ context.Context, l *model.Lancamento) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CriadoEm.IsZero() {
		l.CriadoEm = time.Now()
	}
	if l.ExternalID != nil {
		for i := range r.entries {
			if r.entries[i].ExternalID != nil && *r.entries[i].ExternalID == *l.ExternalID {
				return errors.New("duplicate external_id")
			}
		}
	}
	r.entries = append(r.entries, *l)
	return nil
}

func (r *fakeLancamentoRepo) ListByGerente(_ context.Context, gerenteID uuid.UUID) ([]model.Lancamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Lancamento
	for _, l := range r.entries {
		if l.GerenteID == gerenteID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLancamentoRepo) FindByExternalID(_ context.Context, externalID string) (*model.Lancamento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].ExternalID != nil && *r.entries[i].ExternalID == externalID {
			l := r.entries[i]
			return &l, nil
		}
	}
	return nil, nil
}

// ── GerenteRepository fake ───────────────────────────────────────────────────

type fakeGerenteRepo struct {
	mu       sync.Mutex
	gerentes map[uuid.UUID]*model.Gerente
}

func newFakeGerenteRepo() *fakeGerenteRepo {
	return &fakeGerenteRepo{gerentes: make(map[uuid.UUID]*model.Gerente)}
}

func (r *fakeGerenteRepo) seed(nome string) *model.Gerente {
	g := &model.Gerente{ID: uuid.New(), Nome: nome, Funcao: "gerente", Ativo: true}
	r.mu.Lock()
	r.gerentes[g.ID] = g
	r.mu.Unlock()
	return g
}

func (r *fakeGerenteRepo) Create(_ context.Context, g *model.Gerente) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.mu.Lock()
	r.gerentes[g.ID] = g
	r.mu.Unlock()
	return nil
}

func (r *fakeGerenteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Gerente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gerentes[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return g, nil
}

func (r *fakeGerenteRepo) FindByNome(_ context.Context, nome string) (*model.Gerente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.gerentes {
		if g.Nome == nome {
			return g, nil
		}
	}
	return nil, nil
}

func (r *fakeGerenteRepo) List(_ context.Context, incluirInativos bool) ([]model.Gerente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Gerente
	for _, g := range r.gerentes {
		if g.Ativo || incluirInativos {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGerenteRepo) Update(_ context.Context, g *model.Gerente) error {
	r.mu.Lock()
	r.gerentes[g.ID] = g
	r.mu.Unlock()
	return nil
}

func (r *fakeGerenteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gerentes[id]; ok {
		g.Ativo = false
	}
	return nil
}

// ── AtividadeRepository fake ─────────────────────────────────────────────────

type fakeAtividadeRepo struct {
	mu         sync.Mutex
	atividades []model.Atividade
	lancs      *fakeLancamentoRepo
}

func newFakeAtividadeRepo(lancs *fakeLancamentoRepo) *fakeAtividadeRepo {
	return &fakeAtividadeRepo{lancs: lancs}
}

func (r *fakeAtividadeRepo) create(a *model.Atividade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.atividades {
		if r.atividades[i].ExternalID == a.ExternalID {
			return errors.New("duplicate external_id")
		}
	}
	r.atividades = append(r.atividades, *a)
	return nil
}

// CreateComLancamento mimics the transactional gorm repo: the ledger append
// goes first so an injected failure leaves no mirror row behind.
func (r *fakeAtividadeRepo) CreateComLancamento(ctx context.Context, a *model.Atividade, l *model.Lancamento) error {
	if l != nil {
		if err := r.lancs.Append(ctx, l); err != nil {
			return err
		}
	}
	return r.create(a)
}

func (r *fakeAtividadeRepo) ExistsByExternalID(_ context.Context, externalID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.atividades {
		if r.atividades[i].ExternalID == externalID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAtividadeRepo) ListByAutor(_ context.Context, autor string, limit int) ([]model.Atividade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Atividade
	for _, a := range r.atividades {
		if a.Autor == autor {
			out = append(out, a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── Notifier / seen-flag fakes ───────────────────────────────────────────────

type fakeNotificador struct {
	mu      sync.Mutex
	alertas []dto.AlertaPassivoResponse
}

func (n *fakeNotificador) EnqueueAlerta(_ context.Context, alerta dto.AlertaPassivoResponse) error {
	n.mu.Lock()
	n.alertas = append(n.alertas, alerta)
	n.mu.Unlock()
	return nil
}

func (n *fakeNotificador) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.alertas)
}

type fakeVistos struct {
	vistos map[string]bool
}

func (v *fakeVistos) Visto(_ context.Context, fingerprint string) (bool, error) {
	return v.vistos[fingerprint], nil
}

// ── FeedFonte fake ───────────────────────────────────────────────────────────

type fakeFeed struct {
	atividades []model.AtividadeExterna
	err        error
}

func (f *fakeFeed) BuscarAtividades(_ context.Context) ([]model.AtividadeExterna, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.atividades, nil
}
