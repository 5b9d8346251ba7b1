package command

import (
	"context"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory fakes shared by the handler tests.
// ─────────────────────────────────────────────────────────────────────────────

type fakeAlunoRepo struct {
	alunos    map[string]*aluno.Aluno
	createErr error
	getErr    error
	updateErr error
}

func newFakeAlunoRepo() *fakeAlunoRepo {
	return &fakeAlunoRepo{alunos: make(map[string]*aluno.Aluno)}
}

func (f *fakeAlunoRepo) Create(ctx context.Context, a *aluno.Aluno) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existente := range f.alunos {
		if existente.Email == a.Email {
			return shared.ErrAlunoAlreadyExists
		}
	}
	f.alunos[a.ID] = a
	return nil
}

func (f *fakeAlunoRepo) GetByID(ctx context.Context, id string) (*aluno.Aluno, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.alunos[id]
	if !ok {
		return nil, shared.ErrAlunoNotFound
	}
	return a, nil
}

func (f *fakeAlunoRepo) GetByEmail(ctx context.Context, email shared.Email) (*aluno.Aluno, error) {
	for _, a := range f.alunos {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, shared.ErrAlunoNotFound
}

func (f *fakeAlunoRepo) List(ctx context.Context, page shared.Pagination) ([]*aluno.Aluno, error) {
	out := make([]*aluno.Aluno, 0, len(f.alunos))
	for _, a := range f.alunos {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAlunoRepo) Update(ctx context.Context, a *aluno.Aluno) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.alunos[a.ID]; !ok {
		return shared.ErrAlunoNotFound
	}
	f.alunos[a.ID] = a
	return nil
}

func (f *fakeAlunoRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.alunos[id]
	return ok, nil
}

type fakeMatriculaRepo struct {
	matriculas map[string]*matricula.MatriculaCurso
	createErr  error
	updateErr  error
	updates    int
}

func newFakeMatriculaRepo() *fakeMatriculaRepo {
	return &fakeMatriculaRepo{matriculas: make(map[string]*matricula.MatriculaCurso)}
}

func (f *fakeMatriculaRepo) Create(ctx context.Context, m *matricula.MatriculaCurso) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.matriculas[m.ID] = m
	return nil
}

func (f *fakeMatriculaRepo) GetByID(ctx context.Context, id string) (*matricula.MatriculaCurso, error) {
	m, ok := f.matriculas[id]
	if !ok {
		return nil, shared.ErrMatriculaNotFound
	}
	return m, nil
}

func (f *fakeMatriculaRepo) GetByAlunoECurso(ctx context.Context, alunoID, cursoID string) (*matricula.MatriculaCurso, error) {
	for _, m := range f.matriculas {
		if m.AlunoID == alunoID && m.CursoID == cursoID {
			return m, nil
		}
	}
	return nil, shared.ErrMatriculaNotFound
}

func (f *fakeMatriculaRepo) ListByAluno(ctx context.Context, alunoID string) ([]*matricula.MatriculaCurso, error) {
	var out []*matricula.MatriculaCurso
	for _, m := range f.matriculas {
		if m.AlunoID == alunoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMatriculaRepo) Update(ctx context.Context, m *matricula.MatriculaCurso) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.matriculas[m.ID]; !ok {
		return shared.ErrMatriculaNotFound
	}
	f.matriculas[m.ID] = m
	f.updates++
	return nil
}

type fakeCertificadoRepo struct {
	certificados []*matricula.Certificado
	listErr      error
	updateErr    error
	statusSaves  []string
}

func (f *fakeCertificadoRepo) GetByCodigo(ctx context.Context, codigo string) (*matricula.Certificado, error) {
	for _, c := range f.certificados {
		if c.Codigo == codigo {
			return c, nil
		}
	}
	return nil, shared.ErrCertificadoNotFound
}

func (f *fakeCertificadoRepo) ListExpirando(ctx context.Context, ate time.Time) ([]*matricula.Certificado, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*matricula.Certificado
	for _, c := range f.certificados {
		if c.Status == matricula.CertificadoAtivo && c.DataValidade != nil && !c.DataValidade.After(ate) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCertificadoRepo) UpdateStatus(ctx context.Context, c *matricula.Certificado) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusSaves = append(f.statusSaves, c.Codigo)
	return nil
}

type fakeAlunoCache struct {
	sets         []string
	invalidacoes []string
}

func (f *fakeAlunoCache) Get(ctx context.Context, id string) (*aluno.Aluno, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeAlunoCache) Set(ctx context.Context, a *aluno.Aluno) error {
	f.sets = append(f.sets, a.ID)
	return nil
}

func (f *fakeAlunoCache) Invalidate(ctx context.Context, id string) error {
	f.invalidacoes = append(f.invalidacoes, id)
	return nil
}

type fakeCertificadoCache struct {
	invalidacoes []string
}

func (f *fakeCertificadoCache) Invalidate(ctx context.Context, codigo string) error {
	f.invalidacoes = append(f.invalidacoes, codigo)
	return nil
}

type fakePublisher struct {
	eventos []shared.Event
}

func (f *fakePublisher) Publish(event shared.Event) error {
	f.eventos = append(f.eventos, event)
	return nil
}

func (f *fakePublisher) tipos() []shared.EventType {
	out := make([]shared.EventType, 0, len(f.eventos))
	for _, e := range f.eventos {
		out = append(out, e.EventType())
	}
	return out
}
