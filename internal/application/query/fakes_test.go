package query

import (
	"context"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/internal/domain/shared"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory fakes shared by the query handler tests.
// ─────────────────────────────────────────────────────────────────────────────

type fakeAlunoRepo struct {
	alunos map[string]*aluno.Aluno
}

func newFakeAlunoRepo() *fakeAlunoRepo {
	return &fakeAlunoRepo{alunos: make(map[string]*aluno.Aluno)}
}

func (f *fakeAlunoRepo) Create(ctx context.Context, a *aluno.Aluno) error {
	f.alunos[a.ID] = a
	return nil
}

func (f *fakeAlunoRepo) GetByID(ctx context.Context, id string) (*aluno.Aluno, error) {
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
	f.alunos[a.ID] = a
	return nil
}

func (f *fakeAlunoRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.alunos[id]
	return ok, nil
}

type fakeCertificadoRepo struct {
	certificados []*matricula.Certificado
	listErr      error
	getCalls     int
}

func (f *fakeCertificadoRepo) GetByCodigo(ctx context.Context, codigo string) (*matricula.Certificado, error) {
	f.getCalls++
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
	return nil
}

type fakeVerificacaoCache struct {
	verdicts  map[string]*VerificacaoCertificado
	contagens map[string]int64
	sets      int
}

func newFakeVerificacaoCache() *fakeVerificacaoCache {
	return &fakeVerificacaoCache{
		verdicts:  make(map[string]*VerificacaoCertificado),
		contagens: make(map[string]int64),
	}
}

func (f *fakeVerificacaoCache) Get(ctx context.Context, codigo string) (*VerificacaoCertificado, error) {
	v, ok := f.verdicts[codigo]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return v, nil
}

func (f *fakeVerificacaoCache) Set(ctx context.Context, v *VerificacaoCertificado) error {
	f.verdicts[v.Codigo] = v
	f.sets++
	return nil
}

func (f *fakeVerificacaoCache) Invalidate(ctx context.Context, codigo string) error {
	delete(f.verdicts, codigo)
	return nil
}

func (f *fakeVerificacaoCache) RegistrarVerificacao(ctx context.Context, codigo string) (int64, error) {
	f.contagens[codigo]++
	return f.contagens[codigo], nil
}
