package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/educahub/educa-learning-hub/internal/domain/aluno"
	"github.com/educahub/educa-learning-hub/internal/domain/matricula"
	"github.com/educahub/educa-learning-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESSO DO ALUNO QUERY
// Computed progress view over a student's enrollments: completion counters,
// lateness against the enrollment window, and abandoned lessons.
// ══════════════════════════════════════════════════════════════════════════════

// ProgressoDoAlunoQuery contains the view parameters.
type ProgressoDoAlunoQuery struct {
	// AlunoID is the student whose progress is requested.
	AlunoID string

	// CursoID, when non-empty, restricts the view to one course.
	CursoID string

	// SomenteAtivas drops cancelled enrollments from the view.
	SomenteAtivas bool
}

// Validate checks the query parameters.
func (q ProgressoDoAlunoQuery) Validate() error {
	if q.AlunoID == "" {
		return errors.New("progresso_do_aluno: aluno_id is required")
	}
	return nil
}

// ProgressoMatricula is the per-enrollment slice of the view.
type ProgressoMatricula struct {
	MatriculaID         string
	CursoID             string
	Status              matricula.Status
	PercentualConclusao float64
	AulasRegistradas    int
	AulasConcluidas     int
	AulasAbandonadas    int
	UltimoAcesso        *time.Time

	// DiasDesdeUltimoAcesso counts whole São Paulo calendar days since the
	// last lesson access. Nil when no lesson was ever accessed.
	DiasDesdeUltimoAcesso *int

	DiasDeCurso  int
	Atrasada     bool
	Certificados int
}

// ProgressoDoAlunoResult contains the assembled view.
type ProgressoDoAlunoResult struct {
	AlunoID    string
	Nome       string
	Idade      int
	Ativo      bool
	Matriculas []ProgressoMatricula
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// ProgressoDoAlunoHandlerConfig contains configuration for the handler.
type ProgressoDoAlunoHandlerConfig struct {
	// LimiteAtrasoDias marks an enrollment late past this course duration.
	LimiteAtrasoDias int

	// LimiteAbandonoHoras marks a started lesson abandoned past this idle
	// window.
	LimiteAbandonoHoras int
}

// DefaultProgressoDoAlunoHandlerConfig returns default configuration.
func DefaultProgressoDoAlunoHandlerConfig() ProgressoDoAlunoHandlerConfig {
	return ProgressoDoAlunoHandlerConfig{
		LimiteAtrasoDias:    matricula.LimiteAtrasoDiasPadrao,
		LimiteAbandonoHoras: matricula.LimiteAbandonoHorasPadrao,
	}
}

// ProgressoDoAlunoHandler handles the ProgressoDoAlunoQuery.
type ProgressoDoAlunoHandler struct {
	alunoRepo aluno.Repository
	config    ProgressoDoAlunoHandlerConfig
}

// NewProgressoDoAlunoHandler creates a new ProgressoDoAlunoHandler.
func NewProgressoDoAlunoHandler(alunoRepo aluno.Repository, config ProgressoDoAlunoHandlerConfig) *ProgressoDoAlunoHandler {
	if config.LimiteAtrasoDias == 0 && config.LimiteAbandonoHoras == 0 {
		config = DefaultProgressoDoAlunoHandlerConfig()
	}
	return &ProgressoDoAlunoHandler{alunoRepo: alunoRepo, config: config}
}

// Handle assembles the progress view.
func (h *ProgressoDoAlunoHandler) Handle(ctx context.Context, q ProgressoDoAlunoQuery) (*ProgressoDoAlunoResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	a, err := h.alunoRepo.GetByID(ctx, q.AlunoID)
	if err != nil {
		return nil, fmt.Errorf("progresso_do_aluno: failed to get aluno: %w", err)
	}

	result := &ProgressoDoAlunoResult{
		AlunoID:    a.ID,
		Nome:       a.Nome,
		Idade:      timeutil.Age(a.DataNascimento, timeutil.Now()),
		Ativo:      a.Ativo,
		Matriculas: make([]ProgressoMatricula, 0),
	}

	for _, m := range a.Matriculas() {
		if q.CursoID != "" && m.CursoID != q.CursoID {
			continue
		}
		if q.SomenteAtivas && m.Status == matricula.StatusCancelada {
			continue
		}
		result.Matriculas = append(result.Matriculas, h.visaoMatricula(m))
	}

	return result, nil
}

func (h *ProgressoDoAlunoHandler) visaoMatricula(m *matricula.MatriculaCurso) ProgressoMatricula {
	visao := ProgressoMatricula{
		MatriculaID:         m.ID,
		CursoID:             m.CursoID,
		Status:              m.Status,
		PercentualConclusao: m.PercentualConclusao,
		AulasConcluidas:     m.AulasConcluidas(),
		DiasDeCurso:         m.CalcularDuracaoDias(),
		Atrasada:            m.EstaAtrasada(h.config.LimiteAtrasoDias),
		Certificados:        len(m.Certificados()),
	}

	for _, p := range m.Progressos() {
		visao.AulasRegistradas++
		if p.EstaAbandonada(h.config.LimiteAbandonoHoras) {
			visao.AulasAbandonadas++
		}
		if p.UltimoAcesso != nil {
			if visao.UltimoAcesso == nil || p.UltimoAcesso.After(*visao.UltimoAcesso) {
				visao.UltimoAcesso = p.UltimoAcesso
			}
		}
	}

	if visao.UltimoAcesso != nil {
		dias := timeutil.DaysSince(*visao.UltimoAcesso)
		visao.DiasDesdeUltimoAcesso = &dias
	}

	return visao
}
