package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_alunos",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_matriculas",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_historico",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

const migration001Up = `
CREATE TABLE IF NOT EXISTS alunos (
	id              UUID PRIMARY KEY,
	ref_autenticacao TEXT NOT NULL DEFAULT '',
	nome            VARCHAR(100) NOT NULL,
	email           VARCHAR(200) NOT NULL,
	data_nascimento DATE NOT NULL,
	telefone        VARCHAR(20) NOT NULL DEFAULT '',
	genero          VARCHAR(30) NOT NULL DEFAULT '',
	cidade          VARCHAR(100) NOT NULL DEFAULT '',
	estado          VARCHAR(50) NOT NULL DEFAULT '',
	cep             VARCHAR(10) NOT NULL DEFAULT '',
	ativo           BOOLEAN NOT NULL DEFAULT TRUE,
	criado_em       TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	atualizado_em   TIMESTAMP WITH TIME ZONE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_alunos_email ON alunos (LOWER(email));
CREATE INDEX IF NOT EXISTS idx_alunos_ativo ON alunos (ativo);
`

const migration001Down = `
DROP TABLE IF EXISTS alunos;
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS matriculas (
	id                   UUID PRIMARY KEY,
	aluno_id             UUID NOT NULL REFERENCES alunos(id) ON DELETE CASCADE,
	curso_id             UUID NOT NULL,
	status               VARCHAR(20) NOT NULL DEFAULT 'ativa',
	forma_pagamento      VARCHAR(50) NOT NULL DEFAULT '',
	ativa                BOOLEAN NOT NULL DEFAULT TRUE,
	valor_pago           NUMERIC(10,2) NOT NULL DEFAULT 0,
	percentual_conclusao NUMERIC(5,2) NOT NULL DEFAULT 0,
	nota_final           NUMERIC(4,2),
	data_matricula       TIMESTAMP WITH TIME ZONE NOT NULL,
	data_inicio          TIMESTAMP WITH TIME ZONE NOT NULL,
	data_termino         TIMESTAMP WITH TIME ZONE,
	observacoes          TEXT NOT NULL DEFAULT '',
	criado_em            TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	atualizado_em        TIMESTAMP WITH TIME ZONE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_matriculas_aluno_curso
	ON matriculas (aluno_id, curso_id)
	WHERE status NOT IN ('cancelada');
CREATE INDEX IF NOT EXISTS idx_matriculas_aluno ON matriculas (aluno_id);
CREATE INDEX IF NOT EXISTS idx_matriculas_status ON matriculas (status);

CREATE TABLE IF NOT EXISTS progressos (
	id                       UUID PRIMARY KEY,
	matricula_id             UUID NOT NULL REFERENCES matriculas(id) ON DELETE CASCADE,
	aula_id                  UUID NOT NULL,
	status                   VARCHAR(20) NOT NULL DEFAULT 'nao_iniciado',
	percentual_assistido     NUMERIC(5,2) NOT NULL DEFAULT 0,
	tempo_assistido_segundos INTEGER NOT NULL DEFAULT 0,
	data_inicio              TIMESTAMP WITH TIME ZONE,
	data_conclusao           TIMESTAMP WITH TIME ZONE,
	ultimo_acesso            TIMESTAMP WITH TIME ZONE,
	nota                     NUMERIC(4,2),
	observacoes              TEXT NOT NULL DEFAULT '',
	criado_em                TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	atualizado_em            TIMESTAMP WITH TIME ZONE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_progressos_matricula_aula
	ON progressos (matricula_id, aula_id);
CREATE INDEX IF NOT EXISTS idx_progressos_matricula ON progressos (matricula_id);

CREATE TABLE IF NOT EXISTS certificados (
	id               UUID PRIMARY KEY,
	matricula_id     UUID NOT NULL REFERENCES matriculas(id) ON DELETE CASCADE,
	codigo           VARCHAR(40) NOT NULL,
	nome_curso       VARCHAR(200) NOT NULL,
	nome_aluno       VARCHAR(100) NOT NULL,
	nome_instrutor   VARCHAR(100) NOT NULL DEFAULT '',
	data_emissao     TIMESTAMP WITH TIME ZONE NOT NULL,
	data_validade    TIMESTAMP WITH TIME ZONE,
	carga_horaria    INTEGER NOT NULL DEFAULT 0,
	nota_final       NUMERIC(4,2),
	status           VARCHAR(20) NOT NULL DEFAULT 'ativo',
	arquivo_url      TEXT NOT NULL DEFAULT '',
	hash_verificacao VARCHAR(64) NOT NULL,
	observacoes      TEXT NOT NULL DEFAULT '',
	criado_em        TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	atualizado_em    TIMESTAMP WITH TIME ZONE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_certificados_codigo ON certificados (codigo);
CREATE INDEX IF NOT EXISTS idx_certificados_matricula ON certificados (matricula_id);
CREATE INDEX IF NOT EXISTS idx_certificados_validade
	ON certificados (data_validade)
	WHERE status = 'ativo' AND data_validade IS NOT NULL;
`

const migration002Down = `
DROP TABLE IF EXISTS certificados;
DROP TABLE IF EXISTS progressos;
DROP TABLE IF EXISTS matriculas;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS historico_alunos (
	id          UUID PRIMARY KEY,
	aluno_id    UUID NOT NULL REFERENCES alunos(id) ON DELETE CASCADE,
	acao        VARCHAR(100) NOT NULL,
	descricao   VARCHAR(500) NOT NULL,
	detalhes    JSONB,
	tipo        VARCHAR(30) NOT NULL,
	usuario_id  TEXT NOT NULL DEFAULT '',
	endereco_ip TEXT NOT NULL DEFAULT '',
	user_agent  TEXT NOT NULL DEFAULT '',
	criado_em   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
	atualizado_em TIMESTAMP WITH TIME ZONE
);

CREATE INDEX IF NOT EXISTS idx_historico_aluno ON historico_alunos (aluno_id, criado_em DESC);
CREATE INDEX IF NOT EXISTS idx_historico_tipo ON historico_alunos (aluno_id, tipo);
`

const migration003Down = `
DROP TABLE IF EXISTS historico_alunos;
`
