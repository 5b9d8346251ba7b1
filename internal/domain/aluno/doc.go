// Package aluno contém a raiz de agregado do aluno da plataforma.
//
// O Aluno é o ponto de entrada de toda mutação sensível a consistência das
// matrículas que ele possui: a regra de uma matrícula por curso e o bloqueio
// de novas matrículas para aluno inativo vivem aqui, dentro da raiz, de modo
// que uma única fronteira de transação em volta do Aluno é suficiente para
// garantir os invariantes.
//
// Hierarquia de posse:
//
//	Aluno
//	└── MatriculaCurso (0..N, uma por curso)
//	    ├── Progresso   (0..N, um por aula)
//	    └── Certificado (0..N, somente após conclusão)
//
// O pacote não tem dependências de infraestrutura; repositórios são
// contratos implementados em internal/infrastructure/persistence.
package aluno
