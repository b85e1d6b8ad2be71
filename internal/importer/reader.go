package importer

import (
	"errors"
	"fmt"
	"strings"
)

// Colunas reconhecidas do export do sistema de originação.
// A posição varia entre exports; localizamos sempre pelo nome.
const (
	ColID          = "debt_key"
	ColDate        = "created_at"
	ColDateAlt     = "data" // alguns exports usam "Data" no lugar de created_at
	ColClient      = "nom_cliente"
	ColSalesperson = "nic_ctr_usuario"
	ColValue       = "val_liquido"
	ColStatus      = "dsc_situicao_emprestimo"
	ColType        = "dsc_tipo_proposta_emprestimo"
	ColBank        = "bank_name"
	ColContract    = "num_contrato"
)

// RawRow mapeia nome de coluna (minúsculo) para o token cru de uma linha.
type RawRow map[string]string

// Get devolve o token da coluna, sem espaços nas pontas. Coluna ausente vira "".
func (r RawRow) Get(col string) string {
	return strings.TrimSpace(r[col])
}

// MissingColumnsError indica cabeçalho sem as colunas obrigatórias.
// Nenhuma importação parcial acontece nesse caso.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("colunas obrigatórias (%s) não encontradas", strings.Join(e.Columns, ", "))
}

// ErrEmptyInput indica arquivo sem cabeçalho ou sem linhas de dados.
var ErrEmptyInput = errors.New("arquivo vazio ou sem linhas de dados")

// RowReader percorre o arquivo delimitado uma única vez: a primeira linha não
// vazia é o cabeçalho, as demais viram RawRows. Não é reiniciável.
// As linhas são fatiadas direto da string de entrada, sem limite de tamanho:
// nenhuma linha é descartada por ser grande demais.
type RowReader struct {
	rest  string
	index map[string]int
}

// NewRowReader lê e valida o cabeçalho. Falha com MissingColumnsError se
// debt_key ou val_liquido não existirem, e com ErrEmptyInput se não houver
// nenhuma linha não vazia.
func NewRowReader(content string) (*RowReader, error) {
	rest := content
	var header string
	for header == "" && rest != "" {
		var line string
		line, rest = nextLine(rest)
		header = strings.TrimSpace(line)
	}
	if header == "" {
		return nil, ErrEmptyInput
	}

	// Cabeçalho minúsculo; em nome duplicado vale a primeira ocorrência.
	index := make(map[string]int)
	for i, name := range strings.Split(strings.ToLower(header), ";") {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	for _, required := range []string{ColID, ColValue} {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return &RowReader{rest: rest, index: index}, nil
}

// Next devolve a próxima linha de dados, pulando linhas em branco.
// Linhas com menos campos que o cabeçalho rendem tokens vazios.
func (r *RowReader) Next() (RawRow, bool) {
	for r.rest != "" {
		var line string
		line, r.rest = nextLine(r.rest)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ";")
		row := make(RawRow, len(r.index))
		for name, i := range r.index {
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				row[name] = ""
			}
		}
		return row, true
	}
	return nil, false
}

// nextLine separa a próxima linha, aceitando \n e \r\n.
func nextLine(s string) (line, rest string) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], "\r"), s[i+1:]
	}
	return s, ""
}
