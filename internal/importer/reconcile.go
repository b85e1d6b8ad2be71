package importer

import "github.com/gfconsig/propostas-api/internal/entity"

// Reconcile colapsa linhas que referem o mesmo contrato em um único registro
// canônico. O mesmo contrato pode aparecer mais de uma vez no export (ex:
// snapshot antigo pré-pagamento junto com o snapshot pós-pagamento).
//
// Regra de desempate, aplicada em ordem de chegada:
//  1. Pago ganha de qualquer não-Pago;
//  2. Cancelada ganha de quem não é Pago nem Cancelada;
//  3. senão fica a primeira ocorrência.
//
// Estados terminais são definitivos e não podem ser mascarados por um
// snapshot intermediário mais antigo do mesmo contrato.
// A ordem relativa de primeira ocorrência é preservada na saída.
func Reconcile(proposals []entity.Proposal) []entity.Proposal {
	index := make(map[string]int, len(proposals))
	unique := make([]entity.Proposal, 0, len(proposals))

	for _, p := range proposals {
		key := p.DedupKey()

		at, seen := index[key]
		if !seen {
			index[key] = len(unique)
			unique = append(unique, p)
			continue
		}

		existing := unique[at]
		switch {
		case existing.Status != entity.StatusPago && p.Status == entity.StatusPago:
			unique[at] = p
		case existing.Status != entity.StatusPago && existing.Status != entity.StatusCancelada &&
			p.Status == entity.StatusCancelada:
			unique[at] = p
		}
	}

	return unique
}
