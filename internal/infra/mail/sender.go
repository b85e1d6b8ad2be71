package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/gfconsig/propostas-api/internal/infra/queue"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
}

func NewEmailSender(host string, port int, user, password string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
	}
}

var reportTemplate = template.Must(template.New("report").Parse(`
<h2>Importação de propostas concluída</h2>
<p>Lote: <strong>{{.BatchID}}</strong></p>
<ul>
  <li>Linhas lidas do arquivo: {{.RawRowCount}}</li>
  <li>Registros únicos após reconciliação: {{.ImportedCount}}</li>
  <li>Campos degradados no parse: {{.ParseFailures}}</li>
  <li>Contratos desembolsados: {{.DisbursedCount}} (R$ {{.DisbursedValue}})</li>
</ul>
<p>Concluída em {{.CompletedAt.Format "02/01/2006 15:04"}} (UTC).</p>
`))

// SendImportReport envia o resumo da importação para o e-mail da operação.
func (s *EmailSender) SendImportReport(to string, payload queue.ImportCompletedPayload) error {
	var body bytes.Buffer
	if err := reportTemplate.Execute(&body, payload); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "nao-responda@gfconsig.com.br")
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Importação %s: %d propostas na base", payload.BatchID, payload.ImportedCount))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
