package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReportSender define o contrato para envio do relatório de importação
// (hoje e-mail, mas o worker não precisa saber disso).
type ReportSender interface {
	SendImportReport(to string, payload ImportCompletedPayload) error
}

type Worker struct {
	Channel     *amqp.Channel
	Sender      ReportSender
	ReportEmail string
}

func NewWorker(ch *amqp.Channel, sender ReportSender, reportEmail string) *Worker {
	return &Worker{
		Channel:     ch,
		Sender:      sender,
		ReportEmail: reportEmail,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ImportCompletedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Enviando relatório da importação %s (%d registros)", payload.BatchID, payload.ImportedCount)

			if err := w.Sender.SendImportReport(w.ReportEmail, payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao enviar relatório: %s", err)
				d.Nack(false, false)
			} else {
				log.Printf("✅ [WORKER] Relatório da importação %s enviado.", payload.BatchID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
