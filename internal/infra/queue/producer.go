package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ImportCompletedPayload é o evento publicado após cada importação bem
// sucedida. Consumido pelo worker de relatórios (e por quem mais quiser
// reagir a uma troca de base).
type ImportCompletedPayload struct {
	BatchID        string    `json:"batch_id"`
	ImportedCount  int       `json:"imported_count"` // registros únicos após reconciliação
	RawRowCount    int       `json:"raw_row_count"`  // linhas de dados lidas do arquivo
	ParseFailures  int       `json:"parse_failures"` // campos que degradaram (valor zerado / data substituída)
	DisbursedCount int       `json:"disbursed_count"`
	DisbursedValue string    `json:"disbursed_value"` // decimal serializado com 2 casas
	CompletedAt    time.Time `json:"completed_at"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishImportCompleted(ctx context.Context, payload ImportCompletedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.propostas
		RoutingKey,   // k.import-completed
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
