// Package events publica eventos de domínio no RabbitMQ
package events

//go:generate mockgen -source=publisher.go -destination=mocks/publisher.go -package=mocks

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/salesvision-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UploadCompletedEvent é publicado depois que um lote de vendas foi gravado
type UploadCompletedEvent struct {
	UploadID      string    `json:"upload_id"`
	Filename      string    `json:"filename"`
	RowsProcessed int       `json:"rows_processed"`
	UploadedBy    string    `json:"uploaded_by"`
	Timestamp     time.Time `json:"timestamp"`
}

func (e UploadCompletedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func UploadCompletedEventFromJSON(data []byte) (*UploadCompletedEvent, error) {
	var event UploadCompletedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

type Publisher interface {
	PublishUploadCompleted(ctx context.Context, event UploadCompletedEvent) error
	Close() error
}

// NewPublisher conecta ao broker quando os eventos estão habilitados;
// caso contrário devolve um publisher que descarta os eventos.
func NewPublisher(cfg config.Events) (Publisher, error) {
	if !cfg.Enabled {
		logrus.Info("Publicação de eventos desabilitada")
		return NoopPublisher{}, nil
	}

	return NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, cfg.Queue)
}

type NoopPublisher struct{}

func (NoopPublisher) PublishUploadCompleted(context.Context, UploadCompletedEvent) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
