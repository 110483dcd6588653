package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"socialnet/internal/model"
	rabbitmqClient "socialnet/internal/platform/rabbitmq"
)

// FileRemover deletes a stored upload by name.
type FileRemover interface {
	Remove(name string) error
}

// FileCleanupWorker consumes cleanup jobs and removes the named files from the
// upload store registered for the job kind.
type FileCleanupWorker struct {
	conn      *amqp.Connection
	queueName string
	stores    map[string]FileRemover

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewFileCleanupWorker(conn *amqp.Connection, queueName string, stores map[string]FileRemover) *FileCleanupWorker {
	return &FileCleanupWorker{
		conn:      conn,
		queueName: queueName,
		stores:    stores,
	}
}

func (w *FileCleanupWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmqClient.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.Handle(d.Body); err != nil {
					log.Error().Err(err).Str("queue", w.queueName).Msg("file cleanup failed")
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

// Handle processes a single encoded cleanup job.
func (w *FileCleanupWorker) Handle(body []byte) error {
	var job model.FileCleanupJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("decode cleanup job failed: %w", err)
	}
	store, ok := w.stores[job.Kind]
	if !ok {
		return fmt.Errorf("unknown cleanup kind %q", job.Kind)
	}
	if err := store.Remove(job.Filename); err != nil {
		return err
	}
	log.Debug().Str("kind", job.Kind).Str("file", job.Filename).Msg("file removed")
	return nil
}

func (w *FileCleanupWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
