package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/stayhub/rental-api/config"
	"github.com/stayhub/rental-api/internal/application"
	pginfra "github.com/stayhub/rental-api/internal/infrastructure/postgres"
	"github.com/stayhub/rental-api/pkg/helpers"
)

// rating_worker consumes rating jobs and recomputes offer ratings from the
// current comment set. Failed jobs are requeued once by the broker.
func main() {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-rating-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQRatingQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	offers := pginfra.NewOfferRepository(pool)
	comments := pginfra.NewCommentRepository(pool)
	favorites := pginfra.NewFavoriteRepository(pool)
	svc := application.NewOfferService(offers, comments, favorites, logger, nil)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQRatingQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQRatingQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job application.RatingJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Warn("bad rating job")
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 10*time.Second)
			rating, err := svc.UpdateRating(c, job.OfferID)
			cancel()
			if err != nil {
				logger.WithError(err).WithField("offer_id", job.OfferID).Error("rating recompute failed")
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			logger.WithField("offer_id", job.OfferID).WithField("rating", rating).Info("rating recomputed")
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("rating worker listening on queue=%s", cfg.RabbitMQRatingQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
