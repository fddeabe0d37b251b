package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/oksasatya/go-user-accounts/config"
	"github.com/oksasatya/go-user-accounts/pkg/events"
	"github.com/oksasatya/go-user-accounts/pkg/helpers"
	"github.com/oksasatya/go-user-accounts/pkg/mailer"
)

// event_worker consumes account events and sends plain notification emails
// when Mailgun is configured. Without Mailgun it only logs the events.
func main() {
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

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

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQEventQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled && cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	} else {
		logger.Info("mail sending disabled; events will only be logged")
	}

	ctx := context.Background()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			var ev events.AccountEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				logger.WithError(err).Warn("discarding malformed event")
				_ = msg.Nack(false, false)
				continue
			}

			logger.WithField("event", ev.Type).WithField("user_id", ev.UserID).Info("account event received")

			if mg != nil {
				subject, text := notificationFor(ev)
				if subject != "" {
					if err := mg.Send(ctx, ev.Email, subject, text); err != nil {
						logger.WithError(err).WithField("event_id", ev.EventID).Warn("send notification failed")
					}
				}
			}
			_ = msg.Ack(false)
		}
	}()

	logger.Infof("event worker consuming %s", cfg.RabbitMQEventQueue)
	<-stop
	_ = ch.Close()
	<-done
	logger.Info("event worker stopped")
}

func notificationFor(ev events.AccountEvent) (subject, text string) {
	switch ev.Type {
	case events.TypeUserRegistered:
		return "Welcome!", fmt.Sprintf("Hi %s,\n\nyour account was created successfully.", ev.Username)
	case events.TypeUserDeactivated:
		return "Account deactivated", fmt.Sprintf("Hi %s,\n\nyour account has been deactivated.", ev.Username)
	case events.TypePasswordChanged:
		return "Password changed", fmt.Sprintf("Hi %s,\n\nyour password was just changed. If this wasn't you, contact support.", ev.Username)
	}
	return "", ""
}
