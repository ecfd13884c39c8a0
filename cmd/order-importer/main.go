//nolint:mnd
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"goldenorders/internal/config"
	"goldenorders/internal/document"
	"goldenorders/internal/entity"
	"goldenorders/internal/fixture"
	"goldenorders/pkg/kafka"
	"goldenorders/pkg/logger"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	kafkago "github.com/segmentio/kafka-go"
)

func main() {
	kafkaBrokers := flag.String(
		"brokers",
		"kafka:29092",
		"Kafka bootstrap brokers to connect to, as a comma separated list",
	)
	kafkaTopic := flag.String("topic", "orders-intake", "Kafka topic to write order drafts to")
	file := flag.String("file", "", "Exported order spreadsheet (.xlsx) to import")
	keepID := flag.Bool("keep-id", false, "Keep the order number found in the spreadsheet")
	numMessages := flag.Int("count", 1, "Number of fake orders to send when no -file is given")
	interval := flag.Duration("interval", 1*time.Second, "Interval between fake orders")
	owner := flag.String("owner", "", "E-mail of the account the orders belong to")
	logLevel := flag.String("log-level", "info", "Log level")

	flag.Parse()

	log, err := logger.NewAdapter(&config.Config{
		App:    config.App{Name: "order-importer", Version: "dev"},
		Logger: config.Logger{Level: *logLevel},
		Env:    "local",
	}, logger.Output(os.Stderr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	if strings.TrimSpace(*owner) == "" {
		log.Errorw("missing -owner")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	writer, err := kafka.NewWriter(ctx, strings.Split(*kafkaBrokers, ","), *kafkaTopic, log)
	if err != nil {
		log.Errorw("kafka unavailable", "error", err)
		os.Exit(1)
	}
	defer writer.Close()

	if *file != "" {
		order, importErr := importFile(*file, *owner, *keepID)
		if importErr != nil {
			log.Errorw("import spreadsheet", "file", *file, "error", importErr)
			os.Exit(1)
		}
		if err = send(ctx, writer, order); err != nil {
			log.Errorw("send order", "error", err)
			os.Exit(1)
		}
		log.Infow("order draft sent", "file", *file, "items", len(order.Items))
		return
	}

	log.Infow("starting fake order producer",
		"count", *numMessages,
		"topic", *kafkaTopic,
		"brokers", *kafkaBrokers,
		"interval", interval.String(),
	)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for sent := 0; sent < *numMessages; {
		if err = send(ctx, writer, fixture.Order(*owner, time.Now())); err != nil {
			log.Errorw("send fake order", "error", err)
		} else {
			sent++
		}

		if sent >= *numMessages {
			break
		}

		select {
		case <-ctx.Done():
			log.Infow("shutting down producer", "sent", sent)
			return
		case <-ticker.C:
		}
	}

	log.Infow("all orders sent", "count", *numMessages)
}

func importFile(path, owner string, keepID bool) (*entity.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	order, err := document.ImportSpreadsheet(f)
	if err != nil {
		return nil, err
	}

	if !keepID {
		order.ID = ""
	}
	order.CreatedBy = strings.ToLower(strings.TrimSpace(owner))
	return order, nil
}

func send(ctx context.Context, writer *kafkago.Writer, order *entity.Order) error {
	if order.CreatedBy == "" {
		return errors.New("order without owner")
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}

	key := order.ID
	if key == "" {
		key = uuid.NewString()
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err = writer.WriteMessages(writeCtx, kafkago.Message{Key: []byte(key), Value: payload}); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}
