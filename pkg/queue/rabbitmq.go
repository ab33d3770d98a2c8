package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"clipstream/pkg/config"
	"clipstream/pkg/logger"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	NotificationQueueName = "notification_queue"
	NotificationExchange  = "notifications"
	NotificationRouteKey  = "new_post"
)

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger

	replyQueue string
	mu         sync.Mutex
	pending    map[string]chan amqp.Delivery
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// Declare exchange and queue for post notifications
	err = channel.ExchangeDeclare(
		NotificationExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		NotificationQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		NotificationQueueName,
		NotificationRouteKey,
		NotificationExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	// Exclusive reply queue for request/response calls
	replyQueue, err := channel.QueueDeclare(
		"",    // name, server-generated
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare reply queue: %w", err)
	}

	replies, err := channel.Consume(
		replyQueue.Name,
		"",    // consumer
		true,  // auto-ack
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to consume reply queue: %w", err)
	}

	client := &Client{
		conn:       conn,
		channel:    channel,
		logger:     log,
		replyQueue: replyQueue.Name,
		pending:    make(map[string]chan amqp.Delivery),
	}

	go client.dispatchReplies(replies)

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return client, nil
}

func (c *Client) dispatchReplies(replies <-chan amqp.Delivery) {
	for msg := range replies {
		c.mu.Lock()
		ch, ok := c.pending[msg.CorrelationId]
		c.mu.Unlock()
		if !ok {
			// Late reply for a caller that already timed out
			c.logger.Warn("[RABBITMQ] Dropping reply with unknown correlation id %s", msg.CorrelationId)
			continue
		}
		ch <- msg
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Call sends a request to the named queue and waits for the correlated reply.
func (c *Client) Call(ctx context.Context, queueName string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	corrID := uuid.New().String()
	replyCh := make(chan amqp.Delivery, 1)

	c.mu.Lock()
	c.pending[corrID] = replyCh
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, corrID)
		c.mu.Unlock()
	}()

	err = c.channel.PublishWithContext(
		ctx,
		"",        // default exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			Body:          body,
			CorrelationId: corrID,
			ReplyTo:       c.replyQueue,
			Timestamp:     time.Now(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to publish request: %w", err)
	}

	select {
	case msg := <-replyCh:
		return msg.Body, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("rpc call to %s: %w", queueName, ctx.Err())
	}
}

// PublishNotificationTask publishes a post notification task to the queue.
func (c *Client) PublishNotificationTask(task map[string]interface{}) error {
	taskJSON, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.Publish(
		NotificationExchange,
		NotificationRouteKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         taskJSON,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish message to exchange=%s, routing_key=%s: %v", NotificationExchange, NotificationRouteKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
