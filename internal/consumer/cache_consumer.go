// Package consumer keeps this instance's redis cache coherent with lifecycle
// changes made by sibling instances, delivered over the message bus.
package consumer

import (
	"context"
	"encoding/json"
	"log"

	"github.com/eventflow/eventflow/pkg/cache"
	amqp "github.com/rabbitmq/amqp091-go"
)

type CacheConsumer struct {
	cache *cache.EventCache
}

func NewCacheConsumer(eventCache *cache.EventCache) *CacheConsumer {
	return &CacheConsumer{cache: eventCache}
}

// Start drains lifecycle messages and drops the affected cache entries.
func (cc *CacheConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			cc.handleMessage(msg)
		}
		log.Println("[CacheConsumer] channel closed, stopping consumer")
	}()
}

func (cc *CacheConsumer) handleMessage(msg amqp.Delivery) {
	var payload struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(msg.Body, &payload); err != nil || payload.Slug == "" {
		log.Printf("[CacheConsumer] ignoring malformed message on %s", msg.RoutingKey)
		msg.Nack(false, false)
		return
	}

	cc.cache.Invalidate(context.Background(), payload.Slug)
	log.Printf("[CacheConsumer] invalidated cache for %s (%s)", payload.Slug, msg.RoutingKey)
	msg.Ack(false)
}
