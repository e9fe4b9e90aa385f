package mq

import (
	"context"
	"encoding/json"
	"log"

	"vastra/models"
	"vastra/rdx"
)

const indexChannel = "indexing-events"

// Emit publishes an indexing event to Redis for the background worker.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), indexChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event to Redis: %v", eventName, err)
	}
}

// StartIndexingWorker drains catalog indexing events and mirrors the touched
// entities into the search cache.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, indexChannel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for indexing events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}

		if err := indexInRedis(ctx, event); err != nil {
			log.Printf("[IndexingWorker] index error: %v", err)
		}
	}
}

// indexInRedis keeps a lightweight searchable mirror: entity ids per type in a
// set, dropped again on DELETE.
func indexInRedis(ctx context.Context, event models.Index) error {
	key := "index:" + event.EntityType
	if event.Method == "DELETE" {
		return rdx.Conn.SRem(ctx, key, event.EntityId).Err()
	}
	return rdx.Conn.SAdd(ctx, key, event.EntityId).Err()
}
