package realtime

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const pipelineChannel = "pipeline:events"

// NewRedis creates a new Redis client
func NewRedis() *redis.Client {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	log.Printf("Redis client created (addr: %s)\n", redisAddr)
	return rdb
}

type pubSubEnvelope struct {
	UserID  uuid.UUID       `json:"user_id"`
	Payload json.RawMessage `json:"payload"`
}

// Bridge relays pipeline events through Redis pub/sub so every instance's
// hub sees them, lalu hub yang punya koneksi user tersebut yang mengirim.
type Bridge struct {
	RDB *redis.Client
	Hub *Hub
}

func NewBridge(rdb *redis.Client, hub *Hub) *Bridge {
	return &Bridge{RDB: rdb, Hub: hub}
}

// SendToUser publishes instead of writing to the local hub directly.
// Satisfies pipeline.Notifier.
func (b *Bridge) SendToUser(userID uuid.UUID, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling pipeline event: %v", err)
		return
	}
	env, _ := json.Marshal(pubSubEnvelope{UserID: userID, Payload: payload})
	if err := b.RDB.Publish(context.Background(), pipelineChannel, env).Err(); err != nil {
		log.Printf("Error publishing pipeline event: %v", err)
		// fallback: masih kirim ke hub lokal
		b.Hub.SendToUser(userID, data)
	}
}

// Run subscribes and forwards incoming events to the local hub. Blocking.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.RDB.Subscribe(ctx, pipelineChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var env pubSubEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Printf("Error decoding pipeline pubsub payload: %v", err)
			continue
		}
		b.Hub.SendToUser(env.UserID, env.Payload)
	}
}
