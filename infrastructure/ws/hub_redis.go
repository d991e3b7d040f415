package ws

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const roomChannelPrefix = "rooms:"

// RedisHub relays room publishes through Redis so connections held by other
// server processes receive them too. Local delivery is the in-memory Hub.
type RedisHub struct {
	*Hub

	redisClient *redis.Client
	pubsub      *redis.PubSub
	serverID    string
}

type RedisMessage struct {
	FromServerID string `json:"fromServerId"`
	Room         string `json:"room"`
	Payload      []byte `json:"payload"`
}

func NewRedisHub(ctx context.Context, redisAddr string, serverID string, logger zerolog.Logger) (*RedisHub, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	hub := &RedisHub{
		Hub:         NewHub(logger.With().Str("server_id", serverID).Logger()),
		redisClient: rdb,
		serverID:    serverID,
	}

	hub.pubsub = rdb.PSubscribe(ctx, roomChannelPrefix+"*")
	// Wait for the subscription to be confirmed before anything is published.
	if _, err := hub.pubsub.Receive(ctx); err != nil {
		_ = hub.pubsub.Close()
		_ = rdb.Close()
		return nil, err
	}

	return hub, nil
}

func (h *RedisHub) Run() {
	go h.subscribeRedis()
	h.Hub.Run()
}

func (h *RedisHub) subscribeRedis() {
	ch := h.pubsub.Channel()

	h.logger.Info().Msg("redis subscriber started")

	for msg := range ch {
		var redisMsg RedisMessage
		if err := json.Unmarshal([]byte(msg.Payload), &redisMsg); err != nil {
			h.logger.Error().Err(err).Msg("unmarshal redis message")
			continue
		}

		// Local members were served when the message was published here.
		if redisMsg.FromServerID == h.serverID {
			continue
		}

		h.Hub.PublishToRoom(strings.TrimPrefix(msg.Channel, roomChannelPrefix), redisMsg.Payload)
	}
}

func (h *RedisHub) PublishToRoom(room string, message []byte) {
	h.Hub.PublishToRoom(room, message)
	h.publishToRedis(room, message)
}

func (h *RedisHub) publishToRedis(room string, message []byte) {
	redisMsg := RedisMessage{
		FromServerID: h.serverID,
		Room:         room,
		Payload:      message,
	}

	msgBytes, err := json.Marshal(redisMsg)
	if err != nil {
		h.logger.Error().Err(err).Msg("marshal redis message")
		return
	}

	if err := h.redisClient.Publish(context.Background(), roomChannelPrefix+room, msgBytes).Err(); err != nil {
		h.logger.Error().Err(err).Str("room", room).Msg("publish to redis")
	}
}

func (h *RedisHub) Close() error {
	if err := h.pubsub.Close(); err != nil {
		return err
	}
	return h.redisClient.Close()
}
