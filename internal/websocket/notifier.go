package websocket

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/netsentinel/internal/metrics"
)

const DefaultChannel = "netsentinel:events"

// Notifier публикует события. Без Redis события уходят напрямую в локальный hub,
// с Redis через pub/sub канал, который слушает каждый инстанс.
type Notifier struct {
	hub     *Hub
	redis   *redis.Client
	channel string
}

func NewNotifier(hub *Hub, rdb *redis.Client, channel string) *Notifier {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Notifier{hub: hub, redis: rdb, channel: channel}
}

// Publish рассылает событие всем подключённым клиентам. Ошибки только логируются.
func (n *Notifier) Publish(ctx context.Context, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).WithField("event", event.Name).Error("Failed to encode event")
		return
	}
	metrics.RealtimeEventsTotal.WithLabelValues(string(event.Name)).Inc()

	if n.redis == nil {
		n.hub.Broadcast(data)
		return
	}

	if err := n.redis.Publish(ctx, n.channel, data).Err(); err != nil {
		logrus.WithError(err).WithField("event", event.Name).Warn("Redis publish failed, broadcasting locally")
		n.hub.Broadcast(data)
	}
}

// Run пересылает сообщения из Redis в локальный hub до отмены ctx
func (n *Notifier) Run(ctx context.Context) {
	if n.redis == nil {
		return
	}

	sub := n.redis.Subscribe(ctx, n.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			n.hub.Broadcast([]byte(msg.Payload))
		}
	}
}
