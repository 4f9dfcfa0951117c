package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"event_ticketing/config"
	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	})

	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

type stockUpdate struct {
	TicketTypeId uint   `json:"ticketTypeId"`
	TicketName   string `json:"ticketName"`
	Kind         string `json:"kind"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"`
}

func fetchEventStock(eventId uint) ([]stockUpdate, error) {
	var ticketTypes []model.TicketType
	if err := database.DB.Where("event_id = ?", eventId).
		Order("price asc").
		Find(&ticketTypes).Error; err != nil {
		return nil, err
	}

	updates := make([]stockUpdate, 0, len(ticketTypes))
	for _, tt := range ticketTypes {
		updates = append(updates, stockUpdate{
			TicketTypeId: tt.ID,
			TicketName:   tt.TicketName,
			Kind:         tt.Kind,
			Quantity:     tt.Quantity,
			Status:       tt.Status,
		})
	}
	return updates, nil
}

// BroadcastEventStock publishes the current remaining stock of an event to its
// redis channel; every websocket subscriber of that event receives it.
func BroadcastEventStock(eventId uint) {
	updates, err := fetchEventStock(eventId)
	if err != nil {
		log.Printf("failed to load stock for event %d: %v", eventId, err)
		return
	}

	payload, err := json.Marshal(updates)
	if err != nil {
		log.Printf("failed to marshal stock update: %v", err)
		return
	}

	if err := redisClient.Publish(
		context.Background(),
		fmt.Sprintf("event:%d", eventId),
		payload,
	).Err(); err != nil {
		log.Printf("failed to publish stock update for event %d: %v", eventId, err)
	}
}

// EventStockSocket keeps one websocket room per event, fed by redis pub/sub.
func EventStockSocket(c *websocket.Conn) {
	eventIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(eventIdStr, 10, 64)
	eventId := uint(id64)

	defer func() {
		mu.Lock()
		if clients[eventId] != nil {
			delete(clients[eventId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	mu.Lock()
	if clients[eventId] == nil {
		clients[eventId] = make(map[*websocket.Conn]bool)
	}
	clients[eventId][c] = true
	mu.Unlock()

	// initial snapshot
	if updates, err := fetchEventStock(eventId); err == nil {
		c.WriteJSON(updates)
	}

	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("event:%d", eventId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[eventId] {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[eventId], conn)
			}
		}
		mu.Unlock()
	}
}
