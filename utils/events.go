package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"

	"savoria/initializers"
)

// PublishOrderEvent pushes an event onto the order events exchange.
// Best-effort: without a broker, or on any failure, the event is dropped
// with a log line and the request carries on.
func PublishOrderEvent(routingKey string, payload map[string]interface{}) {
	ch := initializers.AmqpChannel
	if ch == nil {
		return
	}

	payload["event"] = routingKey
	payload["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(payload)
	if err != nil {
		log.Println("Could not marshal event", routingKey, ":", err)
		return
	}

	err = ch.Publish(initializers.OrderEventsExchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		log.Println("Could not publish event", routingKey, ":", err)
	}
}
