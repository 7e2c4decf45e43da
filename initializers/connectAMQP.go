package initializers

import (
	"log"

	"github.com/streadway/amqp"
)

var AmqpChannel *amqp.Channel

const OrderEventsExchange = "order_events"

// ConnectAMQP opens the channel used for best-effort order event fanout.
// Like redis, the broker is optional: without it events are dropped.
func ConnectAMQP(config *Config) {
	if config.AmqpURL == "" {
		log.Println("AMQP_URL not set, order events disabled")
		return
	}

	conn, err := amqp.Dial(config.AmqpURL)
	if err != nil {
		log.Fatal("Failed to connect to rabbitmq: ", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("Failed to open amqp channel: ", err)
	}

	if err := ch.ExchangeDeclare(OrderEventsExchange, "topic", true, false, false, false, nil); err != nil {
		log.Fatal("Failed to declare exchange: ", err)
	}

	AmqpChannel = ch
	log.Println("Connected to rabbitmq")
}
