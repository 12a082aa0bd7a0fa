// Package messaging provides a broker-agnostic publish/consume client with
// NSQ, NATS, Kafka and Google Pub/Sub backends.
package messaging
