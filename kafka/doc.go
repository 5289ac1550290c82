// Package kafka publishes transcription deliveries to a Kafka topic with
// segmentio/kafka-go.
//
// The Producer is a lifecycle component; its WebhookHandler plugs into the
// webhook receiver:
//
//	kafka:
//	  enabled: true
//	  brokers: ["localhost:9092"]
//	  topic: stt.transcriptions
package kafka
