package utils

import (
	"go.mongodb.org/mongo-driver/event"
)

// NewPoolMonitor feeds driver pool events into MongoPoolConnections.
func NewPoolMonitor() *event.PoolMonitor {
	open := MongoPoolConnections.WithLabelValues("open")
	inUse := MongoPoolConnections.WithLabelValues("in_use")

	return &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				open.Inc()
			case event.ConnectionClosed:
				open.Dec()
			case event.GetSucceeded:
				inUse.Inc()
			case event.ConnectionReturned:
				inUse.Dec()
			}
		},
	}
}
