package websocket

import (
	"encoding/json"
	"time"
)

// EventName определяет типы realtime событий
type EventName string

const (
	EventAlert            EventName = "alert"
	EventAnomalyDetected  EventName = "anomalyDetected"
	EventProtocolDetected EventName = "protocolDetected"
)

type Event struct {
	Name      EventName       `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type AlertPayload struct {
	Message string `json:"message"`
}

type AnomalyPayload struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type ProtocolPayload struct {
	Protocol string `json:"protocol"`
	Count    int    `json:"count"`
}

func NewAlert(message string) Event {
	return newEvent(EventAlert, AlertPayload{Message: message})
}

func NewAnomalyDetected(message, severity string) Event {
	return newEvent(EventAnomalyDetected, AnomalyPayload{Message: message, Severity: severity})
}

func NewProtocolDetected(protocol string, count int) Event {
	return newEvent(EventProtocolDetected, ProtocolPayload{Protocol: protocol, Count: count})
}

// payload состоит только из строк и чисел, Marshal не может вернуть ошибку
func newEvent(name EventName, payload interface{}) Event {
	data, _ := json.Marshal(payload)
	return Event{Name: name, Data: data, Timestamp: time.Now().UTC()}
}
