package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/thereayou/netsentinel/internal/prediction"
	"github.com/thereayou/netsentinel/internal/websocket"
)

const (
	PredictionsAlertMessage = "Anomaly detected within your data. Please check the Alert System tab."
	UploadAlertMessage      = "Anomalies detected within your data. Please check the Alert System tab."
	anomalySeverity         = "error"
)

// summaryEvents строит события по сводке предсказаний. Остальные поля сводки
// не декодируются, их форма на события не влияет.
func summaryEvents(raw json.RawMessage) []websocket.Event {
	var summary prediction.Counts
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil
	}

	var events []websocket.Event
	if summary.AnomalyData != nil && summary.AnomalyData.Abnormal > 0 {
		events = append(events,
			websocket.NewAlert(UploadAlertMessage),
			websocket.NewAnomalyDetected(
				fmt.Sprintf("Network anomaly detected in %d records.", summary.AnomalyData.Abnormal),
				anomalySeverity,
			),
		)
	}

	protocols := make([]string, 0, len(summary.ProtocolCounts))
	for protocol, count := range summary.ProtocolCounts {
		if count > 0 {
			protocols = append(protocols, protocol)
		}
	}
	sort.Strings(protocols)
	for _, protocol := range protocols {
		events = append(events, websocket.NewProtocolDetected(protocol, summary.ProtocolCounts[protocol]))
	}

	return events
}
