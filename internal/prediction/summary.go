package prediction

import "encoding/json"

// Summary описывает ответ GET /get-predictions. Прокси отдаёт тело как есть.
// До первой загрузки additional_metrics содержит скаляры, после неё списки,
// а отсутствующие гео-колонки приходят строкой "N/A".
type Summary struct {
	ProtocolCounts      map[string]int             `json:"protocol_counts"`
	AnomalyData         *AnomalyCounts             `json:"anomaly_data"`
	AdditionalMetrics   map[string]json.RawMessage `json:"additional_metrics"`
	DetailedAnomalyData []AnomalyDetail            `json:"detailed_anomaly_data"`
}

// Counts содержит только поля сводки, нужные для realtime событий
type Counts struct {
	ProtocolCounts map[string]int `json:"protocol_counts"`
	AnomalyData    *AnomalyCounts `json:"anomaly_data"`
}

type AnomalyCounts struct {
	Normal   int `json:"normal"`
	Abnormal int `json:"abnormal"`
}

type AnomalyDetail struct {
	AnomalyType   interface{} `json:"Anomaly Type"`
	OriginCountry interface{} `json:"Origin Country"`
	Latitude      interface{} `json:"Latitude"`
	Longitude     interface{} `json:"Longitude"`
	SeverityLevel interface{} `json:"Severity Level"`
}
