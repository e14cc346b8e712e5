// Package types contains common domain types used across the application.
package types

// Station identifies one of the fixed air-quality monitoring sites.
type Station string

// The four monitoring stations present in the dataset.
const (
	StationDongsi       Station = "Dongsi"
	StationChangping    Station = "Changping"
	StationHuairou      Station = "Huairou"
	StationAotizhongxin Station = "Aotizhongxin"
)

// Stations returns the enumerated stations in display order.
func Stations() []Station {
	return []Station{StationDongsi, StationChangping, StationHuairou, StationAotizhongxin}
}

// stationDescriptions are the Home-tab blurbs per station.
var stationDescriptions = map[Station]string{
	StationDongsi:       "Dongsi is an urban site in central Beijing, often used as a reference for city pollution levels.",
	StationChangping:    "Changping is a suburban area northwest of Beijing, capturing regional background pollution.",
	StationHuairou:      "Huairou is a rural station with natural surroundings, typically reflecting lower pollution.",
	StationAotizhongxin: "Aotizhongxin is near Beijing's Olympic Green, representing dense urban activity.",
}

// Description returns the human-readable blurb for the station, or a
// placeholder for stations outside the enumerated set.
func (s Station) Description() string {
	if d, ok := stationDescriptions[s]; ok {
		return d
	}
	return "No description available for this station."
}

// Valid reports whether s is one of the enumerated stations.
func (s Station) Valid() bool {
	_, ok := stationDescriptions[s]
	return ok
}

// FeatureCount is the fixed width of the model's input vector.
const FeatureCount = 12

// FeatureVector is the ordered numeric tuple consumed by the scaler and the
// regression model. The order is fixed by the export contract:
// PM10, SO2, NO2, CO, O3, WSPM, RAIN, TEMP, DEWP, PRES, month, hour.
type FeatureVector [FeatureCount]float64

// FeatureNames returns the canonical feature names in vector order.
func FeatureNames() []string {
	return []string{
		"PM10", "SO2", "NO2", "CO", "O3", "WSPM",
		"RAIN", "TEMP", "DEWP", "PRES", "month", "hour",
	}
}

// StationInfo is the read shape for the station selector and Home tab.
type StationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
}

// ColumnMissing pairs a column name with its missing-cell count.
type ColumnMissing struct {
	Column  string `json:"column"`
	Missing int    `json:"missing"`
}

// Overview is the read shape for the Data Overview tab. Metrics describe the
// station-filtered subset, not the full dataset.
type Overview struct {
	Station        string          `json:"station"`
	Rows           int             `json:"rows"`
	Columns        int             `json:"columns"`
	MissingPct     float64         `json:"missingPct"`
	SampleColumns  []string        `json:"sampleColumns"`
	SampleRows     [][]string      `json:"sampleRows"`
	MissingColumns []ColumnMissing `json:"missingColumns"`
}

// Prediction is the result of one prediction-form submission.
type Prediction struct {
	ID           string  `json:"id"`
	Estimate     float64 `json:"estimate"`
	ModelVersion string  `json:"modelVersion"`
}

// Observation is one dataset row. It is the write-side shape used by the
// fixtures generator; the repository stores rows columnar for read access.
type Observation struct {
	Station Station
	PM25    float64
	PM10    float64
	SO2     float64
	NO2     float64
	CO      float64
	O3      float64
	TEMP    float64
	PRES    float64
	DEWP    float64
	RAIN    float64
	WSPM    float64
	Month   int
	Hour    int
}

// Features builds the model input vector from the observation's measurements.
func (o Observation) Features() FeatureVector {
	return FeatureVector{
		o.PM10, o.SO2, o.NO2, o.CO, o.O3, o.WSPM,
		o.RAIN, o.TEMP, o.DEWP, o.PRES, float64(o.Month), float64(o.Hour),
	}
}
