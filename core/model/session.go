package model

import "time"

// Session is one charging event. NumPorts, ExpansionBenefit and Region are
// copies of the station values at generation time, not live attributes.
type Session struct {
	SessionID        string    `json:"session_id"`
	StationID        int64     `json:"station_id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	WaitTime         float64   `json:"wait_time"`
	EnergyKWh        float64   `json:"energy_kwh"`
	Revenue          float64   `json:"revenue"`
	Cost             float64   `json:"cost"`
	SatisfactionNPS  float64   `json:"satisfaction_nps"`
	TrafficVolume    int       `json:"traffic_volume"`
	TemperatureC     float64   `json:"temperature_C"`
	PrecipMM         float64   `json:"precip_mm"`
	LocalEvent       bool      `json:"local_event"`
	NumPorts         int       `json:"num_ports"`
	AvgOccupied      float64   `json:"avg_occupied"`
	QueueLength      int       `json:"queue_length"`
	IdleTime         int       `json:"idle_time"`
	ExpansionBenefit float64   `json:"expansion_benefit"`
	Region           string    `json:"region"`
}

// Duration returns the charging time of the session.
func (s Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Dataset is the pair of tables produced by one generator run.
type Dataset struct {
	Stations []Station
	Sessions []Session
}

// StationIndex maps station ids to their position in Stations.
func (d Dataset) StationIndex() map[int64]int {
	idx := make(map[int64]int, len(d.Stations))
	for i, s := range d.Stations {
		idx[s.StationID] = i
	}
	return idx
}
