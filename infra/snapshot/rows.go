package snapshot

import (
	"time"

	"github.com/kilianp07/evdash/core/model"
)

type stationRow struct {
	StationID        int64   `parquet:"name=station_id, type=INT64"`
	StationName      string  `parquet:"name=station_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Lat              float64 `parquet:"name=lat, type=DOUBLE"`
	Lon              float64 `parquet:"name=lon, type=DOUBLE"`
	Region           string  `parquet:"name=region, type=BYTE_ARRAY, convertedtype=UTF8"`
	ChargerType      string  `parquet:"name=charger_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	NumPorts         int64   `parquet:"name=num_ports, type=INT64"`
	NearestDistKm    float64 `parquet:"name=nearest_dist_km, type=DOUBLE"`
	ExpansionBenefit float64 `parquet:"name=expansion_benefit, type=DOUBLE"`
}

type sessionRow struct {
	SessionID        string  `parquet:"name=session_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	StationID        int64   `parquet:"name=station_id, type=INT64"`
	StartTime        int64   `parquet:"name=start_time, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	EndTime          int64   `parquet:"name=end_time, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	WaitTime         float64 `parquet:"name=wait_time, type=DOUBLE"`
	EnergyKWh        float64 `parquet:"name=energy_kwh, type=DOUBLE"`
	Revenue          float64 `parquet:"name=revenue, type=DOUBLE"`
	Cost             float64 `parquet:"name=cost, type=DOUBLE"`
	SatisfactionNPS  float64 `parquet:"name=satisfaction_nps, type=DOUBLE"`
	TrafficVolume    int64   `parquet:"name=traffic_volume, type=INT64"`
	TemperatureC     float64 `parquet:"name=temperature_C, type=DOUBLE"`
	PrecipMM         float64 `parquet:"name=precip_mm, type=DOUBLE"`
	LocalEvent       bool    `parquet:"name=local_event, type=BOOLEAN"`
	NumPorts         int64   `parquet:"name=num_ports, type=INT64"`
	AvgOccupied      float64 `parquet:"name=avg_occupied, type=DOUBLE"`
	QueueLength      int64   `parquet:"name=queue_length, type=INT64"`
	IdleTime         int64   `parquet:"name=idle_time, type=INT64"`
	ExpansionBenefit float64 `parquet:"name=expansion_benefit, type=DOUBLE"`
	Region           string  `parquet:"name=region, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func toStationRow(s model.Station) stationRow {
	return stationRow{
		StationID:        s.StationID,
		StationName:      s.StationName,
		Lat:              s.Lat,
		Lon:              s.Lon,
		Region:           s.Region,
		ChargerType:      s.ChargerType,
		NumPorts:         int64(s.NumPorts),
		NearestDistKm:    s.NearestDistKm,
		ExpansionBenefit: s.ExpansionBenefit,
	}
}

func (r stationRow) station() model.Station {
	return model.Station{
		StationID:        r.StationID,
		StationName:      r.StationName,
		Lat:              r.Lat,
		Lon:              r.Lon,
		Region:           r.Region,
		ChargerType:      r.ChargerType,
		NumPorts:         int(r.NumPorts),
		NearestDistKm:    r.NearestDistKm,
		ExpansionBenefit: r.ExpansionBenefit,
	}
}

func toSessionRow(s model.Session) sessionRow {
	return sessionRow{
		SessionID:        s.SessionID,
		StationID:        s.StationID,
		StartTime:        s.StartTime.UnixMilli(),
		EndTime:          s.EndTime.UnixMilli(),
		WaitTime:         s.WaitTime,
		EnergyKWh:        s.EnergyKWh,
		Revenue:          s.Revenue,
		Cost:             s.Cost,
		SatisfactionNPS:  s.SatisfactionNPS,
		TrafficVolume:    int64(s.TrafficVolume),
		TemperatureC:     s.TemperatureC,
		PrecipMM:         s.PrecipMM,
		LocalEvent:       s.LocalEvent,
		NumPorts:         int64(s.NumPorts),
		AvgOccupied:      s.AvgOccupied,
		QueueLength:      int64(s.QueueLength),
		IdleTime:         int64(s.IdleTime),
		ExpansionBenefit: s.ExpansionBenefit,
		Region:           s.Region,
	}
}

func (r sessionRow) session() model.Session {
	return model.Session{
		SessionID:        r.SessionID,
		StationID:        r.StationID,
		StartTime:        time.UnixMilli(r.StartTime).UTC(),
		EndTime:          time.UnixMilli(r.EndTime).UTC(),
		WaitTime:         r.WaitTime,
		EnergyKWh:        r.EnergyKWh,
		Revenue:          r.Revenue,
		Cost:             r.Cost,
		SatisfactionNPS:  r.SatisfactionNPS,
		TrafficVolume:    int(r.TrafficVolume),
		TemperatureC:     r.TemperatureC,
		PrecipMM:         r.PrecipMM,
		LocalEvent:       r.LocalEvent,
		NumPorts:         int(r.NumPorts),
		AvgOccupied:      r.AvgOccupied,
		QueueLength:      int(r.QueueLength),
		IdleTime:         int(r.IdleTime),
		ExpansionBenefit: r.ExpansionBenefit,
		Region:           r.Region,
	}
}

func stationRows(stations []model.Station) []stationRow {
	rows := make([]stationRow, len(stations))
	for i, s := range stations {
		rows[i] = toStationRow(s)
	}
	return rows
}

func sessionRows(sessions []model.Session) []sessionRow {
	rows := make([]sessionRow, len(sessions))
	for i, s := range sessions {
		rows[i] = toSessionRow(s)
	}
	return rows
}
