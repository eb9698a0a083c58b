// internal/domain/entity/schedule.go
package entity

// ScheduleConfig is the scheduler daemon's query plan, loaded from
// config.json next to the binary.
type ScheduleConfig struct {
	Queries []RouteQuery `json:"queries"`
}
