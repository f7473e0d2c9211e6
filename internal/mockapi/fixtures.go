package mockapi

import (
	"time"

	"tracker-client/internal/domain"
)

func day(d, h, m int) time.Time {
	return time.Date(2025, 10, d, h, m, 0, 0, time.UTC)
}

func ref(id int64) *int64 {
	return &id
}

// seed loads the fixture data set.
func (s *Server) seed() {
	estimate1, estimate2 := 60, 30
	end1, end2 := day(1, 10, 0), day(2, 9, 30)
	dur1, dur2 := int64(3600), int64(1800)

	s.store = dataset{
		projects: []domain.Project{
			{ID: 1, Name: "Project 1", Color: domain.DefaultProjectColor, CreatedAt: day(1, 0, 0), UpdatedAt: day(1, 0, 0)},
			{ID: 2, Name: "Project 2", Color: "#FF5733", CreatedAt: day(2, 0, 0), UpdatedAt: day(2, 0, 0)},
		},
		tags: []domain.Tag{
			{ID: 1, Name: "Tag 1", CreatedAt: day(1, 0, 0)},
			{ID: 2, Name: "Tag 2", CreatedAt: day(2, 0, 0)},
		},
		tasks: []domain.Task{
			{ID: 1, Name: "Task 1", Project: ref(1), Tags: []int64{1}, EstimateMinutes: &estimate1, CreatedAt: day(1, 0, 0), UpdatedAt: day(1, 0, 0)},
			{ID: 2, Name: "Task 2", Project: ref(2), Tags: []int64{2}, EstimateMinutes: &estimate2, CreatedAt: day(2, 0, 0), UpdatedAt: day(2, 0, 0)},
		},
		entries: []domain.TimeEntry{
			{ID: 1, Task: ref(1), Project: ref(1), StartTime: day(1, 9, 0), EndTime: &end1, DurationSeconds: &dur1, CreatedAt: day(1, 10, 0)},
			{ID: 2, Task: ref(2), Project: ref(2), StartTime: day(2, 9, 0), EndTime: &end2, DurationSeconds: &dur2, CreatedAt: day(2, 9, 30)},
		},
	}
	for _, collection := range []string{"projects", "tags", "tasks", "time-entries"} {
		s.nextID[collection] = 2
	}
}
