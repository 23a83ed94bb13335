package grpc

import (
	"time"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
	"github.com/dmitrijs2005/joggingtracker/internal/server/models"
	"github.com/dmitrijs2005/joggingtracker/internal/timex"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func recordToAPI(r *models.ExerciseRecord) api.Record {
	// stored records always have a positive duration
	speed, _ := r.Speed()
	return api.Record{
		ID:             r.ID,
		UserID:         r.UserID,
		Date:           r.Date.Format(api.DateLayout),
		DistanceMeters: r.DistanceMeters,
		Duration:       timex.Duration{Duration: r.Duration},
		Speed:          speed,
	}
}

func recordsToAPI(recs []*models.ExerciseRecord) *api.RecordList {
	out := &api.RecordList{Records: make([]api.Record, 0, len(recs))}
	for _, r := range recs {
		out.Records = append(out.Records, recordToAPI(r))
	}
	return out
}

func recordFromAPI(in *api.RecordInput) (*models.ExerciseRecord, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	return &models.ExerciseRecord{
		Date:           date,
		DistanceMeters: in.DistanceMeters,
		Duration:       in.Duration.Duration,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(api.DateLayout, s)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "date %q must look like %s", s, api.DateLayout)
	}
	return t, nil
}

// optionalDate parses s or returns nil when it is empty.
func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func userToAPI(u *models.User) api.User {
	out := api.User{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     models.RoleNames(u.Roles),
	}
	if !u.CreatedAt.IsZero() {
		out.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func usersToAPI(users []*models.User) *api.UserList {
	out := &api.UserList{Users: make([]api.User, 0, len(users))}
	for _, u := range users {
		out.Users = append(out.Users, userToAPI(u))
	}
	return out
}

func statsToAPI(stats []models.WeeklyStat) *api.WeeklyStats {
	out := &api.WeeklyStats{Weeks: make([]api.WeeklyStat, 0, len(stats))}
	for _, s := range stats {
		out.Weeks = append(out.Weeks, api.WeeklyStat{
			Week:            s.WeekNumber,
			AverageSpeed:    s.AverageSpeed,
			AverageDistance: s.AverageDistance,
		})
	}
	return out
}
