package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/joggingtracker/internal/api"
)

func printRecords(w io.Writer, recs []api.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "no records")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDISTANCE (m)\tDURATION\tSPEED (m/h)")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%.0f\t%s\t%.1f\n", r.ID, r.Date, r.DistanceMeters, r.Duration.Duration, r.Speed)
	}
	tw.Flush()
}

func printWeeks(w io.Writer, weeks []api.WeeklyStat) {
	if len(weeks) == 0 {
		fmt.Fprintln(w, "no records")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WEEK\tAVG SPEED (m/h)\tAVG DISTANCE (m)")
	for _, s := range weeks {
		fmt.Fprintf(tw, "%d\t%.1f\t%.1f\n", s.Week, s.AverageSpeed, s.AverageDistance)
	}
	tw.Flush()
}

func printUsers(w io.Writer, users []api.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "no users")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tEMAIL\tNAME\tROLES")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\n", u.ID, u.UserName, u.Email, u.FirstName, u.LastName, strings.Join(u.Roles, ","))
	}
	tw.Flush()
}
