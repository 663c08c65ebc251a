package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/Guizzs26/ballot_register/internal/model"
)

const leaderMark = "*"

// PrintStandings renders the tallies in registration order, the leader marked
// in the last column, followed by a total line.
func PrintStandings(writer io.Writer, s model.Standings) {
	if len(s.Tallies) == 0 {
		fmt.Fprintln(writer, "No candidates registered yet")
		return
	}

	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"#", "Candidate", "Votes", "Leader"})

	// Configure for Markdown table formatting
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAutoWrapText(false)

	for i, t := range s.Tallies {
		var mark string
		if t.Candidate == s.Leader {
			mark = leaderMark
		}
		table.Append([]string{
			fmt.Sprint(i + 1),
			t.Candidate,
			fmt.Sprint(t.Votes),
			mark,
		})
	}
	table.Render()

	fmt.Fprintf(writer, "%d vote(s) recorded\n", s.TotalVotes)
}
