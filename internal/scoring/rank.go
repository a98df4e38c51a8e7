package scoring

import (
	"sort"
)

// AssignRanks sorts rows by grand total descending, telegram name ascending,
// and stamps competition ranks in place: rows with the same grand total share
// a rank, and the rank after a tied group skips by the size of the group. The
// name only orders rows within a tie group, it never splits one. Calling it
// again on the same rows is a no-op.
func AssignRanks(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].GrandTotalScore != rows[j].GrandTotalScore {
			return rows[i].GrandTotalScore > rows[j].GrandTotalScore
		}
		return rows[i].TelegramName < rows[j].TelegramName
	})

	for i := range rows {
		if i > 0 && rows[i].GrandTotalScore == rows[i-1].GrandTotalScore {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}
}
