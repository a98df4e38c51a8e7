package scoring

import (
	"testing"

	"ambassador-board/internal/models"

	"github.com/stretchr/testify/assert"
)

func row(name string, total float64) Row {
	return Row{
		TelegramName:   name,
		ScoreBreakdown: models.ScoreBreakdown{GrandTotalScore: total},
	}
}

func TestAssignRanks(t *testing.T) {
	t.Run("orders by total descending then name ascending", func(t *testing.T) {
		rows := []Row{row("Carla", 10), row("Alice", 30), row("Bruno", 20)}
		AssignRanks(rows)

		assert.Equal(t, "Alice", rows[0].TelegramName)
		assert.Equal(t, "Bruno", rows[1].TelegramName)
		assert.Equal(t, "Carla", rows[2].TelegramName)
		assert.Equal(t, []int{1, 2, 3}, []int{rows[0].Rank, rows[1].Rank, rows[2].Rank})
	})

	t.Run("equal totals share a rank and the next rank skips", func(t *testing.T) {
		// Both 39-point ambassadors hold rank 1; the next distinct total
		// is rank 3, not rank 2.
		rows := []Row{row("Zed", 39), row("Aaron", 39), row("Quinn", 10)}
		AssignRanks(rows)

		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, 1, rows[1].Rank)
		assert.Equal(t, 3, rows[2].Rank)
	})

	t.Run("name orders rows within a tie group without splitting it", func(t *testing.T) {
		rows := []Row{row("Zed", 50), row("Aaron", 50)}
		AssignRanks(rows)

		assert.Equal(t, "Aaron", rows[0].TelegramName)
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, "Zed", rows[1].TelegramName)
		assert.Equal(t, 1, rows[1].Rank)
	})

	t.Run("idempotent on already ranked rows", func(t *testing.T) {
		rows := []Row{row("Aaron", 50), row("Bruno", 50), row("Carla", 50), row("Zed", 10)}
		AssignRanks(rows)
		assert.Equal(t, []int{1, 1, 1, 4},
			[]int{rows[0].Rank, rows[1].Rank, rows[2].Rank, rows[3].Rank})

		before := make([]Row, len(rows))
		copy(before, rows)

		AssignRanks(rows)
		assert.Equal(t, before, rows)
	})

	t.Run("empty and single row inputs", func(t *testing.T) {
		AssignRanks(nil)

		rows := []Row{row("Solo", 0)}
		AssignRanks(rows)
		assert.Equal(t, 1, rows[0].Rank)
	})
}
