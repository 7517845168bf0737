package ranking

// Diff merges a current-window ranking with the previous window's ranking,
// computing per-player position deltas, trend status, and coin aggregates.
// rounds and lastRounds are the number of rounds played in each window and
// feed the coin conversion. Output order follows current.
func Diff(current, previous []Entry, coins *CoinConverter, rounds, lastRounds int) []ComparedEntry {
	out := make([]ComparedEntry, 0, len(current))

	for i, cur := range current {
		j := -1
		for k, prev := range previous {
			if prev.PlayerID == cur.PlayerID {
				j = k
				break
			}
		}

		entry := ComparedEntry{
			Entry:  cur,
			Status: StatusSame,
			Coins:  coins.Coins(cur.Score, rounds),
		}

		switch {
		case j == -1:
			// New on the board: no previous rank to compare against.
			entry.PositionDiff = i + 1
			entry.LastScoreDiff = cur.Score
			entry.LastCoins = coins.Coins(0, lastRounds)
		default:
			if j > i {
				entry.Status = StatusUp
			} else if j < i {
				entry.Status = StatusDown
			}
			entry.PositionDiff = abs((j + 1) - (i + 1))
			entry.LastScore = previous[j].Score
			entry.LastPosition = j + 1
			entry.LastScoreDiff = cur.Score - previous[j].Score
			entry.LastCoins = coins.Coins(previous[j].Score, lastRounds)
		}

		out = append(out, entry)
	}

	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
