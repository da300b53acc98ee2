package fse

import (
	"sort"

	"github.com/neal-burns/FiniteStateEntropy/internal/ints"
)

// ChooseTableLog picks a tableLog in [MinTableLog, MaxTableLog] that is
// large enough to give every symbol a representable slot and, unless that
// lower bound forces it higher, no larger than the precision the data
// actually carries (ceil(log2(total))). A requested of 0 means
// "pick the largest tableLog the data justifies"; nbSymbols == 1 returns
// 0, since a single-symbol block needs no table at all.
func ChooseTableLog(total uint32, nbSymbols int, requested uint8) (uint8, error) {
	if nbSymbols <= 0 || nbSymbols > MaxSymbols {
		return 0, ErrInvalidParameter
	}
	if nbSymbols == 1 {
		return 0, nil
	}
	if total == 0 {
		return 0, ErrInvalidParameter
	}

	minLog := MinTableLog
	if needed := ints.Log2Ceil(uint32(nbSymbols)); needed > minLog {
		minLog = needed
	}
	maxLog := ints.Log2Ceil(total)
	if maxLog > MaxTableLog {
		maxLog = MaxTableLog
	}
	if maxLog < minLog {
		maxLog = minLog
	}

	tableLog := maxLog
	if requested != 0 {
		tableLog = int(requested)
		if tableLog < minLog {
			tableLog = minLog
		}
		if tableLog > maxLog {
			tableLog = maxLog
		}
	}
	return uint8(tableLog), nil
}

// NormalizeCount scales raw symbol counts down to sum to exactly
// 1<<tableLog, using largest-remainder (Hamilton) apportionment: every
// symbol's exact share count[s]*tableSize/total is floored, every nonzero
// symbol is guaranteed at least one slot, and the resulting shortfall or
// surplus against tableSize is settled by walking symbols in order of
// their fractional remainder.
func NormalizeCount(count []uint32, total uint32, nbSymbols int, tableLog uint8) ([]int32, error) {
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return nil, ErrInvalidParameter
	}
	if nbSymbols <= 0 || nbSymbols > MaxSymbols || total == 0 {
		return nil, ErrInvalidParameter
	}

	tableSize := uint32(1) << tableLog
	norm := make([]int32, nbSymbols)
	remainder := make([]uint64, nbSymbols)
	used := make([]int, 0, nbSymbols)
	var sum uint32

	for s := 0; s < nbSymbols; s++ {
		if count[s] == 0 {
			continue
		}
		used = append(used, s)
		numerator := uint64(count[s]) * uint64(tableSize)
		floorVal := numerator / uint64(total)
		remainder[s] = numerator % uint64(total)
		if floorVal == 0 {
			floorVal = 1
		}
		norm[s] = int32(floorVal)
		sum += uint32(floorVal)
	}
	if len(used) == 0 {
		return nil, ErrInvalidParameter
	}

	diff := int64(tableSize) - int64(sum)
	switch {
	case diff > 0:
		order := append([]int(nil), used...)
		sort.Slice(order, func(i, j int) bool {
			si, sj := order[i], order[j]
			if remainder[si] != remainder[sj] {
				return remainder[si] > remainder[sj]
			}
			return si < sj
		})
		for i := 0; diff > 0; i++ {
			norm[order[i%len(order)]]++
			diff--
		}
	case diff < 0:
		order := append([]int(nil), used...)
		sort.Slice(order, func(i, j int) bool {
			si, sj := order[i], order[j]
			if remainder[si] != remainder[sj] {
				return remainder[si] < remainder[sj]
			}
			return si < sj
		})
		need := -diff
		for need > 0 {
			progressed := false
			for _, s := range order {
				if norm[s] > 1 {
					norm[s]--
					need--
					progressed = true
					if need == 0 {
						break
					}
				}
			}
			if !progressed {
				// tableSize is smaller than the number of used symbols:
				// infeasible, every used symbol already floored to 1.
				return nil, ErrInvalidParameter
			}
		}
	}

	return norm, nil
}
