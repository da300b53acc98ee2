package fse

import "github.com/neal-burns/FiniteStateEntropy/internal/ints"

// symbolTransform holds everything the encoder needs to emit one
// occurrence of a symbol: minBitsOut is a lower bound on the bits emitted;
// maxState is the threshold state above which one extra bit is required;
// deltaFindState is an additive offset locating the symbol's successor row
// in nextState.
type symbolTransform struct {
	minBitsOut     uint8
	maxState       int32
	deltaFindState int32
}

// CTable is the compression table: for every state-space slot, the
// successor state reached after emitting that slot's symbol, plus one
// symbolTransform per symbol. Kept as explicit typed slices rather than a
// single flat cast-and-offset buffer, trading a little memory density for
// types the rest of the package can use directly.
type CTable struct {
	tableLog  uint8
	nbSymbols int
	nextState []uint16
	symbolTT  []symbolTransform
}

// BuildCTable assembles a CTable from a normalized count vector.
func BuildCTable(norm []int32, tableLog uint8) (*CTable, error) {
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return nil, ErrInvalidParameter
	}
	tableSize := int32(1) << tableLog
	slotSymbol, err := spreadFunc(norm, tableSize)
	if err != nil {
		return nil, err
	}

	nbSymbols := len(norm)
	cumul := make([]int32, nbSymbols+1)
	var total int32
	for s, n := range norm {
		cumul[s] = total
		total += n
	}
	cumul[nbSymbols] = total

	pos := append([]int32(nil), cumul[:nbSymbols]...)
	nextState := make([]uint16, tableSize)
	for i := int32(0); i < tableSize; i++ {
		sym := slotSymbol[i]
		nextState[pos[sym]] = uint16(tableSize + i)
		pos[sym]++
	}

	symbolTT := make([]symbolTransform, nbSymbols)
	for s, n := range norm {
		switch {
		case n == 0:
			// never referenced: no encoder ever emits an unused symbol.
		case n == 1:
			symbolTT[s] = symbolTransform{
				minBitsOut:     tableLog,
				maxState:       2*tableSize - 1,
				deltaFindState: cumul[s] - 1,
			}
		default:
			minBitsOut := uint8(int(tableLog) - 1 - ints.Log2Floor(uint32(n-1)))
			symbolTT[s] = symbolTransform{
				minBitsOut:     minBitsOut,
				maxState:       (n << (minBitsOut + 1)) - 1,
				deltaFindState: cumul[s] - n,
			}
		}
	}

	return &CTable{
		tableLog:  tableLog,
		nbSymbols: nbSymbols,
		nextState: nextState,
		symbolTT:  symbolTT,
	}, nil
}
