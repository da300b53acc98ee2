package fse

import "github.com/neal-burns/FiniteStateEntropy/internal/ints"

// dtableEntry is one decompression-table row: the symbol occupying this
// state-space slot, the number of fresh bits to read on transition out of
// it, and the base state those bits are added to.
type dtableEntry struct {
	symbol   byte
	nbBits   uint8
	newState uint16
}

// DTable is the decompression table: one row per state, indexed directly
// by the current state value.
type DTable struct {
	tableLog uint8
	entries  []dtableEntry
}

// BuildDTable assembles a DTable from a normalized count vector.
func BuildDTable(norm []int32, tableLog uint8) (*DTable, error) {
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return nil, ErrInvalidParameter
	}
	tableSize := int32(1) << tableLog
	slotSymbol, err := spreadFunc(norm, tableSize)
	if err != nil {
		return nil, err
	}

	next := append([]int32(nil), norm...)
	entries := make([]dtableEntry, tableSize)
	for i := int32(0); i < tableSize; i++ {
		sym := slotSymbol[i]
		nextState := next[sym]
		next[sym]++
		nbBits := uint8(int(tableLog) - ints.Log2Floor(uint32(nextState)))
		newState := (nextState << nbBits) - tableSize
		entries[i] = dtableEntry{symbol: sym, nbBits: nbBits, newState: uint16(newState)}
	}

	return &DTable{tableLog: tableLog, entries: entries}, nil
}
