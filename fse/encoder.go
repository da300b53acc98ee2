package fse

import "encoding/binary"

// EncodeStream runs the single-state stream codec: the symbol sequence is
// traversed in reverse, and each symbol's low bits of the current state
// are appended to a forward bit container before the state transitions.
// The final state is written in tableLog bits, and a stream descriptor is
// prefixed ahead of the payload.
//
// This is the default path fse.Compress uses; see EncodeStreamParallel for
// the optional two-state variant.
func EncodeStream(ct *CTable, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrInvalidParameter
	}
	w := &bitWriter{}
	state := int32(1) << ct.tableLog

	for i := len(src) - 1; i >= 0; i-- {
		tt := ct.symbolTT[src[i]]
		nbBits := uint(tt.minBitsOut)
		if state > tt.maxState {
			nbBits++
		}
		w.add(uint32(state), nbBits)
		idx := (state >> nbBits) + tt.deltaFindState
		state = int32(ct.nextState[idx])
	}
	w.add(uint32(state), uint(ct.tableLog))

	finalBitPos := w.close()
	payload := w.buf
	if len(payload) > maxPayloadLen {
		return nil, ErrInvalidParameter
	}

	out := make([]byte, descriptorSize+len(payload))
	binary.LittleEndian.PutUint32(out, packDescriptor(finalBitPos, len(payload), 1))
	copy(out[descriptorSize:], payload)
	return out, nil
}

// EncodeStreamParallel runs an optional two-state variant of the stream
// codec: two states advance on alternating symbols, sharing one CTable and
// one bit container, with a catch-up preamble absorbing a leading symbol
// onto a single state when the body has odd length. Running two
// independent state updates side by side gives a superscalar CPU more
// independent work to overlap than the single-state path offers.
//
// The very last source symbol is taken out of the entropy-coded path
// entirely and stored as one literal trailing byte rather than folded
// arithmetically into a state field, keeping it trivially invertible on
// decode. It still relies on nbSymbols <= tableSize, guaranteed by
// construction, for the rest of the table to be well-formed.
//
// Not used by fse.Compress by default; callers that want it ask for it
// explicitly via fse.CompressParallel.
func EncodeStreamParallel(ct *CTable, src []byte) ([]byte, error) {
	n := len(src)
	if n < 2 {
		return nil, ErrInvalidParameter
	}

	w := &bitWriter{}
	tableSize := int32(1) << ct.tableLog

	last := src[n-1]
	body := src[:n-1]

	stateA := tableSize
	stateB := tableSize
	i := len(body) - 1
	if i >= 0 && (len(body)%2) == 1 {
		tt := ct.symbolTT[body[i]]
		nbBits := uint(tt.minBitsOut)
		if stateA > tt.maxState {
			nbBits++
		}
		w.add(uint32(stateA), nbBits)
		stateA = int32(ct.nextState[(stateA>>nbBits)+tt.deltaFindState])
		i--
	}

	for i >= 1 {
		symB := body[i]
		symA := body[i-1]
		ttB := ct.symbolTT[symB]
		nbBitsB := uint(ttB.minBitsOut)
		if stateB > ttB.maxState {
			nbBitsB++
		}
		w.add(uint32(stateB), nbBitsB)
		stateB = int32(ct.nextState[(stateB>>nbBitsB)+ttB.deltaFindState])

		ttA := ct.symbolTT[symA]
		nbBitsA := uint(ttA.minBitsOut)
		if stateA > ttA.maxState {
			nbBitsA++
		}
		w.add(uint32(stateA), nbBitsA)
		stateA = int32(ct.nextState[(stateA>>nbBitsA)+ttA.deltaFindState])

		i -= 2
	}

	w.add(uint32(stateA), uint(ct.tableLog))
	w.add(uint32(stateB), uint(ct.tableLog))

	finalBitPos := w.close()
	payload := append(w.buf, last)
	if len(payload) > maxPayloadLen {
		return nil, ErrInvalidParameter
	}

	out := make([]byte, descriptorSize+len(payload))
	binary.LittleEndian.PutUint32(out, packDescriptor(finalBitPos, len(payload), 2))
	copy(out[descriptorSize:], payload)
	return out, nil
}
