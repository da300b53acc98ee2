package fse

import "encoding/binary"

// DecodeStream is the single-state decode counterpart to EncodeStream: the
// descriptor is read first, then a backwardBitReader consumes the payload
// from its logical tail toward the front, recovering symbols in their
// original forward order.
func DecodeStream(dt *DTable, src []byte, outputLen int) ([]byte, error) {
	if outputLen <= 0 {
		return nil, ErrInvalidParameter
	}
	if len(src) < descriptorSize {
		return nil, ErrCorruptStream
	}
	desc := binary.LittleEndian.Uint32(src)
	finalBitPos, payloadLen, nbStates := unpackDescriptor(desc)
	if nbStates != 1 {
		return nil, ErrCorruptStream
	}
	payload := src[descriptorSize:]
	if len(payload) < payloadLen {
		return nil, ErrCorruptStream
	}
	payload = payload[:payloadLen]

	r := newBackwardBitReader(payload, finalBitPos)
	tableSize := int32(1) << dt.tableLog

	stateBits, ec := r.read(uint(dt.tableLog))
	if ec != ecOK {
		return nil, ErrCorruptStream
	}
	state := int32(stateBits)
	if state < 0 || state >= tableSize {
		return nil, ErrCorruptStream
	}

	out := make([]byte, outputLen)
	for i := 0; i < outputLen; i++ {
		e := dt.entries[state]
		out[i] = e.symbol
		rest, ec := r.read(uint(e.nbBits))
		if ec != ecOK {
			return nil, ErrCorruptStream
		}
		state = int32(e.newState) + int32(rest)
	}

	if !r.exhausted() {
		return nil, ErrCorruptStream
	}
	return out, nil
}

// DecodeStreamParallel is the two-state decode counterpart to
// EncodeStreamParallel: the literal trailing byte holding the last source
// symbol is peeled off first, before constructing the backward bit reader
// over the remaining entropy-coded payload.
func DecodeStreamParallel(dt *DTable, src []byte, outputLen int) ([]byte, error) {
	if outputLen < 2 {
		return nil, ErrInvalidParameter
	}
	if len(src) < descriptorSize {
		return nil, ErrCorruptStream
	}
	desc := binary.LittleEndian.Uint32(src)
	finalBitPos, payloadLen, nbStates := unpackDescriptor(desc)
	if nbStates != 2 {
		return nil, ErrCorruptStream
	}
	full := src[descriptorSize:]
	if len(full) < payloadLen || payloadLen < 1 {
		return nil, ErrCorruptStream
	}
	full = full[:payloadLen]
	last := full[len(full)-1]
	payload := full[:len(full)-1]

	r := newBackwardBitReader(payload, finalBitPos)
	tableSize := int32(1) << dt.tableLog

	bBits, ec := r.read(uint(dt.tableLog))
	if ec != ecOK {
		return nil, ErrCorruptStream
	}
	aBits, ec := r.read(uint(dt.tableLog))
	if ec != ecOK {
		return nil, ErrCorruptStream
	}
	stateB := int32(bBits)
	stateA := int32(aBits)
	if stateA < 0 || stateA >= tableSize || stateB < 0 || stateB >= tableSize {
		return nil, ErrCorruptStream
	}

	bodyLen := outputLen - 1
	out := make([]byte, outputLen)
	out[bodyLen] = last

	// Pairs are read in the exact reverse of the order EncodeStreamParallel
	// wrote them, recovering body[0], body[1], ... in forward order; the
	// catch-up preamble (present only when bodyLen is odd) was written
	// before any pair and so must be decoded last, from whatever stateA
	// value the pair loop leaves behind.
	hasPreamble := bodyLen%2 == 1
	pairsCount := bodyLen
	if hasPreamble {
		pairsCount--
	}

	pos := 0
	for pos < pairsCount {
		eA := dt.entries[stateA]
		out[pos] = eA.symbol
		pos++
		restA, ec := r.read(uint(eA.nbBits))
		if ec != ecOK {
			return nil, ErrCorruptStream
		}
		stateA = int32(eA.newState) + int32(restA)

		eB := dt.entries[stateB]
		out[pos] = eB.symbol
		pos++
		restB, ec := r.read(uint(eB.nbBits))
		if ec != ecOK {
			return nil, ErrCorruptStream
		}
		stateB = int32(eB.newState) + int32(restB)
	}

	if hasPreamble {
		e := dt.entries[stateA]
		out[pos] = e.symbol
		if _, ec := r.read(uint(e.nbBits)); ec != ecOK {
			return nil, ErrCorruptStream
		}
	}

	if !r.exhausted() {
		return nil, ErrCorruptStream
	}
	return out, nil
}
