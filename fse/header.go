package fse

// WriteHeader and ReadHeader serialize (tableLog, norm[]) as a single
// bitstream, read/written LSB-first. The per-symbol field uses a variable
// width trick (nbBits-1 bits if the value falls in the low half, nbBits
// otherwise), and a two-level zero run-length escape avoids a flat
// per-symbol tax on sparse alphabets.

const zeroRunEscape = 0xFFFF

// WriteHeader serializes norm into a self-contained bitstream, including
// the 2-bit block-format id and the 4-bit tableLog field: the format id
// occupies the bottom 2 bits of the first byte, with the normalized-count
// bitstream packed into the remaining bits.
func WriteHeader(norm []int32, tableLog uint8) ([]byte, error) {
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return nil, ErrInvalidParameter
	}
	nbSymbols := len(norm)
	if nbSymbols == 0 || nbSymbols > MaxSymbols {
		return nil, ErrInvalidParameter
	}

	w := &bitWriter{}
	w.add(uint32(blockNormal), 2)
	w.add(uint32(tableLog-MinTableLog), 4)

	tableSize := int32(1) << tableLog
	remaining := tableSize + 1
	threshold := tableSize
	nbBits := uint(tableLog) + 1
	charnum := 0
	previous0 := false

	for remaining > 1 {
		if previous0 {
			start := charnum
			for charnum < nbSymbols && norm[charnum] == 0 {
				charnum++
			}
			for charnum >= start+24 {
				start += 24
				w.add(zeroRunEscape, 16)
			}
			for charnum >= start+3 {
				start += 3
				w.add(3, 2)
			}
			w.add(uint32(charnum-start), 2)
		}

		if charnum >= nbSymbols {
			return nil, ErrMalformedHeader
		}
		count := norm[charnum]
		charnum++
		max := (2*threshold - 1) - remaining
		remaining -= count
		count++
		if count >= threshold {
			count += max
		}
		width := nbBits
		if count < max {
			width--
		}
		w.add(uint32(count), width)
		previous0 = count == 1

		if remaining < 1 {
			return nil, ErrMalformedHeader
		}
		for remaining < threshold {
			nbBits--
			threshold >>= 1
		}
	}
	if charnum != nbSymbols {
		return nil, ErrMalformedHeader
	}

	w.close()
	return w.buf, nil
}

// ReadHeader parses a bitstream produced by WriteHeader, returning the
// recovered normalized counts, tableLog, and the number of whole bytes of
// data the header occupied (so the caller can locate the stream
// descriptor/payload that follows it). nbSymbols is recovered implicitly:
// the loop consumes exactly as many symbol fields as were written.
func ReadHeader(data []byte) (norm []int32, tableLog uint8, headerBytes int, err error) {
	r := newBitReader(data)
	id, ec := r.read(2)
	if ec != ecOK || id != uint32(blockNormal) {
		return nil, 0, 0, ErrMalformedHeader
	}
	tlField, ec := r.read(4)
	if ec != ecOK {
		return nil, 0, 0, ErrMalformedHeader
	}
	tableLog = uint8(tlField) + MinTableLog
	if tableLog < MinTableLog || tableLog > MaxTableLog {
		return nil, 0, 0, ErrMalformedHeader
	}

	tableSize := int32(1) << tableLog
	remaining := tableSize + 1
	threshold := tableSize
	nbBits := uint(tableLog) + 1
	charnum := 0
	previous0 := false
	norm = make([]int32, 0, MaxSymbols)

	for remaining > 1 {
		if previous0 {
			n0 := charnum
			for r.peek(16) == zeroRunEscape {
				r.advance(16)
				n0 += 24
			}
			for r.peek(2) == 3 {
				r.advance(2)
				n0 += 3
			}
			tail, ec := r.read(2)
			if ec != ecOK {
				return nil, 0, 0, ErrMalformedHeader
			}
			n0 += int(tail)
			if n0 > MaxSymbols {
				return nil, 0, 0, ErrMalformedHeader
			}
			for charnum < n0 {
				norm = append(norm, 0)
				charnum++
			}
		}

		maxVal := (2*threshold - 1) - remaining
		peeked := r.peek(nbBits)
		low := peeked & uint32(threshold-1)
		var count int32
		if int32(low) < maxVal {
			r.advance(nbBits - 1)
			count = int32(low)
		} else {
			r.advance(nbBits)
			count = int32(peeked & uint32(2*threshold-1))
			if count >= threshold {
				count -= maxVal
			}
		}
		count--
		remaining -= count
		if remaining < 1 {
			return nil, 0, 0, ErrMalformedHeader
		}
		norm = append(norm, count)
		charnum++
		previous0 = count == 0

		for remaining < threshold {
			nbBits--
			threshold >>= 1
		}
	}

	return norm, tableLog, r.bytesConsumed(), nil
}
