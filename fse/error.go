package fse

import "errors"

type errorCode uint32

const (
	ecOK errorCode = iota
	ecInvalidParameter
	ecMalformedHeader
	ecCorruptStream
	ecOutputOverrun
	ecLastCode
)

var errs = [ecLastCode]error{
	ecOK:               nil,
	ecInvalidParameter: errors.New("fse: invalid parameter"),
	ecMalformedHeader:  errors.New("fse: malformed header"),
	ecCorruptStream:    errors.New("fse: corrupt stream"),
	ecOutputOverrun:    errors.New("fse: output would overrun destination capacity"),
}

func (e errorCode) err() error {
	return errs[e]
}

// Sentinel errors returned across the public API boundary. Callers should
// compare with errors.Is rather than switching on the unexported errorCode.
var (
	ErrInvalidParameter = errs[ecInvalidParameter]
	ErrMalformedHeader  = errs[ecMalformedHeader]
	ErrCorruptStream    = errs[ecCorruptStream]
	ErrOutputOverrun    = errs[ecOutputOverrun]
)
