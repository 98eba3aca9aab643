package slic

import (
	"errors"
	"fmt"
	"io"

	"github.com/cocosip/go-slic/slic/stream"
)

// Status is the result code of a session call.
type Status int

const (
	// StatusSuccess means the call consumed or produced data and more work remains
	StatusSuccess Status = iota
	// StatusDone means every pixel of the image has been processed
	StatusDone
	StatusInvalidParam
	StatusBadFile
	StatusDecodeError
	StatusIOError
	StatusEncodeOverflow
)

var statusNames = [...]string{
	StatusSuccess:        "SUCCESS",
	StatusDone:           "DONE",
	StatusInvalidParam:   "INVALID_PARAM",
	StatusBadFile:        "BAD_FILE",
	StatusDecodeError:    "DECODE_ERROR",
	StatusIOError:        "IO_ERROR",
	StatusEncodeOverflow: "ENCODE_OVERFLOW",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

var (
	// ErrInvalidParam is returned for bad session parameters and for caller misuse
	ErrInvalidParam = errors.New("slic: invalid parameter")

	// ErrBadFile is returned when the stream header is not a SLIC header
	ErrBadFile = errors.New("slic: not a SLIC stream")

	// ErrDecode is returned for malformed or truncated chunk data
	ErrDecode = errors.New("slic: malformed stream")

	// ErrIO is returned when the backing store fails
	ErrIO = errors.New("slic: i/o error")

	// ErrEncodeOverflow is returned when a fixed-size output area is full
	ErrEncodeOverflow = errors.New("slic: output buffer full")
)

// StatusOf maps an error returned by this package to its status code.
// A nil error is StatusSuccess.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ErrInvalidParam):
		return StatusInvalidParam
	case errors.Is(err, ErrBadFile):
		return StatusBadFile
	case errors.Is(err, ErrDecode):
		return StatusDecodeError
	case errors.Is(err, ErrEncodeOverflow):
		return StatusEncodeOverflow
	default:
		return StatusIOError
	}
}

// writeError classifies a failure of the output path.
func writeError(err error) error {
	if errors.Is(err, stream.ErrOverflow) {
		return fmt.Errorf("%w: %w", ErrEncodeOverflow, err)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// readError classifies a failure of the input path. Running out of data
// inside a stream means the stream is truncated.
func readError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated stream", ErrDecode)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}
