// Package checkpoint decorates the fat package's structural-validation
// errors with caller information as they propagate out of NewHeader,
// readFATEntry and Walk, producing something like a stacktrace for a
// malformed or truncated FAT12/16/32 image. Each checkpoint can still be
// matched with errors.Is against the sentinel the fat package defined
// (ErrInvalidBPB, ErrShortImage, ErrFAT12Unsupported, ...) and unwrapped with
// errors.As down to whatever lower-level error (a binary.Read failure, an
// out-of-bounds cluster reference) actually triggered it.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// From annotates err with its caller's file and line. It returns nil for a
// nil err, and returns io.EOF/io.ErrUnexpectedEOF unannotated since callers
// match those by identity (see https://github.com/golang/go/issues/39155).
func From(err error) error {
	if err == io.EOF {
		return io.EOF
	}
	if err == io.ErrUnexpectedEOF {
		return io.ErrUnexpectedEOF
	}
	if err == nil {
		return nil
	}

	_, file, line, ok := runtime.Caller(1)

	return &checkpoint{
		err:  err,
		prev: nil,

		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

// Wrap annotates prev with caller information and attaches a sentinel err
// describing the broader failure category, so a caller can still match on
// the specific cause (errors.Is(result, someLowLevelErr)) or the category
// (errors.Is(result, fat.ErrInvalidBPB)). Returns nil if prev is nil.
// fat.NewHeader uses this to turn a raw decoding failure into one of its
// BPB-validation sentinels:
//
//	if h.bpb.NumFATs < 1 {
//		return nil, checkpoint.Wrap(errors.New("FAT count is 0"), ErrInvalidBPB)
//	}
//
// errors.Is(result, ErrInvalidBPB) then reports true regardless of which
// specific validation rule failed.
func Wrap(prev, err error) error {
	if prev == io.EOF {
		return io.EOF
	}
	if prev == nil {
		return nil
	}

	_, file, line, ok := runtime.Caller(1)

	return &checkpoint{
		err:  err,
		prev: prev,

		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

func (e *checkpoint) Error() string {
	if e.prev == nil {
		if e.callerOk {
			return fmt.Sprintf("%s:%d: %v", e.file, e.line, e.err)
		}
		return fmt.Sprintf("<unknown>: %v", e.err)
	}

	prevErrString := e.prev.Error()
	if _, ok := e.prev.(*checkpoint); !ok {
		prevErrString = "<unknown>: " + strings.ReplaceAll(prevErrString, "\n", "\n\t")
	}

	if e.callerOk {
		return fmt.Sprintf("%s:%d: %v\n%v", e.file, e.line, e.err, prevErrString)
	}
	return fmt.Sprintf("<unknown>: %v\n%v", e.err, prevErrString)
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return errors.As(e.err, target)
}
