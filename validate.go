package lexflow

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// InputError reports where in the input validation failed.
type InputError struct {
	// Offset is the byte offset of the offending rune.
	Offset int
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%v at byte %d", e.Err, e.Offset)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ValidateInput returns an error if the input is not valid UTF-8 or appears
// binary. The error wraps ErrInvalidUTF8 or ErrBinaryInput.
func ValidateInput(src []byte) error {
	var v validator
	rest, err := v.addBytes(src)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return &InputError{Offset: v.offset, Err: ErrInvalidUTF8}
	}
	return nil
}

// validator checks input incrementally. Chunks may split a rune; addBytes
// returns the incomplete tail so the caller can prepend it to the next chunk.
type validator struct {
	offset  int
	total   int
	control int
}

func (v *validator) reset() {
	v.offset = 0
	v.total = 0
	v.control = 0
}

func (v *validator) addBytes(b []byte) ([]byte, error) {
	i := 0
	for i < len(b) {
		if !utf8.FullRune(b[i:]) {
			break
		}
		r, size := utf8.DecodeRune(b[i:])
		if err := v.addRune(r, size); err != nil {
			return nil, &InputError{Offset: v.offset, Err: err}
		}
		v.offset += size
		i += size
	}
	return b[i:], nil
}

func (v *validator) addRune(r rune, size int) error {
	if r == utf8.RuneError && size == 1 {
		return ErrInvalidUTF8
	}
	if r == 0 {
		return ErrBinaryInput
	}
	v.total += size
	if isControlRune(r) {
		v.control++
		if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
			return ErrBinaryInput
		}
	}
	return nil
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	if r < 0x20 || r == 0x7F {
		return true
	}
	return false
}

// sanitizeBytes copies the valid, non-control runes of src into dst and
// returns them along with any incomplete trailing rune.
func sanitizeBytes(dst []byte, src []byte) ([]byte, []byte) {
	di := 0
	i := 0
	for i < len(src) {
		if !utf8.FullRune(src[i:]) {
			break
		}
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			i++
			continue
		}
		if isControlRune(r) {
			i += size
			continue
		}
		copy(dst[di:], src[i:i+size])
		di += size
		i += size
	}
	return dst[:di], src[i:]
}
