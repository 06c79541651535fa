package objgen

import "errors"

var (
	// ErrNilIO indicates a nil io.Reader or io.Writer.
	ErrNilIO = errors.New("objgen: nil reader or writer")

	// ErrSizeTooSmall indicates a read buffer below the bufio minimum.
	ErrSizeTooSmall = errors.New("objgen: read buffer smaller than 16 bytes")

	// ErrAlreadyBuffered indicates a bufio source or sink smaller than the requested size.
	ErrAlreadyBuffered = errors.New("objgen: reader or writer is already buffered")

	// ErrInvalidSeek indicates a seek outside the data.
	ErrInvalidSeek = errors.New("objgen: seek out of range")

	// ErrInvalidWhence indicates an unknown whence passed to Seek.
	ErrInvalidWhence = errors.New("objgen: invalid whence")

	// ErrTrailingData is returned by Unmarshal when non-zero bytes are found
	// after the end of the object.
	ErrTrailingData = errors.New("objgen: non-zero trailing data found after decoding")

	// ErrTruncatedData indicates that the source ended before all expected bytes were read.
	ErrTruncatedData = errors.New("objgen: truncated data")

	// ErrNilObject is returned when a nil Object is handed to a Load/Save entry point.
	ErrNilObject = errors.New("objgen: nil object")

	// ErrSizeOverflow indicates a variable-length field longer than a dynamic size can describe.
	ErrSizeOverflow = errors.New("objgen: dynamic size exceeds 65535")

	// ErrTooManySizes indicates a pass produced more dynamic sizes than the header can count.
	ErrTooManySizes = errors.New("objgen: too many dynamic sizes")

	// ErrSizeListUnderflow indicates a Load asked for more dynamic sizes than the Save produced.
	ErrSizeListUnderflow = errors.New("objgen: dynamic size list underflow")

	// ErrSizeListOverflow indicates a Load finished with dynamic sizes left unconsumed.
	ErrSizeListOverflow = errors.New("objgen: dynamic size list not fully consumed")

	// ErrSizeCountMismatch indicates a header announcing fewer dynamic sizes than the object needs.
	ErrSizeCountMismatch = errors.New("objgen: dynamic size count below object minimum")

	// ErrInvalidPresence indicates a reference marker that is neither absent nor present.
	ErrInvalidPresence = errors.New("objgen: invalid reference presence marker")

	// ErrMissingMember is returned when a mandatory XML member element is absent.
	ErrMissingMember = errors.New("objgen: missing mandatory xml member")

	// ErrInvalidMember is returned when an XML member's text cannot be parsed
	// or holds characters XML cannot represent.
	ErrInvalidMember = errors.New("objgen: invalid xml member value")

	// ErrPacketOverflow indicates a write past MaxPacketSize.
	ErrPacketOverflow = errors.New("objgen: packet overflow")

	// ErrPacketTooLarge indicates a framed packet announcing more than MaxPacketSize bytes.
	ErrPacketTooLarge = errors.New("objgen: packet too large")
)
