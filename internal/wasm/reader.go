package wasm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrMalformed is returned when the binary framing is invalid or truncated.
var ErrMalformed = errors.New("wasm: malformed binary")

// HeaderSize is the size of the magic number plus version field.
const HeaderSize = 8

// Section ids used by this package.
const (
	// SectionCustom is the custom section id in both core modules and components.
	SectionCustom byte = 0
	// SectionCode is the core module code section id.
	SectionCode byte = 10
	// SectionCoreModule is the component section id holding a nested core module.
	SectionCoreModule byte = 1
	// SectionComponent is the component section id holding a nested component.
	SectionComponent byte = 4
)

var magic = []byte{0x00, 'a', 's', 'm'}

// ModuleHeader is the header of a version 1 core module.
var ModuleHeader = [HeaderSize]byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}

// ComponentHeader is the header of a component (layer 1).
var ComponentHeader = [HeaderSize]byte{0x00, 'a', 's', 'm', 0x0d, 0x00, 0x01, 0x00}

// Encoding identifies the kind of binary a header introduces.
type Encoding uint8

const (
	EncodingModule Encoding = iota
	EncodingComponent
)

// String returns the human-readable name of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingModule:
		return "module"
	case EncodingComponent:
		return "component"
	default:
		return "unknown"
	}
}

// ParseHeader validates the 8-byte header at the start of b.
func ParseHeader(b []byte) (Encoding, error) {
	if len(b) < HeaderSize {
		return 0, fmt.Errorf("%w: truncated header", ErrMalformed)
	}
	if !bytes.Equal(b[:4], magic) {
		return 0, fmt.Errorf("%w: bad magic number", ErrMalformed)
	}
	version := binary.LittleEndian.Uint16(b[4:6])
	layer := binary.LittleEndian.Uint16(b[6:8])
	switch layer {
	case 0:
		if version != 1 {
			return 0, fmt.Errorf("%w: unsupported module version %d", ErrMalformed, version)
		}
		return EncodingModule, nil
	case 1:
		return EncodingComponent, nil
	default:
		return 0, fmt.Errorf("%w: unknown layer %d", ErrMalformed, layer)
	}
}

// Section is the raw framing of one section.
type Section struct {
	// ID is the section id byte.
	ID byte
	// Start is the absolute offset of the id byte.
	Start int
	// PayloadStart is the absolute offset of the first payload byte.
	PayloadStart int
	// End is the absolute offset one past the last payload byte.
	End int
	// Payload aliases the section contents.
	Payload []byte
}

// Custom is a decoded custom section.
type Custom struct {
	Name string
	// Data aliases the bytes following the name.
	Data []byte
	// DataOffset is the absolute offset of Data within the buffer.
	DataOffset int
}

// Custom decodes the name of a custom section.
func (s Section) Custom() (Custom, error) {
	if s.ID != SectionCustom {
		return Custom{}, fmt.Errorf("%w: section %d is not a custom section", ErrMalformed, s.ID)
	}
	n, consumed, err := ReadUint32(s.Payload)
	if err != nil {
		return Custom{}, err
	}
	nameEnd := uint64(consumed) + uint64(n)
	if nameEnd > uint64(len(s.Payload)) {
		return Custom{}, fmt.Errorf("%w: custom section name exceeds section", ErrMalformed)
	}
	name := s.Payload[consumed:nameEnd]
	if !utf8.Valid(name) {
		return Custom{}, fmt.Errorf("%w: custom section name is not UTF-8", ErrMalformed)
	}
	return Custom{
		Name:       string(name),
		Data:       s.Payload[nameEnd:],
		DataOffset: s.PayloadStart + int(nameEnd),
	}, nil
}

// EventKind tags an Event.
type EventKind uint8

const (
	// EventHeader starts a module or component. Nested is set when it is
	// introduced by a section of the enclosing component.
	EventHeader EventKind = iota + 1
	// EventSection is a leaf section.
	EventSection
	// EventEnd closes the module or component opened by the matching header.
	EventEnd
)

// Event is one step of the section stream.
type Event struct {
	Kind     EventKind
	Encoding Encoding
	// Depth is 0 for the outermost binary.
	Depth int
	// Nested is true for headers and ends of nested binaries.
	Nested bool
	// Header aliases the 8 header bytes (EventHeader only).
	Header []byte
	// Section is the leaf section for EventSection, or the enclosing
	// section that frames a nested binary for nested EventHeader/EventEnd.
	Section Section
}

type frame struct {
	enc     Encoding
	end     int
	nested  bool
	section Section
}

// Reader walks a binary as a flat sequence of events.
type Reader struct {
	buf   []byte
	off   int
	stack []frame
	began bool
	done  bool
}

// NewReader returns a reader positioned at the header of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Next returns the next event. After the outermost EventEnd it returns io.EOF.
//
// Sections that are not nested binaries, including code sections, are
// returned without their payload being examined.
func (r *Reader) Next() (Event, error) {
	if r.done {
		return Event{}, io.EOF
	}
	if !r.began {
		r.began = true
		return r.enter(frame{end: len(r.buf)}, 0)
	}

	top := r.stack[len(r.stack)-1]
	if r.off == top.end {
		r.stack = r.stack[:len(r.stack)-1]
		if len(r.stack) == 0 {
			r.done = true
		}
		return Event{
			Kind:     EventEnd,
			Encoding: top.enc,
			Depth:    len(r.stack),
			Nested:   top.nested,
			Section:  top.section,
		}, nil
	}

	sec, err := r.readSection(top.end)
	if err != nil {
		return Event{}, err
	}
	if top.enc == EncodingComponent && (sec.ID == SectionCoreModule || sec.ID == SectionComponent) {
		return r.enter(frame{end: sec.End, nested: true, section: sec}, sec.PayloadStart)
	}
	r.off = sec.End
	return Event{
		Kind:     EventSection,
		Encoding: top.enc,
		Depth:    len(r.stack) - 1,
		Section:  sec,
	}, nil
}

// enter reads the header at off and pushes f.
func (r *Reader) enter(f frame, off int) (Event, error) {
	if f.end-off < HeaderSize {
		return Event{}, fmt.Errorf("%w: truncated header at offset %d", ErrMalformed, off)
	}
	enc, err := ParseHeader(r.buf[off:f.end])
	if err != nil {
		return Event{}, fmt.Errorf("at offset %d: %w", off, err)
	}
	if f.nested {
		want := EncodingModule
		if f.section.ID == SectionComponent {
			want = EncodingComponent
		}
		if enc != want {
			return Event{}, fmt.Errorf("%w: section %d at offset %d holds a %s", ErrMalformed, f.section.ID, f.section.Start, enc)
		}
	}
	f.enc = enc
	r.stack = append(r.stack, f)
	r.off = off + HeaderSize
	return Event{
		Kind:     EventHeader,
		Encoding: enc,
		Depth:    len(r.stack) - 1,
		Nested:   f.nested,
		Header:   r.buf[off : off+HeaderSize],
		Section:  f.section,
	}, nil
}

// readSection reads the id and size of the section at r.off without
// advancing. The section must end at or before limit.
func (r *Reader) readSection(limit int) (Section, error) {
	start := r.off
	id := r.buf[start]
	size, n, err := ReadUint32(r.buf[start+1 : limit])
	if err != nil {
		return Section{}, fmt.Errorf("section at offset %d: %w", start, err)
	}
	payloadStart := start + 1 + n
	if uint64(size) > uint64(limit-payloadStart) {
		return Section{}, fmt.Errorf("%w: section %d at offset %d is truncated", ErrMalformed, id, start)
	}
	end := payloadStart + int(size)
	return Section{
		ID:           id,
		Start:        start,
		PayloadStart: payloadStart,
		End:          end,
		Payload:      r.buf[payloadStart:end],
	}, nil
}
