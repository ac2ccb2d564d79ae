package wasset

import (
	"errors"
	"io"

	"github.com/meigma/wasset/internal/wasm"
)

// pending is an output buffer suspended while a nested binary is rebuilt.
type pending struct {
	out []byte
	id  byte
}

// Strip returns a copy of module with every manifest and data section
// removed. All other sections are copied byte for byte in their original
// order. Nested core modules and components are rebuilt the same way and
// re-framed with their original section id; stripping a stripped module
// returns identical bytes.
func Strip(module []byte) ([]byte, error) {
	var (
		out   []byte
		stack []pending
	)

	r := wasm.NewReader(module)
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, deserializeError(err)
		}

		switch ev.Kind {
		case wasm.EventHeader:
			if ev.Nested {
				stack = append(stack, pending{out: out, id: ev.Section.ID})
				out = nil
			}
			out = append(out, ev.Header...)

		case wasm.EventSection:
			if ev.Section.ID == wasm.SectionCustom {
				custom, err := ev.Section.Custom()
				if err != nil {
					return nil, deserializeError(err)
				}
				if isAssetSection(custom.Name) {
					continue
				}
			}
			out = append(out, module[ev.Section.Start:ev.Section.End]...)

		case wasm.EventEnd:
			if len(stack) == 0 {
				return out, nil
			}
			parent := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			framed, err := wasm.AppendSection(parent.out, parent.id, out)
			if err != nil {
				return nil, deserializeError(err)
			}
			out = framed
		}
	}
}
