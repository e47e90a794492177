package options

import (
	"errors"
	"fmt"
	"strings"
)

// ClassOptions selects which value-semantics methods are generated for a type.
// Flags combine independently.
type ClassOptions int

const (
	DisableEquals        ClassOptions = 1 << iota // no Equal method
	DisableGetHashCode                            // no Hash method
	EnableOperatorEquals                          // nil-safe EqualT(a, b *T) helper, Go's stand-in for ==
	DisableToString                               // no String method
	DisableWith                                   // no TWith struct and With method

	All  ClassOptions = (1 << iota) - 1 // all options combined
	None ClassOptions = 0               // generate everything except the operator helper
)

// ErrUnknownOption is returned by Parse for names that are not options.
var ErrUnknownOption = errors.New("unknown class option")

var names = []struct {
	opt  ClassOptions
	name string
}{
	{DisableEquals, "DisableEquals"},
	{DisableGetHashCode, "DisableGetHashCode"},
	{EnableOperatorEquals, "EnableOperatorEquals"},
	{DisableToString, "DisableToString"},
	{DisableWith, "DisableWith"},
}

// Names returns the option names in flag order.
func Names() []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, n.name)
	}

	return out
}

// Has reports whether every flag in opt is set.
func (o ClassOptions) Has(opt ClassOptions) bool {
	return o&opt == opt
}

// Equals reports whether an Equal method is emitted.
func (o ClassOptions) Equals() bool { return !o.Has(DisableEquals) }

// Hash reports whether a Hash method is emitted.
func (o ClassOptions) Hash() bool { return !o.Has(DisableGetHashCode) }

// OperatorEquals reports whether the nil-safe EqualT function is emitted.
func (o ClassOptions) OperatorEquals() bool { return o.Has(EnableOperatorEquals) }

// ToString reports whether a String method is emitted.
func (o ClassOptions) ToString() bool { return !o.Has(DisableToString) }

// With reports whether the TWith struct and With method are emitted.
func (o ClassOptions) With() bool { return !o.Has(DisableWith) }

// String joins the set flag names with "|", or returns "None".
func (o ClassOptions) String() string {
	if o == None {
		return "None"
	}

	var parts []string
	for _, n := range names {
		if o.Has(n.opt) {
			parts = append(parts, n.name)
		}
	}

	if rest := o &^ All; rest != 0 {
		parts = append(parts, fmt.Sprintf("ClassOptions(%d)", int(rest)))
	}

	return strings.Join(parts, "|")
}

// Parse combines option names. Names are case-insensitive and may also be
// separated by "|" or ",". "None" and empty names are ignored.
func Parse(values ...string) (ClassOptions, error) {
	var out ClassOptions

	for _, v := range values {
		for _, field := range strings.FieldsFunc(v, isSeparator) {
			opt, ok := lookup(field)
			if !ok {
				return 0, fmt.Errorf("%w: %q", ErrUnknownOption, field)
			}

			out |= opt
		}
	}

	return out, nil
}

func lookup(name string) (ClassOptions, bool) {
	if strings.EqualFold(name, "None") {
		return None, true
	}

	for _, n := range names {
		if strings.EqualFold(n.name, name) {
			return n.opt, true
		}
	}

	return 0, false
}

func isSeparator(r rune) bool {
	return r == '|' || r == ',' || r == ' ' || r == '\t'
}
