package charset

import "sort"

const (
	Numeric      = "0123456789"
	Alpha        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Alphanumeric = " ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	Punctuation  = " .,:;!?'\"-+/&@#%()"
	Departures   = " ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.:-/"

	DefaultName = "numeric"
)

var presets = map[string]string{
	"numeric":      Numeric,
	"alpha":        Alpha,
	"alphanumeric": Alphanumeric,
	"punctuation":  Punctuation,
	"departures":   Departures,
}

// Lookup returns the named preset set, or nil if no preset has that name.
func Lookup(name string) *Set {
	symbols, ok := presets[name]
	if !ok {
		return nil
	}
	return MustFromString(symbols)
}

func Default() *Set {
	return MustFromString(Numeric)
}

func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
