package colour

// Scheme is the background/foreground/accent triple applied to every overlay.
type Scheme struct {
	Background RGB
	Foreground RGB
	Accent     RGB
}

// Dim is the half-way blend of background and foreground used for sub-dials
// and the minute marker on the LED ring.
func (s Scheme) Dim() RGB {
	return Lerp(0.5, s.Background, s.Foreground)
}

var schemes = []Scheme{ //nolint:gochecknoglobals // fixed table
	{MustHex("000000"), MustHex("FFFFFF"), MustHex("FF0000")},
	{MustHex("FFFFFF"), MustHex("000000"), MustHex("FF0000")},
	{MustHex("03012C"), MustHex("190E4F"), MustHex("EA638C")},
	{MustHex("002400"), MustHex("273B09"), MustHex("7B904B")},
	{MustHex("3C0000"), MustHex("774936"), MustHex("F5D0C5")},
	{MustHex("FF9B71"), MustHex("FFFD82"), MustHex("ED217C")},
}

// Schemes returns a copy of the scheme table in cycling order.
func Schemes() []Scheme {
	out := make([]Scheme, len(schemes))
	copy(out, schemes)
	return out
}

// Count is the number of schemes in the table.
func Count() int { return len(schemes) }

// At returns the scheme at index i modulo the table length. Negative
// indices wrap from the end.
func At(i int) Scheme {
	return schemes[Index(i)]
}

// Index reduces i into [0, Count()).
func Index(i int) int {
	n := len(schemes)
	return ((i % n) + n) % n
}
