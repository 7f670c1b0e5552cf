package theme

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	themeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[:;{}]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(themeLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

// File is the root AST node for a theme definition file.
type File struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"Newline* 'theme' @Ident"`
	Entries []*Entry       `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Entry is one statement inside a theme block.
type Entry struct {
	Font   *FontDecl  `parser:"  @@"`
	Label  *LabelDecl `parser:"| @@"`
	Assign *Assign    `parser:"| @@"`
}

// FontDecl overrides one of the two font slots (body/bold).
type FontDecl struct {
	Slot  string    `parser:"'font' @Ident"`
	Props []*Assign `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// LabelDecl overrides a single caption, eg: label total: "TOTAL DUE".
type LabelDecl struct {
	Key   string        `parser:"'label' @Ident ':'"`
	Value StringLiteral `parser:"@String"`
}

// Assign uses colon syntax (key: value); value is a string or a hex color.
type Assign struct {
	Key    string         `parser:"@Ident ':' Newline*"`
	String *StringLiteral `parser:"( @String"`
	Color  *string        `parser:"| @Color )"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse reads a theme file and overlays it on the built-in theme matching its
// name ("invoice"/"quote"); any other name starts from the invoice defaults.
func Parse(r io.Reader) (Theme, error) {
	f, err := fileParser.Parse("", r)
	if err != nil {
		return Theme{}, err
	}
	return apply(f)
}

// ParseString parses theme content from a string.
func ParseString(input string) (Theme, error) {
	f, err := fileParser.ParseString("", input)
	if err != nil {
		return Theme{}, err
	}
	return apply(f)
}

// ParseFile loads and parses a theme definition from disk.
func ParseFile(path string) (Theme, error) {
	file, err := os.Open(path)
	if err != nil {
		return Theme{}, fmt.Errorf("open theme %s: %w", path, err)
	}
	defer file.Close()
	return Parse(file)
}

func apply(f *File) (Theme, error) {
	var t Theme
	switch strings.ToLower(f.Name) {
	case "quote", "quotation":
		t = Quote()
	default:
		t = Invoice()
	}
	t.Name = f.Name

	for _, e := range f.Entries {
		switch {
		case e.Font != nil:
			if err := applyFont(&t, e.Font); err != nil {
				return Theme{}, err
			}
		case e.Label != nil:
			if err := applyLabel(&t.Labels, e.Label.Key, string(e.Label.Value)); err != nil {
				return Theme{}, err
			}
		case e.Assign != nil:
			if err := applyAssign(&t, e.Assign); err != nil {
				return Theme{}, err
			}
		}
	}
	return t, nil
}

func applyFont(t *Theme, decl *FontDecl) error {
	var spec *FontSpec
	switch strings.ToLower(decl.Slot) {
	case "body":
		spec = &t.Body
	case "bold":
		spec = &t.Bold
	default:
		return fmt.Errorf("unknown font slot %q (want body or bold)", decl.Slot)
	}
	for _, p := range decl.Props {
		if p.String == nil {
			return fmt.Errorf("font %s: property %s must be a string", decl.Slot, p.Key)
		}
		switch strings.ToLower(p.Key) {
		case "src":
			spec.Src = string(*p.String)
		case "style":
			spec.Style = string(*p.String)
		default:
			return fmt.Errorf("font %s: unknown property %q", decl.Slot, p.Key)
		}
	}
	return nil
}

func applyAssign(t *Theme, a *Assign) error {
	key := strings.ToLower(a.Key)
	if a.Color != nil {
		c, err := parseHexColor(*a.Color)
		if err != nil {
			return fmt.Errorf("%s: %w", a.Key, err)
		}
		switch key {
		case "accent":
			t.Accent = c
		case "tint":
			t.Tint = c
		case "band":
			t.Band = c
		default:
			return fmt.Errorf("unknown color property %q", a.Key)
		}
		return nil
	}
	if a.String == nil {
		return fmt.Errorf("property %q has no value", a.Key)
	}
	v := string(*a.String)
	switch key {
	case "title":
		t.Title = v
	case "currency":
		t.Currency = v
	case "footer":
		t.Footer = v
	default:
		return fmt.Errorf("unknown property %q", a.Key)
	}
	return nil
}

func applyLabel(l *Labels, key, value string) error {
	switch strings.ToLower(key) {
	case "from":
		l.From = value
	case "billto", "bill-to":
		l.BillTo = value
	case "project":
		l.Project = value
	case "date":
		l.Date = value
	case "due":
		l.Due = value
	case "validity":
		l.Validity = value
	case "status":
		l.Status = value
	case "description":
		l.Description = value
	case "quantity", "qty":
		l.Quantity = value
	case "rate":
		l.Rate = value
	case "amount":
		l.Amount = value
	case "subtotal":
		l.Subtotal = value
	case "total":
		l.Total = value
	case "paid":
		l.Paid = value
	case "balance":
		l.Balance = value
	case "milestones":
		l.Milestones = value
	case "deliverables":
		l.Deliverables = value
	default:
		return fmt.Errorf("unknown label %q", key)
	}
	return nil
}

// parseHexColor accepts #RGB and #RRGGBB forms.
func parseHexColor(s string) (Color, error) {
	raw := strings.TrimPrefix(s, "#")
	switch len(raw) {
	case 3:
		raw = string([]byte{raw[0], raw[0], raw[1], raw[1], raw[2], raw[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
