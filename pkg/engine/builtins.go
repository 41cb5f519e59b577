package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chazu/solidkit/pkg/analysis"
	"github.com/chazu/solidkit/pkg/solid"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms solid script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: rectangular-prism -> rectangular_prism
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSolid is the handle returned by the shape builtins. It refers to a
// solid by its registry position so later helpers see every mutation.
type sexpSolid struct {
	index int
	s     solid.Solid
}

func (h *sexpSolid) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q #%d)", dslName(h.s.Kind()), h.s.Name(), h.index)
}
func (h *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// rejectUnknown fails on any keyword not listed in allowed.
func (pa kwArgs) rejectUnknown(fn string, allowed ...string) error {
	var unknown []string
	for k := range pa.kw {
		if !lo.Contains(allowed, k) {
			unknown = append(unknown, ":"+k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%s: unknown keyword %s (expected one of :%s)",
		fn, strings.Join(unknown, ", "), strings.Join(allowed, " :"))
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts the solid behind a handle.
func toSolid(s zygo.Sexp) (*sexpSolid, error) {
	if h, ok := s.(*sexpSolid); ok {
		return h, nil
	}
	return nil, fmt.Errorf("expected solid handle, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Shape vocabulary
// ---------------------------------------------------------------------------

// dimKeywords lists each kind's dimension keywords in solid.DimensionNames
// order.
var dimKeywords = map[solid.Kind][]string{
	solid.KindSphere:           {"radius"},
	solid.KindCube:             {"side"},
	solid.KindCylinder:         {"radius", "height"},
	solid.KindCone:             {"radius", "height"},
	solid.KindRectangularPrism: {"length", "width", "height"},
}

// dslName is the script-facing name of a kind, before kebab-case conversion.
func dslName(k solid.Kind) string {
	if k == solid.KindRectangularPrism {
		return "rectangular-prism"
	}
	return strings.ToLower(k.String())
}

// dimensionArgs reads a kind's dimensions from keywords and positional
// numbers, starting from defaults. Keywords win over positionals.
func dimensionArgs(fn string, k solid.Kind, pa kwArgs, defaults []float64) ([]float64, error) {
	keys := dimKeywords[k]
	dims := append([]float64(nil), defaults...)

	nums := pa.positional
	if len(nums) > len(keys) {
		return nil, fmt.Errorf("%s: takes at most %d dimensions, got %d", fn, len(keys), len(nums))
	}
	for i, v := range nums {
		f, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, keys[i], err)
		}
		dims[i] = f
	}
	for i, key := range keys {
		v, ok := pa.kw[key]
		if !ok {
			continue
		}
		f, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, key, err)
		}
		dims[i] = f
	}
	return dims, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// evalState is the per-evaluation data the builtins share.
type evalState struct {
	reg *solid.Registry

	// cause is the Go error behind the most recent failing builtin.
	cause error
}

func (st *evalState) fail(err error) (zygo.Sexp, error) {
	st.cause = err
	return zygo.SexpNull, err
}

// builtin is the zygomys user function signature.
type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs all solid DSL builtins into a zygomys
// environment. Shape builtins append to the state's registry, in call order.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals and
// kebab-case names match the underscore names registered here.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	for _, k := range solid.Kinds() {
		env.AddFunction(strings.ReplaceAll(dslName(k), "-", "_"), shapeBuiltin(st, k))
	}

	// -----------------------------------------------------------------------
	// (volume h) (surface-area h) (efficiency h)
	// -----------------------------------------------------------------------
	measures := map[string]analysis.Metric{
		"volume":       analysis.Volume,
		"surface_area": analysis.SurfaceArea,
		"efficiency":   analysis.Efficiency,
	}
	for fn, measure := range measures {
		env.AddFunction(fn, measureBuiltin(st, measure))
	}

	// -----------------------------------------------------------------------
	// (set-name h "x") (set-color h "x")
	// -----------------------------------------------------------------------
	env.AddFunction("set_name", identityBuiltin(st, "set-name", func(s solid.Solid, v string) { s.SetName(v) }))
	env.AddFunction("set_color", identityBuiltin(st, "set-color", func(s solid.Solid, v string) { s.SetColor(v) }))

	// -----------------------------------------------------------------------
	// (resize h :radius 2)
	// -----------------------------------------------------------------------
	env.AddFunction("resize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return st.fail(fmt.Errorf("resize requires a solid handle as first argument"))
		}
		h, err := toSolid(pa.positional[0])
		if err != nil {
			return st.fail(fmt.Errorf("resize: %w", err))
		}
		k := h.s.Kind()
		if err := pa.rejectUnknown("resize", dimKeywords[k]...); err != nil {
			return st.fail(err)
		}
		pa.positional = pa.positional[1:]
		dims, err := dimensionArgs("resize", k, pa, solid.Dimensions(h.s))
		if err != nil {
			return st.fail(err)
		}
		if err := solid.Resize(h.s, dims...); err != nil {
			return st.fail(fmt.Errorf("resize: %w", err))
		}
		return h, nil
	})

	// -----------------------------------------------------------------------
	// (describe h)
	// -----------------------------------------------------------------------
	env.AddFunction("describe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return st.fail(fmt.Errorf("describe requires exactly 1 argument, got %d", len(args)))
		}
		h, err := toSolid(args[0])
		if err != nil {
			return st.fail(fmt.Errorf("describe: %w", err))
		}
		return &zygo.SexpStr{S: h.s.String()}, nil
	})

	// -----------------------------------------------------------------------
	// (shape "Red Ball") (shape 0)
	// -----------------------------------------------------------------------
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return st.fail(fmt.Errorf("shape requires a name or index, got %d arguments", len(args)))
		}
		if i, ok := args[0].(*zygo.SexpInt); ok {
			s := st.reg.At(int(i.Val))
			if s == nil {
				return st.fail(fmt.Errorf("shape: no solid at index %d", i.Val))
			}
			return &sexpSolid{index: int(i.Val), s: s}, nil
		}
		shapeName, err := toString(args[0])
		if err != nil {
			return st.fail(fmt.Errorf("shape: %w", err))
		}
		for i, s := range st.reg.All() {
			if s.Name() == shapeName {
				return &sexpSolid{index: i, s: s}, nil
			}
		}
		return st.fail(fmt.Errorf("shape: no solid named %q", shapeName))
	})

	// -----------------------------------------------------------------------
	// (shape-count)
	// -----------------------------------------------------------------------
	env.AddFunction("shape_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return st.fail(fmt.Errorf("shape-count takes no arguments, got %d", len(args)))
		}
		return &zygo.SexpInt{Val: int64(st.reg.Len())}, nil
	})
}

// shapeBuiltin builds the constructor for one kind:
//
//	(sphere :name "Red Ball" :color "Crimson" :radius 5)
//	(cylinder 3 6)
//
// Omitted dimensions default to 1, an omitted name to the kind's display
// name and an omitted color to solid.DefaultColor.
func shapeBuiltin(st *evalState, k solid.Kind) builtin {
	fn := dslName(k)
	allowed := append([]string{"name", "color"}, dimKeywords[k]...)

	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if err := pa.rejectUnknown(fn, allowed...); err != nil {
			return st.fail(err)
		}

		def := solid.Default(k)
		shapeName, color := def.Name(), def.Color()
		if v, ok := pa.kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return st.fail(fmt.Errorf("%s: name: %w", fn, err))
			}
			shapeName = s
		}
		if v, ok := pa.kw["color"]; ok {
			s, err := toString(v)
			if err != nil {
				return st.fail(fmt.Errorf("%s: color: %w", fn, err))
			}
			color = s
		}

		dims, err := dimensionArgs(fn, k, pa, solid.Dimensions(def))
		if err != nil {
			return st.fail(err)
		}
		s, err := solid.New(k, shapeName, color, dims...)
		if err != nil {
			return st.fail(fmt.Errorf("%s: %w", fn, err))
		}
		return &sexpSolid{index: st.reg.Add(s), s: s}, nil
	}
}

func measureBuiltin(st *evalState, measure analysis.Metric) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return st.fail(fmt.Errorf("%s requires exactly 1 argument, got %d", name, len(args)))
		}
		h, err := toSolid(args[0])
		if err != nil {
			return st.fail(fmt.Errorf("%s: %w", name, err))
		}
		return &zygo.SexpFloat{Val: measure(h.s)}, nil
	}
}

func identityBuiltin(st *evalState, fn string, set func(solid.Solid, string)) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return st.fail(fmt.Errorf("%s requires a solid handle and a string, got %d arguments", fn, len(args)))
		}
		h, err := toSolid(args[0])
		if err != nil {
			return st.fail(fmt.Errorf("%s: %w", fn, err))
		}
		v, err := toString(args[1])
		if err != nil {
			return st.fail(fmt.Errorf("%s: %w", fn, err))
		}
		set(h.s, v)
		return h, nil
	}
}
