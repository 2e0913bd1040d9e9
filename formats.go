// Format validators credited, as in the teacher's formats.go, to
// https://github.com/santhosh-tekuri/jsonschema — ported here operating on
// plain strings instead of `interface{}` since the format keyword only
// ever applies to string instances in this rework.
package jsonschema

import (
	"errors"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	errIPv6NotEnclosed = errors.New("jsonschema: ipv6 address not enclosed in brackets")
	errInvalidIPv6      = errors.New("jsonschema: invalid ipv6 address")
)

// FormatValidator reports whether s satisfies a named format.
type FormatValidator func(s string) bool

// defaultFormats is the set of named format validators every new Catalog
// copies, mirroring the teacher's package-level Formats map (formats.go) but scoped
// to a Catalog instead of the whole process, and extensible via
// RegisterFormat the way the teacher's Compiler.RegisterFormat is.
var defaultFormats = map[string]FormatValidator{
	"date-time":             isDateTime,
	"date":                  isDate,
	"time":                  isTime,
	"duration":              isDuration,
	"hostname":              isHostname,
	"email":                 isEmail,
	"ipv4":                  isIPv4,
	"ipv6":                  isIPv6,
	"uri":                   isURI,
	"uri-reference":         isURIReference,
	"json-pointer":          isJSONPointer,
	"relative-json-pointer": isRelativeJSONPointer,
	"uuid":                  isUUID,
	"regex":                 isRegex,
}

func isDateTime(s string) bool {
	if len(s) < 20 {
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return isDate(s[:10]) && isTime(s[11:])
}

func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isTime(s string) bool {
	if len(s) < 9 || s[2] != ':' || s[5] != ':' {
		return false
	}
	inRange := func(str string, min, max int) (int, bool) {
		n, err := strconv.Atoi(str)
		if err != nil || n < min || n > max {
			return 0, false
		}
		return n, true
	}
	h, ok := inRange(s[0:2], 0, 23)
	if !ok {
		return false
	}
	m, ok := inRange(s[3:5], 0, 59)
	if !ok {
		return false
	}
	sec, ok := inRange(s[6:8], 0, 60)
	if !ok {
		return false
	}
	rest := s[8:]
	if rest != "" && rest[0] == '.' {
		rest = rest[1:]
		digits := 0
		for rest != "" && rest[0] >= '0' && rest[0] <= '9' {
			digits++
			rest = rest[1:]
		}
		if digits == 0 {
			return false
		}
	}
	if len(rest) == 0 {
		return false
	}
	if rest[0] == 'z' || rest[0] == 'Z' {
		if len(rest) != 1 {
			return false
		}
	} else {
		if len(rest) != 6 || rest[3] != ':' {
			return false
		}
		var sign int
		switch rest[0] {
		case '+':
			sign = -1
		case '-':
			sign = 1
		default:
			return false
		}
		zh, ok := inRange(rest[1:3], 0, 23)
		if !ok {
			return false
		}
		zm, ok := inRange(rest[4:6], 0, 59)
		if !ok {
			return false
		}
		hm := (h*60 + m) + sign*(zh*60+zm)
		if hm < 0 {
			hm += 24 * 60
		}
		h, m = hm/60, hm%60
	}
	if sec == 60 && (h != 23 || m != 59) {
		return false
	}
	return true
}

func isDuration(s string) bool {
	if len(s) == 0 || s[0] != 'P' {
		return false
	}
	s = s[1:]
	parseUnits := func() (string, bool) {
		var units string
		for len(s) > 0 && s[0] != 'T' {
			digits := false
			for len(s) != 0 && s[0] >= '0' && s[0] <= '9' {
				digits = true
				s = s[1:]
			}
			if !digits || len(s) == 0 {
				return units, false
			}
			units += s[:1]
			s = s[1:]
		}
		return units, true
	}
	units, ok := parseUnits()
	if !ok {
		return false
	}
	if units == "W" {
		return len(s) == 0
	}
	if len(units) > 0 {
		if !strings.Contains("YMD", units) {
			return false
		}
		if len(s) == 0 {
			return true
		}
	}
	if len(s) == 0 || s[0] != 'T' {
		return false
	}
	s = s[1:]
	units, ok = parseUnits()
	return ok && len(s) == 0 && len(units) > 0 && strings.Contains("HMS", units)
}

func isHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		n := len(label)
		if n < 1 || n > 63 {
			return false
		}
		if label[0] == '-' || label[n-1] == '-' {
			return false
		}
		for _, c := range label {
			valid := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
			if !valid {
				return false
			}
		}
	}
	return true
}

func isEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at == -1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if len(local) > 64 {
		return false
	}
	if len(domain) >= 2 && domain[0] == '[' && domain[len(domain)-1] == ']' {
		ip := domain[1 : len(domain)-1]
		if strings.HasPrefix(ip, "IPv6:") {
			return isIPv6(strings.TrimPrefix(ip, "IPv6:"))
		}
		return isIPv4(ip)
	}
	if !isHostname(domain) {
		return false
	}
	_, err := mail.ParseAddress(s)
	return err == nil
}

func isIPv4(s string) bool {
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil || n < 0 || n > 255 {
			return false
		}
		if n != 0 && g[0] == '0' {
			return false
		}
	}
	return true
}

func isIPv6(s string) bool {
	if !strings.Contains(s, ":") {
		return false
	}
	return net.ParseIP(s) != nil
}

func parseURIStrict(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	hostname := u.Hostname()
	if strings.IndexByte(hostname, ':') != -1 {
		if strings.IndexByte(u.Host, '[') == -1 || strings.IndexByte(u.Host, ']') == -1 {
			return nil, errIPv6NotEnclosed
		}
		if !isIPv6(hostname) {
			return nil, errInvalidIPv6
		}
	}
	return u, nil
}

func isURI(s string) bool {
	u, err := parseURIStrict(s)
	return err == nil && u.IsAbs()
}

func isURIReference(s string) bool {
	_, err := parseURIStrict(s)
	return err == nil && !strings.Contains(s, `\`)
}

func isJSONPointer(s string) bool {
	if s != "" && !strings.HasPrefix(s, "/") {
		return false
	}
	for _, item := range strings.Split(s, "/") {
		for i := 0; i < len(item); i++ {
			if item[i] != '~' {
				continue
			}
			if i == len(item)-1 {
				return false
			}
			if item[i+1] != '0' && item[i+1] != '1' {
				return false
			}
		}
	}
	return true
}

func isRelativeJSONPointer(s string) bool {
	if s == "" {
		return false
	}
	switch {
	case s[0] == '0':
		s = s[1:]
	case s[0] >= '0' && s[0] <= '9':
		for s != "" && s[0] >= '0' && s[0] <= '9' {
			s = s[1:]
		}
	default:
		return false
	}
	return s == "#" || isJSONPointer(s)
}

func isUUID(s string) bool {
	parseHex := func(n int) bool {
		for n > 0 {
			if len(s) == 0 {
				return false
			}
			hex := (s[0] >= '0' && s[0] <= '9') || (s[0] >= 'a' && s[0] <= 'f') || (s[0] >= 'A' && s[0] <= 'F')
			if !hex {
				return false
			}
			s = s[1:]
			n--
		}
		return true
	}
	groups := []int{8, 4, 4, 4, 12}
	for i, n := range groups {
		if !parseHex(n) {
			return false
		}
		if i == len(groups)-1 {
			break
		}
		if len(s) == 0 || s[0] != '-' {
			return false
		}
		s = s[1:]
	}
	return len(s) == 0
}

func isRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}

// formatClass implements the `format` keyword. By default it is
// annotation-only (spec.md §6 Configuration: "enabled format validators...
// default empty"); a catalog opts specific format names into assertion
// mode via Catalog.AssertFormat.
type formatClass struct{}

func (formatClass) Name() string        { return "format" }
func (formatClass) AppliesTo() []Kind   { return nil }
func (formatClass) DependsOn() []string { return nil }
func (formatClass) Bind(ctx *CompileContext, value *Node) (Handler, error) {
	if value.Kind() != KindString {
		return nil, &JSONSchemaError{Keyword: "format", Err: ErrInvalidKeywordValue}
	}
	name := value.Str()
	validator, known := ctx.Catalog.format(name)
	return &formatHandler{name: name, validator: validator, known: known, catalog: ctx.Catalog}, nil
}

type formatHandler struct {
	name      string
	validator FormatValidator
	known     bool
	catalog   *Catalog
}

func (h *formatHandler) Evaluate(instance *Node, result *Result, _ *Engine) {
	result.AddAnnotation("format", h.name)
	if instance.Kind() != KindString || !h.known {
		return
	}
	if h.validator(instance.Str()) {
		return
	}
	if h.catalog.formatAsserted(h.name) {
		result.Fail("format", "format", "value is not a valid {format}", map[string]any{"format": h.name})
	} else {
		result.assert = false
	}
}
