package dataflows

import (
	"regexp"
	"strings"
)

// Instrument is a well-known listed company.
type Instrument struct {
	Name string
	Code string
}

// 常见股票名称与代码
var instruments = []Instrument{
	{Name: "贵州茅台", Code: "600519.SH"},
	{Name: "平安银行", Code: "000001.SZ"},
	{Name: "中国平安", Code: "601318.SH"},
	{Name: "五粮液", Code: "000858.SZ"},
}

var sixDigitCode = regexp.MustCompile(`(?:^|[^0-9])([0-9]{6})(?:[^0-9]|$)`)

// Instruments returns the instrument directory.
func Instruments() []Instrument {
	out := make([]Instrument, len(instruments))
	copy(out, instruments)
	return out
}

// LookupName finds an instrument whose name appears in text.
func LookupName(text string) (Instrument, bool) {
	for _, ins := range instruments {
		if strings.Contains(text, ins.Name) {
			return ins, true
		}
	}
	return Instrument{}, false
}

// NameForCode returns the directory name of a canonical code, if known.
func NameForCode(code string) string {
	code = NormalizeCode(code)
	for _, ins := range instruments {
		if ins.Code == code {
			return ins.Name
		}
	}
	return ""
}

// FindCode extracts a standalone 6-digit instrument code from text.
func FindCode(text string) (string, bool) {
	m := sixDigitCode.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// MentionsInstrument reports whether text names a known instrument or
// contains a 6-digit instrument code.
func MentionsInstrument(text string) bool {
	if _, ok := LookupName(text); ok {
		return true
	}
	_, ok := FindCode(text)
	return ok
}

// NormalizeCode upper-cases an exchange-qualified code and qualifies a bare
// 6-digit code by its leading digit. Anything else is returned trimmed.
func NormalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 6 || !isDigits(code) {
		return code
	}
	switch code[0] {
	case '6', '9':
		return code + ".SH"
	case '0', '2', '3':
		return code + ".SZ"
	case '4', '8':
		return code + ".BJ"
	}
	return code
}

// SecondaryCode maps 600519.SH to sh600519 and 000001.SZ to sz000001.
// Codes with any other suffix are returned unchanged.
func SecondaryCode(code string) string {
	switch {
	case strings.HasSuffix(code, ".SZ") && len(code) >= 6:
		return "sz" + code[:6]
	case strings.HasSuffix(code, ".SH") && len(code) >= 6:
		return "sh" + code[:6]
	}
	return code
}

// YahooSymbol converts a canonical code into the Yahoo Finance form.
func YahooSymbol(code string) string {
	if strings.HasSuffix(code, ".SH") {
		return strings.TrimSuffix(code, ".SH") + ".SS"
	}
	return code
}

func stockID(code string) string {
	if len(code) >= 6 && isDigits(code[:6]) {
		return code[:6]
	}
	return code
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
