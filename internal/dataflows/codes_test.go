package dataflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecondaryCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"600519.SH", "sh600519"},
		{"000001.SZ", "sz000001"},
		{"AAPL.US", "AAPL.US"},
		{"700.HK", "700.HK"},
		{"600519", "600519"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SecondaryCode(tt.in), tt.in)
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "600519.SH", NormalizeCode("600519"))
	assert.Equal(t, "000858.SZ", NormalizeCode(" 000858 "))
	assert.Equal(t, "300750.SZ", NormalizeCode("300750"))
	assert.Equal(t, "830799.BJ", NormalizeCode("830799"))
	assert.Equal(t, "600519.SH", NormalizeCode("600519.sh"))
	assert.Equal(t, "AAPL.US", NormalizeCode("aapl.us"))
}

func TestYahooSymbol(t *testing.T) {
	assert.Equal(t, "600519.SS", YahooSymbol("600519.SH"))
	assert.Equal(t, "000001.SZ", YahooSymbol("000001.SZ"))
}

func TestMentionsInstrument(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"给我一份贵州茅台的报告", true},
		{"分析一下五粮液", true},
		{"分析一下600519", true},
		{"600519的走势", true},
		{"代码是1234567的公司", false},
		{"分析一下市场情绪", false},
		{"今天天气怎么样", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MentionsInstrument(tt.text), tt.text)
	}
}

func TestNameForCode(t *testing.T) {
	assert.Equal(t, "贵州茅台", NameForCode("600519"))
	assert.Equal(t, "平安银行", NameForCode("000001.SZ"))
	assert.Empty(t, NameForCode("688981.SH"))
}
