package models

import (
	"github.com/shopspring/decimal"
)

// Bar is one daily candle.
type Bar struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Quote is the normalized quote record shared by every data source.
// A non-empty Error means every source failed; individual zero fields only
// mean the upstream did not report them.
type Quote struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	PrevClose decimal.Decimal `json:"prev_close"`
	Volume    int64           `json:"volume"`
	Source    string          `json:"source"`
	History   []Bar           `json:"history"`
	Error     string          `json:"error,omitempty"`
}

func (q Quote) Failed() bool { return q.Error != "" }

// Profile maps human readable company attributes to values.
type Profile struct {
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
	Source string            `json:"source"`
	Error  string            `json:"error,omitempty"`
}

func (p Profile) Failed() bool { return p.Error != "" && len(p.Fields) == 0 }

type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date"`
}

// NewsResult holds at most a handful of items, or an Error when nothing was found.
type NewsResult struct {
	Company string     `json:"company"`
	Items   []NewsItem `json:"items"`
	Error   string     `json:"error,omitempty"`
}

// Available reports whether there is any news to show. An error record and an
// empty list are treated the same.
func (n NewsResult) Available() bool { return n.Error == "" && len(n.Items) > 0 }
