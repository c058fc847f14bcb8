package dataflows

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/models"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	SourceTencent = "tencent"
	SourceSina    = "sina"

	// 腾讯行情字段位置
	tencentMinFields = 41
	fieldName        = 1
	fieldPrice       = 3
	fieldLastClose   = 4
	fieldOpen        = 5
	fieldVolume      = 6
	fieldDateTime    = 30
	fieldHigh        = 33
	fieldLow         = 34
)

// WebSource scrapes the Tencent quote feed and the Sina company page.
type WebSource struct {
	client     *resty.Client
	quoteURL   string
	profileURL string
}

func NewWebSource(client *resty.Client, quoteURL, profileURL string) *WebSource {
	return &WebSource{
		client:     client,
		quoteURL:   strings.TrimRight(quoteURL, "/"),
		profileURL: strings.TrimRight(profileURL, "/"),
	}
}

// Quote fetches a realtime quote. It never returns an error; failures are
// reported in the record's Error field.
func (w *WebSource) Quote(ctx context.Context, code string) models.Quote {
	q := models.Quote{Code: code, Source: SourceTencent}

	url := fmt.Sprintf("%s/q=%s", w.quoteURL, SecondaryCode(code))
	resp, err := w.client.R().SetContext(ctx).Get(url)
	if err != nil {
		q.Error = fmt.Sprintf(consts.QuoteFetchFailed, err)
		return q
	}
	if err := checkStatus(resp); err != nil {
		q.Error = fmt.Sprintf(consts.QuoteFetchFailed, err)
		return q
	}

	text, err := decodeGBK(resp.Body())
	if err != nil {
		q.Error = fmt.Sprintf(consts.QuoteFetchFailed, err)
		return q
	}

	fields := strings.Split(text, "~")
	if len(fields) < tencentMinFields {
		q.Error = consts.QuoteParseFailed
		return q
	}

	q.Name = fields[fieldName]
	q.Close = parseDecimal(fields[fieldPrice])
	q.PrevClose = parseDecimal(fields[fieldLastClose])
	q.Open = parseDecimal(fields[fieldOpen])
	q.High = parseDecimal(fallback(fields[fieldHigh], fields[fieldPrice]))
	q.Low = parseDecimal(fallback(fields[fieldLow], fields[fieldPrice]))
	q.Volume, _ = strconv.ParseInt(strings.TrimSpace(fields[fieldVolume]), 10, 64)
	q.Date = formatFeedTime(fields[fieldDateTime])
	q.History = []models.Bar{}
	return q
}

// Profile scrapes the company information table.
func (w *WebSource) Profile(ctx context.Context, code string) models.Profile {
	p := models.Profile{Code: code, Source: SourceSina, Fields: map[string]string{}}

	url := fmt.Sprintf("%s/corp/go.php/vCI_CorpInfo/stockid/%s.phtml", w.profileURL, stockID(code))
	resp, err := w.client.R().SetContext(ctx).Get(url)
	if err != nil {
		p.Error = fmt.Sprintf(consts.ProfileFetchFailed, err)
		return p
	}
	if err := checkStatus(resp); err != nil {
		p.Error = fmt.Sprintf(consts.ProfileFetchFailed, err)
		return p
	}

	html, err := decodeGBK(resp.Body())
	if err != nil {
		p.Error = fmt.Sprintf(consts.ProfileFetchFailed, err)
		return p
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		p.Error = fmt.Sprintf(consts.ProfileFetchFailed, err)
		return p
	}

	table := doc.Find("table.comInfo1, table.table2").First()
	if table.Length() == 0 {
		title := strings.TrimSpace(doc.Find("title").Text())
		if strings.Contains(title, "公司资料") {
			p.Fields["公司名称"] = strings.TrimSpace(strings.Split(title, "_")[0])
			p.Error = consts.ProfileTitleOnly
			return p
		}
		p.Error = consts.ProfileTableMissing
		return p
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		// 一行可能包含多组 标签/值
		for i := 0; i+1 < cells.Length(); i += 2 {
			key := strings.TrimSpace(strings.ReplaceAll(cells.Eq(i).Text(), "：", ""))
			key = strings.TrimSuffix(key, ":")
			if key == "" {
				continue
			}
			p.Fields[key] = strings.TrimSpace(cells.Eq(i + 1).Text())
		}
	})
	if len(p.Fields) == 0 {
		p.Error = consts.ProfileTableMissing
	}
	return p
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func formatFeedTime(raw string) string {
	t, err := time.Parse("20060102150405", strings.TrimSpace(raw))
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return t.Format("2006-01-02 15:04:05")
}
