package dataflows

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyike/CortexFin/config"
	"github.com/dyike/CortexFin/consts"
	"github.com/dyike/CortexFin/models"
	"github.com/dyike/CortexFin/pkg/logger"
	"github.com/go-resty/resty/v2"
)

var newsDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2} \d{2}:\d{2}`)

// NewsClient searches Sina news for a company name.
type NewsClient struct {
	client    *resty.Client
	searchURL string
	limit     int
	log       *logger.Logger
}

func NewNewsClient(cfg *config.Config) *NewsClient {
	return NewNewsClientWith(NewHTTPClient(cfg.HTTPTimeout, cfg.UserAgent), cfg.NewsSearchURL, cfg.NewsLimit)
}

func NewNewsClientWith(client *resty.Client, searchURL string, limit int) *NewsClient {
	if limit <= 0 {
		limit = 5
	}
	return &NewsClient{
		client:    client,
		searchURL: strings.TrimRight(searchURL, "/"),
		limit:     limit,
		log:       logger.Named("news"),
	}
}

// FetchNews returns at most limit items. Zero matches is reported as an Error
// record rather than an empty success.
func (n *NewsClient) FetchNews(ctx context.Context, company string) models.NewsResult {
	result := models.NewsResult{Company: company}

	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":  company + " 股票",
			"c":  "news",
			"by": "media",
		}).
		Get(n.searchURL + "/")
	if err != nil {
		result.Error = fmt.Sprintf(consts.NewsFetchFailed, err)
		n.log.Warnw("news search failed", "company", company, "error", err)
		return result
	}
	if err := checkStatus(resp); err != nil {
		result.Error = fmt.Sprintf(consts.NewsFetchFailed, err)
		n.log.Warnw("news search failed", "company", company, "error", err)
		return result
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		result.Error = fmt.Sprintf(consts.NewsFetchFailed, err)
		return result
	}

	result.Items = parseSinaNews(doc, n.limit)
	if len(result.Items) == 0 {
		result.Error = fmt.Sprintf(consts.NewsNotFound, company)
	}
	return result
}

func parseSinaNews(doc *goquery.Document, limit int) []models.NewsItem {
	var items []models.NewsItem
	doc.Find("div.box-result > div.r-info").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		a := s.Find("h2 > a").First()
		title := strings.TrimSpace(a.Text())
		if title == "" {
			return true
		}
		link, _ := a.Attr("href")

		date := newsDate.FindString(s.Find("span.fg-c-a").Text())
		if date == "" {
			date = consts.UnknownDate
		}

		items = append(items, models.NewsItem{
			Title: title,
			Link:  strings.TrimSpace(link),
			Date:  date,
		})
		return len(items) < limit
	})
	return items
}
