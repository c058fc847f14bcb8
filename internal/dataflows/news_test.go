package dataflows

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/dyike/CortexFin/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchNews(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, []byte(newsPage))
	client := NewNewsClientWith(NewHTTPClient(2*time.Second, testUA), srv.URL, 5)

	res := client.FetchNews(context.Background(), "贵州茅台")

	require.Empty(t, res.Error)
	require.Len(t, res.Items, 3)
	assert.True(t, res.Available())
	assert.Equal(t, "茅台发布年报", res.Items[0].Title)
	assert.Equal(t, "https://finance.sina.com.cn/1.shtml", res.Items[0].Link)
	assert.Equal(t, "2024-01-05 10:30", res.Items[0].Date)
	assert.Equal(t, consts.UnknownDate, res.Items[1].Date)

	u, err := url.Parse(srv.lastURI())
	require.NoError(t, err)
	assert.Equal(t, "贵州茅台 股票", u.Query().Get("q"))
	assert.Equal(t, "news", u.Query().Get("c"))
	assert.Equal(t, "media", u.Query().Get("by"))
}

func TestFetchNewsRespectsLimit(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, []byte(newsPage))
	client := NewNewsClientWith(NewHTTPClient(2*time.Second, testUA), srv.URL, 2)

	res := client.FetchNews(context.Background(), "贵州茅台")

	assert.Len(t, res.Items, 2)
}

func TestFetchNewsNoResultsIsError(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, []byte(`<html><body><p>没有结果</p></body></html>`))
	client := NewNewsClientWith(NewHTTPClient(2*time.Second, testUA), srv.URL, 5)

	res := client.FetchNews(context.Background(), "不存在的公司")

	assert.Equal(t, "未找到 '不存在的公司' 相关新闻", res.Error)
	assert.Empty(t, res.Items)
	assert.False(t, res.Available())
}

func TestFetchNewsHTTPError(t *testing.T) {
	srv := newStubServer(t, http.StatusServiceUnavailable, nil)
	client := NewNewsClientWith(NewHTTPClient(2*time.Second, testUA), srv.URL, 5)

	res := client.FetchNews(context.Background(), "贵州茅台")

	assert.Contains(t, res.Error, "503")
	assert.False(t, res.Available())
}
