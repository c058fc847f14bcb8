package dataflows

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
)

const testUA = "cortexfin-test"

func gbk(t *testing.T, s string) []byte {
	t.Helper()
	out, err := simplifiedchinese.GBK.NewEncoder().String(s)
	if err != nil {
		t.Fatalf("encode gbk: %v", err)
	}
	return []byte(out)
}

func tencentFeed(name string) string {
	fields := make([]string, 50)
	fields[0] = "1"
	fields[1] = name
	fields[2] = "600519"
	fields[3] = "1700.50"
	fields[4] = "1690.00"
	fields[5] = "1695.00"
	fields[6] = "23456"
	fields[30] = "20240105150003"
	fields[33] = "1710.00"
	fields[34] = "1688.80"
	return `v_sh600519="` + strings.Join(fields, "~") + `";`
}

const profilePage = `<html><head><title>贵州茅台(600519)_公司资料_新浪财经</title></head><body>
<table id="comInfo1" class="comInfo1">
<tr><td class="ccl">公司名称：</td><td class="ccl">贵州茅台酒股份有限公司</td></tr>
<tr><td>上市日期：</td><td>2001-08-27</td><td>发行价格：</td><td>31.39</td></tr>
<tr><td>注册资本：</td><td>125620万元</td></tr>
</table></body></html>`

const newsPage = `<html><body>
<div class="box-result"><div class="r-info"><h2><a href="https://finance.sina.com.cn/1.shtml">茅台发布年报</a></h2><span class="fg-c-a">新浪财经 2024-01-05 10:30</span></div></div>
<div class="box-result"><div class="r-info"><h2><a href="https://finance.sina.com.cn/2.shtml">白酒板块走强</a></h2><span class="fg-c-a">证券时报</span></div></div>
<div class="box-result"><div class="r-info"><h2><a href="https://finance.sina.com.cn/3.shtml">茅台提价</a></h2><span class="fg-c-a">2024-01-03 09:00</span></div></div>
</body></html>`

// stubServer serves body for every request and counts hits.
type stubServer struct {
	*httptest.Server
	hits atomic.Int32
	last atomic.Value
}

func newStubServer(t *testing.T, status int, body []byte) *stubServer {
	t.Helper()
	s := &stubServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		s.last.Store(r.URL.RequestURI())
		if got := r.Header.Get("User-Agent"); got != testUA {
			http.Error(w, "bad user agent "+got, http.StatusBadRequest)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *stubServer) lastURI() string {
	v, _ := s.last.Load().(string)
	return v
}

func newTestWebSource(quoteURL, profileURL string) *WebSource {
	return NewWebSource(NewHTTPClient(2*time.Second, testUA), quoteURL, profileURL)
}
