package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"

	"mortgage-afford/domain"
	"mortgage-afford/obs"
)

var termPattern = regexp.MustCompile(`(\d+)`)

// HTMLRateSource scrapes the first rate table of a public rates page.
// Page layout changes surface as errors; nothing is cached.
type HTMLRateSource struct {
	client *resty.Client
	url    string
}

func NewHTMLRateSource(url string, timeout time.Duration) *HTMLRateSource {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/html")
	return &HTMLRateSource{client: client, url: url}
}

func (s *HTMLRateSource) Quotes(ctx context.Context) ([]domain.RateQuote, error) {
	start := time.Now()

	resp, err := s.client.R().SetContext(ctx).Get(s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch rates: status %d", resp.StatusCode())
	}

	quotes, err := ParseRateTable(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, err
	}

	obs.Logger.Info().
		Str("url", s.url).
		Int("quotes", len(quotes)).
		Dur("latency", time.Since(start)).
		Msg("rate_feed_fetch")
	return quotes, nil
}

// ParseRateTable reads the first <table> in the document as columns
// Program, Rate, APR and an optional Change. Rows missing a cell or whose
// rate carries no percent sign are dropped; the term is the first number in
// the program name.
func ParseRateTable(r io.Reader) ([]domain.RateQuote, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse rates page: %w", err)
	}

	table := findElement(doc, "table")
	if table == nil {
		return nil, errors.New("rates page has no table")
	}

	var quotes []domain.RateQuote
	for _, row := range findAll(table, "tr") {
		cells := rowCells(row)
		if len(cells) < 3 {
			continue
		}
		program, rateText, aprText := cells[0], cells[1], cells[2]
		if program == "" || rateText == "" || aprText == "" {
			continue
		}
		if !strings.Contains(rateText, "%") {
			continue
		}

		rate, err := parsePercent(rateText)
		if err != nil {
			obs.Logger.Debug().Err(err).Str("program", program).Msg("rate_row_skipped")
			continue
		}
		apr, err := parsePercent(aprText)
		if err != nil {
			obs.Logger.Debug().Err(err).Str("program", program).Msg("rate_row_skipped")
			continue
		}

		quote := domain.RateQuote{
			ProductName: program,
			RatePercent: rate,
			APRPercent:  apr,
		}
		if m := termPattern.FindString(program); m != "" {
			quote.TermYears, _ = strconv.Atoi(m)
		}
		if len(cells) > 3 {
			quote.Change = cells[3]
		}
		quotes = append(quotes, quote)
	}

	if len(quotes) == 0 {
		return nil, errors.New("rates table has no usable rows")
	}
	return quotes, nil
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	return strconv.ParseFloat(s, 64)
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return out
}

func rowCells(row *html.Node) []string {
	var cells []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, textContent(c))
		}
	}
	return cells
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
