package transport

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

var ErrInvalidPage = errors.New("invalid page")

type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PagedResponse mirrors the page envelope clients already consume.
type PagedResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// ParsePage reads ?page= (1-based) and applies the configured page size.
func ParsePage(r *http.Request, size int) (Page, error) {
	if size <= 0 {
		size = 10
	}
	p := Page{Number: 1, Size: size}

	raw := r.URL.Query().Get("page")
	if raw == "" {
		return p, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return p, ErrInvalidPage
	}
	p.Number = n
	return p, nil
}

func NewPagedResponse[T any](r *http.Request, p Page, count int, results []T) PagedResponse[T] {
	if results == nil {
		results = []T{}
	}
	resp := PagedResponse[T]{Count: count, Results: results}

	if p.Number*p.Size < count {
		resp.Next = pageURL(r, p.Number+1)
	}
	if p.Number > 1 {
		resp.Previous = pageURL(r, p.Number-1)
	}
	return resp
}

func pageURL(r *http.Request, number int) *string {
	u := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path}
	if r.TLS != nil {
		u.Scheme = "https"
	}

	q := r.URL.Query()
	if number == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()

	s := u.String()
	return &s
}
