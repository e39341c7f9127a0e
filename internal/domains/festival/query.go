package festival

import (
	"net/url"
	"strconv"
)

// ListQuery is the parsed filter + pagination input of a collection
// listing. Limit -1 means "not set": no pagination, return everything.
type ListQuery struct {
	Page   int
	Limit  int
	Filter Filter
}

// ParseListQuery sanitizes the raw query values. Only hasBookmark,
// organizer and countryCode survive as filters; every other key is
// dropped silently.
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{Page: 1, Limit: -1}

	if v := values.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			q.Page = n
		}
	}
	if v := values.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			q.Limit = n
		}
	}

	if v := values.Get("hasBookmark"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			q.Filter.HasBookmark = &b
		}
	}
	if v := values.Get("organizer"); v != "" {
		q.Filter.Organizer = &v
	}
	if v := values.Get("countryCode"); v != "" {
		q.Filter.CountryCode = &v
	}

	return q
}

// Window resolves the page window against the total match count. An
// unset limit becomes totalItems, so an unpaginated listing returns all
// rows in one page.
func (q ListQuery) Window(totalItems int64) (limit, offset int) {
	limit = q.Limit
	if limit < 0 {
		limit = int(totalItems)
	}
	offset = (q.Page - 1) * limit
	return limit, offset
}

// PageLink points at one page of the collection.
type PageLink struct {
	Page int    `json:"page"`
	Href string `json:"href"`
}

// PageLinks carries the pagination hyperlinks. First/last are always
// present (null only in the zero-page edge case); previous/next are
// omitted at the ends of the range.
type PageLinks struct {
	First    *PageLink `json:"first"`
	Last     *PageLink `json:"last"`
	Previous *PageLink `json:"previous,omitempty"`
	Next     *PageLink `json:"next,omitempty"`
}

// Pagination is the page metadata of a collection envelope.
type Pagination struct {
	CurrentPage  int       `json:"currentPage"`
	CurrentItems int       `json:"currentItems"`
	TotalPages   int       `json:"totalPages"`
	TotalItems   int64     `json:"totalItems"`
	Links        PageLinks `json:"_links"`
}

// NewPagination computes the page metadata for a listing. limit=0 and
// totalItems=0 never divide: totalPages becomes 0 and the page links
// resolve to null.
func NewPagination(requestURL string, q ListQuery, totalItems int64, currentItems int) Pagination {
	limit, _ := q.Window(totalItems)

	p := Pagination{
		CurrentPage:  q.Page,
		CurrentItems: currentItems,
		TotalItems:   totalItems,
	}

	if limit <= 0 || totalItems == 0 {
		return p
	}

	p.TotalPages = int((totalItems + int64(limit) - 1) / int64(limit))

	if p.TotalPages <= 1 {
		// Single page: both ends are the request itself, no rewrite.
		p.Links.First = &PageLink{Page: 1, Href: requestURL}
		p.Links.Last = &PageLink{Page: 1, Href: requestURL}
		return p
	}

	p.Links.First = &PageLink{Page: 1, Href: pageHref(requestURL, 1, limit)}
	p.Links.Last = &PageLink{Page: p.TotalPages, Href: pageHref(requestURL, p.TotalPages, limit)}

	if q.Page > 1 {
		p.Links.Previous = &PageLink{Page: q.Page - 1, Href: pageHref(requestURL, q.Page-1, limit)}
	}
	if q.Page < p.TotalPages {
		p.Links.Next = &PageLink{Page: q.Page + 1, Href: pageHref(requestURL, q.Page+1, limit)}
	}

	return p
}

func pageHref(requestURL string, page, limit int) string {
	u, err := url.Parse(requestURL)
	if err != nil {
		return requestURL
	}

	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	u.RawQuery = query.Encode()

	return u.String()
}
