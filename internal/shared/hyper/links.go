// Package hyper builds the _links blocks carried by every resource
// representation, from configured host/port/collection values.
package hyper

import "fmt"

type Link struct {
	Href string `json:"href"`
}

// Links is the _links block: self plus the owning collection.
type Links struct {
	Self       Link `json:"self"`
	Collection Link `json:"collection"`
}

// Builder constructs hyperlinks from the configured base URL, port and
// collection name.
type Builder struct {
	origin     string
	collection string
}

func NewBuilder(baseURL, port, collection string) *Builder {
	return &Builder{
		origin:     fmt.Sprintf("%s:%s", baseURL, port),
		collection: collection,
	}
}

// CollectionHref returns the absolute URL of the collection.
func (b *Builder) CollectionHref() string {
	return fmt.Sprintf("%s/%s", b.origin, b.collection)
}

// RequestHref turns a request URI (path + query) into an absolute URL.
func (b *Builder) RequestHref(requestURI string) string {
	return b.origin + requestURI
}

// ResourceLinks builds self/collection links for a single resource.
func (b *Builder) ResourceLinks(id string) Links {
	return Links{
		Self:       Link{Href: fmt.Sprintf("%s/%s", b.CollectionHref(), id)},
		Collection: Link{Href: b.CollectionHref()},
	}
}

// CollectionLinks builds the envelope links for a collection listing;
// self points at the request as received.
func (b *Builder) CollectionLinks(requestURI string) Links {
	return Links{
		Self:       Link{Href: b.RequestHref(requestURI)},
		Collection: Link{Href: b.CollectionHref()},
	}
}
