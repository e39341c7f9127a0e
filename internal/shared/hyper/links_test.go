package hyper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b := NewBuilder("http://localhost", "8080", "festivals")

	require.Equal(t, "http://localhost:8080/festivals", b.CollectionHref())
	require.Equal(t, "http://localhost:8080/festivals?page=2", b.RequestHref("/festivals?page=2"))

	links := b.ResourceLinks("abc")
	require.Equal(t, "http://localhost:8080/festivals/abc", links.Self.Href)
	require.Equal(t, "http://localhost:8080/festivals", links.Collection.Href)

	collection := b.CollectionLinks("/festivals?organizer=MOJO")
	require.Equal(t, "http://localhost:8080/festivals?organizer=MOJO", collection.Self.Href)
	require.Equal(t, "http://localhost:8080/festivals", collection.Collection.Href)
}
