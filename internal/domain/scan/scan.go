// Package scan holds the scanned-literature entities: collections (journal volumes),
// articles and pages, plus the enumerations pages are classified by.
package scan

import "fmt"

// Collection identifiers are a fixed-width journal code followed by a fixed-width volume.
const (
	JournalWidth = 5
	VolumeWidth  = 4
	// CollectionIDWidth is the full width of a collection identifier.
	CollectionIDWidth = JournalWidth + VolumeWidth
)

// CollectionID is a journal+volume identifier such as "ApJ..0333".
type CollectionID string

// Journal returns the first JournalWidth characters, or the whole id when shorter.
func (id CollectionID) Journal() string {
	if len(id) < JournalWidth {
		return string(id)
	}
	return string(id[:JournalWidth])
}

// Volume returns the VolumeWidth characters after the journal code.
func (id CollectionID) Volume() string {
	if len(id) <= JournalWidth {
		return ""
	}
	end := min(len(id), CollectionIDWidth)
	return string(id[JournalWidth:end])
}

// Valid reports whether the id has the exact collection width.
func (id CollectionID) Valid() bool { return len(id) == CollectionIDWidth }

// NewCollectionID joins a journal code and volume, padding both to their widths.
func NewCollectionID(journal, volume string) (CollectionID, error) {
	if journal == "" || len(journal) > JournalWidth {
		return "", fmt.Errorf("journal must be 1-%d characters, got %q", JournalWidth, journal)
	}
	if volume == "" || len(volume) > VolumeWidth {
		return "", fmt.Errorf("volume must be 1-%d characters, got %q", VolumeWidth, volume)
	}
	return CollectionID(fmt.Sprintf("%-*s%0*s", JournalWidth, journal, VolumeWidth, volume)), nil
}

// Collection is a journal volume of scanned pages.
type Collection struct {
	id       CollectionID
	scanType string
}

// ReconstructCollection rebuilds a collection from storage.
func ReconstructCollection(id, scanType string) Collection {
	return Collection{id: CollectionID(id), scanType: scanType}
}

// ID returns the collection identifier.
func (c Collection) ID() CollectionID { return c.id }

// Journal returns the journal code.
func (c Collection) Journal() string { return c.id.Journal() }

// Volume returns the volume code.
func (c Collection) Volume() string { return c.id.Volume() }

// Type returns the scan type (e.g. "seri").
func (c Collection) Type() string { return c.scanType }

// Article is a bibliographic record spanning one or more pages of a single collection.
type Article struct {
	bibcode      string
	collectionID CollectionID
}

// ReconstructArticle rebuilds an article from storage.
func ReconstructArticle(bibcode, collectionID string) Article {
	return Article{bibcode: bibcode, collectionID: CollectionID(collectionID)}
}

// ID returns the article id, which is its bibcode.
func (a Article) ID() string { return a.bibcode }

// Bibcode returns the article bibcode.
func (a Article) Bibcode() string { return a.bibcode }

// CollectionID returns the owning collection.
func (a Article) CollectionID() CollectionID { return a.collectionID }

// Kind tells which entity an identifier refers to.
type Kind string

// Entity kinds.
const (
	KindCollection Kind = "collection"
	KindArticle    Kind = "article"
	KindPage       Kind = "page"
)

// IsValid checks if the kind is supported.
func (k Kind) IsValid() bool {
	return k == KindCollection || k == KindArticle || k == KindPage
}
