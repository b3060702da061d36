package entity

import (
	"encoding/json"
	"errors"
	"math"
)

var ErrNoCreatedUTC = errors.New("post has no numeric created_utc")

// Post is a single link/self post as returned inside a Reddit listing.
// Score and NumComments are pointers because Reddit omits them on some payloads.
type Post struct {
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title,omitempty"`
	Author      string  `json:"author,omitempty"`
	Permalink   string  `json:"permalink,omitempty"`
	CreatedUTC  float64 `json:"created_utc"`
	Score       *int    `json:"score,omitempty"`
	NumComments *int    `json:"num_comments,omitempty"`
}

// UnmarshalJSON reads a post field by field. Counts that are not numbers are
// treated as absent and fractional counts are truncated; only a missing or
// non-numeric created_utc rejects the post.
func (p *Post) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	created, ok := number(fields["created_utc"])
	if !ok {
		return ErrNoCreatedUTC
	}
	*p = Post{
		ID:          str(fields["id"]),
		Title:       str(fields["title"]),
		Author:      str(fields["author"]),
		Permalink:   str(fields["permalink"]),
		CreatedUTC:  created,
		Score:       count(fields["score"]),
		NumComments: count(fields["num_comments"]),
	}
	return nil
}

func number(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f *float64
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return 0, false
	}
	return *f, true
}

func count(raw json.RawMessage) *int {
	f, ok := number(raw)
	if !ok {
		return nil
	}
	n := int(math.Trunc(f))
	return &n
}

func str(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// Engagement is score plus comment count, absent fields count as zero.
func (p Post) Engagement() int64 {
	var v int64
	if p.Score != nil {
		v += int64(*p.Score)
	}
	if p.NumComments != nil {
		v += int64(*p.NumComments)
	}
	return v
}

// Listing is the `{data:{children:[{data:Post}]}}` envelope of /r/{sub}/new.
// Children stay raw so one bad post cannot spoil the whole page.
type Listing struct {
	Data *ListingData `json:"data"`
}

type ListingData struct {
	Children []json.RawMessage `json:"children"`
}

type listingChild struct {
	Data json.RawMessage `json:"data"`
}

// Posts flattens the envelope. Missing levels yield an empty slice; children
// that cannot be read as a post are passed to skip (which may be nil).
func (l Listing) Posts(skip func(i int, err error)) []Post {
	if l.Data == nil {
		return []Post{}
	}
	out := make([]Post, 0, len(l.Data.Children))
	for i, raw := range l.Data.Children {
		var c listingChild
		if err := json.Unmarshal(raw, &c); err != nil {
			if skip != nil {
				skip(i, err)
			}
			continue
		}
		if len(c.Data) == 0 || string(c.Data) == "null" {
			continue
		}
		var p Post
		if err := json.Unmarshal(c.Data, &p); err != nil {
			if skip != nil {
				skip(i, err)
			}
			continue
		}
		out = append(out, p)
	}
	return out
}
