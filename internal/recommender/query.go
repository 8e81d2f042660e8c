package recommender

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTopN is used when the caller gives no usable result count.
const DefaultTopN = 3

// DefaultInterests replace an empty interest list.
var DefaultInterests = []string{"egyptian history", "culture"}

// RawQuery is the request as received from a caller, before normalization.
// Interest entries may hold comma separated lists; liked place entries are
// taken as whole names.
type RawQuery struct {
	Location    string
	Interests   []string
	LikedPlaces []string
	TopN        string
}

// Query is a validated recommendation request.
type Query struct {
	Location    string
	Interests   []string
	LikedPlaces []string
	TopN        int
}

// Filtering reports whether the location restricts results to one city.
func (q Query) Filtering() bool {
	return IsLocationFilter(q.Location)
}

// IsLocationFilter reports whether location names a city rather than one of the
// "no filter" sentinels ("", "all", "any").
func IsLocationFilter(location string) bool {
	switch strings.ToLower(strings.TrimSpace(location)) {
	case "", "all", "any":
		return false
	}
	return true
}

// NormalizeQuery turns raw input into a Query. Empty interests fall back to
// DefaultInterests and an unparsable top_n falls back to DefaultTopN; a
// negative top_n has no safe default and yields ErrInvalidQuery.
func NormalizeQuery(raw RawQuery) (Query, error) {
	q := Query{
		Location:    strings.TrimSpace(raw.Location),
		Interests:   normalizeInterests(raw.Interests),
		LikedPlaces: normalizeNames(raw.LikedPlaces),
		TopN:        DefaultTopN,
	}
	if len(q.Interests) == 0 {
		q.Interests = append([]string(nil), DefaultInterests...)
	}

	topN := strings.TrimSpace(raw.TopN)
	if topN == "" {
		return q, nil
	}
	n, err := strconv.Atoi(topN)
	if err != nil {
		// Fractional values such as "2.0" still carry a usable count.
		f, ferr := strconv.ParseFloat(topN, 64)
		if ferr != nil || f != float64(int(f)) {
			return q, nil
		}
		n = int(f)
	}
	if n < 0 {
		return Query{}, fmt.Errorf("%w: top_n must not be negative, got %d", ErrInvalidQuery, n)
	}
	q.TopN = n
	return q, nil
}

// SplitList splits a comma separated string, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func normalizeInterests(in []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, entry := range in {
		for _, term := range SplitList(entry) {
			term = strings.ToLower(strings.Join(strings.Fields(term), " "))
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}

func normalizeNames(in []string) []string {
	var out []string
	for _, entry := range in {
		if name := strings.TrimSpace(entry); name != "" {
			out = append(out, name)
		}
	}
	return out
}
