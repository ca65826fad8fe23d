package server

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/bestgames/bestgames/pkg/catalog"
	"github.com/go-playground/validator/v10"
)

// maxSearchLen matches the max tag on Query.Search.
const maxSearchLen = 200

// Query mirrors the catalog form. Field names in errors are the query
// parameter names.
type Query struct {
	Search        string   `json:"search" validate:"max=200"`
	Sort          string   `json:"sort" validate:"omitempty,oneof=title rps ign pcgamer score metacritic release points"`
	Platforms     []string `json:"platform" validate:"dive,oneof=windows macos linux switch steamdeck"`
	Stores        []string `json:"store" validate:"dive,min=1,max=100"`
	MinMetacritic int      `json:"min_metacritic" validate:"min=0,max=100"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ParseCriteria reads the catalog criteria from query values. Invalid
// values fall back to their defaults; the returned error names them.
func ParseCriteria(values url.Values) (catalog.Criteria, error) {
	q := Query{
		Search: strings.TrimSpace(values.Get("search")),
		Sort:   strings.ToLower(strings.TrimSpace(values.Get("sort"))),
	}
	for _, p := range values["platform"] {
		q.Platforms = append(q.Platforms, strings.ToLower(strings.TrimSpace(p)))
	}
	for _, s := range values["store"] {
		q.Stores = append(q.Stores, strings.TrimSpace(s))
	}

	var bad []string
	if raw := strings.TrimSpace(values.Get("min_metacritic")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			bad = append(bad, "min_metacritic")
		} else {
			q.MinMetacritic = n
		}
	}

	bad = append(bad, q.sanitize()...)
	c := q.criteria()
	if len(bad) > 0 {
		sort.Strings(bad)
		return c, fmt.Errorf("invalid query parameters: %s", strings.Join(dedupe(bad), ", "))
	}
	return c, nil
}

// sanitize validates q and resets every invalid field. Slice fields only
// lose their invalid elements; an overlong search is cut short so it
// still narrows the results.
func (q *Query) sanitize() []string {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var bad []string
	dropPlatforms := map[int]bool{}
	dropStores := map[int]bool{}
	for _, fe := range errs {
		name, idx := splitIndex(fe.Field())
		bad = append(bad, name)
		switch name {
		case "search":
			q.Search = truncateRunes(q.Search, maxSearchLen)
		case "sort":
			q.Sort = ""
		case "min_metacritic":
			q.MinMetacritic = 0
		case "platform":
			dropPlatforms[idx] = true
		case "store":
			dropStores[idx] = true
		}
	}
	q.Platforms = dropIndexes(q.Platforms, dropPlatforms)
	q.Stores = dropIndexes(q.Stores, dropStores)
	return bad
}

func (q Query) criteria() catalog.Criteria {
	c := catalog.Criteria{
		Search:        q.Search,
		Sort:          catalog.SortKey(q.Sort),
		Stores:        q.Stores,
		MinMetacritic: q.MinMetacritic,
	}
	if c.Sort == "" {
		c.Sort = catalog.SortTitle
	}
	for _, p := range q.Platforms {
		if pl, ok := catalog.ParsePlatform(p); ok {
			c.Platforms = append(c.Platforms, pl)
		}
	}
	return c
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// splitIndex turns "platform[2]" into ("platform", 2).
func splitIndex(field string) (string, int) {
	name, rest, ok := strings.Cut(field, "[")
	if !ok {
		return field, -1
	}
	i, err := strconv.Atoi(strings.TrimSuffix(rest, "]"))
	if err != nil {
		return name, -1
	}
	return name, i
}

func dropIndexes(in []string, drop map[int]bool) []string {
	if len(drop) == 0 {
		return in
	}
	out := in[:0:0]
	for i, v := range in {
		if !drop[i] {
			out = append(out, v)
		}
	}
	return out
}

func dedupe(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i == 0 || s != in[i-1] {
			out = append(out, s)
		}
	}
	return out
}
