// Package rankings scrapes "best games of all time" list pages.
package rankings

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bestgames/bestgames/pkg/storage"
	"github.com/bestgames/bestgames/pkg/whttp"
	"golang.org/x/net/html"
)

// Entry is one (rank, title) row of a list.
type Entry struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

// Source produces ranking entries for one list.
type Source interface {
	Name() string
	Scrape(ctx context.Context) ([]Entry, error)
}

// Fetcher is satisfied by *whttp.Client.
type Fetcher interface {
	GetOK(ctx context.Context, rawURL string, headers ...whttp.WHTTPHeader) (string, error)
}

// SourceConfig describes how to read a list page. Entries are found by
// Container; when Title is set, the first element matching it at or
// after each container (in document order) holds the title text.
type SourceConfig struct {
	Name      string `mapstructure:"name" yaml:"name" json:"name"`
	URL       string `mapstructure:"url" yaml:"url" json:"url"`
	Container string `mapstructure:"container" yaml:"container" json:"container"`
	// IDPattern, if set, keeps only containers whose id attribute
	// contains a match.
	IDPattern string `mapstructure:"id_pattern" yaml:"id_pattern,omitempty" json:"id_pattern,omitempty"`
	Title     string `mapstructure:"title" yaml:"title,omitempty" json:"title,omitempty"`
	// Pattern is matched at the start of the text. RankGroup and
	// TitleGroup default to 1 and 2.
	Pattern    string `mapstructure:"pattern" yaml:"pattern,omitempty" json:"pattern,omitempty"`
	RankGroup  int    `mapstructure:"rank_group" yaml:"rank_group,omitempty" json:"rank_group,omitempty"`
	TitleGroup int    `mapstructure:"title_group" yaml:"title_group,omitempty" json:"title_group,omitempty"`
	// RankFromContainer reads the rank from the container text and the
	// title from the Title element.
	RankFromContainer bool `mapstructure:"rank_from_container" yaml:"rank_from_container,omitempty" json:"rank_from_container,omitempty"`
}

// DefaultSources are the three lists the catalog is built from.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{
			Name:              "RPS",
			URL:               "https://www.rockpapershotgun.com/the-rps-100-2024",
			Container:         "span.top-video-game-pill",
			Title:             "span.top-video-game-name",
			RankFromContainer: true,
		},
		{
			Name:      "IGN",
			URL:       "https://www.ign.com/articles/the-best-100-video-games-of-all-time",
			Container: `h2.title2[data-cy="title2"]`,
			Title:     "strong",
			Pattern:   `(\d+)\.\s+(.+)`,
		},
		{
			Name:      "PCGamer",
			URL:       "https://www.pcgamer.com/games/the-top-100-pc-games-2024/",
			Container: "h2[id]",
			IDPattern: `\d+-.*`,
			Pattern:   `(\d+)\.\s+(.+)`,
		},
	}
}

// ListScraper is a Source driven by a SourceConfig.
type ListScraper struct {
	cfg     SourceConfig
	fetcher Fetcher
	cache   *storage.DB
	maxAge  time.Duration

	pattern *regexp.Regexp
	idRe    *regexp.Regexp
}

// NewListScraper validates cfg. cache may be nil.
func NewListScraper(cfg SourceConfig, fetcher Fetcher, cache *storage.DB, maxAge time.Duration) (*ListScraper, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("ranking source: missing name")
	}
	if cfg.Container == "" {
		return nil, fmt.Errorf("ranking source %s: missing container selector", cfg.Name)
	}
	if cfg.RankFromContainer && cfg.Title == "" {
		return nil, fmt.Errorf("ranking source %s: rank_from_container needs a title selector", cfg.Name)
	}
	if cfg.RankGroup == 0 {
		cfg.RankGroup = 1
	}
	if cfg.TitleGroup == 0 {
		cfg.TitleGroup = 2
	}

	s := &ListScraper{cfg: cfg, fetcher: fetcher, cache: cache, maxAge: maxAge}
	if cfg.Pattern != "" {
		re, err := regexp.Compile(`^(?:` + cfg.Pattern + `)`)
		if err != nil {
			return nil, fmt.Errorf("ranking source %s: bad pattern: %w", cfg.Name, err)
		}
		if n := re.NumSubexp(); cfg.RankGroup > n || cfg.TitleGroup > n {
			return nil, fmt.Errorf("ranking source %s: pattern has %d groups", cfg.Name, n)
		}
		s.pattern = re
	}
	if cfg.IDPattern != "" {
		re, err := regexp.Compile(cfg.IDPattern)
		if err != nil {
			return nil, fmt.Errorf("ranking source %s: bad id pattern: %w", cfg.Name, err)
		}
		s.idRe = re
	}
	return s, nil
}

func (s *ListScraper) Name() string { return s.cfg.Name }

func (s *ListScraper) Scrape(ctx context.Context) ([]Entry, error) {
	if s.cfg.URL == "" {
		return nil, fmt.Errorf("ranking source %s: missing url", s.cfg.Name)
	}
	body, err := s.cache.Cached(ctx, storage.KindPage, s.cfg.URL, s.maxAge, func(ctx context.Context) (string, error) {
		return s.fetcher.GetOK(ctx, s.cfg.URL)
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s list: %w", s.cfg.Name, err)
	}
	return s.Parse(body)
}

// Parse extracts entries from an HTML page.
func (s *ListScraper) Parse(body string) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", s.cfg.Name, err)
	}

	var entries []Entry
	if s.cfg.Title == "" {
		s.containers(doc.Selection).Each(func(i int, c *goquery.Selection) {
			if e, ok := s.extract(c.Text(), i); ok {
				entries = append(entries, e)
			}
		})
		return entries, nil
	}

	// Walk containers and titles together in document order so each
	// container can find the next title after it.
	all := doc.Find(s.cfg.Container + ", " + s.cfg.Title)
	containers := nodeSet(s.containers(doc.Selection))
	titles := nodeSet(doc.Find(s.cfg.Title))

	var pending []*goquery.Selection
	all.Each(func(_ int, n *goquery.Selection) {
		node := n.Get(0)
		// A node can be both; it closes earlier containers before
		// opening its own.
		if titles[node] {
			for _, c := range pending {
				if e, ok := s.pair(c, n, len(entries)); ok {
					entries = append(entries, e)
				}
			}
			pending = pending[:0]
		}
		if containers[node] {
			pending = append(pending, n)
		}
	})
	return entries, nil
}

func nodeSet(sel *goquery.Selection) map[*html.Node]bool {
	set := make(map[*html.Node]bool, sel.Length())
	for _, n := range sel.Nodes {
		set[n] = true
	}
	return set
}

func (s *ListScraper) containers(root *goquery.Selection) *goquery.Selection {
	sel := root.Find(s.cfg.Container)
	if s.idRe == nil {
		return sel
	}
	return sel.FilterFunction(func(_ int, c *goquery.Selection) bool {
		id, ok := c.Attr("id")
		return ok && s.idRe.MatchString(id)
	})
}

func (s *ListScraper) pair(container, title *goquery.Selection, pos int) (Entry, bool) {
	if s.cfg.RankFromContainer {
		rank, err := strconv.Atoi(strings.TrimSpace(container.Text()))
		if err != nil {
			return Entry{}, false
		}
		name := strings.TrimSpace(title.Text())
		if name == "" {
			return Entry{}, false
		}
		return Entry{Rank: rank, Title: name, Source: s.cfg.Name}, true
	}
	return s.extract(title.Text(), pos)
}

// extract applies the pattern to text. Without a pattern the text is
// the title and the position is the rank.
func (s *ListScraper) extract(text string, pos int) (Entry, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, false
	}
	if s.pattern == nil {
		return Entry{Rank: pos + 1, Title: text, Source: s.cfg.Name}, true
	}
	m := s.pattern.FindStringSubmatch(text)
	if m == nil {
		return Entry{}, false
	}
	rank, err := strconv.Atoi(m[s.cfg.RankGroup])
	if err != nil {
		return Entry{}, false
	}
	title := strings.TrimSpace(m[s.cfg.TitleGroup])
	if title == "" {
		return Entry{}, false
	}
	return Entry{Rank: rank, Title: title, Source: s.cfg.Name}, true
}
