package pokeapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/blackwell-systems/dexctl/internal/catalog"
)

// Summary is one row of the list endpoint.
type Summary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type listPage struct {
	Count   int       `json:"count"`
	Results []Summary `json:"results"`
}

// ListPage fetches the first page of up to limit summaries, in the
// order the service returns them.
func (c *Client) ListPage(ctx context.Context, limit int) ([]Summary, error) {
	u := c.url("pokemon") + "?limit=" + strconv.Itoa(limit)
	var page listPage
	if err := c.getJSON(ctx, u, &page); err != nil {
		return nil, fmt.Errorf("listing catalogue: %w", err)
	}
	return page.Results, nil
}

// Detail fetches the full record at detailURL.
func (c *Client) Detail(ctx context.Context, detailURL string) (catalog.Entry, error) {
	var r catalog.Record
	if err := c.getJSON(ctx, detailURL, &r); err != nil {
		return catalog.Entry{}, err
	}
	return r.Entry(catalog.OriginRemote), nil
}

// ByName fetches a single entry by name or numeric id.
func (c *Client) ByName(ctx context.Context, nameOrID string) (catalog.Entry, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrID))
	if key == "" {
		return catalog.Entry{}, ErrNotFound
	}
	e, err := c.Detail(ctx, c.url("pokemon", url.PathEscape(key)))
	if err != nil {
		return catalog.Entry{}, fmt.Errorf("fetching %q: %w", nameOrID, err)
	}
	return e, nil
}
