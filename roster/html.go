/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikeb26/pingpong-tdbot/internal"
)

// FromHTML extracts names from the first column headed "Name" of the
// members table. Pages without a table#members fall back to the first
// table in the document. When no header matches, the second column is
// used if rows have one, otherwise the first.
func FromHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse roster page: %w", err)
	}

	table := doc.Find("table#members").First()
	if table.Length() == 0 {
		table = doc.Find("table").First()
	}
	if table.Length() == 0 {
		return nil, ErrEmptyRoster
	}

	nameCol := -1
	table.Find("tr").First().Find("th").Each(func(idx int, s *goquery.Selection) {
		h := strings.ToLower(strings.TrimSpace(s.Text()))
		if nameCol < 0 && strings.Contains(h, "name") {
			nameCol = idx
		}
	})

	var names []string
	table.Find("tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() == 0 {
			return
		}
		col := nameCol
		if col < 0 {
			col = 0
			if cells.Length() > 1 {
				col = 1
			}
		}
		if col >= cells.Length() {
			return
		}
		names = append(names, cells.Eq(col).Text())
	})

	return clean(names)
}

// Fetch downloads a roster from url. Plain text bodies are handled like
// pasted text; anything else is parsed as an HTML page.
func Fetch(ctx context.Context, client *http.Client, url string) ([]string,
	error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("unable to read roster: %w", err)
		}
		return Parse(string(body))
	}

	return FromHTML(resp.Body)
}
