/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    []string
		wantErr error
	}{
		{"commas", "Alice, Bob,Carol", []string{"Alice", "Bob", "Carol"}, nil},
		{"newlines", "Alice\nBob\n\n\nCarol\n", []string{"Alice", "Bob", "Carol"}, nil},
		{"mixed", " Alice ,\n Bob\n,Carol", []string{"Alice", "Bob", "Carol"}, nil},
		{"duplicates", "Alice,Bob,Alice", []string{"Alice", "Bob"}, nil},
		{"inner spaces", "Mary   Ann  Smith", []string{"Mary Ann Smith"}, nil},
		{"empty", "", nil, ErrEmptyRoster},
		{"only separators", " ,\n, ,", nil, ErrEmptyRoster},
		{"semicolon", "Alice,Bob; Jr", nil, ErrBadName},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Parse(%q) error = %v; want %v", tc.in, err, tc.wantErr)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

const membersPage = `<html><body>
<table id="members">
<thead><tr><th>#</th><th>Player Name</th><th>Club</th></tr></thead>
<tbody>
<tr><td>1</td><td> Alice  Smith </td><td>North</td></tr>
<tr><td>2</td><td>Bob</td><td>South</td></tr>
<tr><td>3</td><td></td><td>East</td></tr>
<tr><td>4</td><td>Bob</td><td>South</td></tr>
</tbody>
</table>
</body></html>`

func TestFromHTML(t *testing.T) {
	cases := []struct {
		name string
		page string
		want []string
	}{
		{"members table", membersPage, []string{"Alice Smith", "Bob"}},
		{"headerless", `<table><tr><td>7</td><td>Carol</td></tr>
<tr><td>8</td><td>Dan</td></tr></table>`, []string{"Carol", "Dan"}},
		{"single column", `<table><tr><td>Erin</td></tr></table>`,
			[]string{"Erin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromHTML(strings.NewReader(tc.page))
			if err != nil {
				t.Fatalf("FromHTML error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("FromHTML mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := FromHTML(strings.NewReader("<p>no tables</p>")); !errors.Is(err,
		ErrEmptyRoster) {
		t.Errorf("expected ErrEmptyRoster, got %v", err)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/members":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprint(w, membersPage)
		case "/list.txt":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprint(w, "Zed\nYan\n")
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	got, err := Fetch(ctx, srv.Client(), srv.URL+"/members")
	if err != nil {
		t.Fatalf("Fetch html: %v", err)
	}
	if diff := cmp.Diff([]string{"Alice Smith", "Bob"}, got); diff != "" {
		t.Errorf("html mismatch (-want +got):\n%s", diff)
	}

	got, err = Fetch(ctx, srv.Client(), srv.URL+"/list.txt")
	if err != nil {
		t.Fatalf("Fetch text: %v", err)
	}
	if diff := cmp.Diff([]string{"Zed", "Yan"}, got); diff != "" {
		t.Errorf("text mismatch (-want +got):\n%s", diff)
	}

	if _, err := Fetch(ctx, srv.Client(), srv.URL+"/missing"); err == nil {
		t.Error("expected error for 404")
	}
}

func buildXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for idx, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		cells := make([]interface{}, len(row))
		for i, val := range row {
			cells[i] = val
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestFromXLSX(t *testing.T) {
	cases := []struct {
		name string
		rows [][]string
		want []string
	}{
		{"header", [][]string{{"Seed", "Player Name"}, {"1", "Alice"},
			{"2", "Bob"}}, []string{"Alice", "Bob"}},
		{"no header", [][]string{{"Carol"}, {"Dan"}, {" Carol "}},
			[]string{"Carol", "Dan"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := buildXLSX(t, tc.rows)
			got, err := FromXLSX(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("FromXLSX error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("FromXLSX mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := FromXLSX(strings.NewReader("not a workbook")); err == nil {
		t.Error("expected error for a non-xlsx input")
	}
}
