/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mikeb26/pingpong-tdbot/bracket"
	"golang.org/x/sync/errgroup"
)

type Kind int

const (
	KindRoster Kind = iota
	KindFinalStandings
	KindWorkbook
)

// FileName returns the export file name for kind on the given day.
func FileName(kind Kind, date time.Time) string {
	day := date.Format(time.DateOnly)
	switch kind {
	case KindFinalStandings:
		return fmt.Sprintf("ping_pong_final_standings_%v.csv", day)
	case KindWorkbook:
		return fmt.Sprintf("ping_pong_tournament_%v.xlsx", day)
	default:
		return fmt.Sprintf("ping_pong_tournament_%v.csv", day)
	}
}

// WriteAll writes the roster CSV, the final standings CSV when the
// tournament is complete and, if withXLSX is set, the workbook into dir.
// It returns the paths written.
func WriteAll(ctx context.Context, dir string, t *bracket.Tournament,
	date time.Time, withXLSX bool) ([]string, error) {

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create %v: %w", dir, err)
	}

	type job struct {
		kind  Kind
		write func(io.Writer, *bracket.Tournament) error
	}
	jobs := []job{{KindRoster, WriteRosterCSV}}
	if t.IsComplete() {
		jobs = append(jobs, job{KindFinalStandings, WriteFinalStandingsCSV})
	}
	if withXLSX {
		jobs = append(jobs, job{KindWorkbook, WriteXLSX})
	}

	paths := make([]string, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for idx, j := range jobs {
		paths[idx] = filepath.Join(dir, FileName(j.kind, date))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeFile(paths[idx], t, j.write)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func writeFile(path string, t *bracket.Tournament,
	write func(io.Writer, *bracket.Tournament) error) (retErr error) {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %v: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil && retErr == nil {
			retErr = err
		}
		if retErr != nil {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Printf("export.writeFile: unable to remove %v: %v", path, err)
			}
		}
	}()

	if err := write(f, t); err != nil {
		return fmt.Errorf("unable to write %v: %w", path, err)
	}

	return nil
}
