/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bracket

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRoster     = errors.New("roster has no players")
	ErrNotDrawn        = errors.New("round 1 has not been drawn")
	ErrNotReady        = errors.New("stage is not ready to start")
	ErrStageNotStarted = errors.New("stage has not started")
	ErrNoSuchMatch     = errors.New("no such match")
	ErrNotInMatch      = errors.New("player is not in that match")
	ErrWalkover        = errors.New("walkover result cannot be changed")
	ErrNotComplete     = errors.New("tournament is not complete")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrUnknownPlayer   = errors.New("unknown player")
)

// CountError reports a readiness violation: the stage needs an exact
// number of winners from the stages feeding it.
type CountError struct {
	Stage Stage
	Want  int
	Got   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("need %d winners to start %v, got %d", e.Want, e.Stage,
		e.Got)
}

func (e *CountError) Unwrap() error {
	return ErrNotReady
}
