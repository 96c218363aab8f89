// Package logging wraps glog with the source-location prefix used by
// the frontend's diagnostics. Errors never abort a translation unit;
// they are only surfaced here.
package logging

import (
	log "github.com/golang/glog"

	"github.com/cpgtools/go-cpg/pkg/graph"
)

// debugVerbosity is the glog -v level at which debug messages appear.
const debugVerbosity = 1

func args(loc graph.Location, format string, a []any) (string, []any) {
	return "%s: " + format, append([]any{loc}, a...)
}

// Errorf logs an unrecoverable-per-node condition, keyed to the
// source location.
func Errorf(loc graph.Location, format string, a ...any) {
	f, fa := args(loc, format, a)
	log.Errorf(f, fa...)
}

// Warningf logs a condition the frontend compensated for.
func Warningf(loc graph.Location, format string, a ...any) {
	f, fa := args(loc, format, a)
	log.Warningf(f, fa...)
}

// Debugf logs placeholder bookkeeping; visible with -v=1.
func Debugf(loc graph.Location, format string, a ...any) {
	if log.V(debugVerbosity) {
		f, fa := args(loc, format, a)
		log.Infof(f, fa...)
	}
}
