package nav

import (
	"errors"
	"fmt"
)

// Fatal configuration errors. They are raised with panic because they signal
// a broken contract between the content layer and the coordinator, never a
// condition a caller could retry.
var (
	ErrInvalidMode    = errors.New("nav: invalid navigation mode")
	ErrNoPrimaryLayer = errors.New("nav: no primary layer")
	ErrNotStack       = errors.New("nav: column is not a navigation stack")
)

// Column is one of the persistent content regions of the split container.
type Column int

const (
	ColumnPrimary       Column = iota // Sidebar.
	ColumnSupplementary               // Middle list.
	ColumnSecondary                   // Detail.
	ColumnCompact                     // Single collapsed column.
)

// expandedColumns lists the columns shown side by side when not collapsed.
var expandedColumns = []Column{ColumnPrimary, ColumnSupplementary, ColumnSecondary}

func (c Column) String() string {
	switch c {
	case ColumnPrimary:
		return "primary"
	case ColumnSupplementary:
		return "supplementary"
	case ColumnSecondary:
		return "secondary"
	case ColumnCompact:
		return "compact"
	default:
		return fmt.Sprintf("column(%d)", int(c))
	}
}

// ModeKind says how activating a link mutates the target column's stack.
type ModeKind int

const (
	ModePush ModeKind = iota // Append one entry to the column's stack.
	ModeSet                  // Replace the column's stack.
)

// Mode pairs a ModeKind with the column it targets.
type Mode struct {
	Kind   ModeKind
	Column Column
}

// Push returns push(column).
func Push(column Column) Mode {
	return Mode{Kind: ModePush, Column: column}
}

// Set returns set(column).
func Set(column Column) Mode {
	return Mode{Kind: ModeSet, Column: column}
}

func (m Mode) String() string {
	if m.Kind == ModeSet {
		return "set(" + m.Column.String() + ")"
	}
	return "push(" + m.Column.String() + ")"
}

func invalidMode(format string, args ...any) {
	panic(fmt.Errorf("%w: "+format, append([]any{ErrInvalidMode}, args...)...))
}
