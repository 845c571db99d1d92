package editor

import (
	"errors"
	"fmt"

	"classdraw/diagram"
	"classdraw/validation"
)

// ErrSessionClosed is returned after Commit or Discard.
var ErrSessionClosed = errors.New("edit session closed")

// Session is an edit in progress. The panel mutates Draft, a clone of the
// live element, and nothing on the diagram changes until Commit.
type Session struct {
	editor *Editor
	live   diagram.Element
	draft  diagram.Element
	closed bool
}

// BeginEdit opens a session on el.
func (e *Editor) BeginEdit(el diagram.Element) (*Session, error) {
	if e.indexOf(el) < 0 {
		return nil, ErrNotFound
	}
	return &Session{editor: e, live: el, draft: el.Clone()}, nil
}

// Draft returns the working copy.
func (s *Session) Draft() diagram.Element { return s.draft }

// Live returns the element being edited.
func (s *Session) Live() diagram.Element { return s.live }

// Validate runs the validation cascade over the draft.
func (s *Session) Validate() validation.Causes {
	return s.draft.Validate()
}

// Commit copies the draft onto the live element and returns the draft's
// validation causes. Invalid drafts are applied too; the causes are for
// marking the element, not for refusing the edit.
func (s *Session) Commit() (validation.Causes, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	causes := s.draft.Validate()
	if err := s.live.CopyFrom(s.draft); err != nil {
		return causes, fmt.Errorf("commit %s: %w", s.live.Tag(), err)
	}
	s.closed = true
	s.editor.logger.Debug("edit committed", "tag", s.live.Tag(), "valid", causes.Valid())
	return causes, nil
}

// Discard closes the session without touching the live element.
func (s *Session) Discard() {
	s.closed = true
}
