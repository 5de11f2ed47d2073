// Package posting parses and serializes forum posting records.
//
// A posting line has 5 or 6 comma-separated fields:
//
//	type,id,acceptedAnswerID,parentID,score[,tag]
//
// Optional fields (accepted answer id, parent id, tag) use the empty string
// to denote absence. The trailing tag field may be omitted entirely, which is
// the common shape for answer records.
package posting

import (
	"fmt"
	"strconv"
	"strings"
)

// Type distinguishes the two posting variants.
type Type int

const (
	// TypeQuestion marks a question record.
	TypeQuestion Type = 1
	// TypeAnswer marks an answer record.
	TypeAnswer Type = 2
)

// None marks an absent optional id field. Valid ids are non-negative.
const None int64 = -1

// Posting is one forum record, either a question or an answer.
//
// Questions carry a language tag and never a parent reference; answers carry
// a parent reference and never a tag. Parse enforces both.
type Posting struct {
	Type           Type
	ID             int64
	AcceptedAnswer int64 // None if absent
	ParentID       int64 // None if absent
	Score          int64
	Tag            string // empty if absent
}

// IsQuestion reports whether the posting is a question.
func (p Posting) IsQuestion() bool { return p.Type == TypeQuestion }

// IsAnswer reports whether the posting is an answer.
func (p Posting) IsAnswer() bool { return p.Type == TypeAnswer }

// String serializes the posting in the input field order. The trailing tag
// field is omitted when empty, so parsing the result yields an equivalent
// posting.
func (p Posting) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.FormatInt(int64(p.Type), 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatInt(p.ID, 10))
	sb.WriteByte(',')
	if p.AcceptedAnswer != None {
		sb.WriteString(strconv.FormatInt(p.AcceptedAnswer, 10))
	}
	sb.WriteByte(',')
	if p.ParentID != None {
		sb.WriteString(strconv.FormatInt(p.ParentID, 10))
	}
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatInt(p.Score, 10))
	if p.Tag != "" {
		sb.WriteByte(',')
		sb.WriteString(p.Tag)
	}
	return sb.String()
}

// ErrMalformedRecord indicates an input line that cannot be parsed into a
// posting. Malformed lines are rejected, never silently skipped.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrMalformedRecord struct {
	Line   string
	Reason string
	cause  error
}

func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("malformed record %q: %s", e.Line, e.Reason)
}

func (e *ErrMalformedRecord) Unwrap() error { return e.cause }

// Parse produces exactly one posting from a delimited line, or fails with
// *ErrMalformedRecord. An empty optional field maps to "no value", not to a
// parse failure; a non-integer in a required position is fatal for the line.
func Parse(line string) (Posting, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 5 && len(fields) != 6 {
		return Posting{}, &ErrMalformedRecord{Line: line, Reason: fmt.Sprintf("expected 5 or 6 fields, got %d", len(fields))}
	}

	typ, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Posting{}, &ErrMalformedRecord{Line: line, Reason: "non-integer type", cause: err}
	}
	if Type(typ) != TypeQuestion && Type(typ) != TypeAnswer {
		return Posting{}, &ErrMalformedRecord{Line: line, Reason: fmt.Sprintf("unknown posting type %d", typ)}
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Posting{}, &ErrMalformedRecord{Line: line, Reason: "non-integer id", cause: err}
	}

	accepted, err := parseOptionalID(fields[2])
	if err != nil {
		return Posting{}, &ErrMalformedRecord{Line: line, Reason: "non-integer accepted answer id", cause: err}
	}

	parent, err := parseOptionalID(fields[3])
	if err != nil {
		return Posting{}, &ErrMalformedRecord{Line: line, Reason: "non-integer parent id", cause: err}
	}

	score, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Posting{}, &ErrMalformedRecord{Line: line, Reason: "non-integer score", cause: err}
	}

	tag := ""
	if len(fields) == 6 {
		tag = fields[5]
	}

	p := Posting{
		Type:           Type(typ),
		ID:             id,
		AcceptedAnswer: accepted,
		ParentID:       parent,
		Score:          score,
		Tag:            tag,
	}

	switch p.Type {
	case TypeQuestion:
		if p.ParentID != None {
			return Posting{}, &ErrMalformedRecord{Line: line, Reason: "question with parent reference"}
		}
	case TypeAnswer:
		if p.ParentID == None {
			return Posting{}, &ErrMalformedRecord{Line: line, Reason: "answer without parent reference"}
		}
		if p.Tag != "" {
			return Posting{}, &ErrMalformedRecord{Line: line, Reason: "answer with language tag"}
		}
	}

	return p, nil
}

func parseOptionalID(field string) (int64, error) {
	if field == "" {
		return None, nil
	}
	return strconv.ParseInt(field, 10, 64)
}
