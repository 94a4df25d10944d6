package models

// SegmentKind tells instruction text apart from file content.
type SegmentKind int

const (
	InstructionSegment SegmentKind = iota
	FileContentSegment
)

// Segment is one text part of a request.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Request is an ordered list of segments sent as a single user message, together with
// the file the response is written to.
type Request struct {
	Role     string
	Segments []Segment
	SavePath string
	// Sources lists the files whose content went into the request.
	Sources []string
}

const UserRole = "user"

// Texts returns the segment texts in order.
func (r *Request) Texts() []string {
	texts := make([]string, len(r.Segments))
	for i, segment := range r.Segments {
		texts[i] = segment.Text
	}
	return texts
}
