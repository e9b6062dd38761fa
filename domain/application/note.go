package application

import (
	"fmt"
	"strings"
	"time"
)

// SystemAuthorName is the author recorded on workflow-generated notes.
const SystemAuthorName = "System"

// ReviewNote is an append-only entry in an application's activity log.
type ReviewNote struct {
	id            int64
	applicationID string
	authorType    AuthorType
	authorName    string
	content       string
	fromStatus    Status
	toStatus      Status
	internal      bool
	createdAt     time.Time
}

// NewStatusChangeNote records a transition. The reason is embedded verbatim.
func NewStatusChangeNote(applicationID string, from, to Status, actor, reason string) ReviewNote {
	content := fmt.Sprintf("Status changed from %s to %s", from, to)
	if r := strings.TrimSpace(reason); r != "" {
		content += ": " + r
	}
	if actor == "" {
		actor = SystemAuthorName
	}
	return ReviewNote{
		applicationID: applicationID,
		authorType:    AuthorSystem,
		authorName:    actor,
		content:       content,
		fromStatus:    from,
		toStatus:      to,
		createdAt:     time.Now().UTC(),
	}
}

// NewSubmissionNote records the initial submission.
func NewSubmissionNote(applicationID string, serviceType ServiceType) ReviewNote {
	return ReviewNote{
		applicationID: applicationID,
		authorType:    AuthorSystem,
		authorName:    SystemAuthorName,
		content:       fmt.Sprintf("%s application submitted", serviceType),
		toStatus:      StatusSubmitted,
		createdAt:     time.Now().UTC(),
	}
}

// NewComment records a free-text comment. Internal comments are hidden from
// the applicant and member views.
func NewComment(applicationID string, author AuthorType, authorName, content string, internal bool) ReviewNote {
	return ReviewNote{
		applicationID: applicationID,
		authorType:    author,
		authorName:    authorName,
		content:       content,
		internal:      internal && author == AuthorStaff,
		createdAt:     time.Now().UTC(),
	}
}

// ReconstructReviewNote recreates a note from persistence.
func ReconstructReviewNote(
	id int64,
	applicationID string,
	authorType AuthorType,
	authorName, content string,
	fromStatus, toStatus Status,
	internal bool,
	createdAt time.Time,
) ReviewNote {
	return ReviewNote{
		id:            id,
		applicationID: applicationID,
		authorType:    authorType,
		authorName:    authorName,
		content:       content,
		fromStatus:    fromStatus,
		toStatus:      toStatus,
		internal:      internal,
		createdAt:     createdAt,
	}
}

// ID returns the note identifier.
func (n ReviewNote) ID() int64 { return n.id }

// ApplicationID returns the owning application.
func (n ReviewNote) ApplicationID() string { return n.applicationID }

// AuthorType returns who wrote the note.
func (n ReviewNote) AuthorType() AuthorType { return n.authorType }

// AuthorName returns the display name of the author.
func (n ReviewNote) AuthorName() string { return n.authorName }

// Content returns the note text.
func (n ReviewNote) Content() string { return n.content }

// FromStatus returns the status before a transition, or "".
func (n ReviewNote) FromStatus() Status { return n.fromStatus }

// ToStatus returns the status after a transition, or "".
func (n ReviewNote) ToStatus() Status { return n.toStatus }

// Internal reports whether the note is staff-only.
func (n ReviewNote) Internal() bool { return n.internal }

// CreatedAt returns when the note was written.
func (n ReviewNote) CreatedAt() time.Time { return n.createdAt }

// IsStatusChange reports whether the note records a transition.
func (n ReviewNote) IsStatusChange() bool {
	return n.authorType == AuthorSystem && n.fromStatus != ""
}

// WithCreatedAt returns a copy stamped at t. Used when importing history.
func (n ReviewNote) WithCreatedAt(t time.Time) ReviewNote {
	n.createdAt = t.UTC()
	return n
}

// PublicNotes drops internal notes, keeping order.
func PublicNotes(notes []ReviewNote) []ReviewNote {
	out := make([]ReviewNote, 0, len(notes))
	for _, n := range notes {
		if !n.internal {
			out = append(out, n)
		}
	}
	return out
}
